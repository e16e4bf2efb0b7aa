package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/velora-beauty/velora/internal/shared"
)

// sensitiveKeys are stripped from detail payloads before persisting.
// Matching is exact and shallow; the sanitizer does not recurse into
// nested maps. Keep it that way.
var sensitiveKeys = []string{"password", "passwordHash", "newPassword"}

// Recorder writes audit entries. Record never returns an error: an audit
// write failure must not abort the business operation that triggered it,
// so the failure is logged here and swallowed at this single boundary.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder constructs a Recorder.
func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{repo: repo, logger: logger, now: time.Now}
}

// Record appends one entry describing an administrative action. The actor
// email is taken from the session, falling back to the "unknown" sentinel
// when the session carries no user; the role is simply left empty then.
// createdAt is the moment of the write.
//
// Conventional detail keys "message" and "resourceId" are lifted into the
// entry's own fields; the sanitized payload keeps them as well.
func (rec *Recorder) Record(ctx context.Context, sess *shared.Session, action, resource string, details map[string]any) {
	entry := Entry{
		ActorEmail: UnknownActor,
		Action:     action,
		Resource:   resource,
		CreatedAt:  FormatTime(rec.now()),
	}
	if sess != nil {
		if sess.Email != "" {
			entry.ActorEmail = sess.Email
		}
		entry.ActorRole = sess.Role
	}
	if msg, ok := details["message"].(string); ok {
		entry.Message = msg
	}
	if id, ok := details["resourceId"].(string); ok {
		entry.ResourceID = id
	}
	entry.Details = sanitize(details)

	if err := rec.repo.Insert(ctx, entry); err != nil {
		rec.logger.Warn("audit log write failed",
			slog.String("action", action),
			slog.Any("error", err))
	}
}

// sanitize returns a shallow copy of details with sensitive fields removed.
func sanitize(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	copied := make(map[string]any, len(details))
	for k, v := range details {
		copied[k] = v
	}
	for _, key := range sensitiveKeys {
		delete(copied, key)
	}
	return copied
}
