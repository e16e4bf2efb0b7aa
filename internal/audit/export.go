package audit

import (
	"encoding/json"
	"strings"
)

// csvHeader is the fixed export header. Consumers rely on this exact order.
const csvHeader = `createdAt,actorEmail,actorRole,action,resource,resourceId,message,details`

// WriteCSV serialises entries to the audit export format: every field
// individually quoted, embedded double-quotes escaped by doubling, details
// rendered as a JSON string. encoding/csv is not used because it quotes
// only when necessary and the format mandates quoting every cell; the
// round-trip against a conforming reader is covered by tests.
func WriteCSV(entries []Entry) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	for _, entry := range entries {
		var details string
		if entry.Details != nil {
			if raw, err := json.Marshal(entry.Details); err == nil {
				details = string(raw)
			}
		}
		fields := []string{
			entry.CreatedAt,
			entry.ActorEmail,
			entry.ActorRole,
			entry.Action,
			entry.Resource,
			entry.ResourceID,
			entry.Message,
			details,
		}
		b.WriteByte('\n')
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String())
}
