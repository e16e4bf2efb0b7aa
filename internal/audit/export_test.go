package audit

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestWriteCSVShape(t *testing.T) {
	entries := []Entry{
		{
			CreatedAt:  "2026-08-01T10:00:00.000Z",
			ActorEmail: "admin@velora.local",
			ActorRole:  "admin",
			Action:     "users:create",
			Resource:   "user",
			ResourceID: "abc",
			Message:    `said "hello"`,
			Details:    map[string]any{"email": "new@velora.local"},
		},
		{
			CreatedAt:  "2026-08-02T10:00:00.000Z",
			ActorEmail: "unknown",
			Action:     "bookings:create",
			Resource:   "booking",
		},
	}

	out := WriteCSV(entries)
	lines := strings.Split(string(out), "\n")
	if len(lines) != len(entries)+1 {
		t.Fatalf("expected %d lines, got %d", len(entries)+1, len(lines))
	}
	if lines[0] != "createdAt,actorEmail,actorRole,action,resource,resourceId,message,details" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], `"said ""hello"""`) {
		t.Fatalf("expected doubled quotes in %q", lines[1])
	}
	// Every cell is quoted, empty ones included.
	if !strings.HasSuffix(lines[2], `,"",""`) {
		t.Fatalf("expected quoted empty trailing cells in %q", lines[2])
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	entries := []Entry{
		{
			CreatedAt:  "2026-08-01T10:00:00.000Z",
			ActorEmail: "manager@velora.local",
			ActorRole:  "manager",
			Action:     "services:update",
			Resource:   "service",
			ResourceID: "cat-1",
			Message:    "renamed, with comma",
			Details:    map[string]any{"name": "Lashes \"Deluxe\""},
		},
	}

	reader := csv.NewReader(bytes.NewReader(WriteCSV(entries)))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 record, got %d", len(records))
	}
	row := records[1]
	if row[1] != "manager@velora.local" || row[3] != "services:update" {
		t.Fatalf("unexpected row %v", row)
	}
	if row[6] != "renamed, with comma" {
		t.Fatalf("comma field mangled: %q", row[6])
	}
	if !strings.Contains(row[7], `Lashes \"Deluxe\"`) {
		t.Fatalf("details JSON mangled: %q", row[7])
	}
}
