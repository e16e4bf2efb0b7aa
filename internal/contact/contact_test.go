package contact

import (
	"strings"
	"testing"
)

func TestForwardBodyEscapesAndOmitsEmptyFields(t *testing.T) {
	body := ForwardBody(Message{
		Name:    "Ada <script>",
		Email:   "ada@example.com",
		Message: "Hi & hello",
	})
	if strings.Contains(body, "<script>") {
		t.Fatalf("expected escaped HTML, got %q", body)
	}
	if !strings.Contains(body, "Ada &lt;script&gt;") {
		t.Fatalf("expected escaped name, got %q", body)
	}
	if !strings.Contains(body, "Hi &amp; hello") {
		t.Fatalf("expected escaped message, got %q", body)
	}
	if strings.Contains(body, "Phone") || strings.Contains(body, "Topic") {
		t.Fatalf("expected empty fields omitted, got %q", body)
	}

	withAll := ForwardBody(Message{Name: "Ada", Email: "a@b.c", Phone: "+370", Topic: "Lashes", Message: "x"})
	if !strings.Contains(withAll, "Phone") || !strings.Contains(withAll, "Lashes") {
		t.Fatalf("expected phone and topic rendered, got %q", withAll)
	}
}
