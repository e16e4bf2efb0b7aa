package mailer

import (
	"net/smtp"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	out, err := Render("Hello {{.name}}, your {{.service}} is booked.", map[string]string{
		"name":    "Ada",
		"service": "Brow Lamination",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello Ada, your Brow Lamination is booked." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	out, err := Render("<p>{{.name}}</p>", map[string]string{"name": "<script>x</script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected HTML escaping, got %q", out)
	}
}

func TestSendBuildsMessage(t *testing.T) {
	m := New(Config{Host: "smtp.local", Port: 1025, From: "no-reply@velora.local"})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	if err := m.Send("ada@example.com", "Hi", "<b>hello</b>"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAddr != "smtp.local:1025" || gotFrom != "no-reply@velora.local" {
		t.Fatalf("unexpected addr/from: %q %q", gotAddr, gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "ada@example.com" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}
	msg := string(gotMsg)
	for _, want := range []string{"Subject: Hi\r\n", "Content-Type: text/html", "<b>hello</b>"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestSendRequiresHost(t *testing.T) {
	m := New(Config{})
	if err := m.Send("x@example.com", "s", "b"); err == nil {
		t.Fatalf("expected error without smtp host")
	}
}
