// Package templates manages the transactional email templates. Templates
// live in MongoDB and fall back to embedded defaults when absent.
package templates

import (
	"embed"
	"path"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Well-known template names.
const (
	NameBookingConfirmation = "booking-confirmation"
	NameApplicationReceived = "application-received"
)

//go:embed defaults/*.html
var defaultsFS embed.FS

var defaultSubjects = map[string]string{
	NameBookingConfirmation: "Your booking request at Velora",
	NameApplicationReceived: "We received your application",
}

// Template is one editable email template.
type Template struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Subject   string             `bson:"subject" json:"subject"`
	Body      string             `bson:"body" json:"body"`
	UpdatedBy string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreatedAt string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt string             `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// defaultTemplate returns the embedded fallback for a well-known name.
func defaultTemplate(name string) (Template, bool) {
	subject, ok := defaultSubjects[name]
	if !ok {
		return Template{}, false
	}
	body, err := defaultsFS.ReadFile(path.Join("defaults", name+".html"))
	if err != nil {
		return Template{}, false
	}
	return Template{Name: name, Subject: subject, Body: string(body)}, true
}
