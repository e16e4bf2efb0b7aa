// Package resources manages the site's content records (guides, aftercare,
// promotions). Only published records are visible publicly.
package resources

import "go.mongodb.org/mongo-driver/bson/primitive"

// Statuses a resource moves through. Default is draft.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Resource is one content record.
type Resource struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Summary     string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"`
	HeroImage   string             `bson:"heroImage,omitempty" json:"heroImage,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	CTALabel    string             `bson:"ctaLabel,omitempty" json:"ctaLabel,omitempty"`
	CTAHref     string             `bson:"ctaHref,omitempty" json:"ctaHref,omitempty"`
	AuthorEmail string             `bson:"authorEmail,omitempty" json:"authorEmail,omitempty"`
	CreatedAt   string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   string             `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PublicFilter narrows the public listing. All fields optional.
type PublicFilter struct {
	Query    string
	Category string
	Tag      string
}
