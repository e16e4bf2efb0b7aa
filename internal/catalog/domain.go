// Package catalog manages the service categories shown on the public site:
// categories with nested service items, each with optional priced variants.
package catalog

import (
	"strings"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Money is a price in minor-unit-free decimal form, as entered by staff.
type Money struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`
}

// Duration brackets how long a service takes.
type Duration struct {
	Min  int    `bson:"min,omitempty" json:"min,omitempty"`
	Max  int    `bson:"max,omitempty" json:"max,omitempty"`
	Unit string `bson:"unit,omitempty" json:"unit,omitempty"`
}

// Variant is a bookable variation of a service item.
type Variant struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Price       *Money    `bson:"price,omitempty" json:"price,omitempty"`
	Duration    *Duration `bson:"duration,omitempty" json:"duration,omitempty"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	BookingLink string    `bson:"bookingLink,omitempty" json:"bookingLink,omitempty"`
}

// Item is one service inside a category.
type Item struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Summary     string    `bson:"summary,omitempty" json:"summary,omitempty"`
	BasePrice   *Money    `bson:"basePrice,omitempty" json:"basePrice,omitempty"`
	Duration    *Duration `bson:"duration,omitempty" json:"duration,omitempty"`
	Variants    []Variant `bson:"variants,omitempty" json:"variants,omitempty"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Images      []string  `bson:"images,omitempty" json:"images,omitempty"`
	BookingLink string    `bson:"bookingLink,omitempty" json:"bookingLink,omitempty"`
	Position    int       `bson:"position" json:"position"`
	CreatedAt   string    `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   string    `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Category groups service items for display.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Services    []Item             `bson:"services,omitempty" json:"services,omitempty"`
	CreatedAt   string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   string             `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Slugify lowercases, strips accents, and hyphenates a display name so
// names like "Soirée Lashes" become "soiree-lashes".
func Slugify(name string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		stripped = name
	}
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
