// Package bookings handles appointment requests from the public site and
// their administration.
package bookings

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking workflow states.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusDone      = "done"
)

// Booking is one appointment request.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Service   string             `bson:"service,omitempty" json:"service,omitempty"`
	Date      string             `bson:"date,omitempty" json:"date,omitempty"`
	Time      string             `bson:"time,omitempty" json:"time,omitempty"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt string             `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Form is the public booking payload.
type Form struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=5"`
	Service string `json:"service" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"omitempty"`
	Message string `json:"message" validate:"omitempty,max=2000"`
}

// Review is the admin mutation of one booking.
type Review struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}
