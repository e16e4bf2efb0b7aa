// Package trainings manages training programs and the applications the
// public submits against them.
package trainings

import "go.mongodb.org/mongo-driver/bson/primitive"

// Application review states.
const (
	ApplicationNew      = "new"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Program is one training course offered by the studio.
type Program struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Level       string             `bson:"level,omitempty" json:"level,omitempty"`
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Price       float64            `bson:"price,omitempty" json:"price,omitempty"`
	Currency    string             `bson:"currency,omitempty" json:"currency,omitempty"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   string             `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Application is a prospect's submission for a program.
type Application struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProgramID string             `bson:"programId,omitempty" json:"programId,omitempty"`
	Program   string             `bson:"program,omitempty" json:"program,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt string             `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ApplicationForm is the public submission payload.
type ApplicationForm struct {
	ProgramID string `json:"programId"`
	Program   string `json:"program"`
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,min=5"`
	Message   string `json:"message" validate:"omitempty,max=2000"`
}

// Review is the admin mutation of one application.
type Review struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}
