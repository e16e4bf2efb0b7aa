// Package users manages admin portal accounts.
package users

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a managed account. PasswordHash is never serialised to clients
// and is excluded from list projections at the repository level.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Permissions  []string           `bson:"permissions,omitempty" json:"permissions,omitempty"`
	CreatedAt    string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    string             `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Update carries the mutable fields of an account. Nil pointers leave the
// stored value untouched. PasswordHash is set only through the password
// reset path, never directly from client input.
type Update struct {
	Name         *string
	Role         *string
	Permissions  []string
	PasswordHash *string
	UpdatedAt    string
}
