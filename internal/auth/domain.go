// Package auth verifies admin credentials and issues sessions.
package auth

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the credential-bearing view of an account, as read at login.
// The full management view lives in the users package.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name,omitempty"`
	PasswordHash string             `bson:"passwordHash"`
	Role         string             `bson:"role,omitempty"`
	Permissions  []string           `bson:"permissions,omitempty"`
	CreatedAt    string             `bson:"createdAt,omitempty"`
	UpdatedAt    string             `bson:"updatedAt,omitempty"`
}

// Identity is the authenticated result handed to the session layer.
type Identity struct {
	Email       string
	Name        string
	Role        string
	Permissions []string
}
