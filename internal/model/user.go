package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user record.
// Password is kept exactly as submitted.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// RegisterRequest is the body accepted by POST /register.
// None of the fields are required here; the store decides what it accepts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// ToUser builds the record to be persisted from the request.
func (r RegisterRequest) ToUser(now time.Time) *User {
	return &User{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		CreatedAt: now,
	}
}
