package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is keyed by email; the unique index on email is created at startup.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL      string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role          Role               `bson:"role" json:"role"`
	EmailVerified bool               `bson:"emailVerified" json:"emailVerified"`
	CoverImage    string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	ProfileImage  string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	VerifiedAt    *time.Time         `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	LastLogin     *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	UpdatedAt     *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ProfileImages is the partial update accepted by PATCH /users/:id. Empty fields are left alone.
type ProfileImages struct {
	CoverImage   string `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	ProfileImage string `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
}

func (p ProfileImages) Empty() bool {
	return p.CoverImage == "" && p.ProfileImage == ""
}
