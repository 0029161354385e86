package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// User represents an account in the system. There is no credential material
// here: callers identify themselves by user id and the API trusts it.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"` // Should be unique
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserProfile holds the optional body metrics attached to a user.
type UserProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Age       *int               `bson:"age,omitempty" json:"age,omitempty"`
	Gender    string             `bson:"gender,omitempty" json:"gender,omitempty"`
	HeightCm  *float64           `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg  *float64           `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
