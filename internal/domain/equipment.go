package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Equipment is a read-only catalog entry describing one piece of gym
// equipment. The plan subsystem only ever reads these records; they are
// seeded once at startup.
type Equipment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"` // unique key
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	PrimaryMuscles string             `bson:"primaryMuscles,omitempty" json:"primaryMuscles,omitempty"` // comma-separated
	Alternatives   string             `bson:"alternatives,omitempty" json:"alternatives,omitempty"`     // comma-separated
	WorkoutTypes   string             `bson:"workoutTypes,omitempty" json:"workoutTypes,omitempty"`
	Difficulty     string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Tips           string             `bson:"tips,omitempty" json:"tips,omitempty"`
}
