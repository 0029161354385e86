package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSet is one set inside a workout session, embedded in its log.
type WorkoutSet struct {
	SetIndex    int     `bson:"setIndex" json:"setIndex"` // 1-based
	Reps        int     `bson:"reps" json:"reps"`
	Weight      float64 `bson:"weight" json:"weight"` // kilograms
	RestSeconds int     `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
}

// WorkoutLog is one timed workout session with its sets. The aggregate
// fields are derived from Sets and StartTime/EndTime on save so report
// queries never have to walk the set list.
type WorkoutLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseName    string             `bson:"exerciseName" json:"exerciseName"`
	StartTime       time.Time          `bson:"startTime" json:"startTime"`
	EndTime         time.Time          `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Sets            []WorkoutSet       `bson:"sets,omitempty" json:"sets,omitempty"`
	TotalSets       int                `bson:"totalSets" json:"totalSets"`
	DurationSeconds int                `bson:"durationSeconds" json:"durationSeconds"`
	TotalVolume     float64            `bson:"totalVolume" json:"totalVolume"` // sum of reps*weight
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
