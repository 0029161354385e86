package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingLog records one logged exercise on a given date.
type TrainingLog struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	WorkoutDate      time.Time          `bson:"workoutDate" json:"workoutDate"`
	ExerciseName     string             `bson:"exerciseName" json:"exerciseName"`
	Sets             *int               `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps             *int               `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight           *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightUnit       string             `bson:"weightUnit,omitempty" json:"weightUnit,omitempty"`
	RestSeconds      *int               `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	DurationMinutes  *int               `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	CaloriesBurned   *int               `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`
	DifficultyRating *int               `bson:"difficultyRating,omitempty" json:"difficultyRating,omitempty"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
