package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayNames are the canonical weekday names, index 0 = Monday .. 6 = Sunday.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayIndex resolves a day name to its zero-based index. Matching is exact
// but case-insensitive; anything unrecognized maps to 0 (Monday).
func DayIndex(name string) int {
	for i, d := range DayNames {
		if strings.EqualFold(d, name) {
			return i
		}
	}
	return 0
}

// WeekBounds returns the Monday and Sunday (both at UTC midnight) of the
// week containing the given date.
func WeekBounds(date time.Time) (monday, sunday time.Time) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	monday = d.AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// WeeklyPlan is a 7-day (Monday to Sunday) workout schedule owned by one
// user. Its workouts live in their own collection and are cascade-deleted
// with the plan at the application level.
type WeeklyPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	StartDate time.Time          `bson:"startDate" json:"startDate"` // Monday, UTC midnight
	EndDate   time.Time          `bson:"endDate" json:"endDate"`     // Sunday, UTC midnight, inclusive
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Covers reports whether the given date falls inside the plan's inclusive
// [StartDate, EndDate] span.
func (p *WeeklyPlan) Covers(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// PlanWorkout is a single scheduled workout inside a WeeklyPlan.
// Weight and duration are free-text on purpose: the AI emits values like
// "135 lbs" or "Bodyweight" and we never do arithmetic on them.
type PlanWorkout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	DayIndex    int                `bson:"dayIndex" json:"dayIndex"` // 0 = Monday .. 6 = Sunday
	WorkoutName string             `bson:"workoutName" json:"workoutName"`
	Sets        *int               `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps        *int               `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight      string             `bson:"weight,omitempty" json:"weight,omitempty"`
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Completed   bool               `bson:"completed" json:"completed"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // display hint, derived when absent
}
