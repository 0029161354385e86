package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fitai/agent-backend/internal/ai"
	"fitai/agent-backend/internal/domain"

	"github.com/sirupsen/logrus"
)

// PlanGenerator turns the equipment catalog plus a week range into a
// day-indexed workout schedule via the completion provider. Generation
// never fails: any provider or parse problem falls back to a fixed
// default schedule.
type PlanGenerator interface {
	Generate(ctx context.Context, equipmentKnowledge string, weekStart, weekEnd time.Time) []domain.PlanWorkout
}

type planGenerator struct {
	provider ai.Client
}

// NewPlanGenerator creates a PlanGenerator backed by the given
// completion client.
func NewPlanGenerator(provider ai.Client) PlanGenerator {
	return &planGenerator{provider: provider}
}

func (g *planGenerator) Generate(ctx context.Context, equipmentKnowledge string, weekStart, weekEnd time.Time) []domain.PlanWorkout {
	prompt := buildPlanPrompt(equipmentKnowledge, weekStart, weekEnd)

	reply, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		logrus.WithError(err).Error("completion call failed, using fallback plan")
		return fallbackWorkouts()
	}
	if strings.TrimSpace(reply) == "" {
		logrus.Error("completion returned empty content, using fallback plan")
		return fallbackWorkouts()
	}

	workouts, err := parsePlanReply(reply)
	if err != nil {
		logrus.WithError(err).Error("failed to parse generated plan, using fallback plan")
		return fallbackWorkouts()
	}
	return workouts
}

func buildPlanPrompt(equipmentKnowledge string, weekStart, weekEnd time.Time) string {
	var sb strings.Builder

	sb.WriteString("You are an expert fitness trainer and nutritionist.\n")
	fmt.Fprintf(&sb, "Create a comprehensive weekly workout plan from %s to %s.\n\n",
		weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02"))

	sb.WriteString("Requirements:\n")
	sb.WriteString("1. Target different muscle groups throughout the week\n")
	sb.WriteString("2. Include 4-6 training days per week (allow for 1-2 rest days)\n")
	sb.WriteString("3. Balance strength training and cardio\n")
	sb.WriteString("4. Ensure proper muscle recovery time between similar muscle groups\n")
	sb.WriteString("5. Start with appropriate difficulty levels\n\n")

	sb.WriteString("Equipment Knowledge Base:\n")
	sb.WriteString(equipmentKnowledge)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY a JSON array with this exact structure:\n")
	sb.WriteString("[\n")
	sb.WriteString("  {\n")
	sb.WriteString("    \"day\": \"Monday\",\n")
	sb.WriteString("    \"workouts\": [\n")
	sb.WriteString("      {\n")
	sb.WriteString("        \"name\": \"Bench Press\",\n")
	sb.WriteString("        \"sets\": 3,\n")
	sb.WriteString("        \"reps\": 8,\n")
	sb.WriteString("        \"weight\": \"135 lbs\",\n")
	sb.WriteString("        \"duration\": \"45 min\",\n")
	sb.WriteString("        \"notes\": \"Focus on form\"\n")
	sb.WriteString("      }\n")
	sb.WriteString("    ]\n")
	sb.WriteString("  },\n")
	sb.WriteString("  ...\n")
	sb.WriteString("]\n\n")
	sb.WriteString("Important: Return ONLY valid JSON, no additional text.")

	return sb.String()
}

// flexInt tolerates sets/reps arriving as numbers, numeric strings, or
// garbage. Non-numeric values are treated as absent, not as errors.
type flexInt struct {
	value int
	ok    bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if n, err := strconv.Atoi(s); err == nil {
		f.value, f.ok = n, true
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		f.value, f.ok = int(v), true
	}
	return nil
}

func (f flexInt) ptr() *int {
	if !f.ok {
		return nil
	}
	v := f.value
	return &v
}

type planDayReply struct {
	Day      string             `json:"day"`
	Workouts []planWorkoutReply `json:"workouts"`
}

type planWorkoutReply struct {
	Name     string  `json:"name"`
	Sets     flexInt `json:"sets"`
	Reps     flexInt `json:"reps"`
	Weight   string  `json:"weight"`
	Duration string  `json:"duration"`
	Notes    string  `json:"notes"`
}

// parsePlanReply extracts the JSON array from the raw reply, tolerant
// of leading or trailing prose, and maps it to plan workouts.
func parsePlanReply(reply string) ([]domain.PlanWorkout, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in reply")
	}

	var days []planDayReply
	if err := json.Unmarshal([]byte(reply[start:end+1]), &days); err != nil {
		return nil, fmt.Errorf("decoding plan days: %w", err)
	}

	var workouts []domain.PlanWorkout
	for _, day := range days {
		dayIndex := domain.DayIndex(day.Day)
		for _, w := range day.Workouts {
			workouts = append(workouts, domain.PlanWorkout{
				DayIndex:    dayIndex,
				WorkoutName: w.Name,
				Sets:        w.Sets.ptr(),
				Reps:        w.Reps.ptr(),
				Weight:      w.Weight,
				Duration:    w.Duration,
				Notes:       w.Notes,
				Completed:   false,
			})
		}
	}
	return workouts, nil
}

// fallbackWorkouts is the fixed default schedule: six training days and
// one rest day with no workout entry.
func fallbackWorkouts() []domain.PlanWorkout {
	defaults := [7]string{
		"Chest & Triceps",
		"Back & Biceps",
		"Cardio",
		"Legs",
		"Shoulders",
		"", // rest day
		"Full Body",
	}

	var workouts []domain.PlanWorkout
	for dayIndex, name := range defaults {
		if name == "" {
			continue
		}
		sets, reps := 3, 10
		workouts = append(workouts, domain.PlanWorkout{
			DayIndex:    dayIndex,
			WorkoutName: name,
			Sets:        &sets,
			Reps:        &reps,
			Weight:      "Bodyweight/Machine",
			Duration:    "45 min",
			Completed:   false,
		})
	}
	return workouts
}
