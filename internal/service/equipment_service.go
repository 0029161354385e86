package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	gocache "github.com/patrickmn/go-cache"
)

// EquipmentService exposes the gym equipment catalog and the derived
// muscle-group labeling used by the plan views.
type EquipmentService interface {
	GetAll(ctx context.Context) ([]domain.Equipment, error)
	GetByName(ctx context.Context, name string) (*domain.Equipment, error)
	Search(ctx context.Context, keyword string) ([]domain.Equipment, error)
	GetByMuscle(ctx context.Context, muscle string) ([]domain.Equipment, error)
	KnowledgeBase(ctx context.Context) (string, error)
	DayMuscleLabel(ctx context.Context, workouts []domain.PlanWorkout) string
}

const catalogCacheKey = "equipment:all"

type equipmentService struct {
	repo  repository.EquipmentRepository
	cache *gocache.Cache
}

// NewEquipmentService creates an EquipmentService. The catalog is
// effectively static after seeding, so reads are cached briefly.
func NewEquipmentService(repo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{
		repo:  repo,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *equipmentService) GetAll(ctx context.Context) ([]domain.Equipment, error) {
	if cached, found := s.cache.Get(catalogCacheKey); found {
		return cached.([]domain.Equipment), nil
	}
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching equipment catalog: %w", err)
	}
	s.cache.Set(catalogCacheKey, items, gocache.DefaultExpiration)
	return items, nil
}

func (s *equipmentService) GetByName(ctx context.Context, name string) (*domain.Equipment, error) {
	item, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("fetching equipment %q: %w", name, err)
	}
	return item, nil
}

func (s *equipmentService) Search(ctx context.Context, keyword string) ([]domain.Equipment, error) {
	return s.repo.Search(ctx, keyword)
}

func (s *equipmentService) GetByMuscle(ctx context.Context, muscle string) ([]domain.Equipment, error) {
	return s.repo.GetByMuscle(ctx, muscle)
}

// KnowledgeBase renders the catalog as prompt text for the AI services.
func (s *equipmentService) KnowledgeBase(ctx context.Context) (string, error) {
	items, err := s.GetAll(ctx)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, eq := range items {
		sb.WriteString(eq.Name)
		sb.WriteString(": ")
		sb.WriteString(eq.Description)
		sb.WriteString(". Main muscles: ")
		sb.WriteString(eq.PrimaryMuscles)
		sb.WriteString(". Difficulty: ")
		sb.WriteString(eq.Difficulty)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// Display vocabulary for muscle labels. Keyword order matters: specific
// terms come before generic ones.
var muscleKeywords = []struct {
	keyword string
	label   string
}{
	{"pectoralis", "Chest"},
	{"chest", "Chest"},
	{"latissimus", "Back"},
	{"rhomboid", "Back"},
	{"trapezius", "Back"},
	{"teres", "Back"},
	{"back", "Back"},
	{"quadriceps", "Legs"},
	{"glute", "Legs"},
	{"hamstring", "Legs"},
	{"calf", "Legs"},
	{"leg", "Legs"},
	{"deltoid", "Shoulders"},
	{"shoulder", "Shoulders"},
	{"bicep", "Arms"},
	{"tricep", "Arms"},
	{"brachialis", "Arms"},
	{"forearm", "Arms"},
	{"abdominal", "Core"},
	{"core", "Core"},
	{"cardio", "Cardio"},
}

// DayMuscleLabel derives a display label for one day's workouts.
// Each workout's muscle source is its stored muscleGroup if set,
// otherwise the catalog entry matched by exact name or keyword search.
// A workout contributes one label: the first muscle token in its source
// that normalizes to the display vocabulary, so a bench press listing
// "Pectoralis Major, Anterior Deltoids, Triceps" counts as Chest only.
// Per-workout labels are deduplicated, sorted, and the first three
// joined. Days with workouts but no match get a generic label; empty
// days are rest days.
func (s *equipmentService) DayMuscleLabel(ctx context.Context, workouts []domain.PlanWorkout) string {
	if len(workouts) == 0 {
		return "Rest"
	}

	seen := make(map[string]bool)
	for _, w := range workouts {
		source := w.MuscleGroup
		if source == "" {
			source = s.lookupMuscles(ctx, w.WorkoutName)
		}
		if label, ok := firstMuscleLabel(source); ok {
			seen[label] = true
		}
	}
	if len(seen) == 0 {
		return "Training"
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	if len(labels) > 3 {
		labels = labels[:3]
	}
	return strings.Join(labels, ", ")
}

// lookupMuscles resolves a workout name against the catalog: exact name
// match first, then keyword search taking the first result.
func (s *equipmentService) lookupMuscles(ctx context.Context, name string) string {
	if name == "" {
		return ""
	}
	if eq, err := s.repo.GetByName(ctx, name); err == nil {
		return eq.PrimaryMuscles
	}
	results, err := s.repo.Search(ctx, name)
	if err != nil || len(results) == 0 {
		return ""
	}
	return results[0].PrimaryMuscles
}

// firstMuscleLabel maps a comma-separated muscle list to the display
// label of its first recognized token.
func firstMuscleLabel(muscles string) (string, bool) {
	for _, token := range strings.Split(muscles, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		for _, mk := range muscleKeywords {
			if strings.Contains(token, mk.keyword) {
				return mk.label, true
			}
		}
	}
	return "", false
}
