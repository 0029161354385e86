package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes for service tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetProfile(_ context.Context, _ primitive.ObjectID) (*domain.UserProfile, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpsertProfile(_ context.Context, _ *domain.UserProfile) error {
	return nil
}

type fakeEquipmentRepo struct {
	items []domain.Equipment
}

func (r *fakeEquipmentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeEquipmentRepo) CreateMany(_ context.Context, items []domain.Equipment) error {
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeEquipmentRepo) GetAll(_ context.Context) ([]domain.Equipment, error) {
	return r.items, nil
}

func (r *fakeEquipmentRepo) GetByName(_ context.Context, name string) (*domain.Equipment, error) {
	for i := range r.items {
		if r.items[i].Name == name {
			return &r.items[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeEquipmentRepo) Search(_ context.Context, keyword string) ([]domain.Equipment, error) {
	keyword = strings.ToLower(keyword)
	var out []domain.Equipment
	for _, eq := range r.items {
		if strings.Contains(strings.ToLower(eq.Name), keyword) ||
			strings.Contains(strings.ToLower(eq.Description), keyword) {
			out = append(out, eq)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) GetByMuscle(_ context.Context, muscle string) ([]domain.Equipment, error) {
	muscle = strings.ToLower(muscle)
	var out []domain.Equipment
	for _, eq := range r.items {
		if strings.Contains(strings.ToLower(eq.PrimaryMuscles), muscle) {
			out = append(out, eq)
		}
	}
	return out, nil
}

type fakePlanRepo struct {
	plans    map[primitive.ObjectID]*domain.WeeklyPlan
	workouts *fakeWorkoutRepo
}

func newFakePlanRepo(workouts *fakeWorkoutRepo) *fakePlanRepo {
	return &fakePlanRepo{
		plans:    make(map[primitive.ObjectID]*domain.WeeklyPlan),
		workouts: workouts,
	}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.WeeklyPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	stored := *plan
	r.plans[plan.ID] = &stored
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WeeklyPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (r *fakePlanRepo) FindByDate(_ context.Context, userID primitive.ObjectID, date time.Time) (*domain.WeeklyPlan, error) {
	var matches []*domain.WeeklyPlan
	for _, plan := range r.plans {
		if plan.UserID == userID && plan.Covers(date) {
			matches = append(matches, plan)
		}
	}
	if len(matches) == 0 {
		return nil, repository.ErrNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].StartDate.After(matches[j].StartDate)
	})
	copied := *matches[0]
	return &copied, nil
}

func (r *fakePlanRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]domain.WeeklyPlan, error) {
	var out []domain.WeeklyPlan
	for _, plan := range r.plans {
		if plan.UserID == userID {
			out = append(out, *plan)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	_ = r.workouts.DeleteByPlanID(context.Background(), id)
	delete(r.plans, id)
	return nil
}

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.PlanWorkout
	order    []primitive.ObjectID
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.PlanWorkout)}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.PlanWorkout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	stored := *workout
	r.workouts[workout.ID] = &stored
	r.order = append(r.order, workout.ID)
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) CreateMany(ctx context.Context, workouts []domain.PlanWorkout) error {
	for i := range workouts {
		if _, err := r.Create(ctx, &workouts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.PlanWorkout, error) {
	workout, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *workout
	return &copied, nil
}

func (r *fakeWorkoutRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.PlanWorkout, error) {
	var out []domain.PlanWorkout
	for _, id := range r.order {
		w, ok := r.workouts[id]
		if ok && w.PlanID == planID {
			out = append(out, *w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DayIndex < out[j].DayIndex
	})
	return out, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.PlanWorkout) error {
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *workout
	r.workouts[workout.ID] = &stored
	return nil
}

func (r *fakeWorkoutRepo) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) error {
	for id, w := range r.workouts {
		if w.PlanID == planID {
			delete(r.workouts, id)
		}
	}
	return nil
}

func (r *fakeWorkoutRepo) DeleteByPlanAndDay(_ context.Context, planID primitive.ObjectID, dayIndex int) (int64, error) {
	var deleted int64
	for id, w := range r.workouts {
		if w.PlanID == planID && w.DayIndex == dayIndex {
			delete(r.workouts, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeConvRepo struct {
	convs    map[primitive.ObjectID]*domain.Conversation
	messages []domain.Message
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{convs: make(map[primitive.ObjectID]*domain.Conversation)}
}

func (r *fakeConvRepo) Create(_ context.Context, conv *domain.Conversation) (primitive.ObjectID, error) {
	conv.ID = primitive.NewObjectID()
	conv.CreatedAt = time.Now().UTC()
	stored := *conv
	r.convs[conv.ID] = &stored
	return conv.ID, nil
}

func (r *fakeConvRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Conversation, error) {
	conv, ok := r.convs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *conv
	return &copied, nil
}

func (r *fakeConvRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	var out []domain.Conversation
	for _, conv := range r.convs {
		if conv.UserID == userID {
			out = append(out, *conv)
		}
	}
	return out, nil
}

func (r *fakeConvRepo) AddMessage(_ context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, *msg)
	return msg.ID, nil
}

func (r *fakeConvRepo) GetMessages(_ context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range r.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// fakeProvider returns a canned reply or error.
type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (p *fakeProvider) Complete(_ context.Context, _ string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}
