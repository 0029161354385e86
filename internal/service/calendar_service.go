package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalendarService manages personal calendar events.
type CalendarService interface {
	CreateEvent(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
	GetEvent(ctx context.Context, eventID, userID primitive.ObjectID) (*domain.CalendarEvent, error)
	GetEvents(ctx context.Context, userID primitive.ObjectID) ([]domain.CalendarEvent, error)
	GetEventsInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, userID primitive.ObjectID, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID, userID primitive.ObjectID) error
}

type calendarService struct {
	repo repository.CalendarEventRepository
}

// NewCalendarService creates the calendar service.
func NewCalendarService(repo repository.CalendarEventRepository) CalendarService {
	return &calendarService{repo: repo}
}

func (s *calendarService) CreateEvent(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if event.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrValidation)
	}
	if event.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: event start time is required", ErrValidation)
	}
	if !event.EndTime.IsZero() && event.EndTime.Before(event.StartTime) {
		return nil, fmt.Errorf("%w: event ends before it starts", ErrValidation)
	}
	if _, err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	return event, nil
}

func (s *calendarService) GetEvent(ctx context.Context, eventID, userID primitive.ObjectID) (*domain.CalendarEvent, error) {
	return s.ownedEvent(ctx, eventID, userID)
}

func (s *calendarService) GetEvents(ctx context.Context, userID primitive.ObjectID) ([]domain.CalendarEvent, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *calendarService) GetEventsInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.CalendarEvent, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end before start", ErrValidation)
	}
	return s.repo.GetByUserAndRange(ctx, userID, start, end)
}

func (s *calendarService) UpdateEvent(ctx context.Context, userID primitive.ObjectID, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	existing, err := s.ownedEvent(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}

	if event.Title != "" {
		existing.Title = event.Title
	}
	existing.Description = event.Description
	existing.Location = event.Location
	if !event.StartTime.IsZero() {
		existing.StartTime = event.StartTime
	}
	if !event.EndTime.IsZero() {
		existing.EndTime = event.EndTime
	}
	if !existing.EndTime.IsZero() && existing.EndTime.Before(existing.StartTime) {
		return nil, fmt.Errorf("%w: event ends before it starts", ErrValidation)
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	return existing, nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, eventID, userID primitive.ObjectID) error {
	if _, err := s.ownedEvent(ctx, eventID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

func (s *calendarService) ownedEvent(ctx context.Context, eventID, userID primitive.ObjectID) (*domain.CalendarEvent, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("fetching event: %w", err)
	}
	if event.UserID != userID {
		return nil, ErrForbidden
	}
	return event, nil
}
