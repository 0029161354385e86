package service

import (
	"context"
	"testing"

	"fitai/agent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCreate_NormalizesEmailAndDefaultsRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.Create(context.Background(), "Alice", "  Alice@Example.COM ", "")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.False(t, user.ID.IsZero())
}

func TestUserCreate_RejectsDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), "Alice", "alice@example.com", "")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Other Alice", "ALICE@example.com", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserCreate_Validation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), "", "alice@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), "Alice", "   ", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserGetByID_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.GetByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpsertProfile_RequiresExistingUser(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com"}
	svc := NewUserService(newFakeUserRepo(user))

	err := svc.UpsertProfile(context.Background(), &domain.UserProfile{UserID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrUserNotFound)

	age := 30
	err = svc.UpsertProfile(context.Background(), &domain.UserProfile{UserID: user.ID, Age: &age})
	assert.NoError(t, err)
}
