package api

import (
	"net/http"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves user accounts and their fitness profiles.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest defines the expected JSON for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// UserResponse is the DTO for returning user details.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileRequest defines the expected JSON for saving a fitness profile.
type ProfileRequest struct {
	Age      *int     `json:"age"`
	Gender   string   `json:"gender"`
	HeightCm *float64 `json:"heightCm"`
	WeightKg *float64 `json:"weightKg"`
}

// ProfileResponse is the DTO for a fitness profile.
type ProfileResponse struct {
	UserID    string    `json:"userId"`
	Age       *int      `json:"age,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	HeightCm  *float64  `json:"heightCm,omitempty"`
	WeightKg  *float64  `json:"weightKg,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func mapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.Name, req.Email, domain.Role(req.Role))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapUserToResponse(user))
}

// GetMe returns the account of the calling user.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapUserToResponse(user))
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{
		UserID:    profile.UserID.Hex(),
		Age:       profile.Age,
		Gender:    profile.Gender,
		HeightCm:  profile.HeightCm,
		WeightKg:  profile.WeightKg,
		UpdatedAt: profile.UpdatedAt,
	})
}

func (h *UserHandler) SaveProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile := &domain.UserProfile{
		UserID:   userID,
		Age:      req.Age,
		Gender:   req.Gender,
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
	}
	if err := h.userService.UpsertProfile(c.Request.Context(), profile); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{
		UserID:    profile.UserID.Hex(),
		Age:       profile.Age,
		Gender:    profile.Gender,
		HeightCm:  profile.HeightCm,
		WeightKg:  profile.WeightKg,
		UpdatedAt: profile.UpdatedAt,
	})
}
