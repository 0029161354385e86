package api

import (
	"net/http"
	"time"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogHandler serves training history: per-exercise training logs and
// timed workout sessions.
type LogHandler struct {
	trainingLogService service.TrainingLogService
	workoutLogService  service.WorkoutLogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(trainingLogService service.TrainingLogService, workoutLogService service.WorkoutLogService) *LogHandler {
	return &LogHandler{
		trainingLogService: trainingLogService,
		workoutLogService:  workoutLogService,
	}
}

// TrainingLogRequest defines the expected JSON for logging an exercise.
type TrainingLogRequest struct {
	WorkoutDate      time.Time `json:"workoutDate" binding:"required"`
	ExerciseName     string    `json:"exerciseName" binding:"required"`
	Sets             *int      `json:"sets"`
	Reps             *int      `json:"reps"`
	Weight           *float64  `json:"weight"`
	WeightUnit       string    `json:"weightUnit"`
	RestSeconds      *int      `json:"restSeconds"`
	DurationMinutes  *int      `json:"durationMinutes"`
	CaloriesBurned   *int      `json:"caloriesBurned"`
	DifficultyRating *int      `json:"difficultyRating"`
	Notes            string    `json:"notes"`
}

// TrainingLogResponse is the DTO for a training log entry.
type TrainingLogResponse struct {
	ID               string    `json:"id"`
	WorkoutDate      time.Time `json:"workoutDate"`
	ExerciseName     string    `json:"exerciseName"`
	Sets             *int      `json:"sets,omitempty"`
	Reps             *int      `json:"reps,omitempty"`
	Weight           *float64  `json:"weight,omitempty"`
	WeightUnit       string    `json:"weightUnit,omitempty"`
	RestSeconds      *int      `json:"restSeconds,omitempty"`
	DurationMinutes  *int      `json:"durationMinutes,omitempty"`
	CaloriesBurned   *int      `json:"caloriesBurned,omitempty"`
	DifficultyRating *int      `json:"difficultyRating,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

func mapTrainingLogToResponse(log *domain.TrainingLog) TrainingLogResponse {
	return TrainingLogResponse{
		ID:               log.ID.Hex(),
		WorkoutDate:      log.WorkoutDate,
		ExerciseName:     log.ExerciseName,
		Sets:             log.Sets,
		Reps:             log.Reps,
		Weight:           log.Weight,
		WeightUnit:       log.WeightUnit,
		RestSeconds:      log.RestSeconds,
		DurationMinutes:  log.DurationMinutes,
		CaloriesBurned:   log.CaloriesBurned,
		DifficultyRating: log.DifficultyRating,
		Notes:            log.Notes,
		CreatedAt:        log.CreatedAt,
	}
}

func mapTrainingLogsToResponse(logs []domain.TrainingLog) []TrainingLogResponse {
	responses := make([]TrainingLogResponse, len(logs))
	for i := range logs {
		responses[i] = mapTrainingLogToResponse(&logs[i])
	}
	return responses
}

func (h *LogHandler) CreateTrainingLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req TrainingLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	log, err := h.trainingLogService.Create(c.Request.Context(), &domain.TrainingLog{
		UserID:           userID,
		WorkoutDate:      req.WorkoutDate,
		ExerciseName:     req.ExerciseName,
		Sets:             req.Sets,
		Reps:             req.Reps,
		Weight:           req.Weight,
		WeightUnit:       req.WeightUnit,
		RestSeconds:      req.RestSeconds,
		DurationMinutes:  req.DurationMinutes,
		CaloriesBurned:   req.CaloriesBurned,
		DifficultyRating: req.DifficultyRating,
		Notes:            req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapTrainingLogToResponse(log))
}

// GetTrainingLogs lists the caller's logs. Optional filters: ?date= for a
// single day (YYYY-MM-DD), ?startDate=&endDate= for a range, ?exercise=
// for one exercise's history.
func (h *LogHandler) GetTrainingLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var logs []domain.TrainingLog
	switch {
	case c.Query("date") != "":
		date, err := time.Parse("2006-01-02", c.Query("date"))
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		logs, err = h.trainingLogService.GetByDate(c.Request.Context(), userID, date)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	case c.Query("startDate") != "" || c.Query("endDate") != "":
		start, err := time.Parse("2006-01-02", c.Query("startDate"))
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		end, err := time.Parse("2006-01-02", c.Query("endDate"))
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		logs, err = h.trainingLogService.GetByRange(c.Request.Context(), userID, start, end)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	case c.Query("exercise") != "":
		logs, err = h.trainingLogService.GetByExercise(c.Request.Context(), userID, c.Query("exercise"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
	default:
		logs, err = h.trainingLogService.GetByUser(c.Request.Context(), userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, mapTrainingLogsToResponse(logs))
}

func (h *LogHandler) GetTrainingLogCount(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.trainingLogService.CountByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *LogHandler) GetMostRecentTrainingLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	log, err := h.trainingLogService.GetMostRecent(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapTrainingLogToResponse(log))
}

func (h *LogHandler) DeleteTrainingLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("logId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid log id")
		return
	}

	if err := h.trainingLogService.Delete(c.Request.Context(), logID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// WorkoutSetRequest is one recorded set inside a session request.
type WorkoutSetRequest struct {
	SetIndex    int     `json:"setIndex"`
	Reps        int     `json:"reps" binding:"required"`
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"restSeconds"`
}

// WorkoutLogRequest defines the expected JSON for recording a workout
// session.
type WorkoutLogRequest struct {
	ExerciseName string              `json:"exerciseName" binding:"required"`
	StartTime    time.Time           `json:"startTime" binding:"required"`
	EndTime      time.Time           `json:"endTime"`
	Sets         []WorkoutSetRequest `json:"sets"`
	Notes        string              `json:"notes"`
}

// WorkoutLogResponse is the DTO for a workout session with its derived
// totals.
type WorkoutLogResponse struct {
	ID              string              `json:"id"`
	ExerciseName    string              `json:"exerciseName"`
	StartTime       time.Time           `json:"startTime"`
	EndTime         time.Time           `json:"endTime,omitempty"`
	Sets            []domain.WorkoutSet `json:"sets,omitempty"`
	TotalSets       int                 `json:"totalSets"`
	DurationSeconds int                 `json:"durationSeconds"`
	TotalVolume     float64             `json:"totalVolume"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func mapWorkoutLogToResponse(log *domain.WorkoutLog) WorkoutLogResponse {
	return WorkoutLogResponse{
		ID:              log.ID.Hex(),
		ExerciseName:    log.ExerciseName,
		StartTime:       log.StartTime,
		EndTime:         log.EndTime,
		Sets:            log.Sets,
		TotalSets:       log.TotalSets,
		DurationSeconds: log.DurationSeconds,
		TotalVolume:     log.TotalVolume,
		Notes:           log.Notes,
		CreatedAt:       log.CreatedAt,
	}
}

func (h *LogHandler) CreateWorkoutLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req WorkoutLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sets := make([]domain.WorkoutSet, len(req.Sets))
	for i, set := range req.Sets {
		index := set.SetIndex
		if index == 0 {
			index = i + 1
		}
		sets[i] = domain.WorkoutSet{
			SetIndex:    index,
			Reps:        set.Reps,
			Weight:      set.Weight,
			RestSeconds: set.RestSeconds,
		}
	}

	log, err := h.workoutLogService.Create(c.Request.Context(), &domain.WorkoutLog{
		UserID:       userID,
		ExerciseName: req.ExerciseName,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Sets:         sets,
		Notes:        req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapWorkoutLogToResponse(log))
}

// GetWorkoutLogs lists sessions, optionally bounded by from/to query
// params (RFC 3339 timestamps on the session start).
func (h *LogHandler) GetWorkoutLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var logs []domain.WorkoutLog
	if c.Query("from") != "" || c.Query("to") != "" {
		from, err := time.Parse(time.RFC3339, c.Query("from"))
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "from must be RFC 3339")
			return
		}
		to, err := time.Parse(time.RFC3339, c.Query("to"))
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "to must be RFC 3339")
			return
		}
		logs, err = h.workoutLogService.GetByRange(c.Request.Context(), userID, from, to)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	} else {
		logs, err = h.workoutLogService.GetByUser(c.Request.Context(), userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	responses := make([]WorkoutLogResponse, len(logs))
	for i := range logs {
		responses[i] = mapWorkoutLogToResponse(&logs[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *LogHandler) DeleteWorkoutLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("logId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid log id")
		return
	}

	if err := h.workoutLogService.Delete(c.Request.Context(), logID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
