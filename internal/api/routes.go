package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API endpoints on the engine.
func SetupRoutes(
	router *gin.Engine,
	userHandler *UserHandler,
	planHandler *PlanHandler,
	equipmentHandler *EquipmentHandler,
	chatHandler *ChatHandler,
	calendarHandler *CalendarHandler,
	logHandler *LogHandler,
) {
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	// Account creation is the only endpoint without a caller identity.
	apiV1.POST("/users", userHandler.CreateUser)

	protected := apiV1.Group("")
	protected.Use(UserContextMiddleware())
	{
		protected.GET("/users/me", userHandler.GetMe)
		protected.GET("/users/me/profile", userHandler.GetProfile)
		protected.PUT("/users/me/profile", userHandler.SaveProfile)

		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.GetAllPlans)
			planGroup.GET("/current", planHandler.GetCurrentPlan)
			planGroup.GET("/current/exists", planHandler.HasPlanForCurrentWeek)
			planGroup.GET("/next-week/exists", planHandler.HasNextWeekPlan)
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.POST("/workouts", planHandler.AddWorkout)
			planGroup.GET("/:planId", planHandler.GetPlanByID)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
			planGroup.POST("/:planId/copy-to-next-week", planHandler.CopyToNextWeek)
			planGroup.DELETE("/:planId/days/:dayIndex/workouts", planHandler.ClearDayWorkouts)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.PUT("/:workoutId", planHandler.UpdateWorkout)
			workoutGroup.POST("/:workoutId/toggle", planHandler.ToggleWorkoutCompletion)
		}

		equipmentGroup := protected.Group("/equipment")
		{
			equipmentGroup.GET("", equipmentHandler.GetAll)
			equipmentGroup.GET("/search", equipmentHandler.Search)
			equipmentGroup.GET("/muscle/:muscle", equipmentHandler.GetByMuscle)
			equipmentGroup.GET("/:name", equipmentHandler.GetByName)
		}

		chatGroup := protected.Group("/chat")
		{
			chatGroup.POST("", chatHandler.Chat)
			chatGroup.GET("/conversations", chatHandler.GetConversations)
			chatGroup.GET("/conversations/:conversationId/messages", chatHandler.GetMessages)
		}

		calendarGroup := protected.Group("/calendar/events")
		{
			calendarGroup.POST("", calendarHandler.CreateEvent)
			calendarGroup.GET("", calendarHandler.GetEvents)
			calendarGroup.GET("/:eventId", calendarHandler.GetEvent)
			calendarGroup.PUT("/:eventId", calendarHandler.UpdateEvent)
			calendarGroup.DELETE("/:eventId", calendarHandler.DeleteEvent)
		}

		trainingLogGroup := protected.Group("/training-logs")
		{
			trainingLogGroup.POST("", logHandler.CreateTrainingLog)
			trainingLogGroup.GET("", logHandler.GetTrainingLogs)
			trainingLogGroup.GET("/count", logHandler.GetTrainingLogCount)
			trainingLogGroup.GET("/recent", logHandler.GetMostRecentTrainingLog)
			trainingLogGroup.DELETE("/:logId", logHandler.DeleteTrainingLog)
		}

		workoutLogGroup := protected.Group("/workout-logs")
		{
			workoutLogGroup.POST("", logHandler.CreateWorkoutLog)
			workoutLogGroup.GET("", logHandler.GetWorkoutLogs)
			workoutLogGroup.DELETE("/:logId", logHandler.DeleteWorkoutLog)
		}
	}
}
