package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitai/agent-backend/internal/ai"
	"fitai/agent-backend/internal/api"
	"fitai/agent-backend/internal/config"
	"fitai/agent-backend/internal/logging"
	"fitai/agent-backend/internal/repository/mongo"
	"fitai/agent-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.Fatalf("could not load config: %v", err)
	}

	logging.Setup(logging.Params{
		FileName:   cfg.Logging.File,
		ToStdout:   cfg.Logging.ToStdout,
		Level:      cfg.Logging.Level,
		FormatJSON: cfg.Logging.JSON,
	})
	logrus.Info("starting fitai agent backend")

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logrus.Errorf("failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logrus.Info("database connection established")

	userRepo := mongo.NewMongoUserRepository(appDB)
	equipmentRepo := mongo.NewMongoEquipmentRepository(appDB)
	planRepo := mongo.NewMongoWeeklyPlanRepository(appDB)
	planWorkoutRepo := mongo.NewMongoPlanWorkoutRepository(appDB)
	calendarRepo := mongo.NewMongoCalendarEventRepository(appDB)
	trainingLogRepo := mongo.NewMongoTrainingLogRepository(appDB)
	workoutLogRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	conversationRepo := mongo.NewMongoConversationRepository(appDB)

	// Index creation and catalog seeding run in the background so a slow
	// or cold database does not block startup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB)
		mongo.EnsureEquipmentIndexes(ctx, appDB)
		mongo.EnsureWeeklyPlanIndexes(ctx, appDB)
		mongo.EnsurePlanWorkoutIndexes(ctx, appDB)
		mongo.EnsureCalendarIndexes(ctx, appDB)
		mongo.EnsureTrainingLogIndexes(ctx, appDB)
		mongo.EnsureWorkoutLogIndexes(ctx, appDB)
		mongo.EnsureConversationIndexes(ctx, appDB)
		if err := mongo.SeedEquipment(ctx, equipmentRepo); err != nil {
			logrus.Errorf("equipment seeding failed: %v", err)
		}
	}()

	provider := ai.NewHTTPClient(ai.Config{
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		APIKey:  cfg.AI.APIKey,
		Timeout: cfg.AI.Timeout,
	})
	prompts := ai.NewPromptSet(cfg.Agents.Prompts)

	userService := service.NewUserService(userRepo)
	equipmentService := service.NewEquipmentService(equipmentRepo)
	generator := service.NewPlanGenerator(provider)
	planService := service.NewPlanService(planRepo, planWorkoutRepo, userRepo, equipmentService, generator)
	chatService := service.NewChatService(conversationRepo, userRepo, equipmentService, provider, prompts)
	calendarService := service.NewCalendarService(calendarRepo)
	trainingLogService := service.NewTrainingLogService(trainingLogRepo)
	workoutLogService := service.NewWorkoutLogService(workoutLogRepo)

	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(
		router,
		api.NewUserHandler(userService),
		api.NewPlanHandler(planService, equipmentService),
		api.NewEquipmentHandler(equipmentService),
		api.NewChatHandler(chatService),
		api.NewCalendarHandler(calendarService),
		api.NewLogHandler(trainingLogService, workoutLogService),
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // AI completions can be slow
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.Fatalf("server forced to shutdown: %v", err)
	}
	logrus.Info("server exiting")
}
