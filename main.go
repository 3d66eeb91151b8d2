package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zamtas/Zamtas-EMS/config"
	"github.com/Zamtas/Zamtas-EMS/handlers"
	"github.com/Zamtas/Zamtas-EMS/logging"
	"github.com/Zamtas/Zamtas-EMS/messaging"
	"github.com/Zamtas/Zamtas-EMS/middleware"
	"github.com/Zamtas/Zamtas-EMS/repositories"
	"github.com/Zamtas/Zamtas-EMS/scheduler"
	"github.com/Zamtas/Zamtas-EMS/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Role")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Zamtas EMS backend...")

	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	if err := mongoClient.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", cfg.MongoURI)

	db := mongoClient.Database(cfg.MongoDBName)
	taskRepo := repositories.NewTaskRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	userRepo := repositories.NewUserRepository(db)

	notificationRepo, err := repositories.NewNotificationRepository(cfg.CassDB)
	if err != nil {
		logging.Logger.Fatalf("Event ID: CASS_CONNECTION_FAILED, Description: Failed to initialize notification repository: %v", err)
	}
	defer notificationRepo.CloseSession()
	notificationRepo.CreateTable()

	sender := messaging.NewTwilioWhatsAppSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNum, 10*time.Second)
	phones := messaging.NewTrunkPrefixNormalizer(cfg.PhoneCountryCode)

	taskService := services.NewTaskService(taskRepo, userRepo, projectRepo, notificationRepo, sender, phones, cfg.PortalURL)
	notificationService := services.NewNotificationService(notificationRepo)

	taskHandler := handlers.NewTaskHandler(taskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	sweeper := scheduler.NewSweeper(cfg.SweepSchedule, taskService.CheckDelayedTasks)
	if err := sweeper.Start(); err != nil {
		logging.Logger.Fatalf("Event ID: SWEEPER_START_FAILED, Description: %v", err)
	}
	defer sweeper.Stop()

	r := mux.NewRouter()

	r.HandleFunc("/api/tasks", taskHandler.AddTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks", taskHandler.GetTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/task/{taskId}", taskHandler.UpdateTask).Methods(http.MethodPut)
	r.HandleFunc("/api/user-tasks", middleware.Authenticate(cfg.JWTSecret, taskHandler.GetUserTasks)).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{projectId}", taskHandler.GetProjectDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/task-start", taskHandler.StartTask).Methods(http.MethodPost)
	r.HandleFunc("/api/task-submit", taskHandler.CompleteTask).Methods(http.MethodPost)

	r.HandleFunc("/api/notifications", notificationHandler.GetNotifications).Methods(http.MethodGet)
	r.HandleFunc("/api/notifications/mark-as-read", notificationHandler.MarkNotificationAsRead).Methods(http.MethodPost)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Zamtas EMS backend is running"))
	}).Methods(http.MethodGet)

	corsRouter := enableCORS(r)

	serverPort := cfg.ServerPort
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: corsRouter,
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Event ID: SERVICE_SHUTDOWN, Description: Shutting down Zamtas EMS backend...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_ERROR, Description: %v", err)
	}
}
