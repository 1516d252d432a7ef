package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	config "github.com/ankithstudio/mediadesk/configs"
	"github.com/ankithstudio/mediadesk/internal/api/handlers"
	"github.com/ankithstudio/mediadesk/internal/api/middleware"
	job "github.com/ankithstudio/mediadesk/internal/jobs"
	"github.com/ankithstudio/mediadesk/internal/queue"
	"github.com/ankithstudio/mediadesk/internal/repository"
	"github.com/ankithstudio/mediadesk/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	if cfg.PageID == "" || cfg.PageToken == "" {
		log.Fatal("PAGE_ID and PAGE_TOKEN must be set")
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Editor-Secret",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	editorRepo := repository.NewEditorRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	archiveLogRepo := repository.NewArchiveLogRepository(db)
	dailyStatRepo := repository.NewDailyStatRepository(db)

	authService := service.NewAuthService(*cfg)
	r2Service := service.NewR2Service(*cfg)
	editorService := service.NewEditorService(editorRepo, uploadRepo, archiveLogRepo, *r2Service)
	uploadService := service.NewUploadService(*cfg, uploadRepo, *r2Service)
	archiveService := service.NewArchiveService(uploadRepo, archiveLogRepo, dailyStatRepo)
	statsService := service.NewStatsService(uploadRepo, dailyStatRepo)
	exportService := service.NewExportService(uploadRepo)
	facebookService := service.NewFacebookService(*cfg)
	instagramService := service.NewInstagramService(*cfg)
	scheduleService := service.NewScheduleService(*cfg, facebookService, instagramService)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, editorService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/login", auth.Login)
	app.Post("/logout", auth.Logout)

	api := app.Group("/api")

	upload := handlers.NewUploadHandler(uploadService)
	editorAPI := api.Group("", authMiddleware.EditorAuth())
	editorAPI.Post("/upload", upload.CreateUpload)
	editorAPI.Post("/upload/file", upload.UploadFile)
	editorAPI.Post("/upload/sign", upload.SignUpload)

	api.Get("/uploads", authMiddleware.AdminAuth(), upload.ListUploads)
	api.Delete("/uploads", authMiddleware.AdminAuth(), upload.RemoveUpload)

	admin := api.Group("/admin")
	admin.Use(authMiddleware.AdminAuth())

	editor := handlers.NewEditorHandler(editorService)
	admin.Post("/editors", editor.CreateEditor)
	admin.Get("/editors", editor.ListEditors)
	admin.Delete("/editors/:id", editor.RemoveEditor)

	adminHandler := handlers.NewAdminHandler(archiveService, statsService, exportService)
	admin.Get("/export-csv", adminHandler.ExportCSV)
	admin.Post("/archive-uploads", adminHandler.ArchiveUploads)
	admin.Post("/purge", adminHandler.PurgeOld)
	admin.Post("/reset-daily", adminHandler.ResetDaily)
	admin.Get("/logs", adminHandler.ListLogs)
	admin.Delete("/logs", adminHandler.RemoveLogs)
	admin.Get("/stats", adminHandler.Stats)

	schedule := handlers.NewScheduleHandler(scheduleService, client)
	admin.Post("/schedule", schedule.ScheduleBatch)

	// cron jobs
	purgeJob := job.NewPurgeJob(client)

	//queue
	queueW := queue.NewQueue(archiveService)

	c := cron.New()
	c.AddFunc("@daily", purgeJob.Run)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeArchiveUploads, queueW.HandleArchiveUploadsTask)
		mux.HandleFunc(queue.TaskTypePurgeUploads, queueW.HandlePurgeTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
