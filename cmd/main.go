package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tvqhuy/Classboard/config"
	"github.com/tvqhuy/Classboard/database"
	_ "github.com/tvqhuy/Classboard/docs"
	analyzectrl "github.com/tvqhuy/Classboard/internal/controller/analyze"
	assignmentctrl "github.com/tvqhuy/Classboard/internal/controller/assignment"
	authctrl "github.com/tvqhuy/Classboard/internal/controller/auth"
	filectrl "github.com/tvqhuy/Classboard/internal/controller/file"
	"github.com/tvqhuy/Classboard/internal/controller/middleware"
	userctrl "github.com/tvqhuy/Classboard/internal/controller/user"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/logger"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/repository"
	"github.com/tvqhuy/Classboard/internal/service"
	"github.com/tvqhuy/Classboard/internal/storage"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Classboard API
// @version 1.0
// @description Classroom assignment management API with automated submission analysis.
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			storage.NewLocalStore,
			NewGinEngine, // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewAssignmentRepository,
			repository.NewSubmissionRepository,
			repository.NewFileRepository,
			repository.NewAnalyticRepository,
			repository.NewTxRunner,
		),

		// Services Layer
		fx.Provide(
			service.NewPolicy,
			service.NewTokenService,
			service.NewAuthService,
			service.NewUserService,
			service.NewAssignmentService,
			service.NewAnalysisLLMService,
			service.NewSubmissionService,
			service.NewAnalyticService,
			service.NewFileService,
		),

		// API Controllers Layer
		fx.Provide(
			authctrl.NewAuthController,
			userctrl.NewUserController,
			assignmentctrl.NewAssignmentController,
			filectrl.NewFileController,
			analyzectrl.NewAnalyzeController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Route request logs through zerolog
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens service.TokenService,
	authController *authctrl.AuthController,
	userController *userctrl.UserController,
	assignmentController *assignmentctrl.AssignmentController,
	fileController *filectrl.FileController,
	analyzeController *analyzectrl.AnalyzeController,
) {
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "API Root"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authController.Signup)
		authGroup.POST("/token", authController.Token)
	}

	authenticated := middleware.Auth(tokens)

	usersGroup := router.Group("/users", authenticated)
	{
		usersGroup.GET("/me", userController.Me)
		usersGroup.GET("/students", userController.ListStudents)
		usersGroup.GET("/:user_id", userController.GetByID)
	}

	assignmentsGroup := router.Group("/assignments", authenticated)
	{
		assignmentsGroup.POST("/", assignmentController.Create)
		assignmentsGroup.GET("/", assignmentController.List)
		assignmentsGroup.POST("/submit", assignmentController.Submit)
		assignmentsGroup.GET("/:assignment_id", assignmentController.Get)
		assignmentsGroup.PUT("/:assignment_id", assignmentController.Update)
		assignmentsGroup.GET("/:assignment_id/submissions", assignmentController.ListSubmissions)
	}

	filesGroup := router.Group("/files", authenticated)
	{
		filesGroup.GET("/:file_id", fileController.Download)
	}

	analyzeGroup := router.Group("/analyze", authenticated)
	{
		analyzeGroup.POST("/", analyzeController.Create)
		analyzeGroup.POST("/request", analyzeController.Request)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Classboard API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Assignment{},
		&model.Submission{},
		&model.File{},
		&model.Analytic{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
