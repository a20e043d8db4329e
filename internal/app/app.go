package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sat_tutor_backend/internal/config"
	"sat_tutor_backend/internal/controller"
	"sat_tutor_backend/internal/repository"
	"sat_tutor_backend/internal/service"
	"sat_tutor_backend/pkg/configwatcher"
	"sat_tutor_backend/pkg/database"
	"sat_tutor_backend/pkg/logger"
	"sat_tutor_backend/pkg/monitoring"
	"sat_tutor_backend/pkg/security"
	"sat_tutor_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider interface {
		Shutdown(ctx context.Context) error
	}
}

type repositories struct {
	user         *repository.UserRepository
	question     *repository.QuestionRepository
	quiz         *repository.QuizRepository
	answerResult *repository.AnswerResultRepository
	mastery      *repository.MasteryRepository
	video        *repository.VideoRepository
	officialTest *repository.OfficialTestRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	mistake     *service.MistakeService
	quiz        *service.QuizService
	remediation *service.RemediationService
	video       *service.VideoService
	progress    *service.ProgressService
}

type controllers struct {
	auth        *controller.AuthController
	homework    *controller.HomeworkController
	remediation *controller.RemediationController
	video       *controller.VideoController
	progress    *controller.ProgressController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		question:     repository.NewQuestionRepository(db),
		quiz:         repository.NewQuizRepository(db),
		answerResult: repository.NewAnswerResultRepository(db),
		mastery:      repository.NewMasteryRepository(db),
		video:        repository.NewVideoRepository(db),
		officialTest: repository.NewOfficialTestRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.mistake = service.NewMistakeService(repos.question, repos.quiz, repos.officialTest)
	s.quiz = service.NewQuizService(repos.quiz, repos.answerResult, db)
	s.remediation = service.NewRemediationService(repos.question, repos.mastery, rdb, cfg.Mastery.FollowUpLimit)
	s.video = service.NewVideoService(repos.video, rdb)
	s.progress = service.NewProgressService(repos.mastery, repos.quiz)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		homework:    controller.NewHomeworkController(s.mistake, s.quiz, s.storage),
		remediation: controller.NewRemediationController(s.remediation),
		video:       controller.NewVideoController(s.video),
		progress:    controller.NewProgressController(s.progress),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig reloads hot-swappable settings when configs/config.yaml changes.
// Anything captured at construction time (database, redis, server port, the
// follow-up limit) requires a restart.
func (a *App) watchConfig() {
	configFile := filepath.Join("configs", "config.yaml")
	if _, err := os.Stat(configFile); err != nil {
		return
	}

	go configwatcher.WatchConfig(configFile, a.Config, func(newCfg interface{}) {
		cfg, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		a.Config.JWT = cfg.JWT
		logger.Log.Info("Configuration reloaded")
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// quiz flows work without the cache, only remediation caching and
		// recently-watched lists degrade
		logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("sat-tutor-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
