package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arrurru_training_backend/internal/config"
	"arrurru_training_backend/internal/controller"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/service"
	"arrurru_training_backend/pkg/database"
	"arrurru_training_backend/pkg/logger"
	"arrurru_training_backend/pkg/monitoring"
	"arrurru_training_backend/pkg/security"
	"arrurru_training_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	invitation  *repository.InvitationRepository
	content     *repository.ContentRepository
	progress    *repository.ProgressRepository
	examResult  *repository.ExamResultRepository
	testResult  *repository.TestResultRepository
	certificate *repository.CertificateRepository
	setting     *repository.SettingRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	content     *service.ContentService
	exam        *service.ExamService
	test        *service.TestService
	certificate *service.CertificateService
	statistics  *service.StatisticsService
	storage     *service.StorageService
	report      *service.ReportService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	content     *controller.ContentController
	exam        *controller.ExamController
	test        *controller.TestController
	certificate *controller.CertificateController
	statistics  *controller.StatisticsController
	upload      *controller.UploadController
	report      *controller.ReportController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig applies a freshly loaded configuration file. Only settings
// that are read per request can change at runtime; server address, database
// and middleware wiring keep the values they booted with.
func (a *App) ReloadConfig(cfg interface{}) {
	newCfg, ok := cfg.(*config.Config)
	if !ok {
		logger.Log.Warn("Ignoring config reload with unexpected payload type")
		return
	}
	a.Config.Telegram = newCfg.Telegram
	a.Config.JWT.ExpireTime = newCfg.JWT.ExpireTime
	for _, callback := range a.configCallbacks {
		callback(newCfg)
	}
	logger.Log.Info("Configuration reloaded from disk")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		invitation:  repository.NewInvitationRepository(db),
		content:     repository.NewContentRepository(db),
		progress:    repository.NewProgressRepository(db),
		examResult:  repository.NewExamResultRepository(db),
		testResult:  repository.NewTestResultRepository(db),
		certificate: repository.NewCertificateRepository(db),
		setting:     repository.NewSettingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	var sessions service.SessionStore
	if rdb != nil {
		sessions = service.NewRedisSessionStore(rdb)
	} else {
		sessions = service.NewMemorySessionStore()
	}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.invitation, cfg, logger.Log)
	s.user = service.NewUserService(repos.user, logger.Log)
	s.content = service.NewContentService(repos.content, repos.setting)
	s.exam = service.NewExamService(repos.content, repos.examResult, repos.progress, repos.user, sessions, logger.Log)
	s.test = service.NewTestService(repos.content, repos.testResult, repos.progress, repos.user, logger.Log)
	s.certificate = service.NewCertificateService(repos.content, repos.progress, repos.certificate, repos.user, logger.Log)
	s.statistics = service.NewStatisticsService(repos.user, repos.content, repos.progress, repos.examResult)
	s.report = service.NewReportService(&cfg.Telegram, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		content:     controller.NewContentController(s.content),
		exam:        controller.NewExamController(s.exam),
		test:        controller.NewTestController(s.test),
		certificate: controller.NewCertificateController(s.certificate),
		statistics:  controller.NewStatisticsController(s.statistics),
		upload:      controller.NewUploadController(s.storage, logger.Log),
		report:      controller.NewReportController(s.report),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis is optional: without it exam sessions live in process memory.
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	} else {
		logger.Log.Warn("Redis not configured, exam sessions are in-process only")
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	if err := services.content.SyncFixtures(); err != nil {
		logger.Log.Fatal("Failed to sync content fixtures", zap.Error(err))
	}

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("training-portal", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	log.Println("Server exiting")
}
