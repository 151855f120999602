// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/payment-tracker/backend/config"
	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/application/usecase/auth"
	"github.com/payment-tracker/backend/internal/application/usecase/card"
	"github.com/payment-tracker/backend/internal/application/usecase/dashboard"
	"github.com/payment-tracker/backend/internal/application/usecase/payment"
	"github.com/payment-tracker/backend/internal/application/usecase/scheduledpayment"
	"github.com/payment-tracker/backend/internal/application/usecase/service"
	"github.com/payment-tracker/backend/internal/infra/scheduler"
	"github.com/payment-tracker/backend/internal/infra/server/router"
	"github.com/payment-tracker/backend/internal/integration/adapters"
	"github.com/payment-tracker/backend/internal/integration/email"
	"github.com/payment-tracker/backend/internal/integration/email/templates"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/payment-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
	Scheduler   *scheduler.Scheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The email sender is injected so the test suite can substitute a mock.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	emailSender adapter.EmailSender,
) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	cardRepo := persistence.NewCardRepository(db)
	serviceRepo := persistence.NewServiceRepository(db)
	scheduledPaymentRepo := persistence.NewScheduledPaymentRepository(db)
	instanceRepo := persistence.NewPaymentInstanceRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	cacheService := adapters.NewCacheService(redisClient)
	emailService := email.NewService(emailQueueRepo)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create card use cases
	createCardUseCase := card.NewCreateCardUseCase(cardRepo)
	listCardsUseCase := card.NewListCardsUseCase(cardRepo)
	updateCardUseCase := card.NewUpdateCardUseCase(cardRepo)
	deleteCardUseCase := card.NewDeleteCardUseCase(cardRepo)
	updateCreditUseCase := card.NewUpdateCreditUseCase(cardRepo)

	// Create service use cases
	createServiceUseCase := service.NewCreateServiceUseCase(serviceRepo)
	listServicesUseCase := service.NewListServicesUseCase(serviceRepo)
	updateServiceUseCase := service.NewUpdateServiceUseCase(serviceRepo)
	deleteServiceUseCase := service.NewDeleteServiceUseCase(serviceRepo)
	manageLinesUseCase := service.NewManageLinesUseCase(serviceRepo)

	// Create scheduled payment use cases
	createTemplateUseCase := scheduledpayment.NewCreateScheduledPaymentUseCase(scheduledPaymentRepo)
	listTemplatesUseCase := scheduledpayment.NewListScheduledPaymentsUseCase(scheduledPaymentRepo)
	updateTemplateUseCase := scheduledpayment.NewUpdateScheduledPaymentUseCase(scheduledPaymentRepo)
	deleteTemplateUseCase := scheduledpayment.NewDeleteScheduledPaymentUseCase(scheduledPaymentRepo)

	// Create payment instance use cases
	createInstanceUseCase := payment.NewCreateInstanceUseCase(instanceRepo)
	listInstancesUseCase := payment.NewListInstancesUseCase(instanceRepo)
	registerPaymentUseCase := payment.NewRegisterPaymentUseCase(instanceRepo)
	cancelInstanceUseCase := payment.NewCancelInstanceUseCase(instanceRepo)
	generateInstancesUseCase := payment.NewGenerateInstancesUseCase(scheduledPaymentRepo, instanceRepo)

	// Create dashboard use cases
	getDashboardUseCase := dashboard.NewGetDashboardUseCase(
		cardRepo,
		serviceRepo,
		scheduledPaymentRepo,
		instanceRepo,
		cacheService,
	)
	sendAlertDigestUseCase := dashboard.NewSendAlertDigestUseCase(
		userRepo,
		cardRepo,
		serviceRepo,
		scheduledPaymentRepo,
		instanceRepo,
		emailService,
	)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	cardController := controller.NewCardController(
		createCardUseCase,
		listCardsUseCase,
		updateCardUseCase,
		deleteCardUseCase,
		updateCreditUseCase,
	)

	serviceController := controller.NewServiceController(
		createServiceUseCase,
		listServicesUseCase,
		updateServiceUseCase,
		deleteServiceUseCase,
		manageLinesUseCase,
	)

	scheduledPaymentController := controller.NewScheduledPaymentController(
		createTemplateUseCase,
		listTemplatesUseCase,
		updateTemplateUseCase,
		deleteTemplateUseCase,
	)

	paymentController := controller.NewPaymentController(
		createInstanceUseCase,
		listInstancesUseCase,
		registerPaymentUseCase,
		cancelInstanceUseCase,
		generateInstancesUseCase,
	)

	dashboardController := controller.NewDashboardController(getDashboardUseCase)

	externalCardController := controller.NewExternalCardController(
		listCardsUseCase,
		updateCreditUseCase,
	)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(cfg.External.APIToken)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		cardController,
		serviceController,
		scheduledPaymentController,
		paymentController,
		dashboardController,
		externalCardController,
		loginRateLimiter,
		authMiddleware,
		apiKeyMiddleware,
	)

	// Create email worker
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create scheduler
	cronScheduler := scheduler.New(
		&cfg.Scheduler,
		userRepo,
		generateInstancesUseCase,
		sendAlertDigestUseCase,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
		Scheduler:   cronScheduler,
	}, nil
}
