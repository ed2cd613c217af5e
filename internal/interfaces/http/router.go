package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	attachmentusecases "ticketsys/internal/application/attachment/usecases"
	appaudit "ticketsys/internal/application/audit"
	auditusecases "ticketsys/internal/application/audit/usecases"
	"ticketsys/internal/application/notification"
	ticketusecases "ticketsys/internal/application/ticket/usecases"
	userusecases "ticketsys/internal/application/user/usecases"
	"ticketsys/internal/infrastructure/auth"
	"ticketsys/internal/infrastructure/config"
	"ticketsys/internal/infrastructure/email"
	"ticketsys/internal/infrastructure/repository"
	"ticketsys/internal/infrastructure/storage"
	"ticketsys/internal/interfaces/http/handlers"
	adminhandlers "ticketsys/internal/interfaces/http/handlers/admin"
	attachmenthandlers "ticketsys/internal/interfaces/http/handlers/attachment"
	tickethandlers "ticketsys/internal/interfaces/http/handlers/ticket"
	"ticketsys/internal/interfaces/http/middleware"
	"ticketsys/internal/interfaces/http/routes"
	"ticketsys/internal/shared/db"
	"ticketsys/internal/shared/logger"
)

// Router wires repositories, use cases and handlers onto one gin engine.
type Router struct {
	engine            *gin.Engine
	cfg               *config.Config
	logger            logger.Interface
	authHandler       *handlers.AuthHandler
	ticketHandler     *tickethandlers.TicketHandler
	attachmentHandler *attachmenthandlers.AttachmentHandler
	userHandler       *adminhandlers.UserHandler
	logHandler        *adminhandlers.LogHandler
	dashboardHandler  *adminhandlers.DashboardHandler
	authMiddleware    *middleware.AuthMiddleware
	rateLimiter       *middleware.RateLimiter
}

// NewRouter builds the full dependency graph.
func NewRouter(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	userRepo := repository.NewUserRepository(gormDB, log)
	ticketRepo := repository.NewTicketRepository(gormDB, log)
	messageRepo := repository.NewMessageRepository(gormDB, log)
	attachmentRepo := repository.NewAttachmentRepository(gormDB, log)
	auditRepo := repository.NewAuditLogRepository(gormDB, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	emailService := email.NewSMTPEmailService(&cfg.Email)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadRoot)
	if err != nil {
		return nil, err
	}

	txManager := db.NewTransactionManager(gormDB)
	recorder := appaudit.NewRecorder(auditRepo, log)
	dispatcher := notification.NewDispatcher(userRepo, emailService, recorder, cfg.Server.BaseURL, log)

	registerUC := userusecases.NewRegisterUserUseCase(userRepo, hasher, log)
	loginUC := userusecases.NewLoginUseCase(userRepo, hasher, jwtService, recorder, log)
	logoutUC := userusecases.NewLogoutUseCase(recorder, log)
	getUserUC := userusecases.NewGetUserUseCase(userRepo, log)
	listUsersUC := userusecases.NewListUsersUseCase(userRepo, log)
	updateUserUC := userusecases.NewUpdateUserUseCase(userRepo, hasher, recorder, log)
	deleteUserUC := userusecases.NewDeleteUserUseCase(
		userRepo, ticketRepo, messageRepo, attachmentRepo, auditRepo,
		recorder, txManager, fileStorage, log,
	)

	createTicketUC := ticketusecases.NewCreateTicketUseCase(ticketRepo, recorder, dispatcher, log)
	updateTicketUC := ticketusecases.NewUpdateTicketUseCase(ticketRepo, userRepo, recorder, log)
	assignTicketUC := ticketusecases.NewAssignTicketUseCase(ticketRepo, userRepo, recorder, dispatcher, log)
	reassignTicketUC := ticketusecases.NewReassignTicketUseCase(ticketRepo, userRepo, recorder, log)
	closeTicketUC := ticketusecases.NewCloseTicketUseCase(ticketRepo, userRepo, recorder, dispatcher, log)
	deleteTicketUC := ticketusecases.NewDeleteTicketUseCase(
		ticketRepo, messageRepo, attachmentRepo, auditRepo,
		recorder, txManager, fileStorage, log,
	)
	getTicketUC := ticketusecases.NewGetTicketUseCase(ticketRepo, messageRepo, attachmentRepo, log)
	listTicketsUC := ticketusecases.NewListTicketsUseCase(ticketRepo, log)
	addMessageUC := ticketusecases.NewAddMessageUseCase(ticketRepo, messageRepo, log)
	dashboardUC := ticketusecases.NewDashboardUseCase(ticketRepo, log)

	uploadUC := attachmentusecases.NewUploadAttachmentUseCase(ticketRepo, attachmentRepo, fileStorage, recorder, log)
	downloadUC := attachmentusecases.NewDownloadAttachmentUseCase(ticketRepo, attachmentRepo, fileStorage, recorder, log)
	deleteAttachmentUC := attachmentusecases.NewDeleteAttachmentUseCase(attachmentRepo, fileStorage, recorder, log)

	listEntriesUC := auditusecases.NewListAuditEntriesUseCase(auditRepo, log)
	reportUC := auditusecases.NewActivityReportUseCase(auditRepo, log)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return &Router{
		engine:            engine,
		cfg:               cfg,
		logger:            log,
		authHandler:       handlers.NewAuthHandler(registerUC, loginUC, logoutUC, getUserUC, log),
		ticketHandler:     tickethandlers.NewTicketHandler(createTicketUC, updateTicketUC, assignTicketUC, reassignTicketUC, closeTicketUC, deleteTicketUC, getTicketUC, listTicketsUC, addMessageUC, log),
		attachmentHandler: attachmenthandlers.NewAttachmentHandler(uploadUC, downloadUC, deleteAttachmentUC, log),
		userHandler:       adminhandlers.NewUserHandler(listUsersUC, getUserUC, updateUserUC, deleteUserUC, log),
		logHandler:        adminhandlers.NewLogHandler(listEntriesUC, reportUC, log),
		dashboardHandler:  adminhandlers.NewDashboardHandler(dashboardUC, log),
		authMiddleware:    middleware.NewAuthMiddleware(jwtService, log),
		rateLimiter:       middleware.NewRateLimiter(redisClient, 10, time.Minute),
	}, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.RequestMeta())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:     r.ticketHandler,
		AttachmentHandler: r.attachmentHandler,
		AuthMiddleware:    r.authMiddleware,
	})

	routes.SetupAttachmentRoutes(r.engine, &routes.AttachmentRouteConfig{
		AttachmentHandler: r.attachmentHandler,
		AuthMiddleware:    r.authMiddleware,
	})

	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		UserHandler:      r.userHandler,
		LogHandler:       r.logHandler,
		DashboardHandler: r.dashboardHandler,
		AuthMiddleware:   r.authMiddleware,
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
