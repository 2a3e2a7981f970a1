package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/iamasim4u/atcl-leave-system/domain"
	"github.com/iamasim4u/atcl-leave-system/internal/config"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/auth"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/database"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/notifications"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/repositories"
	"github.com/iamasim4u/atcl-leave-system/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo     domain.UserRepository
	SessionRepo  domain.SessionRepository
	LeaveRepo    domain.LeaveRepository
	SettingsRepo domain.SettingsRepository

	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	Notifier        domain.LeaveNotifier
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	WorkflowSvc     domain.WorkflowService
	ExportSvc       domain.ExportService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(
		c.Config.RedisAddr,
		c.Config.RedisPassword,
		c.Config.RedisDB,
	).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.LeaveRepo = repositories.NewLeaveRepository()
	c.SettingsRepo = repositories.NewSettingsRepository(c.Config.Quotas, c.Config.Holidays)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)
	c.Notifier = notifications.NewLeaveMailer(c.NotificationSvc, c.Config.CompanyName)

	otpConfig := services.OTPConfig{
		Length:       c.Config.OTP_Length,
		TTL:          c.Config.OTP_TTL,
		MaxAttempts:  c.Config.OTP_MaxAttempts,
		ResendWindow: c.Config.OTP_ResendWindow,
	}
	c.OTPSvc = services.NewOTPService(c.Notifier, c.NotificationSvc, c.UserRepo, c.RedisClient, otpConfig)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.Config.RefreshTTL,
		c.Config.AccessTTL,
	)
	c.WorkflowSvc = services.NewWorkflowService(c.LeaveRepo, c.UserRepo, c.Notifier)
	c.ExportSvc = services.NewExportService(c.LeaveRepo, services.CompanyInfo{
		Name:       c.Config.CompanyName,
		LegalName:  c.Config.CompanyLegalName,
		CertPrefix: c.Config.CertPrefix,
	})
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
