package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasim4u/atcl-leave-system/internal/config"
	httpx "github.com/iamasim4u/atcl-leave-system/internal/http"
	"github.com/iamasim4u/atcl-leave-system/internal/http/handlers"
	"github.com/iamasim4u/atcl-leave-system/internal/http/middleware"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/auth"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/database"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/notifications"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/repositories"
	"github.com/iamasim4u/atcl-leave-system/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	notifier := notifications.NewLeaveMailer(notificationSvc, cfg.CompanyName)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(rdb, cfg.RefreshTTL)
	leaveRepo := repositories.NewLeaveRepository()
	settingsRepo := repositories.NewSettingsRepository(cfg.Quotas, cfg.Holidays)

	// Services
	otpConfig := services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	}
	otpSvc := services.NewOTPService(notifier, notificationSvc, userRepo, rdb, otpConfig)
	authSvc := services.NewAuthService(userRepo, sessionRepo, passwordSvc, tokenSvc, otpSvc, cfg.RefreshTTL, cfg.AccessTTL)
	workflowSvc := services.NewWorkflowService(leaveRepo, userRepo, notifier)
	policySvc := services.NewPolicyService(cas.E)
	exportSvc := services.NewExportService(leaveRepo, services.CompanyInfo{
		Name:       cfg.CompanyName,
		LegalName:  cfg.CompanyLegalName,
		CertPrefix: cfg.CertPrefix,
	})

	// Handlers
	authH := handlers.NewAuthHandlers(authSvc)
	leaveH := handlers.NewLeaveHandlers(workflowSvc, exportSvc)
	adminH := handlers.NewAdminHandlers(userRepo, settingsRepo, passwordSvc, exportSvc)
	polH := handlers.NewPolicyHandlers(policySvc)

	// Middleware
	jwtMW := middleware.NewAuthMW(tokenSvc, sessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, leaveH, adminH, polH, jwtMW, casbinMW)

	policies := cas.E.GetPolicy()
	if len(policies) == 0 {
		seedPolicies(cas)
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default role grants: everyone authenticated can
// see their own profile and requests, approvers get the decision routes, HR
// gets the admin surface, the COO additionally manages policies.
func seedPolicies(cas *auth.CasbinService) {
	grants := [][3]string{
		{"role_employee", "/auth/me", "GET"},
		{"role_employee", "/auth/logout", "POST"},
		{"role_employee", "/leaves", "POST"},
		{"role_employee", "/leaves/mine", "GET"},
		{"role_employee", "/leaves/*", "GET"},

		{"role_manager", "/auth/me", "GET"},
		{"role_manager", "/auth/logout", "POST"},
		{"role_manager", "/leaves", "(GET|POST)"},
		{"role_manager", "/leaves/*", "(GET|POST)"},

		{"role_hr", "/auth/me", "GET"},
		{"role_hr", "/auth/logout", "POST"},
		{"role_hr", "/leaves", "(GET|POST)"},
		{"role_hr", "/leaves/*", "(GET|POST)"},
		{"role_hr", "/admin/*", "(GET|POST|PUT|DELETE)"},

		{"role_coo", "/auth/me", "GET"},
		{"role_coo", "/auth/logout", "POST"},
		{"role_coo", "/leaves", "(GET|POST)"},
		{"role_coo", "/leaves/*", "(GET|POST)"},
		{"role_coo", "/admin/*", "(GET|POST|PUT|DELETE)"},
	}
	for _, g := range grants {
		cas.E.AddPolicy(g[0], g[1], g[2])
	}
	_ = cas.E.SavePolicy()
}
