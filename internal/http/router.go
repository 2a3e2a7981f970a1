package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/iamasim4u/atcl-leave-system/internal/http/handlers"
	"github.com/iamasim4u/atcl-leave-system/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	lh *handlers.LeaveHandlers,
	adh *handlers.AdminHandlers,
	ph *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/otp/send", ah.SendOTP)
	auth.POST("/otp/login", ah.LoginWithOTP)
	auth.POST("/refresh", ah.Refresh)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)

	v.POST("/leaves", lh.Submit)
	v.GET("/leaves", lh.All)
	v.GET("/leaves/mine", lh.Mine)
	v.GET("/leaves/pending", lh.Pending)
	v.POST("/leaves/:id/steps/:stepID/decision", lh.Decide)
	v.GET("/leaves/:id/certificate", lh.Certificate)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/users", adh.ListUsers)
	adm.POST("/users", adh.CreateUser)
	adm.PUT("/users/:id", adh.UpdateUser)
	adm.DELETE("/users/:id", adh.DeleteUser)
	adm.GET("/quotas", adh.GetQuotas)
	adm.PUT("/quotas", adh.UpdateQuotas)
	adm.GET("/holidays", adh.ListHolidays)
	adm.POST("/holidays", adh.AddHoliday)
	adm.GET("/leaves/export", adh.ExportCSV)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
