package router

import (
	"net/http"
	"time"

	"kiosk/internal/admin"
	"kiosk/internal/auth"
	"kiosk/internal/kiosk"
	"kiosk/internal/menu"
	"kiosk/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Kiosk  *kiosk.Handler
	Menu   *menu.Handler
	Auth   *auth.Handler
	Admin  *admin.Handler
	Tokens *auth.Tokens
	Logger *zap.Logger

	ImageDir    string
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── KIOSK ─────────────────────────
	d.Kiosk.Register(r)
	if d.ImageDir != "" {
		r.Static("/img", d.ImageDir)
	}

	menus := r.Group("/api/menu")
	{
		menus.GET("", d.Menu.List)
		menus.GET("/:id", d.Menu.Get)
	}

	// ───────────────────────── AUTH ─────────────────────────
	r.POST("/auth/login", d.Auth.Login)

	// ───────────────────────── ADMIN ─────────────────────────
	adminGroup := r.Group("/admin")
	adminGroup.Use(
		middleware.AuthMiddleware(d.Tokens),
		middleware.RequireRole(logger, auth.RoleKitchen),
	)
	d.Admin.Register(adminGroup)

	return r
}
