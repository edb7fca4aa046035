package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/discount-catalog/internal/interface/http"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
)

// AuthModule serves /login, /register and /logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb}
}

func (m *AuthModule) Register(web, _ *gin.RouterGroup) {
	// form posts only, per IP and route
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowReadOnly())
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowReadOnly())

	web.GET("/login", m.Handler.LoginPage)
	web.POST("/login", loginLimiter, m.Handler.Login)
	web.GET("/register", m.Handler.RegisterPage)
	web.POST("/register", registerLimiter, m.Handler.Register)
	web.POST("/logout", m.Handler.Logout)
}
