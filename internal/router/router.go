package router

import (
	"user-crud/internal/database"
	"user-crud/internal/handler"
	"user-crud/internal/handler/users"
	"user-crud/internal/middleware"
	"user-crud/internal/store"
	"user-crud/internal/validation"

	_ "user-crud/docs" // 引入 swag 產出的 docs

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Deps 是建立 router 需要的外部依賴，全部由 main 擁有並注入
type Deps struct {
	Conn  database.Conn
	Users store.UserStore
	// Limiter 為 nil 時不限流
	Limiter middleware.RateLimiter
	// Registry 為 nil 時使用新的 registry
	Registry *prometheus.Registry
	Log      zerolog.Logger
	Dev      bool
}

// Setup 註冊所有路由
func Setup(e *echo.Echo, d Deps) {
	e.GET("/", handler.IndexHandler())

	api := e.Group("/api")
	api.GET("/test-db", handler.DBStatusHandler(d.Conn))
	api.GET("/ping", handler.PingHandler(d.Conn))

	apiUsers := api.Group("/users")
	apiUsers.GET("", users.ListUsersHandler(d.Users))
	apiUsers.POST("", users.CreateUserHandler(d.Users))
	apiUsers.GET("/:id", users.GetUserHandler(d.Users))
	apiUsers.PUT("/:id", users.UpdateUserHandler(d.Users))
	apiUsers.DELETE("/:id", users.DeleteUserHandler(d.Users))
}

// New 建立完整設定好的 Echo：validator、錯誤處理、中介層、swagger 與 /metrics
func New(d Deps) *echo.Echo {
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(d.Dev, d.Log)

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			d.Log.Error().Err(err).Bytes("stack", stack).Msg("panic recovered")
			return err
		},
	}))
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.AccessLog(d.Log))
	e.Use(middleware.NewMetrics(reg).Middleware)
	if d.Limiter != nil {
		e.Use(middleware.RateLimit(d.Limiter, d.Log))
	}

	Setup(e, d)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return e
}
