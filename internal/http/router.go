package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "finedu/backend/docs"
	"finedu/backend/internal/handler"
	"finedu/backend/internal/model"
	"finedu/backend/internal/service"
)

// RouterConfig carries the handlers and options for the HTTP router.
type RouterConfig struct {
	AuthService service.AuthService

	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Progress  *handler.ProgressHandler
	Portfolio *handler.PortfolioHandler
	Cases     *handler.CaseHandler
	Notes     *handler.NoteHandler
	Market    *handler.MarketHandler
	News      *handler.NewsHandler
	Advisor   *handler.AdvisorHandler
	Settings  *handler.SettingsHandler

	CORSEnabled bool
	StaticDir   string
}

// NewRouter builds the echo engine with all routes and middleware.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())
	if cfg.CORSEnabled {
		e.Use(middleware.CORS())
	}

	e.GET("/healthz", healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	cfg.Auth.RegisterPublicRoutes(api)

	protected := api.Group("", JWTAuthMiddleware(cfg.AuthService))
	cfg.Auth.RegisterProtectedRoutes(protected)
	cfg.Progress.RegisterRoutes(protected)
	cfg.Portfolio.RegisterRoutes(protected)
	cfg.Cases.RegisterRoutes(protected)
	cfg.Notes.RegisterRoutes(protected)
	cfg.Market.RegisterRoutes(protected)
	cfg.News.RegisterRoutes(protected)
	cfg.Advisor.RegisterRoutes(protected)
	cfg.Settings.RegisterRoutes(protected)

	admin := protected.Group("", RequireRole(model.RoleAdmin, model.RoleTeacher))
	cfg.Users.RegisterRoutes(admin)

	registerStatic(e, cfg.StaticDir)

	return e
}

func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
