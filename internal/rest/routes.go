package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	apiV1Prefix = "/api/v1"

	healthPath = "/health"
)

// RegisterRoutes builds the echo instance with all routes mounted. Session
// state wraps everything; authenticated groups additionally resolve the
// session into a profile.
func (h *Handler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echo.WrapMiddleware(h.sessions.LoadAndSave))
	e.Use(h.loggingMiddleware)

	e.GET(healthPath, h.handleHealth)
	e.Static(h.staticPrefix, h.staticDir)

	api := e.Group(apiV1Prefix)

	// Public reading surface.
	api.GET("/home", h.Home)
	api.GET("/news/:id", h.ArticleByID)
	api.GET("/sections/:slug", h.Section)
	api.GET("/categories", h.Categories)
	api.GET("/live/published", h.LivePublished)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)

	// Everything below requires a signed-in profile.
	private := api.Group("", h.requireProfile)

	private.GET("/auth/me", h.Me)

	private.GET("/articles/mine", h.MyArticles)
	private.GET("/articles", h.AllArticles)
	private.POST("/articles", h.CreateArticle)
	private.PUT("/articles/:id", h.UpdateArticle)
	private.POST("/articles/:id/finish", h.MarkFinished)
	private.POST("/articles/:id/publish", h.Publish)
	private.POST("/articles/:id/return", h.ReturnToEditing)
	private.POST("/articles/:id/deactivate", h.Deactivate)
	private.POST("/images", h.UploadImage)

	private.POST("/categories", h.CreateCategory)
	private.PUT("/categories/:id", h.RenameCategory)
	private.DELETE("/categories/:id", h.DeleteCategory)

	private.GET("/notifications", h.Notifications)
	private.DELETE("/notifications", h.ClearNotifications)

	private.GET("/live/mine", h.LiveMine)
	private.GET("/live/news", h.LiveNews)

	return e
}

func (h *Handler) handleHealth(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return json.NewEncoder(c.Response()).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		if status == 0 {
			status = http.StatusOK
		}

		h.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.Request().RemoteAddr,
		)

		return nil
	}
}
