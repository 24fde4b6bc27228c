package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"

	"github.com/epalma/noticiero/internal/auth"
	"github.com/epalma/noticiero/internal/feed"
	"github.com/epalma/noticiero/internal/newsroom"
	"github.com/epalma/noticiero/internal/storage"
)

const (
	sessionSubjectKey = "subject"
	sessionEmailKey   = "email"

	profileContextKey = "profile"
)

type Handler struct {
	manager  *newsroom.Manager
	broker   *feed.Broker
	provider auth.Provider
	sessions *scs.SessionManager
	blobs    storage.Store
	log      *slog.Logger

	staticPrefix string
	staticDir    string
}

func NewHandler(
	manager *newsroom.Manager,
	broker *feed.Broker,
	provider auth.Provider,
	sessions *scs.SessionManager,
	blobs storage.Store,
	staticPrefix, staticDir string,
	log *slog.Logger,
) *Handler {
	return &Handler{
		manager:      manager,
		broker:       broker,
		provider:     provider,
		sessions:     sessions,
		blobs:        blobs,
		staticPrefix: staticPrefix,
		staticDir:    staticDir,
		log:          log,
	}
}

// handleError maps domain errors to HTTP statuses. Store failures stay
// internal; the detail is logged, not exposed.
func (h *Handler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, newsroom.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case newsroom.IsValidation(err):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case newsroom.IsAuthorization(err):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		h.log.Error("request failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// requireProfile resolves the session principal into a profile and stores it
// on the echo context. Unauthenticated requests get a 401.
func (h *Handler) requireProfile(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		subject := h.sessions.GetString(ctx, sessionSubjectKey)
		if subject == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		}

		email := h.sessions.GetString(ctx, sessionEmailKey)
		profile := h.manager.ResolveProfile(ctx, subject, email)
		c.Set(profileContextKey, profile)

		return next(c)
	}
}

func actor(c echo.Context) *newsroom.Profile {
	profile, _ := c.Get(profileContextKey).(*newsroom.Profile)
	return profile
}
