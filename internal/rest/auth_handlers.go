package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/epalma/noticiero/internal/auth"
	"github.com/epalma/noticiero/internal/db"
)

// Register handles POST /api/v1/auth/register
// @Summary Register a new account
// @Description Validates the username, creates credentials and the profile. Role defaults to reportero.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} rest.Profile
// @Failure 400,409,500 {object} map[string]string
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx := c.Request().Context()

	username, err := h.manager.CheckUsername(ctx, req.Username)
	if err != nil {
		return h.handleError(c, err)
	}

	principal, err := h.provider.SignUp(ctx, req.Email, req.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "email already registered"})
	} else if errors.Is(err, auth.ErrInvalidCredentials) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and password are required"})
	} else if err != nil {
		return h.handleError(c, err)
	}

	profile, err := h.manager.CreateProfile(ctx, principal.ID, principal.Email, username, db.Role(req.Role))
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.sessions.RenewToken(ctx); err != nil {
		return h.handleError(c, err)
	}
	h.sessions.Put(ctx, sessionSubjectKey, principal.ID)
	h.sessions.Put(ctx, sessionEmailKey, principal.Email)

	return c.JSON(http.StatusOK, NewProfile(profile))
}

// Login handles POST /api/v1/auth/login
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} rest.Profile
// @Failure 400,401,500 {object} map[string]string
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req Credentials
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx := c.Request().Context()

	principal, err := h.provider.SignIn(ctx, req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	} else if err != nil {
		return h.handleError(c, err)
	}

	if err := h.sessions.RenewToken(ctx); err != nil {
		return h.handleError(c, err)
	}
	h.sessions.Put(ctx, sessionSubjectKey, principal.ID)
	h.sessions.Put(ctx, sessionEmailKey, principal.Email)

	profile := h.manager.ResolveProfile(ctx, principal.ID, principal.Email)

	return c.JSON(http.StatusOK, NewProfile(profile))
}

// Logout handles POST /api/v1/auth/logout
// @Summary Sign out
// @Tags auth
// @Success 204
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c.Request().Context()); err != nil {
		return h.handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
// @Summary Current profile
// @Tags auth
// @Produce json
// @Success 200 {object} rest.Profile
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/me [get]
func (h *Handler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, NewProfile(actor(c)))
}
