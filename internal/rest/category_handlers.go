package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Categories handles GET /api/v1/categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} rest.Category
// @Failure 500 {object} map[string]string
// @Router /api/v1/categories [get]
func (h *Handler) Categories(c echo.Context) error {
	categories, err := h.manager.Categories(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewCategories(categories))
}

// CreateCategory handles POST /api/v1/categories
// @Summary Add a category
// @Tags categories
// @Accept json
// @Produce json
// @Success 201 {object} rest.Category
// @Failure 400,401,403,500 {object} map[string]string
// @Router /api/v1/categories [post]
func (h *Handler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	category, err := h.manager.CreateCategory(c.Request().Context(), actor(c), req.Name)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusCreated, NewCategory(*category))
}

// RenameCategory handles PUT /api/v1/categories/:id
// @Summary Rename a category
// @Description Existing articles keep their categoryName snapshot.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} rest.Category
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /api/v1/categories/{id} [put]
func (h *Handler) RenameCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	category, err := h.manager.RenameCategory(c.Request().Context(), actor(c), c.Param("id"), req.Name)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewCategory(*category))
}

// DeleteCategory handles DELETE /api/v1/categories/:id
// @Summary Delete a category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 401,403,404,500 {object} map[string]string
// @Router /api/v1/categories/{id} [delete]
func (h *Handler) DeleteCategory(c echo.Context) error {
	if err := h.manager.DeleteCategory(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return h.handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
