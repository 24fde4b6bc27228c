package rest

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/epalma/noticiero/internal/db"
	"github.com/epalma/noticiero/internal/newsroom"
)

const defaultHomeLimit = 12

// Home handles GET /api/v1/home
// @Summary Public home feed
// @Description Published articles ordered by creation time, projected into a featured slice plus category sections.
// @Tags news
// @Produce json
// @Param limit query int false "Feed size (default: 12)"
// @Success 200 {object} rest.HomePage
// @Failure 500 {object} map[string]string
// @Router /api/v1/home [get]
func (h *Handler) Home(c echo.Context) error {
	limit := defaultHomeLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	news, err := h.manager.PublishedArticles(c.Request().Context(), limit)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewHomePage(newsroom.BuildHomePage(news, 5)))
}

// ArticleByID handles GET /api/v1/news/:id
// @Summary Get a published article
// @Tags news
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 404,500 {object} map[string]string
// @Router /api/v1/news/{id} [get]
func (h *Handler) ArticleByID(c echo.Context) error {
	news, err := h.manager.ArticleByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	// Drafts stay off the public surface; dashboards carry them instead.
	if news.Status != db.StatusPublished {
		return h.handleError(c, newsroom.ErrNotFound)
	}

	return c.JSON(http.StatusOK, NewArticle(*news))
}

// Section handles GET /api/v1/sections/:slug
// @Summary Published articles of one category
// @Tags news
// @Produce json
// @Param slug path string true "Lowercase category name"
// @Success 200 {object} rest.Section
// @Failure 404,500 {object} map[string]string
// @Router /api/v1/sections/{slug} [get]
func (h *Handler) Section(c echo.Context) error {
	ctx := c.Request().Context()

	category, err := h.manager.CategoryBySlug(ctx, c.Param("slug"))
	if err != nil {
		return h.handleError(c, err)
	}

	news, err := h.manager.PublishedArticles(ctx, 0)
	if err != nil {
		return h.handleError(c, err)
	}

	section := Section{Name: category.Name, Items: []Article{}}
	for _, item := range news {
		if item.CategoryID == category.ID {
			section.Items = append(section.Items, NewArticle(item))
		}
	}

	return c.JSON(http.StatusOK, section)
}

// MyArticles handles GET /api/v1/articles/mine
// @Summary Reporter dashboard listing
// @Description The actor's articles grouped by observable sub-state, returned articles split out of Editing.
// @Tags articles
// @Produce json
// @Success 200 {array} rest.StatusGroup
// @Failure 401,500 {object} map[string]string
// @Router /api/v1/articles/mine [get]
func (h *Handler) MyArticles(c echo.Context) error {
	news, err := h.manager.ArticlesByAuthor(c.Request().Context(), actor(c).ID)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewStatusGroups(newsroom.ReporterGroups(news)))
}

// AllArticles handles GET /api/v1/articles
// @Summary Editor dashboard listing
// @Tags articles
// @Produce json
// @Success 200 {array} rest.StatusGroup
// @Failure 401,403,500 {object} map[string]string
// @Router /api/v1/articles [get]
func (h *Handler) AllArticles(c echo.Context) error {
	news, err := h.manager.AllArticles(c.Request().Context(), actor(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewStatusGroups(newsroom.EditorGroups(news)))
}

// CreateArticle handles POST /api/v1/articles
// @Summary Create a draft
// @Description Creates an article in Edición and notifies every editor.
// @Tags articles
// @Accept json
// @Produce json
// @Success 201 {object} rest.Article
// @Failure 400,401,403,500 {object} map[string]string
// @Router /api/v1/articles [post]
func (h *Handler) CreateArticle(c echo.Context) error {
	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	news, err := h.manager.CreateArticle(c.Request().Context(), actor(c), newsroomDraft(req))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusCreated, NewArticle(*news))
}

// UpdateArticle handles PUT /api/v1/articles/:id
// @Summary Edit an article
// @Description Plain content edit; the status does not move and nobody is notified.
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /api/v1/articles/{id} [put]
func (h *Handler) UpdateArticle(c echo.Context) error {
	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	news, err := h.manager.UpdateArticle(c.Request().Context(), actor(c), c.Param("id"), newsroomDraft(req))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*news))
}

// MarkFinished handles POST /api/v1/articles/:id/finish
// @Summary Submit for review
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 401,403,404,500 {object} map[string]string
// @Router /api/v1/articles/{id}/finish [post]
func (h *Handler) MarkFinished(c echo.Context) error {
	news, err := h.manager.MarkFinished(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*news))
}

// Publish handles POST /api/v1/articles/:id/publish
// @Summary Publish or reactivate
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 401,403,404,500 {object} map[string]string
// @Router /api/v1/articles/{id}/publish [post]
func (h *Handler) Publish(c echo.Context) error {
	news, err := h.manager.Publish(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*news))
}

// ReturnToEditing handles POST /api/v1/articles/:id/return
// @Summary Send back to the author
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 401,403,404,500 {object} map[string]string
// @Router /api/v1/articles/{id}/return [post]
func (h *Handler) ReturnToEditing(c echo.Context) error {
	news, err := h.manager.ReturnToEditing(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*news))
}

// Deactivate handles POST /api/v1/articles/:id/deactivate
// @Summary Take a published article down
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 401,403,404,500 {object} map[string]string
// @Router /api/v1/articles/{id}/deactivate [post]
func (h *Handler) Deactivate(c echo.Context) error {
	news, err := h.manager.Deactivate(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewArticle(*news))
}

// UploadImage handles POST /api/v1/images
// @Summary Upload an article image
// @Tags articles
// @Accept mpfd
// @Produce json
// @Success 200 {object} rest.UploadResponse
// @Failure 400,401,500 {object} map[string]string
// @Router /api/v1/images [post]
func (h *Handler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "image file is required"})
	}

	src, err := file.Open()
	if err != nil {
		return h.handleError(c, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return h.handleError(c, err)
	}

	newsID := c.FormValue("newsId")
	if newsID == "" {
		newsID = uuid.NewString()
	}

	blobPath := fmt.Sprintf("news/%s/%d%s", newsID, time.Now().UnixMilli(), path.Ext(file.Filename))

	storagePath, err := h.blobs.Upload(c.Request().Context(), blobPath, data)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, UploadResponse{
		ImageURL:    h.blobs.PublicURL(storagePath),
		StoragePath: storagePath,
	})
}

func newsroomDraft(req ArticleRequest) newsroom.Draft {
	return newsroom.Draft{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		StoragePath: req.StoragePath,
	}
}
