package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/epalma/noticiero/internal/db"
	"github.com/epalma/noticiero/internal/feed"
	"github.com/epalma/noticiero/internal/newsroom"
)

// LiveMine godoc
// @Summary Live snapshots of the signed-in reporter's articles
// @Description Server-sent events stream. Each event carries the full result
// @Description set plus the changes since the previous event. Status changes
// @Description observed on this stream also materialize reporter notifications.
// @Tags live
// @Produce text/event-stream
// @Success 200 {object} Snapshot
// @Failure 401 {object} map[string]string
// @Router /api/v1/live/mine [get]
func (h *Handler) LiveMine(c echo.Context) error {
	profile := actor(c)

	watcher := h.manager.NewWatcher(profile.ID)
	return h.stream(c, feed.Query{AuthorID: &profile.ID}, watcher)
}

// LiveNews godoc
// @Summary Live snapshots of every article, for the editor desk
// @Tags live
// @Produce text/event-stream
// @Success 200 {object} Snapshot
// @Failure 403 {object} map[string]string
// @Router /api/v1/live/news [get]
func (h *Handler) LiveNews(c echo.Context) error {
	if !actor(c).IsEditor() {
		return h.handleError(c, &newsroom.AuthorizationError{Reason: "only an editor may follow the full desk"})
	}

	return h.stream(c, feed.Query{}, nil)
}

// LivePublished godoc
// @Summary Live snapshots of published articles
// @Tags live
// @Produce text/event-stream
// @Param limit query int false "maximum articles per snapshot"
// @Success 200 {object} Snapshot
// @Router /api/v1/live/published [get]
func (h *Handler) LivePublished(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	published := db.StatusPublished
	return h.stream(c, feed.Query{Status: &published, Limit: limit}, nil)
}

// stream subscribes to the broker and writes each snapshot as an SSE data
// frame. The subscription ends with the request context; the channel closing
// ends the loop.
func (h *Handler) stream(c echo.Context, query feed.Query, watcher *newsroom.Watcher) error {
	ctx := c.Request().Context()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	sub := h.broker.Subscribe(ctx, query)
	defer sub.Cancel()

	enc := json.NewEncoder(resp)
	for snap := range sub.C {
		if watcher != nil {
			watcher.Observe(ctx, snap)
		}

		if _, err := resp.Write([]byte("data: ")); err != nil {
			return nil
		}
		if err := enc.Encode(NewSnapshot(snap)); err != nil {
			return nil
		}
		if _, err := resp.Write([]byte("\n")); err != nil {
			return nil
		}
		resp.Flush()
	}

	return nil
}
