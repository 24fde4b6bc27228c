package newsroom

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/epalma/noticiero/internal/db"
	"github.com/epalma/noticiero/internal/feed"
)

// statusMessages are the author-facing labels for editor-triggered moves.
var statusMessages = map[db.Status]string{
	db.StatusPublished:   "Tu noticia fue publicada",
	db.StatusEditing:     "Tu noticia fue devuelta a edición",
	db.StatusDeactivated: "Tu noticia fue desactivada",
	db.StatusFinished:    "Tu noticia fue marcada como terminada",
}

// ReporterNotificationID is the deterministic key for the self-observing
// reporter channel: one outstanding record per (author, article) pair.
func ReporterNotificationID(userID, newsID string) string {
	return fmt.Sprintf("reporter_%s_%s", userID, newsID)
}

// notifyEditors writes one fresh record per editor profile. No editors is a
// no-op, not an error.
func (m *Manager) notifyEditors(ctx context.Context, news *db.News, typ db.NotificationType, message string) error {
	editors, err := m.store.ProfilesByRole(ctx, db.RoleEditor)
	if err != nil {
		return fmt.Errorf("query editors: %w", err)
	}
	if len(editors) == 0 {
		return nil
	}

	notifications := make([]db.NotificationState, len(editors))
	for i, editor := range editors {
		notifications[i] = db.NotificationState{
			ID:      uuid.NewString(),
			UserID:  editor.ID,
			NewsID:  news.ID,
			Role:    db.NotifyRoleEditor,
			Type:    typ,
			Title:   news.Title,
			Status:  news.Status,
			Message: message,
			Read:    false,
		}
	}

	if err := m.store.InsertNotifications(ctx, notifications); err != nil {
		return fmt.Errorf("notify editors: %w", err)
	}

	return nil
}

// notifyAuthor writes a one-shot record to the article's author. Editor
// transitions fire exactly once, so the id is fresh per event.
func (m *Manager) notifyAuthor(ctx context.Context, news *db.News) error {
	if news.AuthorID == "" {
		return nil
	}

	notification := db.NotificationState{
		ID:      uuid.NewString(),
		UserID:  news.AuthorID,
		NewsID:  news.ID,
		Role:    db.NotifyRoleReporter,
		Type:    db.NotificationStatusChange,
		Title:   news.Title,
		Status:  news.Status,
		Message: statusMessages[news.Status],
		Read:    false,
	}

	if err := m.store.InsertNotifications(ctx, []db.NotificationState{notification}); err != nil {
		return fmt.Errorf("notify author: %w", err)
	}

	return nil
}

// Notifications lists the actor's unread records, newest first.
func (m *Manager) Notifications(ctx context.Context, actor *Profile) ([]Notification, error) {
	list, err := m.store.NotificationsByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}

	return NewNotifications(list), nil
}

// ClearNotifications removes all of the actor's unread records atomically.
// On failure nothing has been deleted and the error goes back to the caller
// for a retry.
func (m *Manager) ClearNotifications(ctx context.Context, actor *Profile) error {
	if err := m.store.DeleteNotificationsByUser(ctx, actor.ID); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}

	return nil
}

// Watcher turns a reporter's live feed into self notifications. The initial
// snapshot is swallowed so reopening a dashboard never floods historic
// records; afterwards each observed move into a notifiable status upserts
// the single deterministic record for that article.
type Watcher struct {
	userID string
	store  Store
	log    *slog.Logger
	seen   map[string]db.Status
}

func (m *Manager) NewWatcher(userID string) *Watcher {
	return &Watcher{
		userID: userID,
		store:  m.store,
		log:    m.log,
		seen:   make(map[string]db.Status),
	}
}

func notifiable(status db.Status) bool {
	switch status {
	case db.StatusFinished, db.StatusPublished, db.StatusDeactivated:
		return true
	}
	return false
}

// Observe processes one snapshot from the author's subscription.
func (w *Watcher) Observe(ctx context.Context, snap feed.Snapshot) {
	for _, change := range snap.Changes {
		item := change.News

		previous, known := w.seen[item.ID]

		switch change.Type {
		case feed.Removed:
			delete(w.seen, item.ID)
			continue
		case feed.Added:
			w.seen[item.ID] = item.Status
			if snap.Initial || !notifiable(item.Status) {
				continue
			}
		case feed.Modified:
			w.seen[item.ID] = item.Status
			if (known && previous == item.Status) || !notifiable(item.Status) {
				continue
			}
		}

		notification := db.NotificationState{
			ID:        ReporterNotificationID(w.userID, item.ID),
			UserID:    w.userID,
			NewsID:    item.ID,
			Role:      db.NotifyRoleReporter,
			Type:      db.NotificationStatusChange,
			Title:     item.Title,
			Status:    item.Status,
			UpdatedAt: item.UpdatedAt,
			Read:      false,
		}

		if err := w.store.UpsertNotification(ctx, &notification); err != nil {
			w.log.Error("failed to record observed status", "newsId", item.ID, "error", err)
		}
	}
}
