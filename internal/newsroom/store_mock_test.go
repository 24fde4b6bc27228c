package newsroom

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/epalma/noticiero/internal/db"
)

// noOpLogger creates a logger that discards all output for tests
func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

var errStoreDown = errors.New("store unavailable")

// memStore is a manual in-memory Store implementation. It mirrors the
// repository's ordering and merge semantics so workflow tests can assert on
// persisted state, and carries failure flags for error-path tests.
type memStore struct {
	mu sync.Mutex

	profiles      map[string]db.Profile
	news          map[string]db.News
	categories    map[string]db.Category
	notifications map[string]db.NotificationState

	failInsertNotifications bool
	failUpsertNotification  bool
	failDeleteNotifications bool

	newsWrites         int
	notificationWrites int
}

func newMemStore() *memStore {
	return &memStore{
		profiles:      make(map[string]db.Profile),
		news:          make(map[string]db.News),
		categories:    make(map[string]db.Category),
		notifications: make(map[string]db.NotificationState),
	}
}

func (s *memStore) addProfile(p db.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
}

func (s *memStore) addCategory(c db.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

func (s *memStore) addNews(n db.News) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.news[n.ID] = n
}

func (s *memStore) notificationsFor(userID string) []db.NotificationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []db.NotificationState
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *memStore) ProfileByID(ctx context.Context, id string) (*db.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.profiles[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *memStore) ProfileByUsername(ctx context.Context, usernameLowercase string) (*db.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.UsernameLowercase == usernameLowercase {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (s *memStore) ProfilesByRole(ctx context.Context, role db.Role) ([]db.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []db.Profile
	for _, p := range s.profiles {
		if p.Role == role {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) UpsertProfile(ctx context.Context, profile *db.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.ID] = *profile
	return nil
}

func (s *memStore) NewsByID(ctx context.Context, id string) (*db.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.news[id]; ok {
		return &n, nil
	}
	return nil, nil
}

func (s *memStore) NewsByFilter(ctx context.Context, filter db.NewsFilter, limit int) ([]db.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []db.News
	for _, n := range s.news {
		if filter.AuthorID != nil && n.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.Status != nil && n.Status != *filter.Status {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) InsertNews(ctx context.Context, news *db.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if news.CreatedAt.IsZero() {
		news.CreatedAt = now
	}
	news.UpdatedAt = now
	s.news[news.ID] = *news
	s.newsWrites++
	return nil
}

func (s *memStore) UpdateNews(ctx context.Context, news *db.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.news[news.ID]; !ok {
		return errors.New("news not found")
	}
	news.UpdatedAt = time.Now()
	s.news[news.ID] = *news
	s.newsWrites++
	return nil
}

func (s *memStore) UpdateNewsStatus(ctx context.Context, id string, status db.Status, returned bool) (*db.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.news[id]
	if !ok {
		return nil, errors.New("news not found")
	}
	n.Status = status
	n.Returned = returned
	n.UpdatedAt = time.Now()
	s.news[id] = n
	s.newsWrites++
	return &n, nil
}

func (s *memStore) Categories(ctx context.Context) ([]db.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []db.Category
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) CategoryByID(ctx context.Context, id string) (*db.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *memStore) CategoryBySlug(ctx context.Context, slug string) (*db.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var match *db.Category
	for _, c := range s.categories {
		if c.NameLowercase != slug {
			continue
		}
		c := c
		if match == nil || c.CreatedAt.Before(match.CreatedAt) {
			match = &c
		}
	}
	return match, nil
}

func (s *memStore) InsertCategory(ctx context.Context, category *db.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *memStore) UpdateCategory(ctx context.Context, category *db.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[category.ID]; !ok {
		return errors.New("category not found")
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *memStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.categories, id)
	return nil
}

func (s *memStore) InsertNotifications(ctx context.Context, notifications []db.NotificationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failInsertNotifications {
		return errStoreDown
	}
	for _, n := range notifications {
		if n.UpdatedAt.IsZero() {
			n.UpdatedAt = time.Now()
		}
		s.notifications[n.ID] = n
		s.notificationWrites++
	}
	return nil
}

func (s *memStore) UpsertNotification(ctx context.Context, notification *db.NotificationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUpsertNotification {
		return errStoreDown
	}
	s.notifications[notification.ID] = *notification
	s.notificationWrites++
	return nil
}

func (s *memStore) NotificationsByUser(ctx context.Context, userID string) ([]db.NotificationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []db.NotificationState
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// DeleteNotificationsByUser is all-or-nothing like the single DELETE the
// repository issues: with the failure flag set nothing is removed.
func (s *memStore) DeleteNotificationsByUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDeleteNotifications {
		return errStoreDown
	}
	for id, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			delete(s.notifications, id)
		}
	}
	return nil
}
