package newsroom

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/epalma/noticiero/internal/db"
)

// Store is the document store contract the newsroom core needs. It is
// implemented by *db.Repository and by test stubs.
type Store interface {
	ProfileByID(ctx context.Context, id string) (*db.Profile, error)
	ProfileByUsername(ctx context.Context, usernameLowercase string) (*db.Profile, error)
	ProfilesByRole(ctx context.Context, role db.Role) ([]db.Profile, error)
	UpsertProfile(ctx context.Context, profile *db.Profile) error

	NewsByID(ctx context.Context, id string) (*db.News, error)
	NewsByFilter(ctx context.Context, filter db.NewsFilter, limit int) ([]db.News, error)
	InsertNews(ctx context.Context, news *db.News) error
	UpdateNews(ctx context.Context, news *db.News) error
	UpdateNewsStatus(ctx context.Context, id string, status db.Status, returned bool) (*db.News, error)

	Categories(ctx context.Context) ([]db.Category, error)
	CategoryByID(ctx context.Context, id string) (*db.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*db.Category, error)
	InsertCategory(ctx context.Context, category *db.Category) error
	UpdateCategory(ctx context.Context, category *db.Category) error
	DeleteCategory(ctx context.Context, id string) error

	InsertNotifications(ctx context.Context, notifications []db.NotificationState) error
	UpsertNotification(ctx context.Context, notification *db.NotificationState) error
	NotificationsByUser(ctx context.Context, userID string) ([]db.NotificationState, error)
	DeleteNotificationsByUser(ctx context.Context, userID string) error
}

// Manager drives the editorial workflow. Every operation takes the acting
// profile explicitly; there is no ambient session state.
type Manager struct {
	store Store
	log   *slog.Logger
}

func NewManager(store Store, log *slog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
	}
}

// rule is one row of the transition table: who may move an article from one
// status to another, and what the move triggers.
type rule struct {
	from      db.Status
	to        db.Status
	role      db.Role
	ownerOnly bool
	notify    sideEffect
}

type sideEffect int

const (
	notifyNone sideEffect = iota
	notifyEditors
	notifyAuthor
)

var transitionRules = []rule{
	{from: db.StatusEditing, to: db.StatusFinished, role: db.RoleReporter, ownerOnly: true, notify: notifyEditors},
	{from: db.StatusFinished, to: db.StatusPublished, role: db.RoleEditor, notify: notifyAuthor},
	{from: db.StatusFinished, to: db.StatusEditing, role: db.RoleEditor, notify: notifyAuthor},
	{from: db.StatusPublished, to: db.StatusDeactivated, role: db.RoleEditor, notify: notifyAuthor},
	{from: db.StatusDeactivated, to: db.StatusPublished, role: db.RoleEditor, notify: notifyAuthor},
	{from: db.StatusDeactivated, to: db.StatusFinished, role: db.RoleReporter, ownerOnly: true, notify: notifyNone},
}

func findRule(actor *Profile, news *db.News, to db.Status) *rule {
	for i := range transitionRules {
		r := &transitionRules[i]
		if r.from != news.Status || r.to != to || r.role != actor.Role {
			continue
		}
		if r.ownerOnly && news.AuthorID != actor.ID {
			continue
		}
		return r
	}
	return nil
}

// Transition moves the article to the requested status. Transitions outside
// the table are rejected with an AuthorizationError before any write.
func (m *Manager) Transition(ctx context.Context, actor *Profile, newsID string, to db.Status) (*News, error) {
	stored, err := m.store.NewsByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	if stored == nil {
		return nil, ErrNotFound
	}

	r := findRule(actor, stored, to)
	if r == nil {
		return nil, &AuthorizationError{
			Reason: fmt.Sprintf("%s may not move %q from %s to %s", actor.Role, newsID, stored.Status, to),
		}
	}

	// The returned flag survives only inside Editing; an editor sending the
	// article back is the single way it becomes true.
	returned := to == db.StatusEditing

	updated, err := m.store.UpdateNewsStatus(ctx, newsID, to, returned)
	if err != nil {
		return nil, fmt.Errorf("update news status: %w", err)
	}

	switch r.notify {
	case notifyEditors:
		err = m.notifyEditors(ctx, updated, db.NotificationReadyForReview, "")
	case notifyAuthor:
		err = m.notifyAuthor(ctx, updated)
	}
	if err != nil {
		return nil, err
	}

	news := NewNews(*updated)
	return &news, nil
}

// MarkFinished is the reporter submitting an own article for review.
func (m *Manager) MarkFinished(ctx context.Context, actor *Profile, newsID string) (*News, error) {
	return m.Transition(ctx, actor, newsID, db.StatusFinished)
}

// Publish also covers reactivating a deactivated article.
func (m *Manager) Publish(ctx context.Context, actor *Profile, newsID string) (*News, error) {
	return m.Transition(ctx, actor, newsID, db.StatusPublished)
}

// ReturnToEditing sends the article back to its author with returned=true.
func (m *Manager) ReturnToEditing(ctx context.Context, actor *Profile, newsID string) (*News, error) {
	return m.Transition(ctx, actor, newsID, db.StatusEditing)
}

func (m *Manager) Deactivate(ctx context.Context, actor *Profile, newsID string) (*News, error) {
	return m.Transition(ctx, actor, newsID, db.StatusDeactivated)
}

// CreateArticle creates a fresh draft owned by the actor and notifies all
// editors that a new article entered the pipeline.
func (m *Manager) CreateArticle(ctx context.Context, actor *Profile, draft Draft) (*News, error) {
	if actor.Role != db.RoleReporter {
		return nil, &AuthorizationError{Reason: "only a reporter may create an article"}
	}

	category, err := m.validateDraft(ctx, &draft)
	if err != nil {
		return nil, err
	}

	stored := db.News{
		ID:             uuid.NewString(),
		Title:          draft.Title,
		Subtitle:       draft.Subtitle,
		Content:        draft.Content,
		CategoryID:     category.ID,
		CategoryName:   category.Name,
		ImageURL:       draft.ImageURL,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		AuthorEmail:    actor.Email,
		Status:         db.StatusEditing,
		Returned:       false,
	}
	if draft.StoragePath != "" {
		stored.StoragePath = &draft.StoragePath
	}

	if err := m.store.InsertNews(ctx, &stored); err != nil {
		return nil, fmt.Errorf("insert news: %w", err)
	}

	if err := m.notifyEditors(ctx, &stored, db.NotificationPendingReview, "Nueva noticia en edición"); err != nil {
		return nil, err
	}

	news := NewNews(stored)
	return &news, nil
}

// UpdateArticle is a plain content edit: the status is untouched and no
// notification is produced. A reporter may only edit own articles; an editor
// may edit any.
func (m *Manager) UpdateArticle(ctx context.Context, actor *Profile, newsID string, draft Draft) (*News, error) {
	stored, err := m.store.NewsByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	if stored == nil {
		return nil, ErrNotFound
	}

	if actor.Role != db.RoleEditor && stored.AuthorID != actor.ID {
		return nil, &AuthorizationError{Reason: "article belongs to another author"}
	}

	category, err := m.validateDraft(ctx, &draft)
	if err != nil {
		return nil, err
	}

	stored.Title = draft.Title
	stored.Subtitle = draft.Subtitle
	stored.Content = draft.Content
	stored.CategoryID = category.ID
	stored.CategoryName = category.Name
	stored.ImageURL = draft.ImageURL
	if draft.StoragePath != "" {
		path := draft.StoragePath
		stored.StoragePath = &path
	}
	if stored.Status != db.StatusEditing {
		stored.Returned = false
	}

	if err := m.store.UpdateNews(ctx, stored); err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}

	news := NewNews(*stored)
	return &news, nil
}

// ArticleByID returns the article or ErrNotFound.
func (m *Manager) ArticleByID(ctx context.Context, newsID string) (*News, error) {
	stored, err := m.store.NewsByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	if stored == nil {
		return nil, ErrNotFound
	}

	news := NewNews(*stored)
	return &news, nil
}

// ArticlesByAuthor is the reporter dashboard listing.
func (m *Manager) ArticlesByAuthor(ctx context.Context, authorID string) ([]News, error) {
	list, err := m.store.NewsByFilter(ctx, db.NewsFilter{AuthorID: &authorID}, 0)
	if err != nil {
		return nil, fmt.Errorf("query news by author: %w", err)
	}

	return NewNewsList(list), nil
}

// AllArticles is the editor dashboard listing.
func (m *Manager) AllArticles(ctx context.Context, actor *Profile) ([]News, error) {
	if !actor.IsEditor() {
		return nil, &AuthorizationError{Reason: "only an editor may list all articles"}
	}

	list, err := m.store.NewsByFilter(ctx, db.NewsFilter{}, 0)
	if err != nil {
		return nil, fmt.Errorf("query all news: %w", err)
	}

	return NewNewsList(list), nil
}

// PublishedArticles feeds the public home page.
func (m *Manager) PublishedArticles(ctx context.Context, limit int) ([]News, error) {
	status := db.StatusPublished
	list, err := m.store.NewsByFilter(ctx, db.NewsFilter{Status: &status}, limit)
	if err != nil {
		return nil, fmt.Errorf("query published news: %w", err)
	}

	return NewNewsList(list), nil
}

func (m *Manager) validateDraft(ctx context.Context, draft *Draft) (*db.Category, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return nil, &ValidationError{Reason: "el título no puede estar vacío"}
	}

	if draft.CategoryID == "" {
		return nil, &ValidationError{Reason: "debes seleccionar una categoría"}
	}

	if draft.ImageURL == "" && draft.StoragePath == "" {
		return nil, &ValidationError{Reason: "debes subir una imagen para la noticia"}
	}

	category, err := m.store.CategoryByID(ctx, draft.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return nil, &ValidationError{Reason: "la categoría seleccionada no existe"}
	}

	return category, nil
}
