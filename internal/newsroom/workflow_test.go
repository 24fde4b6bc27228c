package newsroom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epalma/noticiero/internal/db"
)

var (
	reporterLaura = Profile{db.Profile{ID: "rep-1", Email: "laura@noticiero.dev", Username: "laura", UsernameLowercase: "laura", Role: db.RoleReporter}}
	reporterMarco = Profile{db.Profile{ID: "rep-2", Email: "marco@noticiero.dev", Username: "marco", UsernameLowercase: "marco", Role: db.RoleReporter}}
	editorSofia   = Profile{db.Profile{ID: "ed-1", Email: "sofia@noticiero.dev", Username: "sofia", UsernameLowercase: "sofia", Role: db.RoleEditor}}
	editorDiego   = Profile{db.Profile{ID: "ed-2", Email: "diego@noticiero.dev", Username: "diego", UsernameLowercase: "diego", Role: db.RoleEditor}}
)

func newTestManager() (*memStore, *Manager) {
	store := newMemStore()
	for _, p := range []Profile{reporterLaura, reporterMarco, editorSofia, editorDiego} {
		store.addProfile(p.Profile)
	}
	store.addCategory(db.Category{ID: "cat-tec", Name: "Tecnología", NameLowercase: "tecnología", CreatedAt: time.Now()})

	return store, NewManager(store, noOpLogger())
}

func seedArticle(store *memStore, id string, author Profile, status db.Status, returned bool) {
	store.addNews(db.News{
		ID:             id,
		Title:          "Titular " + id,
		Subtitle:       "Bajada",
		Content:        "Cuerpo",
		CategoryID:     "cat-tec",
		CategoryName:   "Tecnología",
		ImageURL:       "https://img.example/" + id + ".jpg",
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		AuthorEmail:    author.Email,
		Status:         status,
		Returned:       returned,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	})
}

func TestManager_Transition_Table(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		from   db.Status
		to     db.Status
		actor  Profile
		author Profile
		ok     bool
	}{
		{"ReporterFinishesOwnDraft", db.StatusEditing, db.StatusFinished, reporterLaura, reporterLaura, true},
		{"EditorPublishesFinished", db.StatusFinished, db.StatusPublished, editorSofia, reporterLaura, true},
		{"EditorReturnsFinished", db.StatusFinished, db.StatusEditing, editorSofia, reporterLaura, true},
		{"EditorDeactivatesPublished", db.StatusPublished, db.StatusDeactivated, editorSofia, reporterLaura, true},
		{"EditorRepublishesDeactivated", db.StatusDeactivated, db.StatusPublished, editorSofia, reporterLaura, true},
		{"ReporterResubmitsOwnDeactivated", db.StatusDeactivated, db.StatusFinished, reporterLaura, reporterLaura, true},

		{"ReporterCannotPublish", db.StatusEditing, db.StatusPublished, reporterLaura, reporterLaura, false},
		{"ReporterCannotFinishForeignDraft", db.StatusEditing, db.StatusFinished, reporterMarco, reporterLaura, false},
		{"ReporterCannotResubmitForeignDeactivated", db.StatusDeactivated, db.StatusFinished, reporterMarco, reporterLaura, false},
		{"ReporterCannotReturn", db.StatusFinished, db.StatusEditing, reporterLaura, reporterLaura, false},
		{"ReporterCannotDeactivate", db.StatusPublished, db.StatusDeactivated, reporterLaura, reporterLaura, false},
		{"EditorCannotFinishDraft", db.StatusEditing, db.StatusFinished, editorSofia, reporterLaura, false},
		{"EditorCannotPublishDraft", db.StatusEditing, db.StatusPublished, editorSofia, reporterLaura, false},
		{"EditorCannotResubmitDeactivated", db.StatusDeactivated, db.StatusFinished, editorSofia, reporterLaura, false},
		{"PublishedCannotGoBackToEditing", db.StatusPublished, db.StatusEditing, editorSofia, reporterLaura, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, manager := newTestManager()
			seedArticle(store, "news-1", tt.author, tt.from, false)

			newsWrites := store.newsWrites
			notificationWrites := store.notificationWrites

			result, err := manager.Transition(ctx, &tt.actor, "news-1", tt.to)

			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, result.Status)

				stored, _ := store.NewsByID(ctx, "news-1")
				assert.Equal(t, tt.to, stored.Status)
				return
			}

			require.Error(t, err)
			assert.True(t, IsAuthorization(err), "expected authorization error, got %v", err)

			stored, _ := store.NewsByID(ctx, "news-1")
			assert.Equal(t, tt.from, stored.Status, "rejected transition must not change status")
			assert.Equal(t, newsWrites, store.newsWrites, "rejected transition must not write news")
			assert.Equal(t, notificationWrites, store.notificationWrites, "rejected transition must not write notifications")
		})
	}
}

func TestManager_Transition_ReturnedFlag(t *testing.T) {
	ctx := context.Background()
	store, manager := newTestManager()
	seedArticle(store, "news-1", reporterLaura, db.StatusFinished, false)

	returned, err := manager.ReturnToEditing(ctx, &editorSofia, "news-1")
	require.NoError(t, err)
	assert.Equal(t, db.StatusEditing, returned.Status)
	assert.True(t, returned.Returned, "editor sending back must mark the article returned")

	resubmitted, err := manager.MarkFinished(ctx, &reporterLaura, "news-1")
	require.NoError(t, err)
	assert.Equal(t, db.StatusFinished, resubmitted.Status)
	assert.False(t, resubmitted.Returned, "leaving Editing must clear the returned flag")
}

func TestManager_Transition_NotFound(t *testing.T) {
	ctx := context.Background()
	_, manager := newTestManager()

	_, err := manager.Publish(ctx, &editorSofia, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestManager_Transition_Notifications(t *testing.T) {
	ctx := context.Background()

	t.Run("FinishNotifiesEveryEditor", func(t *testing.T) {
		store, manager := newTestManager()
		seedArticle(store, "news-1", reporterLaura, db.StatusEditing, false)

		_, err := manager.MarkFinished(ctx, &reporterLaura, "news-1")
		require.NoError(t, err)

		for _, editorID := range []string{editorSofia.ID, editorDiego.ID} {
			records := store.notificationsFor(editorID)
			require.Len(t, records, 1, "editor %s", editorID)
			assert.Equal(t, db.NotificationReadyForReview, records[0].Type)
			assert.Equal(t, "news-1", records[0].NewsID)
			assert.Equal(t, db.StatusFinished, records[0].Status)
			assert.Equal(t, db.NotifyRoleEditor, records[0].Role)
		}

		assert.Empty(t, store.notificationsFor(reporterLaura.ID), "the author is not notified of an own move here")
	})

	t.Run("PublishNotifiesAuthor", func(t *testing.T) {
		store, manager := newTestManager()
		seedArticle(store, "news-1", reporterLaura, db.StatusFinished, false)

		_, err := manager.Publish(ctx, &editorSofia, "news-1")
		require.NoError(t, err)

		records := store.notificationsFor(reporterLaura.ID)
		require.Len(t, records, 1)
		assert.Equal(t, db.NotificationStatusChange, records[0].Type)
		assert.Equal(t, db.StatusPublished, records[0].Status)
		assert.Equal(t, "Tu noticia fue publicada", records[0].Message)
	})

	t.Run("ReturnNotifiesAuthor", func(t *testing.T) {
		store, manager := newTestManager()
		seedArticle(store, "news-1", reporterLaura, db.StatusFinished, false)

		_, err := manager.ReturnToEditing(ctx, &editorSofia, "news-1")
		require.NoError(t, err)

		records := store.notificationsFor(reporterLaura.ID)
		require.Len(t, records, 1)
		assert.Equal(t, "Tu noticia fue devuelta a edición", records[0].Message)
	})

	t.Run("ResubmitAfterDeactivationIsSilent", func(t *testing.T) {
		store, manager := newTestManager()
		seedArticle(store, "news-1", reporterLaura, db.StatusDeactivated, false)

		_, err := manager.MarkFinished(ctx, &reporterLaura, "news-1")
		require.NoError(t, err)

		assert.Empty(t, store.notificationsFor(editorSofia.ID))
		assert.Empty(t, store.notificationsFor(reporterLaura.ID))
	})
}

func TestManager_CreateArticle(t *testing.T) {
	ctx := context.Background()

	validDraft := Draft{
		Title:      "Nueva noticia",
		Subtitle:   "Bajada",
		Content:    "Cuerpo",
		CategoryID: "cat-tec",
		ImageURL:   "https://img.example/n.jpg",
	}

	t.Run("ReporterCreatesDraft", func(t *testing.T) {
		store, manager := newTestManager()

		news, err := manager.CreateArticle(ctx, &reporterLaura, validDraft)
		require.NoError(t, err)

		assert.NotEmpty(t, news.ID)
		assert.Equal(t, db.StatusEditing, news.Status)
		assert.False(t, news.Returned)
		assert.Equal(t, "Tecnología", news.CategoryName)
		assert.Equal(t, reporterLaura.ID, news.Author.ID)
		assert.Equal(t, "laura", news.Author.Username)

		for _, editorID := range []string{editorSofia.ID, editorDiego.ID} {
			records := store.notificationsFor(editorID)
			require.Len(t, records, 1, "editor %s", editorID)
			assert.Equal(t, db.NotificationPendingReview, records[0].Type)
			assert.Equal(t, "Nueva noticia en edición", records[0].Message)
		}
	})

	t.Run("EditorCannotCreate", func(t *testing.T) {
		_, manager := newTestManager()

		_, err := manager.CreateArticle(ctx, &editorSofia, validDraft)
		assert.True(t, IsAuthorization(err))
	})

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(d *Draft)
		}{
			{"EmptyTitle", func(d *Draft) { d.Title = "   " }},
			{"MissingCategory", func(d *Draft) { d.CategoryID = "" }},
			{"UnknownCategory", func(d *Draft) { d.CategoryID = "cat-missing" }},
			{"MissingImage", func(d *Draft) { d.ImageURL = ""; d.StoragePath = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store, manager := newTestManager()
				draft := validDraft
				tt.mutate(&draft)

				_, err := manager.CreateArticle(ctx, &reporterLaura, draft)
				assert.True(t, IsValidation(err), "expected validation error, got %v", err)
				assert.Zero(t, store.newsWrites, "rejected draft must not be written")
			})
		}
	})

	t.Run("StoragePathAloneSatisfiesImageRule", func(t *testing.T) {
		_, manager := newTestManager()
		draft := validDraft
		draft.ImageURL = ""
		draft.StoragePath = "news/n/1.jpg"

		news, err := manager.CreateArticle(ctx, &reporterLaura, draft)
		require.NoError(t, err)
		assert.Equal(t, "news/n/1.jpg", news.StoragePath)
	})
}

func TestManager_UpdateArticle(t *testing.T) {
	ctx := context.Background()

	draft := Draft{
		Title:      "Titular corregido",
		Subtitle:   "Bajada",
		Content:    "Cuerpo corregido",
		CategoryID: "cat-tec",
		ImageURL:   "https://img.example/x.jpg",
	}

	t.Run("OwnerEditsDraft", func(t *testing.T) {
		store, manager := newTestManager()
		seedArticle(store, "news-1", reporterLaura, db.StatusEditing, true)

		news, err := manager.UpdateArticle(ctx, &reporterLaura, "news-1", draft)
		require.NoError(t, err)

		assert.Equal(t, "Titular corregido", news.Title)
		assert.Equal(t, db.StatusEditing, news.Status, "plain edit must not move status")
		assert.True(t, news.Returned, "editing a returned draft keeps the returned flag")
		assert.Zero(t, store.notificationWrites, "plain edit must not notify")
	})

	t.Run("ForeignReporterRejected", func(t *testing.T) {
		store, manager := newTestManager()
		seedArticle(store, "news-1", reporterLaura, db.StatusEditing, false)

		_, err := manager.UpdateArticle(ctx, &reporterMarco, "news-1", draft)
		assert.True(t, IsAuthorization(err))

		stored, _ := store.NewsByID(ctx, "news-1")
		assert.NotEqual(t, draft.Title, stored.Title)
	})

	t.Run("EditorEditsAnyArticle", func(t *testing.T) {
		store, manager := newTestManager()
		seedArticle(store, "news-1", reporterLaura, db.StatusFinished, false)

		news, err := manager.UpdateArticle(ctx, &editorSofia, "news-1", draft)
		require.NoError(t, err)
		assert.Equal(t, db.StatusFinished, news.Status)
	})

	t.Run("ReturnedClearedOutsideEditing", func(t *testing.T) {
		store, manager := newTestManager()
		seedArticle(store, "news-1", reporterLaura, db.StatusFinished, true)

		news, err := manager.UpdateArticle(ctx, &editorSofia, "news-1", draft)
		require.NoError(t, err)
		assert.False(t, news.Returned, "returned must only survive inside Editing")
	})

	t.Run("MissingArticle", func(t *testing.T) {
		_, manager := newTestManager()

		_, err := manager.UpdateArticle(ctx, &reporterLaura, "missing", draft)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestManager_Listings(t *testing.T) {
	ctx := context.Background()

	store, manager := newTestManager()
	seedArticle(store, "news-1", reporterLaura, db.StatusPublished, false)
	seedArticle(store, "news-2", reporterLaura, db.StatusEditing, false)
	seedArticle(store, "news-3", reporterMarco, db.StatusPublished, false)

	t.Run("ByAuthor", func(t *testing.T) {
		list, err := manager.ArticlesByAuthor(ctx, reporterLaura.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("AllRequiresEditor", func(t *testing.T) {
		_, err := manager.AllArticles(ctx, &reporterLaura)
		assert.True(t, IsAuthorization(err))

		list, err := manager.AllArticles(ctx, &editorSofia)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("PublishedOnly", func(t *testing.T) {
		list, err := manager.PublishedArticles(ctx, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, n := range list {
			assert.Equal(t, db.StatusPublished, n.Status)
		}
	})
}
