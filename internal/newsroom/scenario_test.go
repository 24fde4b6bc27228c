package newsroom

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epalma/noticiero/internal/db"
	"github.com/epalma/noticiero/internal/feed"
)

func recvSnapshot(t *testing.T, c <-chan feed.Snapshot) feed.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-c:
		if !ok {
			t.Fatal("subscription channel closed unexpectedly")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a snapshot")
	}
	return feed.Snapshot{}
}

// awaitSnapshot reads deliveries until one satisfies the condition. Bursts
// coalesce, so intermediate deliveries may reflect older committed states.
func awaitSnapshot(t *testing.T, c <-chan feed.Snapshot, cond func(feed.Snapshot) bool) feed.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap, ok := <-c:
			if !ok {
				t.Fatal("subscription channel closed unexpectedly")
			}
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for the expected snapshot")
		}
	}
}

// TestPublishingLifecycle walks one article from draft to publication and
// back out of circulation, with the author's live subscription and the
// public feed observing every step.
func TestPublishingLifecycle(t *testing.T) {
	ctx := context.Background()

	store, manager := newTestManager()
	broker := feed.NewBroker(store, noOpLogger())

	authorID := reporterLaura.ID
	mine := broker.Subscribe(ctx, feed.Query{AuthorID: &authorID})
	defer mine.Cancel()

	published := db.StatusPublished
	public := broker.Subscribe(ctx, feed.Query{Status: &published})
	defer public.Cancel()

	watcher := manager.NewWatcher(authorID)

	snap := recvSnapshot(t, mine.C)
	require.True(t, snap.Initial)
	require.Empty(t, snap.News)
	watcher.Observe(ctx, snap)

	require.Empty(t, recvSnapshot(t, public.C).News)

	// The reporter drafts an article about a satellite launch.
	draft := Draft{
		Title:      "Lanzamiento del satélite",
		Subtitle:   "Misión en órbita",
		Content:    "El satélite fue puesto en órbita esta mañana.",
		CategoryID: "cat-tec",
		ImageURL:   "https://img.example/satellite.jpg",
	}

	article, err := manager.CreateArticle(ctx, &reporterLaura, draft)
	require.NoError(t, err)
	broker.Dispatch(feed.Event{Op: "insert", NewsID: article.ID})

	snap = recvSnapshot(t, mine.C)
	require.Len(t, snap.Changes, 1)
	assert.Equal(t, feed.Added, snap.Changes[0].Type)
	watcher.Observe(ctx, snap)

	assert.Empty(t, watcherRecords(store, authorID), "a fresh draft is not a notifiable move")

	for _, editorID := range []string{editorSofia.ID, editorDiego.ID} {
		require.Len(t, store.notificationsFor(editorID), 1, "editor %s hears about the new draft", editorID)
	}

	// The reporter finishes the draft.
	_, err = manager.MarkFinished(ctx, &reporterLaura, article.ID)
	require.NoError(t, err)
	broker.Dispatch(feed.Event{Op: "update", NewsID: article.ID})

	snap = recvSnapshot(t, mine.C)
	require.Len(t, snap.Changes, 1)
	assert.Equal(t, feed.Modified, snap.Changes[0].Type)
	watcher.Observe(ctx, snap)

	records := watcherRecords(store, authorID)
	require.Len(t, records, 1)
	assert.Equal(t, db.StatusFinished, records[0].Status)

	// An editor publishes it; the public feed picks it up.
	_, err = manager.Publish(ctx, &editorSofia, article.ID)
	require.NoError(t, err)
	broker.Dispatch(feed.Event{Op: "update", NewsID: article.ID})

	watcher.Observe(ctx, recvSnapshot(t, mine.C))

	records = watcherRecords(store, authorID)
	require.Len(t, records, 1, "the self record is rewritten, never duplicated")
	assert.Equal(t, db.StatusPublished, records[0].Status)

	publicSnap := awaitSnapshot(t, public.C, func(s feed.Snapshot) bool { return len(s.News) == 1 })
	assert.Equal(t, "Lanzamiento del satélite", publicSnap.News[0].Title)

	page := BuildHomePage(mustPublished(t, ctx, manager), 5)
	require.Len(t, page.Sections, 1)
	assert.Equal(t, "Tecnología", page.Sections[0].Name)

	// The editor takes it offline again; it vanishes from the public feed.
	_, err = manager.Deactivate(ctx, &editorSofia, article.ID)
	require.NoError(t, err)
	broker.Dispatch(feed.Event{Op: "update", NewsID: article.ID})

	watcher.Observe(ctx, recvSnapshot(t, mine.C))

	publicSnap = awaitSnapshot(t, public.C, func(s feed.Snapshot) bool { return len(s.News) == 0 })
	require.Len(t, publicSnap.Changes, 1)
	assert.Equal(t, feed.Removed, publicSnap.Changes[0].Type)

	records = watcherRecords(store, authorID)
	require.Len(t, records, 1)
	assert.Equal(t, db.StatusDeactivated, records[0].Status)

	// The author also holds the editors' one-shot records for publish and
	// deactivate on top of the self-observed one.
	unread, err := manager.Notifications(ctx, &reporterLaura)
	require.NoError(t, err)
	assert.Len(t, unread, 3)

	require.NoError(t, manager.ClearNotifications(ctx, &reporterLaura))
	unread, err = manager.Notifications(ctx, &reporterLaura)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

// watcherRecords filters the author's records down to the deterministic
// self-observed one.
func watcherRecords(store *memStore, userID string) []db.NotificationState {
	var out []db.NotificationState
	for _, n := range store.notificationsFor(userID) {
		if n.ID == ReporterNotificationID(userID, n.NewsID) {
			out = append(out, n)
		}
	}
	return out
}

func mustPublished(t *testing.T, ctx context.Context, manager *Manager) []News {
	t.Helper()
	list, err := manager.PublishedArticles(ctx, 0)
	require.NoError(t, err)
	return list
}
