// Package feed delivers live query results over cancellable snapshot
// streams. Writers announce themselves on a Postgres NOTIFY channel; each
// subscription re-runs its query and diffs against what it delivered last.
package feed

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-pg/pg/v10"

	"github.com/epalma/noticiero/internal/db"
)

// Lister is the read side the broker needs, implemented by *db.Repository.
type Lister interface {
	NewsByFilter(ctx context.Context, filter db.NewsFilter, limit int) ([]db.News, error)
}

// Query selects the documents a subscription follows. Results are ordered by
// createdAt DESC; Limit <= 0 means unlimited.
type Query struct {
	AuthorID *string
	Status   *db.Status
	Limit    int
}

type ChangeType string

const (
	Added    ChangeType = "added"
	Modified ChangeType = "modified"
	Removed  ChangeType = "removed"
)

type Change struct {
	Type ChangeType
	News db.News
}

// Snapshot is one delivery on a subscription: the full current result set
// plus what changed since the previous delivery. The first snapshot carries
// Initial=true and lists every pre-existing document as Added.
type Snapshot struct {
	News    []db.News
	Changes []Change
	Initial bool
}

// Event is a parsed NOTIFY payload.
type Event struct {
	Op     string
	NewsID string
}

func ParseEvent(payload string) Event {
	op, id, _ := strings.Cut(payload, ":")
	return Event{Op: op, NewsID: id}
}

type Broker struct {
	lister Lister
	log    *slog.Logger

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewBroker(lister Lister, log *slog.Logger) *Broker {
	return &Broker{
		lister: lister,
		log:    log,
		subs:   make(map[*Subscription]struct{}),
	}
}

// Subscription delivers snapshots on C until cancelled; C is closed after
// cancellation, and nothing is delivered past it.
type Subscription struct {
	C <-chan Snapshot

	query  Query
	ch     chan Snapshot
	kick   chan struct{}
	cancel context.CancelFunc
	prev   map[string]db.News
}

// Subscribe registers a live query. The initial snapshot is delivered on C
// as soon as the consumer reads it.
func (b *Broker) Subscribe(ctx context.Context, query Query) *Subscription {
	ctx, cancel := context.WithCancel(ctx)

	sub := &Subscription{
		query:  query,
		ch:     make(chan Snapshot),
		kick:   make(chan struct{}, 1),
		cancel: cancel,
		prev:   make(map[string]db.News),
	}
	sub.C = sub.ch

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go sub.run(ctx, b)

	return sub
}

func (s *Subscription) Cancel() {
	s.cancel()
}

// Dispatch wakes every subscription to re-run its query. Consecutive events
// between two requeries coalesce; each delivery still reflects the latest
// committed state in order.
func (b *Broker) Dispatch(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		select {
		case sub.kick <- struct{}{}:
		default:
		}
	}
}

// Listen pumps the Postgres NOTIFY channel into Dispatch until ctx ends.
func (b *Broker) Listen(ctx context.Context, database *pg.DB) error {
	listener := database.Listen(ctx, db.NewsEventsChannel)
	defer listener.Close()

	ch := listener.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case notification, ok := <-ch:
			if !ok {
				return nil
			}
			b.Dispatch(ParseEvent(notification.Payload))
		}
	}
}

func (b *Broker) remove(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

func (s *Subscription) run(ctx context.Context, b *Broker) {
	defer func() {
		b.remove(s)
		close(s.ch)
	}()

	if !s.deliver(ctx, b, true) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.kick:
			if !s.deliver(ctx, b, false) {
				return
			}
		}
	}
}

func (s *Subscription) deliver(ctx context.Context, b *Broker, initial bool) bool {
	filter := db.NewsFilter{AuthorID: s.query.AuthorID, Status: s.query.Status}

	list, err := b.lister.NewsByFilter(ctx, filter, s.query.Limit)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		// Degrade to an empty result set; the error stays local.
		b.log.Error("live query failed", "error", err)
		select {
		case s.ch <- Snapshot{Initial: initial}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	snap := s.diff(list, initial)
	select {
	case s.ch <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Subscription) diff(list []db.News, initial bool) Snapshot {
	var changes []Change
	next := make(map[string]db.News, len(list))

	for _, item := range list {
		next[item.ID] = item
		previous, ok := s.prev[item.ID]
		if !ok {
			changes = append(changes, Change{Type: Added, News: item})
			continue
		}
		if changed(previous, item) {
			changes = append(changes, Change{Type: Modified, News: item})
		}
	}

	for id, previous := range s.prev {
		if _, ok := next[id]; !ok {
			changes = append(changes, Change{Type: Removed, News: previous})
		}
	}

	s.prev = next

	return Snapshot{News: list, Changes: changes, Initial: initial}
}

func changed(previous, current db.News) bool {
	return !previous.UpdatedAt.Equal(current.UpdatedAt) ||
		previous.Status != current.Status ||
		previous.Returned != current.Returned ||
		previous.Title != current.Title
}
