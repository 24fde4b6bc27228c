package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
)

// NewsEventsChannel is the LISTEN/NOTIFY channel on which every news write
// announces itself. Live subscriptions re-run their queries on each event.
const NewsEventsChannel = "news_events"

// NewsFilter narrows NewsByFilter. Nil fields are ignored.
type NewsFilter struct {
	AuthorID *string
	Status   *Status
}

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		return db.Ping(ctx)
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		return db.Close()
	}

	return nil
}

type transactor interface {
	RunInTransaction(ctx context.Context, fn func(*pg.Tx) error) error
}

// runInTransaction runs fn atomically. When the repository already wraps a
// transaction (integration tests), fn runs on it directly.
func (r *Repository) runInTransaction(ctx context.Context, fn func(pg.DBI) error) error {
	if tx, ok := r.db.(transactor); ok {
		return tx.RunInTransaction(ctx, func(t *pg.Tx) error {
			return fn(t)
		})
	}

	return fn(r.db)
}

func notifyNewsEvent(ctx context.Context, db pg.DBI, op, newsID string) error {
	_, err := db.ExecContext(ctx, `SELECT pg_notify(?, ?)`, NewsEventsChannel, op+":"+newsID)
	if err != nil {
		return fmt.Errorf("notify news event: %w", err)
	}
	return nil
}

// Profiles

func (r *Repository) ProfileByID(ctx context.Context, id string) (*Profile, error) {
	profile := &Profile{}
	err := r.db.ModelContext(ctx, profile).
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}

	return profile, nil
}

func (r *Repository) ProfileByUsername(ctx context.Context, usernameLowercase string) (*Profile, error) {
	profile := &Profile{}
	err := r.db.ModelContext(ctx, profile).
		Where(`"t"."usernameLowercase" = ?`, usernameLowercase).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile by username: %w", err)
	}

	return profile, nil
}

func (r *Repository) ProfilesByRole(ctx context.Context, role Role) ([]Profile, error) {
	var profiles []Profile
	err := r.db.ModelContext(ctx, &profiles).
		Where(`"t"."role" = ?`, role).
		OrderExpr(`"t"."username" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query profiles by role: %w", err)
	}

	return profiles, nil
}

// UpsertProfile inserts the profile or merges it into the existing row with
// the same id. Concurrent first logins for one subject converge to one row.
func (r *Repository) UpsertProfile(ctx context.Context, profile *Profile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	_, err := r.db.ModelContext(ctx, profile).
		OnConflict(`("id") DO UPDATE`).
		Set(`"email" = EXCLUDED."email", "username" = EXCLUDED."username", "usernameLowercase" = EXCLUDED."usernameLowercase", "role" = EXCLUDED."role"`).
		Insert()

	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// News

func (r *Repository) NewsByID(ctx context.Context, id string) (*News, error) {
	news := &News{}
	err := r.db.ModelContext(ctx, news).
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by id: %w", err)
	}

	return news, nil
}

// NewsByFilter retrieves news matching the filter ordered by createdAt DESC.
// limit <= 0 means no limit.
func (r *Repository) NewsByFilter(ctx context.Context, filter NewsFilter, limit int) ([]News, error) {
	var news []News
	query := r.db.ModelContext(ctx, &news)

	if filter.AuthorID != nil {
		query = query.Where(`"t"."authorId" = ?`, *filter.AuthorID)
	}

	if filter.Status != nil {
		query = query.Where(`"t"."status" = ?`, *filter.Status)
	}

	query = query.OrderExpr(`"t"."createdAt" DESC`)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Select(); err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}

	return news, nil
}

func (r *Repository) InsertNews(ctx context.Context, news *News) error {
	now := time.Now()
	news.CreatedAt = now
	news.UpdatedAt = now

	return r.runInTransaction(ctx, func(tx pg.DBI) error {
		if _, err := tx.ModelContext(ctx, news).Insert(); err != nil {
			return fmt.Errorf("failed to insert news: %w", err)
		}

		return notifyNewsEvent(ctx, tx, "insert", news.ID)
	})
}

// UpdateNews writes the full document back. updatedAt is stamped here, never
// taken from the caller.
func (r *Repository) UpdateNews(ctx context.Context, news *News) error {
	news.UpdatedAt = time.Now()

	return r.runInTransaction(ctx, func(tx pg.DBI) error {
		res, err := tx.ModelContext(ctx, news).
			WherePK().
			Update()
		if err != nil {
			return fmt.Errorf("failed to update news: %w", err)
		}
		if res.RowsAffected() == 0 {
			return pg.ErrNoRows
		}

		return notifyNewsEvent(ctx, tx, "update", news.ID)
	})
}

// UpdateNewsStatus writes only the status fields and returns the resulting
// document.
func (r *Repository) UpdateNewsStatus(ctx context.Context, id string, status Status, returned bool) (*News, error) {
	news := &News{ID: id}
	err := r.runInTransaction(ctx, func(tx pg.DBI) error {
		res, err := tx.ModelContext(ctx, news).
			Set(`"status" = ?, "returned" = ?, "updatedAt" = ?`, status, returned, time.Now()).
			WherePK().
			Returning("*").
			Update()
		if err != nil {
			return fmt.Errorf("failed to update news status: %w", err)
		}
		if res.RowsAffected() == 0 {
			return pg.ErrNoRows
		}

		return notifyNewsEvent(ctx, tx, "update", id)
	})
	if err != nil {
		return nil, err
	}

	return news, nil
}

// Categories

func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.ModelContext(ctx, &categories).
		OrderExpr(`"t"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) CategoryByID(ctx context.Context, id string) (*Category, error) {
	category := &Category{}
	err := r.db.ModelContext(ctx, category).
		Where(`"t"."id" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

// CategoryBySlug looks a category up by its lowercase name. Nothing enforces
// name uniqueness, so the first match by creation order wins.
func (r *Repository) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	category := &Category{}
	err := r.db.ModelContext(ctx, category).
		Where(`"t"."nameLowercase" = ?`, slug).
		OrderExpr(`"t"."createdAt" ASC`).
		Limit(1).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return category, nil
}

func (r *Repository) InsertCategory(ctx context.Context, category *Category) error {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	if _, err := r.db.ModelContext(ctx, category).Insert(); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category *Category) error {
	res, err := r.db.ModelContext(ctx, category).
		Set(`"name" = ?, "nameLowercase" = ?`, category.Name, category.NameLowercase).
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if res.RowsAffected() == 0 {
		return pg.ErrNoRows
	}

	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ModelContext(ctx, (*Category)(nil)).
		Where(`"t"."id" = ?`, id).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if res.RowsAffected() == 0 {
		return pg.ErrNoRows
	}

	return nil
}

// Notifications

// InsertNotifications writes the records in one transaction, all or nothing.
func (r *Repository) InsertNotifications(ctx context.Context, notifications []NotificationState) error {
	if len(notifications) == 0 {
		return nil
	}

	return r.runInTransaction(ctx, func(tx pg.DBI) error {
		for i := range notifications {
			if notifications[i].UpdatedAt.IsZero() {
				notifications[i].UpdatedAt = time.Now()
			}
			if _, err := tx.ModelContext(ctx, &notifications[i]).Insert(); err != nil {
				return fmt.Errorf("failed to insert notification: %w", err)
			}
		}
		return nil
	})
}

// UpsertNotification merges the record into an existing row with the same
// deterministic id, so repeated writes keep a single outstanding record.
func (r *Repository) UpsertNotification(ctx context.Context, notification *NotificationState) error {
	if notification.UpdatedAt.IsZero() {
		notification.UpdatedAt = time.Now()
	}

	_, err := r.db.ModelContext(ctx, notification).
		OnConflict(`("id") DO UPDATE`).
		Set(`"type" = EXCLUDED."type", "title" = EXCLUDED."title", "status" = EXCLUDED."status", "message" = EXCLUDED."message", "updatedAt" = EXCLUDED."updatedAt", "read" = EXCLUDED."read"`).
		Insert()

	if err != nil {
		return fmt.Errorf("failed to upsert notification: %w", err)
	}

	return nil
}

// NotificationsByUser returns the user's unread records, newest first.
func (r *Repository) NotificationsByUser(ctx context.Context, userID string) ([]NotificationState, error) {
	var notifications []NotificationState
	err := r.db.ModelContext(ctx, &notifications).
		Where(`"t"."userId" = ?`, userID).
		Where(`"t"."read" = ?`, false).
		OrderExpr(`"t"."updatedAt" DESC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	return notifications, nil
}

// DeleteNotificationsByUser removes all of the user's unread records in one
// statement inside a transaction. Either all of them go or none do.
func (r *Repository) DeleteNotificationsByUser(ctx context.Context, userID string) error {
	return r.runInTransaction(ctx, func(tx pg.DBI) error {
		_, err := tx.ModelContext(ctx, (*NotificationState)(nil)).
			Where(`"t"."userId" = ?`, userID).
			Where(`"t"."read" = ?`, false).
			Delete()
		if err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}
		return nil
	})
}
