package db

import (
	"time"
)

// Role is the editorial role stored on a profile.
type Role string

const (
	RoleReporter Role = "reportero"
	RoleEditor   Role = "editor"
)

// Status is the editorial status stored on a news document. The wire values
// are the Spanish labels the portal has always persisted.
type Status string

const (
	StatusEditing     Status = "Edición"
	StatusFinished    Status = "Terminado"
	StatusPublished   Status = "Publicado"
	StatusDeactivated Status = "Desactivado"
)

// NotificationType classifies a notification record.
type NotificationType string

const (
	NotificationStatusChange   NotificationType = "news_status_change"
	NotificationPendingReview  NotificationType = "news_pending_review"
	NotificationReadyForReview NotificationType = "news_ready_for_review"
)

// Recipient role labels stored on notification records.
const (
	NotifyRoleReporter = "reporter"
	NotifyRoleEditor   = "editor"
)

type Profile struct {
	tableName struct{} `pg:"profiles,alias:t,discard_unknown_columns"`

	ID                string    `pg:"id,pk"`
	Email             string    `pg:"email,use_zero"`
	Username          string    `pg:"username,use_zero"`
	UsernameLowercase string    `pg:"usernameLowercase,use_zero"`
	Role              Role      `pg:"role,use_zero"`
	CreatedAt         time.Time `pg:"createdAt,use_zero"`
}

type News struct {
	tableName struct{} `pg:"news,alias:t,discard_unknown_columns"`

	ID             string    `pg:"id,pk"`
	Title          string    `pg:"title,use_zero"`
	Subtitle       string    `pg:"subtitle,use_zero"`
	Content        string    `pg:"content,use_zero"`
	CategoryID     string    `pg:"categoryId,use_zero"`
	CategoryName   string    `pg:"categoryName,use_zero"`
	ImageURL       string    `pg:"imageUrl,use_zero"`
	StoragePath    *string   `pg:"storagePath"`
	AuthorID       string    `pg:"authorId,use_zero"`
	AuthorUsername string    `pg:"authorUsername,use_zero"`
	AuthorEmail    string    `pg:"authorEmail,use_zero"`
	Status         Status    `pg:"status,use_zero"`
	Returned       bool      `pg:"returned,use_zero"`
	CreatedAt      time.Time `pg:"createdAt,use_zero"`
	UpdatedAt      time.Time `pg:"updatedAt,use_zero"`
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID            string    `pg:"id,pk"`
	Name          string    `pg:"name,use_zero"`
	NameLowercase string    `pg:"nameLowercase,use_zero"`
	CreatedAt     time.Time `pg:"createdAt,use_zero"`
}

type NotificationState struct {
	tableName struct{} `pg:"notificationStates,alias:t,discard_unknown_columns"`

	ID        string           `pg:"id,pk"`
	UserID    string           `pg:"userId,use_zero"`
	NewsID    string           `pg:"newsId,use_zero"`
	Role      string           `pg:"role,use_zero"`
	Type      NotificationType `pg:"type,use_zero"`
	Title     string           `pg:"title,use_zero"`
	Status    Status           `pg:"status,use_zero"`
	Message   string           `pg:"message,use_zero"`
	UpdatedAt time.Time        `pg:"updatedAt,use_zero"`
	Read      bool             `pg:"read,use_zero"`
}
