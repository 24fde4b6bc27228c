package newsroom

import (
	"time"

	"github.com/epalma/noticiero/internal/db"
)

type Profile struct {
	db.Profile
}

type Category struct {
	db.Category
}

type Notification struct {
	db.NotificationState
}

// Author is the denormalized author snapshot carried by every article.
type Author struct {
	ID       string
	Username string
	Email    string
}

// News is the article view model. It flattens the stored document into the
// shape consumers group and render.
type News struct {
	ID           string
	Title        string
	Subtitle     string
	Content      string
	CategoryID   string
	CategoryName string
	ImageURL     string
	StoragePath  string
	Author       Author
	Status       db.Status
	Returned     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Draft carries the editable article fields for create and edit.
type Draft struct {
	Title       string
	Subtitle    string
	Content     string
	CategoryID  string
	ImageURL    string
	StoragePath string
}

func (p *Profile) IsEditor() bool {
	return p.Role == db.RoleEditor
}
