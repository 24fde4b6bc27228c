package rest

import "time"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Article struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	Content      string    `json:"content"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	ImageURL     string    `json:"imageUrl"`
	StoragePath  string    `json:"storagePath,omitempty"`
	Author       Author    `json:"author"`
	Status       string    `json:"status"`
	Returned     bool      `json:"returned"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ArticleRequest struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Content     string `json:"content"`
	CategoryID  string `json:"categoryId"`
	ImageURL    string `json:"imageUrl"`
	StoragePath string `json:"storagePath"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type Notification struct {
	ID        string    `json:"id"`
	NewsID    string    `json:"newsId"`
	Role      string    `json:"role"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
	Read      bool      `json:"read"`
}

type StatusGroup struct {
	Key    string    `json:"key"`
	Label  string    `json:"label"`
	Items  []Article `json:"items"`
	Counts int       `json:"count"`
}

type Section struct {
	Name  string    `json:"name"`
	Items []Article `json:"items"`
}

type HomePage struct {
	Featured []Article `json:"featured"`
	Sections []Section `json:"sections"`
}

type Change struct {
	Type string  `json:"type"`
	News Article `json:"news"`
}

type Snapshot struct {
	News    []Article `json:"news"`
	Changes []Change  `json:"changes"`
	Initial bool      `json:"initial"`
}

type UploadResponse struct {
	ImageURL    string `json:"imageUrl"`
	StoragePath string `json:"storagePath"`
}
