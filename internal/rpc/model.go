package rpc

import (
	"time"

	"github.com/epalma/noticiero/internal/newsroom"
)

type NewsFilter struct {
	//categoryId optional category filter
	CategoryID *string `json:"categoryId,omitempty"`
	//limit=12 maximum items returned
	Limit *int `json:"limit,omitempty"`
}

type NewsByIDRequest struct {
	//id news document ID
	ID string `json:"id"`
}

type SectionRequest struct {
	//slug lowercase category name
	Slug string `json:"slug"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type News struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	Content      string    `json:"content"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	ImageURL     string    `json:"imageUrl"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewsSummary omits the body for list responses.
type NewsSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	ImageURL     string    `json:"imageUrl"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Categories []Category

type NewsSummaries []NewsSummary

func NewCategories(list []newsroom.Category) Categories {
	out := make(Categories, 0, len(list))
	for _, c := range list {
		out = append(out, NewCategory(c))
	}
	return out
}

func NewNewsSummaries(list []newsroom.News) NewsSummaries {
	out := make(NewsSummaries, 0, len(list))
	for _, n := range list {
		out = append(out, NewNewsSummary(n))
	}
	return out
}
