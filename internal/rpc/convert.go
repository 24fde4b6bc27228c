package rpc

import "github.com/epalma/noticiero/internal/newsroom"

func NewNews(n newsroom.News) News {
	return News{
		ID:           n.ID,
		Title:        n.Title,
		Subtitle:     n.Subtitle,
		Content:      n.Content,
		CategoryID:   n.CategoryID,
		CategoryName: n.CategoryName,
		ImageURL:     n.ImageURL,
		Author:       n.Author.Username,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func NewNewsSummary(n newsroom.News) NewsSummary {
	return NewsSummary{
		ID:           n.ID,
		Title:        n.Title,
		Subtitle:     n.Subtitle,
		CategoryID:   n.CategoryID,
		CategoryName: n.CategoryName,
		ImageURL:     n.ImageURL,
		Author:       n.Author.Username,
		CreatedAt:    n.CreatedAt,
	}
}

func NewCategory(c newsroom.Category) Category {
	return Category{
		ID:   c.ID,
		Name: c.Name,
	}
}
