package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/epalma/noticiero/internal/db"
	"github.com/epalma/noticiero/internal/newsroom"
)

//go:generate zenrpc

// NewsService exposes the public reading surface over JSON-RPC. It serves
// published content only; editorial operations stay on the REST side behind
// a session.
type NewsService struct {
	zenrpc.Service
	manager *newsroom.Manager
}

func NewNewsService(manager *newsroom.Manager) *NewsService {
	return &NewsService{manager: manager}
}

// List retrieves published news, newest first, optionally filtered by
// category. Returns NewsSummary (without content).
//
//zenrpc:categoryId optional category filter
//zenrpc:limit=12 maximum items returned
//zenrpc:return list of news summaries
//zenrpc:500 internal server error
func (s *NewsService) List(ctx context.Context, filter NewsFilter) (NewsSummaries, error) {
	limit := 12
	if filter.Limit != nil && *filter.Limit > 0 {
		limit = *filter.Limit
	}

	fetch := limit
	if filter.CategoryID != nil {
		fetch = 0
	}

	news, err := s.manager.PublishedArticles(ctx, fetch)
	if err != nil {
		return nil, err
	}

	if filter.CategoryID != nil {
		filtered := news[:0]
		for _, n := range news {
			if n.CategoryID == *filter.CategoryID {
				filtered = append(filtered, n)
			}
		}
		news = filtered
		if len(news) > limit {
			news = news[:limit]
		}
	}

	return NewNewsSummaries(news), nil
}

// ByID retrieves a single published article with full content.
//
//zenrpc:id news document ID
//zenrpc:return news with full content
//zenrpc:400 id must not be empty
//zenrpc:404 news not found
//zenrpc:500 internal server error
func (s *NewsService) ByID(ctx context.Context, req NewsByIDRequest) (*News, error) {
	if req.ID == "" {
		return nil, zenrpc.NewStringError(400, "id must not be empty")
	}

	stored, err := s.manager.ArticleByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, newsroom.ErrNotFound) {
			return nil, zenrpc.NewStringError(404, "news not found")
		}
		return nil, err
	}
	if stored.Status != db.StatusPublished {
		return nil, zenrpc.NewStringError(404, "news not found")
	}

	news := NewNews(*stored)
	return &news, nil
}

// Categories retrieves all categories ordered by name.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
func (s *NewsService) Categories(ctx context.Context) (Categories, error) {
	categories, err := s.manager.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return NewCategories(categories), nil
}

// Section resolves a category by its lowercase name and returns its
// published articles.
//
//zenrpc:slug lowercase category name
//zenrpc:return published news summaries of the category
//zenrpc:404 section not found
//zenrpc:500 internal server error
func (s *NewsService) Section(ctx context.Context, req SectionRequest) (NewsSummaries, error) {
	category, err := s.manager.CategoryBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, newsroom.ErrNotFound) {
			return nil, zenrpc.NewStringError(404, "section not found")
		}
		return nil, err
	}

	id := category.ID
	return s.List(ctx, NewsFilter{CategoryID: &id})
}
