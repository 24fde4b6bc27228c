package rest

import (
	"github.com/epalma/noticiero/internal/feed"
	"github.com/epalma/noticiero/internal/newsroom"
)

func NewArticle(n newsroom.News) Article {
	return Article{
		ID:           n.ID,
		Title:        n.Title,
		Subtitle:     n.Subtitle,
		Content:      n.Content,
		CategoryID:   n.CategoryID,
		CategoryName: n.CategoryName,
		ImageURL:     n.ImageURL,
		StoragePath:  n.StoragePath,
		Author: Author{
			ID:       n.Author.ID,
			Username: n.Author.Username,
			Email:    n.Author.Email,
		},
		Status:    string(n.Status),
		Returned:  n.Returned,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func NewArticles(list []newsroom.News) []Article {
	return newsroom.Map(list, NewArticle)
}

func NewProfile(p *newsroom.Profile) Profile {
	return Profile{
		ID:       p.ID,
		Email:    p.Email,
		Username: p.Username,
		Role:     string(p.Role),
	}
}

func NewCategory(c newsroom.Category) Category {
	return Category{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.NameLowercase,
		CreatedAt: c.CreatedAt,
	}
}

func NewCategories(list []newsroom.Category) []Category {
	return newsroom.Map(list, NewCategory)
}

func NewNotification(n newsroom.Notification) Notification {
	return Notification{
		ID:        n.ID,
		NewsID:    n.NewsID,
		Role:      n.Role,
		Type:      string(n.Type),
		Title:     n.Title,
		Status:    string(n.Status),
		Message:   n.Message,
		UpdatedAt: n.UpdatedAt,
		Read:      n.Read,
	}
}

func NewNotifications(list []newsroom.Notification) []Notification {
	return newsroom.Map(list, NewNotification)
}

func NewStatusGroup(g newsroom.StatusGroup) StatusGroup {
	return StatusGroup{
		Key:    g.Key,
		Label:  g.Label,
		Items:  NewArticles(g.Items),
		Counts: len(g.Items),
	}
}

func NewStatusGroups(list []newsroom.StatusGroup) []StatusGroup {
	return newsroom.Map(list, NewStatusGroup)
}

func NewHomePage(page newsroom.HomePage) HomePage {
	home := HomePage{Featured: NewArticles(page.Featured)}
	for _, section := range page.Sections {
		home.Sections = append(home.Sections, Section{
			Name:  section.Name,
			Items: NewArticles(section.Items),
		})
	}
	return home
}

func NewSnapshot(snap feed.Snapshot) Snapshot {
	out := Snapshot{
		News:    NewArticles(newsroom.NewNewsList(snap.News)),
		Initial: snap.Initial,
	}
	for _, change := range snap.Changes {
		out.Changes = append(out.Changes, Change{
			Type: string(change.Type),
			News: NewArticle(newsroom.NewNews(change.News)),
		})
	}
	return out
}
