package newsroom

import "github.com/epalma/noticiero/internal/db"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewNews(n db.News) News {
	news := News{
		ID:           n.ID,
		Title:        n.Title,
		Subtitle:     n.Subtitle,
		Content:      n.Content,
		CategoryID:   n.CategoryID,
		CategoryName: n.CategoryName,
		ImageURL:     n.ImageURL,
		Author: Author{
			ID:       n.AuthorID,
			Username: n.AuthorUsername,
			Email:    n.AuthorEmail,
		},
		Status:    n.Status,
		Returned:  n.Returned,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}

	if n.StoragePath != nil {
		news.StoragePath = *n.StoragePath
	}

	return news
}

// ToDB maps the view model back to the stored document shape.
func (n News) ToDB() db.News {
	news := db.News{
		ID:             n.ID,
		Title:          n.Title,
		Subtitle:       n.Subtitle,
		Content:        n.Content,
		CategoryID:     n.CategoryID,
		CategoryName:   n.CategoryName,
		ImageURL:       n.ImageURL,
		AuthorID:       n.Author.ID,
		AuthorUsername: n.Author.Username,
		AuthorEmail:    n.Author.Email,
		Status:         n.Status,
		Returned:       n.Returned,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}

	if n.StoragePath != "" {
		path := n.StoragePath
		news.StoragePath = &path
	}

	return news
}

func NewNewsList(list []db.News) []News {
	return Map(list, NewNews)
}

func NewProfile(p db.Profile) Profile {
	return Profile{p}
}

func NewCategory(c db.Category) Category {
	return Category{c}
}

func NewCategories(list []db.Category) []Category {
	return Map(list, NewCategory)
}

func NewNotification(n db.NotificationState) Notification {
	return Notification{n}
}

func NewNotifications(list []db.NotificationState) []Notification {
	return Map(list, NewNotification)
}
