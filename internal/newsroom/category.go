package newsroom

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/epalma/noticiero/internal/db"
)

func (m *Manager) Categories(ctx context.Context) ([]Category, error) {
	list, err := m.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	return NewCategories(list), nil
}

// CategoryBySlug resolves a public section page by lowercase name. Name
// uniqueness is not enforced; the oldest match wins.
func (m *Manager) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	stored, err := m.store.CategoryBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, fmt.Errorf("load category by slug: %w", err)
	}
	if stored == nil {
		return nil, ErrNotFound
	}

	category := NewCategory(*stored)
	return &category, nil
}

func (m *Manager) CreateCategory(ctx context.Context, actor *Profile, name string) (*Category, error) {
	if !actor.IsEditor() {
		return nil, &AuthorizationError{Reason: "only an editor may manage categories"}
	}

	clean := strings.TrimSpace(name)
	if clean == "" {
		return nil, &ValidationError{Reason: "el nombre de la categoría no puede estar vacío"}
	}

	stored := db.Category{
		ID:            uuid.NewString(),
		Name:          clean,
		NameLowercase: strings.ToLower(clean),
	}

	if err := m.store.InsertCategory(ctx, &stored); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	category := NewCategory(stored)
	return &category, nil
}

// RenameCategory updates the category itself; the denormalized categoryName
// on existing articles is a snapshot and stays as written.
func (m *Manager) RenameCategory(ctx context.Context, actor *Profile, id, name string) (*Category, error) {
	if !actor.IsEditor() {
		return nil, &AuthorizationError{Reason: "only an editor may manage categories"}
	}

	clean := strings.TrimSpace(name)
	if clean == "" {
		return nil, &ValidationError{Reason: "el nombre de la categoría no puede estar vacío"}
	}

	stored, err := m.store.CategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if stored == nil {
		return nil, ErrNotFound
	}

	stored.Name = clean
	stored.NameLowercase = strings.ToLower(clean)

	if err := m.store.UpdateCategory(ctx, stored); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	category := NewCategory(*stored)
	return &category, nil
}

func (m *Manager) DeleteCategory(ctx context.Context, actor *Profile, id string) error {
	if !actor.IsEditor() {
		return &AuthorizationError{Reason: "only an editor may manage categories"}
	}

	stored, err := m.store.CategoryByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if stored == nil {
		return ErrNotFound
	}

	if err := m.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	return nil
}
