// Package auth is the identity provider: it keeps credentials and verifies
// them. Who the principal is inside the portal (role, display name) lives in
// the profiles collection, not here.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// Principal is an authenticated subject.
type Principal struct {
	ID    string
	Email string
}

// Provider is the identity provider contract the portal consumes.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Principal, error)
	SignIn(ctx context.Context, email, password string) (*Principal, error)
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           string    `pg:"id,pk"`
	Email        string    `pg:"email,use_zero"`
	PasswordHash string    `pg:"passwordHash,use_zero"`
	CreatedAt    time.Time `pg:"createdAt,use_zero"`
}

// PG is the Postgres-backed credential store.
type PG struct {
	db pg.DBI
}

func NewPG(db pg.DBI) *PG {
	return &PG{db: db}
}

func (p *PG) SignUp(ctx context.Context, email, password string) (*Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existing := &User{}
	err := p.db.ModelContext(ctx, existing).
		Where(`"t"."email" = ?`, email).
		Select()
	if err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pg.ErrNoRows) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if _, err := p.db.ModelContext(ctx, user).Insert(); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &Principal{ID: user.ID, Email: user.Email}, nil
}

func (p *PG) SignIn(ctx context.Context, email, password string) (*Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user := &User{}
	err := p.db.ModelContext(ctx, user).
		Where(`"t"."email" = ?`, email).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &Principal{ID: user.ID, Email: user.Email}, nil
}
