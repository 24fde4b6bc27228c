package newsroom

import (
	"context"
	"fmt"
	"strings"

	"github.com/epalma/noticiero/internal/db"
)

const defaultRole = db.RoleReporter

// ResolveProfile maps an authenticated subject to its profile. A missing
// profile is synthesized with the default role and persisted with merge
// semantics; if even that write fails the in-memory fallback is returned so
// the session stays usable.
func (m *Manager) ResolveProfile(ctx context.Context, subjectID, email string) *Profile {
	stored, err := m.store.ProfileByID(ctx, subjectID)
	if err != nil {
		m.log.Error("failed to load profile", "subject", subjectID, "error", err)
	}
	if stored != nil {
		if stored.Username == "" {
			stored.Username = usernameFromEmail(stored.Email)
		}
		if stored.Role == "" {
			stored.Role = defaultRole
		}
		profile := NewProfile(*stored)
		return &profile
	}

	fallback := db.Profile{
		ID:                subjectID,
		Email:             email,
		Username:          usernameFromEmail(email),
		UsernameLowercase: strings.ToLower(usernameFromEmail(email)),
		Role:              defaultRole,
	}

	if err := m.store.UpsertProfile(ctx, &fallback); err != nil {
		m.log.Error("failed to persist fallback profile", "subject", subjectID, "error", err)
	}

	profile := NewProfile(fallback)
	return &profile
}

// CheckUsername validates a registration username before the identity
// provider is touched. Returns the trimmed username.
func (m *Manager) CheckUsername(ctx context.Context, username string) (string, error) {
	clean := strings.TrimSpace(username)
	if clean == "" {
		return "", &ValidationError{Reason: "debes ingresar un nombre de usuario"}
	}

	existing, err := m.store.ProfileByUsername(ctx, strings.ToLower(clean))
	if err != nil {
		return "", fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return "", &ValidationError{Reason: "el nombre de usuario ya está en uso"}
	}

	return clean, nil
}

// CreateProfile writes the profile row at registration time. Role assignment
// happens here and nowhere else.
func (m *Manager) CreateProfile(ctx context.Context, subjectID, email, username string, role db.Role) (*Profile, error) {
	if role == "" {
		role = defaultRole
	}

	stored := db.Profile{
		ID:                subjectID,
		Email:             email,
		Username:          username,
		UsernameLowercase: strings.ToLower(username),
		Role:              role,
	}

	if err := m.store.UpsertProfile(ctx, &stored); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	profile := NewProfile(stored)
	return &profile, nil
}

func usernameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "usuario"
	}
	return local
}
