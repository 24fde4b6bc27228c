// Package storage holds article images. The contract is a write plus a
// public URL; the portal never reads blobs back.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Store interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
	PublicURL(path string) string
}

// Disk keeps blobs on the local filesystem under root and serves them from
// publicPrefix via the static route.
type Disk struct {
	root         string
	publicPrefix string
}

func NewDisk(root, publicPrefix string) *Disk {
	return &Disk{
		root:         root,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
	}
}

func (d *Disk) Upload(ctx context.Context, path string, data []byte) (string, error) {
	clean := filepath.Clean("/" + path)
	target := filepath.Join(d.root, clean)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return strings.TrimPrefix(clean, "/"), nil
}

func (d *Disk) PublicURL(path string) string {
	return d.publicPrefix + "/" + strings.TrimPrefix(path, "/")
}
