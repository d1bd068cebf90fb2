package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sujalbistaa/socialapp/internal/log"
	"github.com/sujalbistaa/socialapp/internal/models"
)

var (
	ErrNotFound    = errors.New("post not found")
	ErrDuplicateID = errors.New("post id already exists")
)

// Repository holds the ordered post collection. List returns the most recent post first.
type Repository interface {
	List(ctx context.Context) ([]models.Post, error)
	// Insert puts p at the front of the feed.
	Insert(ctx context.Context, p models.Post) error
	FindByID(ctx context.Context, id int64) (models.Post, error)
	Update(ctx context.Context, p models.Post) error
}

// Open picks a backend from the URL scheme. An empty URL means in-process memory.
func Open(ctx context.Context, url string) (Repository, error) {
	switch {
	case url == "" || strings.HasPrefix(url, "memory://"):
		log.Info.Println("Using in-memory post store")
		return NewMemory(), nil
	case strings.HasPrefix(url, "sqlite://"), strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return OpenSQL(url)
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return OpenRedis(ctx, url)
	}
	return nil, fmt.Errorf("unsupported DATABASE_URL %q: must start with memory://, sqlite://, postgres:// or redis://", url)
}

// Seed fills an empty repository with the starter posts, keeping their order.
func Seed(ctx context.Context, repo Repository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list before seed: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	seed := models.Seed()
	for i := len(seed) - 1; i >= 0; i-- {
		if err := repo.Insert(ctx, seed[i]); err != nil {
			return fmt.Errorf("seed post %d: %w", seed[i].ID, err)
		}
	}
	log.Info.Printf("Seeded %d posts", len(seed))
	return nil
}
