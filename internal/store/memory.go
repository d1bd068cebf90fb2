package store

import (
	"context"
	"sync"

	"github.com/sujalbistaa/socialapp/internal/models"
)

// Memory keeps posts in a slice for the lifetime of the process.
type Memory struct {
	mu    sync.RWMutex
	posts []models.Post
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) List(_ context.Context) ([]models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Post, len(m.posts))
	copy(out, m.posts)
	return out, nil
}

func (m *Memory) Insert(_ context.Context, p models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(p.ID) >= 0 {
		return ErrDuplicateID
	}
	m.posts = append([]models.Post{p}, m.posts...)
	return nil
}

func (m *Memory) FindByID(_ context.Context, id int64) (models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(id)
	if i < 0 {
		return models.Post{}, ErrNotFound
	}
	return m.posts[i], nil
}

func (m *Memory) Update(_ context.Context, p models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	p.Rank = m.posts[i].Rank
	m.posts[i] = p
	return nil
}

func (m *Memory) indexOf(id int64) int {
	for i := range m.posts {
		if m.posts[i].ID == id {
			return i
		}
	}
	return -1
}
