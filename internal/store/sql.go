package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sujalbistaa/socialapp/internal/log"
	"github.com/sujalbistaa/socialapp/internal/models"
)

// SQL stores posts through gorm. Feed order is kept in the feed_rank column.
type SQL struct {
	db *gorm.DB
}

// OpenSQL connects to sqlite:// or postgres:// and migrates the posts table.
func OpenSQL(url string) (*SQL, error) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(url, "sqlite://"):
		dsn := strings.TrimPrefix(url, "sqlite://")
		dialector = sqlite.Open(dsn)
		log.Info.Println("Connecting to SQLite database at", dsn)
	default:
		dialector = postgres.Open(url)
		log.Info.Println("Connecting to PostgreSQL database...")
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info.Println("Database connection established.")
	return NewSQL(db)
}

// NewSQL wraps an open gorm handle and runs migrations on it.
func NewSQL(db *gorm.DB) (*SQL, error) {
	if err := db.AutoMigrate(&models.Post{}); err != nil {
		return nil, fmt.Errorf("migrate posts: %w", err)
	}
	return &SQL{db: db}, nil
}

func (s *SQL) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Order("feed_rank asc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *SQL) Insert(ctx context.Context, p models.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateID
		}

		var front int64
		if err := tx.Model(&models.Post{}).Select("COALESCE(MIN(feed_rank), 0)").Scan(&front).Error; err != nil {
			return err
		}
		p.Rank = front - 1
		return tx.Create(&p).Error
	})
}

func (s *SQL) FindByID(ctx context.Context, id int64) (models.Post, error) {
	var p models.Post
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return p, nil
}

func (s *SQL) Update(ctx context.Context, p models.Post) error {
	res := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", p.ID).Updates(map[string]any{
		"username":     p.Username,
		"verified":     p.Verified,
		"content":      p.Content,
		"time":         p.Time,
		"comments":     p.Comments,
		"likes":        p.Likes,
		"liked":        p.Liked,
		"avatar_color": p.AvatarColor,
	})
	if res.Error != nil {
		return fmt.Errorf("update post %d: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
