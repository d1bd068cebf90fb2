package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sujalbistaa/socialapp/internal/log"
	"github.com/sujalbistaa/socialapp/internal/models"
)

// Redis keeps post bodies in a hash keyed by id and the feed order in a list.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// OpenRedis connects using a redis:// URL and checks the connection.
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Info.Println("Connected to Redis at", opts.Addr)
	return NewRedis(rdb, "feed"), nil
}

func NewRedis(rdb *redis.Client, prefix string) *Redis {
	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) postsKey() string { return r.prefix + ":posts" }
func (r *Redis) orderKey() string { return r.prefix + ":order" }

func (r *Redis) List(ctx context.Context) ([]models.Post, error) {
	ids, err := r.rdb.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list post ids: %w", err)
	}
	if len(ids) == 0 {
		return []models.Post{}, nil
	}

	vals, err := r.rdb.HMGet(ctx, r.postsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	out := make([]models.Post, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var p models.Post
		if json.Unmarshal([]byte(s), &p) == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Redis) Insert(ctx context.Context, p models.Post) error {
	field := strconv.FormatInt(p.ID, 10)
	exists, err := r.rdb.HExists(ctx, r.postsKey(), field).Result()
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateID
	}

	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, r.postsKey(), field, b)
	pipe.LPush(ctx, r.orderKey(), field)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Redis) FindByID(ctx context.Context, id int64) (models.Post, error) {
	s, err := r.rdb.HGet(ctx, r.postsKey(), strconv.FormatInt(id, 10)).Result()
	if err == redis.Nil {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	var p models.Post
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return models.Post{}, fmt.Errorf("decode post %d: %w", id, err)
	}
	return p, nil
}

func (r *Redis) Update(ctx context.Context, p models.Post) error {
	field := strconv.FormatInt(p.ID, 10)
	exists, err := r.rdb.HExists(ctx, r.postsKey(), field).Result()
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.rdb.HSet(ctx, r.postsKey(), field, b).Err()
}
