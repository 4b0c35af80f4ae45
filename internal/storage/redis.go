package storage

import (
	"context"
	"errors"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "sentinel:document"

// redisBackend keeps the whole document under a single key. Redis has no
// multi-key transactions we could lean on for the category cascade, so the
// docStore mutex serializes the full read-modify-write instead.
type redisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to the given redis instance and seeds the document
// on first use.
func NewRedisStore(addr, password string, db int, key string) (Store, error) {
	if key == "" {
		key = defaultRedisKey
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, unavailable("connect", err)
	}

	b := &redisBackend{client: client, key: key}
	doc, err := b.Load(context.Background())
	if err != nil {
		client.Close()
		return nil, unavailable("open", err)
	}
	if doc == nil {
		if err := b.Save(context.Background(), newDocument()); err != nil {
			client.Close()
			return nil, unavailable("seed", err)
		}
	}
	return newDocStore(b), nil
}

func (b *redisBackend) Load(ctx context.Context) (*document, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (b *redisBackend) Save(ctx context.Context, doc *document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, b.key, data, 0).Err()
}

func (b *redisBackend) Close() error {
	return b.client.Close()
}
