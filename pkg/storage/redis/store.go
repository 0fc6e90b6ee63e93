package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-metabox/pkg/storage"
)

// DefaultPrefix namespaces every key written by Store.
const DefaultPrefix = "metabox"

// Store keeps item meta in one hash per item and site options in a single hash.
//
//	<prefix>:item:<id>  field name -> value
//	<prefix>:options    field name -> value
type Store struct {
	client goredis.UniversalClient
	prefix string
}

var _ storage.Store = (*Store)(nil)

// New wraps client. An empty prefix uses DefaultPrefix.
func New(client goredis.UniversalClient, prefix string) *Store {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr, prefix string) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return New(client, prefix), nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Store) itemKey(itemID string) string {
	return s.prefix + ":item:" + itemID
}

func (s *Store) optionsKey() string {
	return s.prefix + ":options"
}

func (s *Store) ItemMeta(ctx context.Context, itemID, key string) (string, bool, error) {
	return s.hget(ctx, s.itemKey(itemID), key)
}

func (s *Store) SiteOption(ctx context.Context, key string) (string, bool, error) {
	return s.hget(ctx, s.optionsKey(), key)
}

func (s *Store) SetItemMeta(ctx context.Context, itemID, key, value string) error {
	if itemID == "" {
		return storage.ErrItemRequired
	}
	if err := s.client.HSet(ctx, s.itemKey(itemID), key, value).Err(); err != nil {
		return fmt.Errorf("redis hset item meta: %w", err)
	}
	return nil
}

func (s *Store) SetSiteOption(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.optionsKey(), key, value).Err(); err != nil {
		return fmt.Errorf("redis hset site option: %w", err)
	}
	return nil
}

func (s *Store) hget(ctx context.Context, hash, field string) (string, bool, error) {
	value, err := s.client.HGet(ctx, hash, field).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s: %w", hash, err)
	}
	return value, true, nil
}
