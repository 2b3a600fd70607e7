package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCache возвращается при ошибках обращения к Redis
var ErrCache = errors.New("cache: redis error")

// Cache кэш JSON-значений по ключу
type Cache interface {
	// Get возвращает false, если ключа нет
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	// InvalidatePrefix удаляет все ключи с префиксом
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Redis кэш поверх go-redis
type Redis struct {
	client    *redis.Client
	ttl       time.Duration
	namespace string
}

// NewRedis создает клиента и проверяет соединение
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration, namespace string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrCache, addr, err)
	}

	return &Redis{client: client, ttl: ttl, namespace: namespace}, nil
}

func (c *Redis) key(k string) string {
	return c.namespace + ":" + k
}

func (c *Redis) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrCache, key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrCache, key, err)
	}

	return true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrCache, key, err)
	}

	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, key, err)
	}

	return nil
}

func (c *Redis) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, c.key(prefix)+"*", 100).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: scan %s: %v", ErrCache, prefix, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrCache, prefix, err)
	}

	return nil
}

// Close закрывает соединение с Redis
func (c *Redis) Close() error {
	return c.client.Close()
}

// Noop кэш, который ничего не хранит (Redis выключен в конфиге)
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}) error         { return nil }
func (Noop) InvalidatePrefix(context.Context, string) error         { return nil }

// Ping проверяет соединение с Redis
func (c *Redis) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrCache, err)
	}
	return nil
}
