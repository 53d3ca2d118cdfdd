package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	gerr "github.com/travelops/contact-insights/internal/errors"
)

// Kind namespaces for the stored artifacts.
const (
	KindOTP   = "otp"
	KindReset = "reset"
)

// Config defines the redis connection for the token store.
type Config struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Store keeps OTP codes and password-reset tokens in redis with explicit
// TTLs. Process restarts and horizontal scaling do not lose or duplicate
// pending codes.
type Store struct {
	rdb *redis.Client
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

func key(kind, email string) string {
	return fmt.Sprintf("auth:%s:%s", kind, email)
}

func (s *Store) Set(ctx context.Context, kind, email, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key(kind, email), value, ttl).Err(); err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, kind, email string) (string, error) {
	v, err := s.rdb.Get(ctx, key(kind, email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", gerr.ErrNotFound
		}
		return "", fmt.Errorf("get token: %w", err)
	}
	return v, nil
}

func (s *Store) Delete(ctx context.Context, kind, email string) error {
	if err := s.rdb.Del(ctx, key(kind, email)).Err(); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
