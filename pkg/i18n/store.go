package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNoPreference is returned when a visitor has no stored locale.
var ErrNoPreference = errors.New("i18n: no stored preference")

// PreferenceStore persists a visitor's language choice.
type PreferenceStore interface {
	Get(ctx context.Context, visitorID string) (string, error)
	Set(ctx context.Context, visitorID, locale string) error
}

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, visitorID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	locale, ok := s.prefs[visitorID]
	if !ok {
		return "", ErrNoPreference
	}
	return locale, nil
}

func (s *MemoryStore) Set(_ context.Context, visitorID, locale string) error {
	if strings.TrimSpace(visitorID) == "" {
		return fmt.Errorf("i18n: visitor id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs == nil {
		s.prefs = make(map[string]string)
	}
	s.prefs[visitorID] = locale
	return nil
}

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	// Prefix namespaces the keys; defaults to "medsite:lang:".
	Prefix string
	// TTL bounds how long a preference lives; zero keeps it forever.
	TTL time.Duration
}

// RedisStore persists preferences in Redis so they survive restarts and are
// shared across instances.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("i18n: connect redis %s: %w", addr, err)
	}

	logger.Info("preference store connected", zap.String("addr", addr), zap.Int("db", cfg.DB))
	return NewRedisStoreWithClient(client, cfg.Prefix, cfg.TTL, logger), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client redis.UniversalClient, prefix string, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = "medsite:lang:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (s *RedisStore) Get(ctx context.Context, visitorID string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+visitorID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoPreference
	}
	if err != nil {
		s.logger.Error("preference get failed", zap.String("visitor", visitorID), zap.Error(err))
		return "", fmt.Errorf("i18n: get preference: %w", err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, visitorID, locale string) error {
	if strings.TrimSpace(visitorID) == "" {
		return fmt.Errorf("i18n: visitor id is required")
	}
	if err := s.client.Set(ctx, s.prefix+visitorID, locale, s.ttl).Err(); err != nil {
		s.logger.Error("preference set failed", zap.String("visitor", visitorID), zap.Error(err))
		return fmt.Errorf("i18n: set preference: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
