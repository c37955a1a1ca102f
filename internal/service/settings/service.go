// Package settings serves the store's password complexity settings from a
// local cache, an optional shared redis cache, and the commerce backend, in
// that order.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/jwalitptl/storefront-api/pkg/logger"
	"github.com/jwalitptl/storefront-api/pkg/metrics"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

const (
	passwordComplexityKey = "password_complexity_settings"
	staleSuffix           = ":stale"

	tierLocal  = "local"
	tierShared = "shared"
)

// Fetcher loads the settings from the backend.
type Fetcher interface {
	PasswordComplexitySettings(ctx context.Context) (*validator.PasswordComplexitySettings, error)
}

type Config struct {
	// Revalidate is how long fetched settings are served before the backend
	// is asked again.
	Revalidate      time.Duration
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Revalidate:      900 * time.Second,
		CleanupInterval: 10 * time.Minute,
	}
}

// entry wraps the settings so that "no settings configured" is cached too.
type entry struct {
	Settings *validator.PasswordComplexitySettings `json:"settings"`
}

type Service struct {
	fetcher    Fetcher
	local      *cache.Cache
	shared     Store
	revalidate time.Duration
	fetchGroup singleflight.Group
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// NewService creates the settings service. shared may be nil.
func NewService(fetcher Fetcher, shared Store, cfg Config, m *metrics.Metrics, log *logger.Logger) *Service {
	if cfg.Revalidate <= 0 {
		cfg.Revalidate = DefaultConfig().Revalidate
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig().CleanupInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		fetcher:    fetcher,
		local:      cache.New(cfg.Revalidate, cfg.CleanupInterval),
		shared:     shared,
		revalidate: cfg.Revalidate,
		metrics:    m,
		log:        log,
	}
}

// PasswordComplexity returns the current settings. A nil result means the
// store has none and the defaults apply. When the backend fails, the last
// settings seen are returned if there are any.
func (s *Service) PasswordComplexity(ctx context.Context) (*validator.PasswordComplexitySettings, error) {
	if v, ok := s.local.Get(passwordComplexityKey); ok {
		s.metrics.ObserveCache(tierLocal, true)
		return v.(entry).Settings, nil
	}
	s.metrics.ObserveCache(tierLocal, false)

	// One lookup per expiry: concurrent misses share the shared-tier read
	// and the backend fetch. The lookup outlives a cancelled caller since
	// other callers may be waiting on it.
	v, err, _ := s.fetchGroup.Do(passwordComplexityKey, func() (any, error) {
		return s.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*validator.PasswordComplexitySettings), nil
}

func (s *Service) load(ctx context.Context) (*validator.PasswordComplexitySettings, error) {
	if v, ok := s.local.Get(passwordComplexityKey); ok {
		return v.(entry).Settings, nil
	}

	if e, ok := s.fromShared(ctx); ok {
		s.store(e)
		return e.Settings, nil
	}

	settings, err := s.fetcher.PasswordComplexitySettings(ctx)
	if err != nil {
		if v, ok := s.local.Get(passwordComplexityKey + staleSuffix); ok {
			s.log.Warn(err, "serving stale password complexity settings")
			return v.(entry).Settings, nil
		}
		return nil, fmt.Errorf("failed to fetch password complexity settings: %w", err)
	}

	e := entry{Settings: settings}
	s.store(e)
	s.toShared(ctx, e)
	return settings, nil
}

func (s *Service) store(e entry) {
	s.local.Set(passwordComplexityKey, e, cache.DefaultExpiration)
	s.local.Set(passwordComplexityKey+staleSuffix, e, cache.NoExpiration)
}

func (s *Service) fromShared(ctx context.Context) (entry, bool) {
	if s.shared == nil {
		return entry{}, false
	}

	data, err := s.shared.Get(ctx, passwordComplexityKey)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			s.log.Warn(err, "shared settings cache read failed")
		}
		s.metrics.ObserveCache(tierShared, false)
		return entry{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		s.log.Warn(err, "discarding malformed shared settings entry")
		s.metrics.ObserveCache(tierShared, false)
		return entry{}, false
	}
	s.metrics.ObserveCache(tierShared, true)
	return e, true
}

func (s *Service) toShared(ctx context.Context, e entry) {
	if s.shared == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		s.log.Warn(err, "failed to encode settings for shared cache")
		return
	}
	if err := s.shared.Set(ctx, passwordComplexityKey, data, s.revalidate); err != nil {
		s.log.Warn(err, "shared settings cache write failed")
	}
}
