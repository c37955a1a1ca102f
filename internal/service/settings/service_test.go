package settings

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/storefront-api/pkg/metrics"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

type fakeFetcher struct {
	settings *validator.PasswordComplexitySettings
	err      error
	calls    int
}

func (f *fakeFetcher) PasswordComplexitySettings(context.Context) (*validator.PasswordComplexitySettings, error) {
	f.calls++
	return f.settings, f.err
}

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func minLength(n int) *validator.PasswordComplexitySettings {
	return &validator.PasswordComplexitySettings{MinimumPasswordLength: &n}
}

func TestPasswordComplexityCachesLocally(t *testing.T) {
	fetcher := &fakeFetcher{settings: minLength(10)}
	m := metrics.NewMetrics(prometheus.NewRegistry(), "test", "settings")
	svc := NewService(fetcher, nil, DefaultConfig(), m, nil)

	for i := 0; i < 3; i++ {
		settings, err := svc.PasswordComplexity(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 10, *settings.MinimumPasswordLength)
	}

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SettingsCache.WithLabelValues(tierLocal, "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SettingsCache.WithLabelValues(tierLocal, "miss")))
}

func TestPasswordComplexityCachesAbsentSettings(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := NewService(fetcher, nil, DefaultConfig(), nil, nil)

	for i := 0; i < 2; i++ {
		settings, err := svc.PasswordComplexity(context.Background())
		require.NoError(t, err)
		assert.Nil(t, settings)
	}
	assert.Equal(t, 1, fetcher.calls)
}

func TestPasswordComplexityRevalidates(t *testing.T) {
	fetcher := &fakeFetcher{settings: minLength(8)}
	svc := NewService(fetcher, nil, Config{Revalidate: 20 * time.Millisecond, CleanupInterval: time.Minute}, nil, nil)

	_, err := svc.PasswordComplexity(context.Background())
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	fetcher.settings = minLength(12)

	settings, err := svc.PasswordComplexity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, *settings.MinimumPasswordLength)
	assert.Equal(t, 2, fetcher.calls)
}

func TestPasswordComplexityServesStaleOnFailure(t *testing.T) {
	fetcher := &fakeFetcher{settings: minLength(9)}
	svc := NewService(fetcher, nil, Config{Revalidate: 20 * time.Millisecond, CleanupInterval: time.Minute}, nil, nil)

	_, err := svc.PasswordComplexity(context.Background())
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	fetcher.settings, fetcher.err = nil, errors.New("backend down")

	settings, err := svc.PasswordComplexity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, *settings.MinimumPasswordLength)
}

func TestPasswordComplexityFailsWithoutStale(t *testing.T) {
	backendErr := errors.New("backend down")
	svc := NewService(&fakeFetcher{err: backendErr}, nil, DefaultConfig(), nil, nil)

	_, err := svc.PasswordComplexity(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, backendErr)
}

func TestPasswordComplexitySharedTier(t *testing.T) {
	store := newMemoryStore()
	first := NewService(&fakeFetcher{settings: minLength(11)}, store, DefaultConfig(), nil, nil)

	_, err := first.PasswordComplexity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Revalidate, store.ttls[passwordComplexityKey])

	// A second instance is served from the shared tier.
	fetcher := &fakeFetcher{err: errors.New("should not be called")}
	second := NewService(fetcher, store, DefaultConfig(), nil, nil)

	settings, err := second.PasswordComplexity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 11, *settings.MinimumPasswordLength)
	assert.Zero(t, fetcher.calls)
}

func TestPasswordComplexityIgnoresMalformedSharedEntry(t *testing.T) {
	store := newMemoryStore()
	require.NoError(t, store.Set(context.Background(), passwordComplexityKey, []byte("{"), time.Minute))

	fetcher := &fakeFetcher{settings: minLength(7)}
	svc := NewService(fetcher, store, DefaultConfig(), nil, nil)

	settings, err := svc.PasswordComplexity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, *settings.MinimumPasswordLength)
	assert.Equal(t, 1, fetcher.calls)
}

func TestNewRedisStoreInvalidURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), RedisConfig{URL: "not-a-redis-url"})
	require.Error(t, err)
}

type blockingFetcher struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (f *blockingFetcher) PasswordComplexitySettings(context.Context) (*validator.PasswordComplexitySettings, error) {
	if f.calls.Add(1) == 1 {
		close(f.entered)
	}
	<-f.release
	return minLength(12), nil
}

func TestPasswordComplexityConcurrentMissesFetchOnce(t *testing.T) {
	fetcher := &blockingFetcher{entered: make(chan struct{}), release: make(chan struct{})}
	store := newMemoryStore()
	svc := NewService(fetcher, store, DefaultConfig(), nil, nil)

	const callers = 20
	var wg sync.WaitGroup
	results := make([]*validator.PasswordComplexitySettings, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.PasswordComplexity(context.Background())
		}(i)
	}

	<-fetcher.entered
	time.Sleep(20 * time.Millisecond)
	close(fetcher.release)
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 12, *results[i].MinimumPasswordLength)
	}
	_, err := store.Get(context.Background(), passwordComplexityKey)
	assert.NoError(t, err)
}
