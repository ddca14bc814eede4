package geocoding

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/cache"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAddress() entity.Address {
	return entity.Address{
		Street:     "Damrak 1",
		Locality:   "Amsterdam",
		PostalCode: "1012LG",
		Country:    "NL",
	}
}

func TestNominatimGeocoder(t *testing.T) {
	t.Run("returns first place", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Damrak 1, 1012LG Amsterdam, NL", r.URL.Query().Get("q"))
			assert.Equal(t, "storefront-test", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`[{"lat":"52.3745","lon":"4.8979"},{"lat":"0","lon":"0"}]`))
		}))
		defer server.Close()

		geocoder := NewNominatimGeocoder(server.URL, "storefront-test", time.Second, server.Client())

		point, err := geocoder.Geocode(context.Background(), testAddress())
		require.NoError(t, err)
		assert.InDelta(t, 52.3745, point.Lat(), 1e-9)
		assert.InDelta(t, 4.8979, point.Lon(), 1e-9)
	})

	t.Run("empty result is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		geocoder := NewNominatimGeocoder(server.URL, "storefront-test", time.Second, server.Client())

		_, err := geocoder.Geocode(context.Background(), testAddress())
		assert.ErrorIs(t, err, service.ErrGeocodeNotFound)
	})

	t.Run("timeout is a failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer server.Close()

		geocoder := NewNominatimGeocoder(server.URL, "storefront-test", 20*time.Millisecond, server.Client())

		_, err := geocoder.Geocode(context.Background(), testAddress())
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrGeocodeNotFound)
	})
}

func TestGoogleGeocoder(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantPoint orb.Point
		wantErr   error
		anyErr    bool
	}{
		{
			name:      "ok",
			body:      `{"status":"OK","results":[{"geometry":{"location":{"lat":48.8584,"lng":2.2945}}}]}`,
			wantPoint: orb.Point{2.2945, 48.8584},
		},
		{
			name:    "zero results",
			body:    `{"status":"ZERO_RESULTS","results":[]}`,
			wantErr: service.ErrGeocodeNotFound,
		},
		{
			name:   "denied",
			body:   `{"status":"REQUEST_DENIED","error_message":"bad key"}`,
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
				assert.Equal(t, "secret", r.URL.Query().Get("key"))
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			geocoder := NewGoogleGeocoder(server.URL, "secret", time.Second, server.Client())
			point, err := geocoder.Geocode(context.Background(), testAddress())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantPoint, point)
			}
		})
	}
}

type stubGeocoder struct {
	point orb.Point
	err   error
	calls atomic.Int32
	delay time.Duration
}

func (s *stubGeocoder) Geocode(ctx context.Context, _ entity.Address) (orb.Point, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	return s.point, s.err
}

func TestChain_FallsBackWhenPrimaryFindsNothing(t *testing.T) {
	primary := &stubGeocoder{err: service.ErrGeocodeNotFound}
	secondary := &stubGeocoder{point: orb.Point{4.8979, 52.3745}}

	chain := NewChain(newDiscardLogger(),
		Provider{Name: "primary", Geocoder: primary},
		Provider{Name: "secondary", Geocoder: secondary},
	)

	point, err := chain.Geocode(context.Background(), testAddress())
	require.NoError(t, err)
	assert.Equal(t, orb.Point{4.8979, 52.3745}, point)
	assert.Equal(t, int32(1), primary.calls.Load())
	assert.Equal(t, int32(1), secondary.calls.Load())
}

func TestChain_FallsBackOnPrimaryError(t *testing.T) {
	primary := &stubGeocoder{err: errors.New("connection refused")}
	secondary := &stubGeocoder{point: orb.Point{1, 2}}

	chain := NewChain(newDiscardLogger(),
		Provider{Name: "primary", Geocoder: primary},
		Provider{Name: "secondary", Geocoder: secondary},
	)

	point, err := chain.Geocode(context.Background(), testAddress())
	require.NoError(t, err)
	assert.Equal(t, orb.Point{1, 2}, point)
}

func TestChain_PrimaryHitSkipsSecondary(t *testing.T) {
	primary := &stubGeocoder{point: orb.Point{1, 2}}
	secondary := &stubGeocoder{point: orb.Point{3, 4}}

	chain := NewChain(newDiscardLogger(),
		Provider{Name: "primary", Geocoder: primary},
		Provider{Name: "secondary", Geocoder: secondary},
	)

	point, err := chain.Geocode(context.Background(), testAddress())
	require.NoError(t, err)
	assert.Equal(t, orb.Point{1, 2}, point)
	assert.Zero(t, secondary.calls.Load())
}

func TestChain_BothFail(t *testing.T) {
	primary := &stubGeocoder{err: errors.New("timeout")}
	secondary := &stubGeocoder{err: service.ErrGeocodeNotFound}

	chain := NewChain(newDiscardLogger(),
		Provider{Name: "primary", Geocoder: primary},
		Provider{Name: "secondary", Geocoder: secondary},
	)

	_, err := chain.Geocode(context.Background(), testAddress())
	assert.ErrorIs(t, err, service.ErrGeocodeNotFound)
	assert.Equal(t, int32(1), primary.calls.Load())
	assert.Equal(t, int32(1), secondary.calls.Load())
}

type memoryStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failGet != nil {
		return nil, m.failGet
	}
	data, ok := m.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}

	return data, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value

	return nil
}

func TestCachedGeocoder_SecondLookupHitsCache(t *testing.T) {
	next := &stubGeocoder{point: orb.Point{4.8979, 52.3745}}
	store := newMemoryStore()
	geocoder := NewCachedGeocoder(next, store, time.Hour, newDiscardLogger())

	first, err := geocoder.Geocode(context.Background(), testAddress())
	require.NoError(t, err)

	// Different spacing and case map to the same entry.
	variant := testAddress()
	variant.Street = "  DAMRAK   1 "
	second, err := geocoder.Geocode(context.Background(), variant)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), next.calls.Load())
	assert.Len(t, store.data, 1)
}

func TestCachedGeocoder_NotFoundIsNotCached(t *testing.T) {
	next := &stubGeocoder{err: service.ErrGeocodeNotFound}
	store := newMemoryStore()
	geocoder := NewCachedGeocoder(next, store, time.Hour, newDiscardLogger())

	for range 2 {
		_, err := geocoder.Geocode(context.Background(), testAddress())
		assert.ErrorIs(t, err, service.ErrGeocodeNotFound)
	}

	assert.Equal(t, int32(2), next.calls.Load())
	assert.Empty(t, store.data)
}

func TestCachedGeocoder_CacheErrorFallsThrough(t *testing.T) {
	next := &stubGeocoder{point: orb.Point{1, 2}}
	store := newMemoryStore()
	store.failGet = errors.New("redis down")
	geocoder := NewCachedGeocoder(next, store, time.Hour, newDiscardLogger())

	point, err := geocoder.Geocode(context.Background(), testAddress())
	require.NoError(t, err)
	assert.Equal(t, orb.Point{1, 2}, point)
}

func TestCachedGeocoder_CoalescesConcurrentLookups(t *testing.T) {
	next := &stubGeocoder{point: orb.Point{1, 2}, delay: 50 * time.Millisecond}
	geocoder := NewCachedGeocoder(next, newMemoryStore(), time.Hour, newDiscardLogger())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			point, err := geocoder.Geocode(context.Background(), testAddress())
			assert.NoError(t, err)
			assert.Equal(t, orb.Point{1, 2}, point)
		}()
	}
	wg.Wait()

	assert.Less(t, next.calls.Load(), int32(8))
}

// gatedGeocoder blocks until released and reports not-found if its context
// ends first, as the provider chain does.
type gatedGeocoder struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (g *gatedGeocoder) Geocode(ctx context.Context, _ entity.Address) (orb.Point, error) {
	if g.calls.Add(1) == 1 {
		close(g.started)
	}
	select {
	case <-ctx.Done():
		return orb.Point{}, service.ErrGeocodeNotFound
	case <-g.release:
		return orb.Point{4.8979, 52.3745}, nil
	}
}

func TestCachedGeocoder_CancelledCallerDoesNotFailOthers(t *testing.T) {
	next := &gatedGeocoder{started: make(chan struct{}), release: make(chan struct{})}
	geocoder := NewCachedGeocoder(next, newMemoryStore(), time.Hour, newDiscardLogger())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := geocoder.Geocode(firstCtx, testAddress())
		firstErr <- err
	}()

	<-next.started
	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	// The shared lookup is still in flight; a caller with a live context joins it.
	secondDone := make(chan struct{})
	var point orb.Point
	var err error
	go func() {
		defer close(secondDone)
		point, err = geocoder.Geocode(context.Background(), testAddress())
	}()

	time.Sleep(20 * time.Millisecond)
	close(next.release)
	<-secondDone

	require.NoError(t, err)
	assert.Equal(t, orb.Point{4.8979, 52.3745}, point)
}
