package auth

import (
	"bytes"
	"crypto/rsa"
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWKSURL = "https://dev-drinks.example.com/.well-known/jwks.json"

func jwksClient(t *testing.T, fetches *int32, status int, body []byte) *http.Client {
	t.Helper()
	return &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			atomic.AddInt32(fetches, 1)
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewReader(body)),
				Header:     make(http.Header),
			}, nil
		}),
	}
}

func TestKeySetResolver_FetchAndCache(t *testing.T) {
	key := generateTestKey(t)
	body := buildJWKSBody(t, map[string]*rsa.PublicKey{testKeyID: &key.PublicKey})

	var fetches int32
	resolver := NewKeySetResolver(testJWKSURL,
		WithHTTPClient(jwksClient(t, &fetches, http.StatusOK, body)),
	)

	keys, err := resolver.KeySet(context.Background())
	require.NoError(t, err)
	require.Contains(t, keys, testKeyID)
	assert.Equal(t, 0, keys[testKeyID].N.Cmp(key.PublicKey.N))

	// Second call within the TTL is served from the cache
	_, err = resolver.KeySet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestKeySetResolver_TTLExpiry(t *testing.T) {
	key := generateTestKey(t)
	body := buildJWKSBody(t, map[string]*rsa.PublicKey{testKeyID: &key.PublicKey})

	var fetches int32
	now := time.Now()
	resolver := NewKeySetResolver(testJWKSURL,
		WithHTTPClient(jwksClient(t, &fetches, http.StatusOK, body)),
		WithKeySetTTL(time.Minute),
	)
	resolver.now = func() time.Time { return now }

	_, err := resolver.KeySet(context.Background())
	require.NoError(t, err)

	// Advance past the TTL; the next call refetches
	now = now.Add(2 * time.Minute)
	_, err = resolver.KeySet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestKeySetResolver_Invalidate(t *testing.T) {
	key := generateTestKey(t)
	body := buildJWKSBody(t, map[string]*rsa.PublicKey{testKeyID: &key.PublicKey})

	var fetches int32
	resolver := NewKeySetResolver(testJWKSURL,
		WithHTTPClient(jwksClient(t, &fetches, http.StatusOK, body)),
	)

	_, err := resolver.KeySet(context.Background())
	require.NoError(t, err)

	resolver.Invalidate()

	_, err = resolver.KeySet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestKeySetResolver_UpstreamFailure(t *testing.T) {
	var fetches int32
	resolver := NewKeySetResolver(testJWKSURL,
		WithHTTPClient(jwksClient(t, &fetches, http.StatusInternalServerError, nil)),
	)

	_, err := resolver.KeySet(context.Background())
	assert.ErrorIs(t, err, ErrKeySetUnavailable)

	authErr := AsAuthError(err)
	assert.Equal(t, http.StatusServiceUnavailable, authErr.Status)

	// Both attempts of the retry loop were used
	assert.Equal(t, int32(keySetFetchAttempts), atomic.LoadInt32(&fetches))
}

func TestKeySetResolver_RetryRecovers(t *testing.T) {
	key := generateTestKey(t)
	body := buildJWKSBody(t, map[string]*rsa.PublicKey{testKeyID: &key.PublicKey})

	var fetches int32
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			n := atomic.AddInt32(&fetches, 1)
			status := http.StatusServiceUnavailable
			if n > 1 {
				status = http.StatusOK
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewReader(body)),
				Header:     make(http.Header),
			}, nil
		}),
	}

	resolver := NewKeySetResolver(testJWKSURL, WithHTTPClient(client))

	keys, err := resolver.KeySet(context.Background())
	require.NoError(t, err)
	assert.Contains(t, keys, testKeyID)
}

func TestKeySetResolver_SkipsNonRSAKeys(t *testing.T) {
	body := []byte(`{"keys":[{"kty":"EC","kid":"ec-key","crv":"P-256"}]}`)

	var fetches int32
	resolver := NewKeySetResolver(testJWKSURL,
		WithHTTPClient(jwksClient(t, &fetches, http.StatusOK, body)),
	)

	_, err := resolver.KeySet(context.Background())
	assert.ErrorIs(t, err, ErrKeySetUnavailable)
}

func TestKeySetResolver_ConcurrentRefreshSingleFetch(t *testing.T) {
	key := generateTestKey(t)
	body := buildJWKSBody(t, map[string]*rsa.PublicKey{testKeyID: &key.PublicKey})

	var fetches int32
	client := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			atomic.AddInt32(&fetches, 1)
			time.Sleep(20 * time.Millisecond)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader(body)),
				Header:     make(http.Header),
			}, nil
		}),
	}

	resolver := NewKeySetResolver(testJWKSURL, WithHTTPClient(client))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := resolver.KeySet(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}
