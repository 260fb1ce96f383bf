package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

const (
	DefaultKeySetTTL    = 5 * time.Minute
	defaultFetchTimeout = 5 * time.Second
	keySetFetchAttempts = 2
	keySetRetryDelay    = 200 * time.Millisecond
	rsaKeyType          = "RSA"
	errNoUsableKeys     = "key set contains no usable keys"
	errFetchStatusFmt   = "key set endpoint returned status %d"
)

// KeySet holds the issuer's current public signing keys, indexed by key ID.
type KeySet map[string]*rsa.PublicKey

// KeySetResolver fetches and caches the issuer's published JWKS document.
// The cache is time-bounded; the verifier invalidates it explicitly when a
// token references an unknown key ID so rotated keys are picked up.
type KeySetResolver struct {
	url          string
	httpClient   *http.Client
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	mu        sync.RWMutex
	keys      KeySet
	expiresAt time.Time

	refreshMu sync.Mutex
	refreshCh chan struct{}
	lastErr   error
}

type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type KeySetResolverOption func(*KeySetResolver)

func WithHTTPClient(client *http.Client) KeySetResolverOption {
	return func(r *KeySetResolver) { r.httpClient = client }
}

func WithKeySetTTL(ttl time.Duration) KeySetResolverOption {
	return func(r *KeySetResolver) { r.ttl = ttl }
}

func WithFetchTimeout(timeout time.Duration) KeySetResolverOption {
	return func(r *KeySetResolver) { r.fetchTimeout = timeout }
}

func NewKeySetResolver(url string, opts ...KeySetResolverOption) *KeySetResolver {
	r := &KeySetResolver{
		url:          url,
		httpClient:   http.DefaultClient,
		ttl:          DefaultKeySetTTL,
		fetchTimeout: defaultFetchTimeout,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// KeySet returns the issuer's current key set, refreshing the cache if it
// has expired. It does not filter by key ID; that is the verifier's job.
func (r *KeySetResolver) KeySet(ctx context.Context) (KeySet, error) {
	if keys := r.cached(); keys != nil {
		return keys, nil
	}

	if err := r.refresh(ctx); err != nil {
		return nil, KeySetUnavailable(msgKeySetFetchFailed, err)
	}

	if keys := r.cached(); keys != nil {
		return keys, nil
	}

	return nil, KeySetUnavailable(msgKeySetFetchFailed, errors.New(errNoUsableKeys))
}

// Invalidate drops the cached key set so the next call fetches a fresh one.
func (r *KeySetResolver) Invalidate() {
	r.mu.Lock()
	r.keys = nil
	r.expiresAt = time.Time{}
	r.mu.Unlock()
}

func (r *KeySetResolver) cached() KeySet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.keys == nil || !r.now().Before(r.expiresAt) {
		return nil
	}
	return r.keys
}

// refresh fetches the key set, collapsing concurrent callers onto a single
// fetch. Followers wait for the leader's result.
func (r *KeySetResolver) refresh(ctx context.Context) error {
	ch, leader := r.beginRefresh()
	if !leader {
		select {
		case <-ch:
			r.refreshMu.Lock()
			defer r.refreshMu.Unlock()
			return r.lastErr
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	keys, err := r.fetchWithRetry(ctx)
	if err == nil {
		now := r.now()
		r.mu.Lock()
		r.keys = keys
		r.expiresAt = now.Add(r.ttl)
		r.mu.Unlock()
	}

	r.refreshMu.Lock()
	r.lastErr = err
	close(ch)
	r.refreshCh = nil
	r.refreshMu.Unlock()

	return err
}

func (r *KeySetResolver) beginRefresh() (chan struct{}, bool) {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	if r.refreshCh != nil {
		return r.refreshCh, false
	}

	ch := make(chan struct{})
	r.refreshCh = ch
	return ch, true
}

func (r *KeySetResolver) fetchWithRetry(ctx context.Context) (KeySet, error) {
	var lastErr error
	for attempt := 0; attempt < keySetFetchAttempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(keySetRetryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		keys, err := r.fetchOnce(ctx)
		if err == nil {
			return keys, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (r *KeySetResolver) fetchOnce(ctx context.Context) (KeySet, error) {
	ctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf(errFetchStatusFmt, resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}

	keys := make(KeySet, len(doc.Keys))
	for _, key := range doc.Keys {
		if key.Kty != rsaKeyType || key.Kid == "" {
			continue
		}
		pub, err := parseRSAPublicKey(key)
		if err != nil {
			continue
		}
		keys[key.Kid] = pub
	}

	if len(keys) == 0 {
		return nil, errors.New(errNoUsableKeys)
	}

	return keys, nil
}

func parseRSAPublicKey(key jwksKey) (*rsa.PublicKey, error) {
	if key.N == "" || key.E == "" {
		return nil, errors.New("missing rsa modulus or exponent")
	}

	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, err
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, err
	}

	e := new(big.Int).SetBytes(eBytes).Int64()
	if e <= 0 || e > int64(^uint32(0)) {
		return nil, errors.New("rsa exponent out of range")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(e),
	}, nil
}
