package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"formguard/pkg/config"
)

// fakeGigaChat serves the OAuth and embeddings endpoints, rejecting any token
// other than the one it last issued.
type fakeGigaChat struct {
	mu         sync.Mutex
	validToken string
	oauthCalls int
	embedCalls int
}

func (f *fakeGigaChat) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.oauthCalls++
		f.validToken = fmt.Sprintf("token-%d", f.oauthCalls)
		token := f.validToken
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"access_token": token, "expires_in": 1800})
	})
	mux.HandleFunc("/embeddings", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.embedCalls++
		valid := "Bearer " + f.validToken
		f.mu.Unlock()
		if r.Header.Get("Authorization") != valid {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		type item struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		// Reverse order on the wire; the client must restore input order.
		data := make([]item, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			data = append(data, item{Embedding: []float32{float32(i), 1}, Index: i})
		}
		json.NewEncoder(w).Encode(map[string]any{"data": data})
	})
	return mux
}

func newTestClient(srv *httptest.Server, token string) *Client {
	return &Client{
		config:      &config.GigaChatConfig{Scope: "TEST", EmbeddingModel: "Embeddings"},
		logger:      zap.NewNop(),
		httpClient:  srv.Client(),
		baseURL:     srv.URL,
		oauthURL:    srv.URL + "/oauth",
		accessToken: token,
	}
}

func TestEmbedRestoresInputOrder(t *testing.T) {
	fake := &fakeGigaChat{validToken: "good"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := newTestClient(srv, "good")
	vectors, err := client.Embed(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	for i, v := range vectors {
		assert.Equal(t, []float32{float32(i), 1}, v)
	}
}

func TestEmbedRefreshesExpiredToken(t *testing.T) {
	fake := &fakeGigaChat{validToken: "current"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := newTestClient(srv, "expired")
	vectors, err := client.Embed(context.Background(), []string{"a"})
	require.NoError(t, err)
	require.Len(t, vectors, 1)

	assert.Equal(t, 1, fake.oauthCalls)
	assert.Equal(t, "token-1", client.token())
}

func TestEmbedConcurrentRefreshSingleFlight(t *testing.T) {
	fake := &fakeGigaChat{validToken: "current"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	// Every caller starts with the same expired token; their 401 refreshes
	// must collapse into one OAuth round trip.
	client := newTestClient(srv, "expired")

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Embed(context.Background(), []string{"a", "b"})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}
	assert.Equal(t, 1, fake.oauthCalls)
}

func TestRefreshTokenSkipsWhenAlreadyReplaced(t *testing.T) {
	fake := &fakeGigaChat{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := newTestClient(srv, "fresh")
	token, err := client.refreshToken(context.Background(), "stale")
	require.NoError(t, err)

	assert.Equal(t, "fresh", token)
	assert.Equal(t, 0, fake.oauthCalls)
}
