// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/privacy-scan/pkg/types"
)

func init() {
	backoffBase = time.Millisecond
}

// --- CallWithRetry ---

type flakyBackend struct {
	failures int32
	calls    int32
}

func (b *flakyBackend) Complete(_ context.Context, _ Request) (string, error) {
	n := atomic.AddInt32(&b.calls, 1)
	if n <= b.failures {
		return "", fmt.Errorf("transient failure %d", n)
	}
	return "ok", nil
}

func TestCallWithRetry_SucceedsAfterFailures(t *testing.T) {
	b := &flakyBackend{failures: 2}

	resp, err := CallWithRetry(context.Background(), b, Request{User: "x"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, int32(3), atomic.LoadInt32(&b.calls))
}

func TestCallWithRetry_Exhausted(t *testing.T) {
	b := &flakyBackend{failures: 100}

	_, err := CallWithRetry(context.Background(), b, Request{User: "x"}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Equal(t, int32(3), atomic.LoadInt32(&b.calls))
}

func TestCallWithRetry_ContextCancelled(t *testing.T) {
	b := &flakyBackend{failures: 100}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CallWithRetry(ctx, b, Request{User: "x"}, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

// --- OpenAIBackend ---

func TestOpenAIBackend_Complete(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Relevant"}}]}`)
	}))
	defer ts.Close()

	b := &OpenAIBackend{
		Client: ts.Client(),
		Config: types.OracleConfig{Endpoint: ts.URL, Model: "gpt-4o-mini", APIKey: "sk-test"},
	}

	resp, err := b.Complete(context.Background(), Request{
		System:    "classify",
		User:      "paper text",
		MaxTokens: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "Relevant", resp)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "paper text", gotBody.Messages[1].Content)
}

func TestOpenAIBackend_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	b := &OpenAIBackend{Client: ts.Client(), Config: types.OracleConfig{Endpoint: ts.URL}}

	_, err := b.Complete(context.Background(), Request{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestOpenAIBackend_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"model overloaded","type":"server_error"}}`)
	}))
	defer ts.Close()

	b := &OpenAIBackend{Client: ts.Client(), Config: types.OracleConfig{Endpoint: ts.URL}}

	_, err := b.Complete(context.Background(), Request{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestOpenAIBackend_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer ts.Close()

	b := &OpenAIBackend{Client: ts.Client(), Config: types.OracleConfig{Endpoint: ts.URL}}

	_, err := b.Complete(context.Background(), Request{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
