package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMockReply(t *testing.T) {
	m := NewMock()
	assert.Equal(t, cannedKannada, m.Reply(context.Background(), "ಟೊಮೇಟೊ ಬೆಲೆ ಎಷ್ಟು ಇದೆ?", "kannada"))
	assert.Equal(t, cannedEnglish, m.Reply(context.Background(), "tomato price?", "hindi"))
}

func TestOpenAIReply(t *testing.T) {
	var got chatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Sell this week.  "}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL+"/", "sk-test", "small-model", zap.NewNop())
	assert.Equal(t, "Sell this week.", c.Reply(context.Background(), "tomato price?", "english"))
	assert.Equal(t, "small-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "tomato price?", got.Messages[1].Content)
	assert.Contains(t, got.Messages[0].Content, "english")
}

func TestOpenAIFallsBack(t *testing.T) {
	for name, h := range map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		},
		"no choices": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		},
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			c := NewOpenAI(srv.URL, "k", "m", zap.NewNop())
			assert.Equal(t, cannedKannada, c.Reply(context.Background(), "q", "kannada"))
		})
	}
}
