package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditwise/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com", "gemini-2.0-flash", false)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.Equal(t, "gemini-2.0-flash", client.model)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestAdvise_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "be helpful", req.SystemInstruction.Parts[0].Text)

		// history turn plus the new message
		require.Len(t, req.Contents, 2)
		assert.Equal(t, "model", req.Contents[0].Role)
		assert.Equal(t, "user", req.Contents[1].Role)
		assert.Equal(t, "what about fees?", req.Contents[1].Parts[0].Text)

		response := generateResponse{}
		response.Candidates = append(response.Candidates, struct {
			Content content `json:"content"`
		}{Content: content{Role: "model", Parts: []part{{Text: "Annual fees vary by card."}}}})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gemini-2.0-flash", false)
	history := []domain.ChatTurn{{Role: domain.RoleAI, Text: "Hi! What's your name?"}}

	reply, err := client.Advise(context.Background(), history, "be helpful", "what about fees?")

	require.NoError(t, err)
	assert.Equal(t, "Annual fees vary by card.", reply)
}

func TestAdvise_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gemini-2.0-flash", false)

	_, err := client.Advise(context.Background(), nil, "", "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAdvisorFailure)
}

func TestAdvise_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gemini-2.0-flash", false)

	_, err := client.Advise(context.Background(), nil, "", "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAdvisorFailure)
}

func TestAdvise_NoRetryOnFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gemini-2.0-flash", false)

	_, err := client.Advise(context.Background(), nil, "", "hello")

	require.Error(t, err)
	assert.Equal(t, 1, calls, "a failed call must not be retried")
}

func TestBuildContents(t *testing.T) {
	history := []domain.ChatTurn{
		{Role: domain.RoleAI, Text: "Hello!"},
		{Role: domain.RoleUser, Text: "Hi"},
	}

	contents := buildContents(history, "new message")

	require.Len(t, contents, 3)
	assert.Equal(t, "model", contents[0].Role)
	assert.Equal(t, "user", contents[1].Role)
	assert.Equal(t, "user", contents[2].Role)
	assert.Equal(t, "new message", contents[2].Parts[0].Text)
}
