package flowise

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resolverFor(endpoint, apiKey string) SettingsResolver {
	return func(ctx context.Context) (Settings, error) {
		return Settings{Endpoint: endpoint, ApiKey: apiKey}, nil
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"adds scheme", "localhost:3000", "http://localhost:3000/"},
		{"adds trailing slash", "http://localhost:3000", "http://localhost:3000/"},
		{"keeps https", "https://flowise.example.com/", "https://flowise.example.com/"},
		{"trims whitespace", "  http://localhost:3000  ", "http://localhost:3000/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeBaseURL(tt.input))
		})
	}
}

func TestGeneratePrediction_HeaderAuth(t *testing.T) {
	var gotAuth, gotApiKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/prediction/flow-1", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotApiKey = r.Header.Get("x-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"text": "hi there"})
	}))
	defer srv.Close()

	client := NewClient(resolverFor(srv.URL, "secret"))
	reply, err := client.GeneratePrediction(context.Background(), "flow-1", "sess-1", "hello")

	assert.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "secret", gotApiKey)
	assert.Equal(t, "hello", gotBody["question"])
	assert.Equal(t, "sess-1", gotBody["sessionId"])

	override, ok := gotBody["overrideConfig"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "flow-1", override["chatId"])
}

func TestGeneratePrediction_QueryAuthFallback(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("apiKey") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "fallback ok"})
	}))
	defer srv.Close()

	client := NewClient(resolverFor(srv.URL, "secret"))
	reply, err := client.GeneratePrediction(context.Background(), "flow-1", "", "hello")

	assert.NoError(t, err)
	assert.Equal(t, "fallback ok", reply)
	assert.Equal(t, 2, calls)
}

func TestGeneratePrediction_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(resolverFor(srv.URL, "wrong"))
	_, err := client.GeneratePrediction(context.Background(), "flow-1", "", "hello")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGeneratePrediction_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewClient(resolverFor(srv.URL, ""))
	_, err := client.GeneratePrediction(context.Background(), "flow-1", "", "hello")

	var statusErr *StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Contains(t, statusErr.Body, "boom")
}

func TestGeneratePrediction_PlainTextReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("raw answer"))
	}))
	defer srv.Close()

	client := NewClient(resolverFor(srv.URL, ""))
	reply, err := client.GeneratePrediction(context.Background(), "flow-1", "", "hello")

	assert.NoError(t, err)
	assert.Equal(t, "raw answer", reply)
}

func TestListChatflows_BareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chatflows" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode([]Chatflow{{ID: "f1", Name: "Support", Deployed: true}})
	}))
	defer srv.Close()

	client := NewClient(resolverFor(srv.URL, "secret"))
	flows, err := client.ListChatflows(context.Background())

	assert.NoError(t, err)
	assert.Len(t, flows, 1)
	assert.Equal(t, "f1", flows[0].ID)
	assert.Equal(t, "Support", flows[0].Name)
}

func TestListChatflows_AlternatePrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chatflows" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []Chatflow{{ID: "f2", Name: "HR Bot"}},
		})
	}))
	defer srv.Close()

	client := NewClient(resolverFor(srv.URL, ""))
	flows, err := client.ListChatflows(context.Background())

	assert.NoError(t, err)
	assert.Len(t, flows, 1)
	assert.Equal(t, "f2", flows[0].ID)
}

func TestParseChatflows_WrappedShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":"a"},{"id":"b"}]`, 2},
		{"data key", `{"data":[{"id":"a"}]}`, 1},
		{"flows key", `{"flows":[{"id":"a"}]}`, 1},
		{"chatflows key", `{"chatflows":[{"id":"a"}]}`, 1},
		{"result key", `{"result":[{"id":"a"}]}`, 1},
		{"results key", `{"results":[{"id":"a"}]}`, 1},
		{"unknown shape", `{"something":"else"}`, 0},
		{"not json", `<html>error</html>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, parseChatflows([]byte(tt.body)), tt.want)
		})
	}
}

func TestHealthAt_FallsBackToRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(resolverFor(srv.URL, ""))
	assert.NoError(t, client.HealthAt(context.Background(), srv.URL))
}

func TestHealthAt_DownEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(resolverFor(srv.URL, ""))
	assert.Error(t, client.HealthAt(context.Background(), srv.URL))
}
