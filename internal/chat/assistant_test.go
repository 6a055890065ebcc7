// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIAssistantSendsHistoryWithPersona(t *testing.T) {
	var received completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/chat/completions", request.URL.Path)
		assert.Equal(t, "Bearer test-key", request.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(request.Body).Decode(&received))

		json.NewEncoder(writer).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": RoleAssistant, "content": "We ship in 3 to 5 days."}},
			},
		})
	}))
	defer server.Close()

	assistant := NewOpenAIAssistant(server.URL+"/v1", "test-key", "gpt-4o-mini")
	reply, err := assistant.Reply(context.Background(), []Message{
		{Role: RoleUser, Content: "How long is shipping?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "We ship in 3 to 5 days.", reply)

	require.Len(t, received.Messages, 2)
	assert.Equal(t, RoleSystem, received.Messages[0].Role)
	assert.Equal(t, RoleUser, received.Messages[1].Role)
	assert.Equal(t, "gpt-4o-mini", received.Model)
}

func TestOpenAIAssistantSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		http.Error(writer, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	assistant := NewOpenAIAssistant(server.URL, "", "gpt-4o-mini")
	_, err := assistant.Reply(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestOpenAIAssistantRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	assistant := NewOpenAIAssistant(server.URL, "", "gpt-4o-mini")
	_, err := assistant.Reply(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
}

func TestCannedAssistantRotatesReplies(t *testing.T) {
	assistant := CannedAssistant{}

	history := []Message{{Role: RoleUser, Content: "hello"}}
	first, err := assistant.Reply(context.Background(), history)
	require.NoError(t, err)

	history = append(history,
		Message{Role: RoleAssistant, Content: first},
		Message{Role: RoleUser, Content: "anything else?"},
	)
	second, err := assistant.Reply(context.Background(), history)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
