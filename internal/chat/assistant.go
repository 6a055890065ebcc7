// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const systemPrompt = "You are the Veloura shopping assistant. Veloura is an online " +
	"fashion boutique. Help shoppers find products, explain sizing, shipping and " +
	"returns, and keep answers short and friendly. If you do not know something, " +
	"suggest contacting support@veloura.shop."

// Assistant produces the next reply for a conversation.
type Assistant interface {
	Reply(context context.Context, history []Message) (string, error)
}

// # OpenAI-compatible assistant

// completionRequest is the chat/completions request body.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// completionResponse is the subset of the chat/completions response we read.
type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// OpenAIAssistant talks to any OpenAI-compatible completion endpoint.
type OpenAIAssistant struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

/*
NewOpenAIAssistant creates an assistant backed by a completion API.

Parameters:
  - baseURL: API root, e.g. "https://api.openai.com/v1"
  - apiKey: bearer token, may be empty for local models
  - model: model identifier to request

Returns:
  - *OpenAIAssistant: the initialized assistant
*/
func NewOpenAIAssistant(baseURL, apiKey, model string) *OpenAIAssistant {
	return &OpenAIAssistant{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

/*
Reply sends the conversation upstream and returns the first choice.

The system prompt is prepended on every call so upstream context resets
cannot strip the assistant's persona.

Parameters:
  - context: request context
  - history: conversation turns, oldest first, ending with the user's turn

Returns:
  - string: the assistant's reply
  - error: transport or API failure
*/
func (assistant *OpenAIAssistant) Reply(context context.Context, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)

	payload, err := json.Marshal(completionRequest{
		Model:       assistant.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	endpoint := assistant.baseURL + "/chat/completions"
	request, err := http.NewRequestWithContext(context, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if assistant.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+assistant.apiKey)
	}

	response, err := assistant.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 2048))
		return "", fmt.Errorf("completion API status %d: %s", response.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.NewDecoder(response.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// # Canned assistant

// CannedAssistant answers with fixed replies. Used when no upstream model
// is configured.
type CannedAssistant struct{}

var cannedReplies = []string{
	"Thanks for reaching out! Our support team is available at support@veloura.shop and typically replies within one business day.",
	"You can browse our full catalogue from the shop page, and filter by category or price to narrow things down.",
	"Standard shipping takes 3 to 5 business days. Returns are free within 30 days of delivery.",
}

func (CannedAssistant) Reply(_ context.Context, history []Message) (string, error) {
	// Rotate through the canned replies by turn count so a session does
	// not receive the same line twice in a row.
	turns := 0
	for _, message := range history {
		if message.Role == RoleUser {
			turns++
		}
	}
	return cannedReplies[(turns-1+len(cannedReplies))%len(cannedReplies)], nil
}
