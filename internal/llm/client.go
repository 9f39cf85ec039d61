// Package llm wraps the OpenAI-compatible chat completion API. The default
// configuration targets a local Ollama instance, but any compatible endpoint
// works.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Message roles mirror the chat API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// ChatClient is the surface the services need from the chat backend.
type ChatClient interface {
	Generate(ctx context.Context, messages []Message) (string, error)
	HealthCheck(ctx context.Context) error
}

// Client implements ChatClient on top of go-openai.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
}

func NewClient(api *openai.Client, model string) *Client {
	return &Client{
		api:         api,
		model:       model,
		temperature: 0.7,
	}
}

// Generate sends the messages to the chat completion endpoint and returns the
// first choice's content.
func (c *Client) Generate(ctx context.Context, messages []Message) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		chatMessages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat backend returned no completion choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies the chat backend is reachable and serving models.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("chat backend not reachable: %w", err)
	}
	return nil
}
