// Package anthropic is a minimal client for the Anthropic messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/BUNNY1710/glassshop-backend/internal/config"
)

const (
	apiVersion = "2023-06-01"
	maxTokens  = 512
)

// ErrEmptyResponse is returned when the API answers without any text block.
var ErrEmptyResponse = errors.New("anthropic: empty response")

// Client completes a single-turn prompt.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
	model      string
}

var _ Client = (*APIClient)(nil)

func NewClient(cfg config.AIConfig) *APIClient {
	client := resty.New().
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: client, url: cfg.APIURL, model: cfg.Model}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *APIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	var (
		result  messageResponse
		failure apiError
	)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(messageRequest{
			Model:     c.model,
			MaxTokens: maxTokens,
			System:    system,
			Messages:  []message{{Role: "user", Content: prompt}},
		}).
		SetResult(&result).
		SetError(&failure).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		if failure.Error.Message != "" {
			return "", fmt.Errorf("anthropic api error (%d %s): %s", resp.StatusCode(), failure.Error.Type, failure.Error.Message)
		}
		return "", fmt.Errorf("anthropic api error (%d): %s", resp.StatusCode(), resp.String())
	}

	var b strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" || block.Type == "" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
