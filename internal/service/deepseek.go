package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultDeepSeekURL = "https://api.deepseek.com/v1/chat/completions"

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the DeepSeek API
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// DeepSeekGenerator handles interactions with the DeepSeek chat completions API
type DeepSeekGenerator struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewDeepSeekGenerator creates a new DeepSeekGenerator instance
func NewDeepSeekGenerator(apiKey, model, apiURL string) (*DeepSeekGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY must be set")
	}
	if model == "" {
		model = DefaultDeepSeekModel
	}
	if apiURL == "" {
		apiURL = defaultDeepSeekURL
	}

	return &DeepSeekGenerator{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Generate sends the prompt as a single user message and returns the first choice
func (s *DeepSeekGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[DeepSeek] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}
