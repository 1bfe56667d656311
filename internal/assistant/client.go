// Package assistant wraps the Anthropic API behind the Synthesizer
// interface the retry session consumes.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is used when the config names none.
const DefaultModel = "claude-3-5-haiku-latest"

// Synthesizer produces raw text for a prompt. The retry session treats
// the response as opaque until script extraction.
type Synthesizer interface {
	Synthesize(ctx context.Context, prompt string) (string, error)
}

// TransportError marks assistant/network failures. These never become
// conversation attempts; no script was produced to evaluate.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("assistant unavailable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Config holds assistant client configuration.
type Config struct {
	Model     string
	MaxTokens int

	MaxRetries     int
	RetryBaseDelay time.Duration

	// APIKey overrides the ANTHROPIC_API_KEY environment variable.
	APIKey string
}

func DefaultConfig() *Config {
	return &Config{
		Model:          DefaultModel,
		MaxTokens:      1024,
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
	}
}

// Client implements Synthesizer over the Anthropic SDK.
type Client struct {
	cfg    *Config
	client anthropic.Client
}

func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("assistant: no API key: set ANTHROPIC_API_KEY")
	}
	return &Client{
		cfg:    cfg,
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Synthesize sends the prompt, retrying retryable failures with
// exponential backoff. Exhausted or non-retryable failures surface as
// *TransportError.
func (c *Client) Synthesize(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.RetryBaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			select {
			case <-ctx.Done():
				return "", &TransportError{Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		result, err := c.doRequest(ctx, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return "", &TransportError{Err: err}
		}
	}
	return "", &TransportError{Err: fmt.Errorf("max retries exceeded: %w", lastErr)}
}

func (c *Client) doRequest(ctx context.Context, prompt string) (string, error) {
	model := c.cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := c.cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}

	var result strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}
	return result.String(), nil
}

const systemPrompt = `You are a jq expert. Given a JSON input sample and a desired output, reply with a single jq script that transforms the input into the output. Reply with the script only, no explanation.`

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429") {
		return true
	}
	if strings.Contains(msg, "500") || strings.Contains(msg, "502") ||
		strings.Contains(msg, "503") || strings.Contains(msg, "504") {
		return true
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") {
		return true
	}
	return false
}
