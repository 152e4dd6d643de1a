package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.0-flash"
	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 60 * time.Second
)

var (
	// ErrMissingAPIKey is returned when no Gemini API key is configured
	ErrMissingAPIKey = errors.New("gemini API key is required")

	// ErrEmptyResponse is returned when the model produced no text
	ErrEmptyResponse = errors.New("empty response from model")
)

// Runner runs one prompt under an instruction profile and returns the text.
type Runner interface {
	Run(ctx context.Context, profile Profile, prompt string) (string, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, profile Profile, prompt string) (string, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, profile Profile, prompt string) (string, error) {
	return f(ctx, profile, prompt)
}

// Options configures a Gemini client.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is a Gemini-backed Runner.
type Client struct {
	gClient   *genai.Client
	modelName string
	timeout   time.Duration
}

// NewClient creates a Gemini client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w. Set GEMINI_API_KEY environment variable or ai.gemini.api_key in config file", ErrMissingAPIKey)
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	gClient, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		gClient:   gClient,
		modelName: opts.Model,
		timeout:   opts.Timeout,
	}, nil
}

// Model returns the default model name.
func (c *Client) Model() string {
	return c.modelName
}

// Close releases the underlying client.
func (c *Client) Close() error {
	if c.gClient == nil {
		return nil
	}
	return c.gClient.Close()
}

// Run generates text for prompt using the profile's instructions and sampling settings.
func (c *Client) Run(ctx context.Context, profile Profile, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	modelName := profile.Model
	if modelName == "" {
		modelName = c.modelName
	}

	model := c.gClient.GenerativeModel(modelName)
	if profile.Instructions != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(profile.Instructions)},
		}
	}
	if profile.Temperature > 0 {
		model.SetTemperature(profile.Temperature)
	}
	if profile.MaxTokens > 0 {
		model.SetMaxOutputTokens(profile.MaxTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
