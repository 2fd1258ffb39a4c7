package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Client runs lead searches against the Gemini API with schema-enforced JSON
// output.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini-backed lead search client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Search asks the model for matching businesses and returns validated leads.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Lead, error) {
	prompt := BuildPrompt(req)

	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   leadSchema(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("generate leads: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("model returned no content")
	}

	leads, err := ParseLeads([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("invalid model response: %w", err)
	}
	return leads, nil
}
