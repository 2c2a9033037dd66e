package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini wraps the Google generative AI client behind ImageAnalyzer.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini analyzer for the given model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	log.Printf("Gemini client initialized for model: %s", model)
	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// Analyze sends the fixed prompt plus the image to the model and returns the
// concatenated text of the first candidate.
func (g *Gemini) Analyze(ctx context.Context, mimeType string, data []byte) (string, error) {
	model := g.client.GenerativeModel(g.model)

	resp, err := model.GenerateContent(ctx,
		genai.Text(labelPrompt),
		genai.Blob{MIMEType: mimeType, Data: data},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model returned no text parts")
	}

	return sb.String(), nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
