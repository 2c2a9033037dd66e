package analyzer

import (
	"context"
	"errors"
)

// labelPrompt is the fixed instruction sent alongside every uploaded image.
const labelPrompt = `You are an expert nutritionist. Analyze this ingredient label.
1. List any harmful or controversial ingredients (like Red 40, High Fructose Corn Syrup, etc).
2. Give a health score from 0 to 100.
3. Explain strictly in 2-3 sentences if this food is healthy or not.`

// ErrNotConfigured is returned by the disabled analyzer wired in when no API
// key is available at startup.
var ErrNotConfigured = errors.New("analyzer not configured: missing API key")

// ImageAnalyzer submits a label image to a generative model and returns the
// generated text.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, mimeType string, data []byte) (string, error)
}

// Disabled is an ImageAnalyzer whose calls always fail. It keeps the service
// up when GEMINI_API_KEY is absent; the analyze endpoint then serves its
// fallback message.
type Disabled struct{}

func (Disabled) Analyze(ctx context.Context, mimeType string, data []byte) (string, error) {
	return "", ErrNotConfigured
}
