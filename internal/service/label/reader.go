package label

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/ougirez/cellarium/internal/pkg/constants"
)

const analysisPrompt = `Analyze this wine bottle label image and extract the following information.
Return a JSON object with these fields:

{
  "name": "The wine name/brand (string or null)",
  "vintage": "The year the wine was produced (integer or null)",
  "wine_type": "One of: red, white, rosé, sparkling (string or null)",
  "country": "ISO 3166-1 alpha-2 country code, e.g. FR, IT, ES (string or null)",
  "region": "Wine region or appellation, e.g. Bordeaux, Rioja, Chianti (string or null)",
  "grape_varieties": "Comma-separated list of grape varieties (string or null)",
  "alcohol_percentage": "Alcohol percentage as decimal, e.g. 13.5 (number or null)",
  "confidence": {
    "name": 0.0-1.0,
    "vintage": 0.0-1.0,
    "wine_type": 0.0-1.0,
    "country": 0.0-1.0,
    "region": 0.0-1.0,
    "grape_varieties": 0.0-1.0,
    "alcohol_percentage": 0.0-1.0
  },
  "raw_text": "All readable text from the label"
}

Important:
- Use null for any field you cannot determine with reasonable confidence
- For country, always use ISO 3166-1 alpha-2 codes (FR, IT, ES, DE, US, AU, etc.)
- For wine_type, only use: red, white, rosé, sparkling
- Confidence scores should reflect how certain you are about each field (0.0 = guess, 1.0 = certain)
- Include ALL readable text in raw_text for transparency

Return ONLY valid JSON, no markdown formatting or explanation.`

const maxResponseBytes = 1 << 20

// Reading is the raw answer of a label reader. Vintage and alcohol are kept
// loose because models answer both 2015 and "2015".
type Reading struct {
	Name              *string        `json:"name"`
	Vintage           interface{}    `json:"vintage"`
	WineType          *string        `json:"wine_type"`
	Country           *string        `json:"country"`
	Region            *string        `json:"region"`
	GrapeVarieties    *string        `json:"grape_varieties"`
	AlcoholPercentage interface{}    `json:"alcohol_percentage"`
	Confidence        map[string]any `json:"confidence"`
	RawText           string         `json:"raw_text"`
}

// Reader extracts label fields from an image.
type Reader interface {
	ReadLabel(ctx context.Context, image []byte, mimeType string) (*Reading, error)
}

// OpenAIReader asks a chat completions endpoint with vision support.
type OpenAIReader struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewOpenAIReader(client *http.Client, baseURL, apiKey, model string) *OpenAIReader {
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAIReader{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (r *OpenAIReader) ReadLabel(ctx context.Context, image []byte, mimeType string) (*Reading, error) {
	payload, err := sonic.Marshal(chatRequest{
		Model: r.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: analysisPrompt},
				{Type: "image_url", ImageURL: &imageURL{
					URL:    "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image),
					Detail: "high",
				}},
			},
		}},
		MaxTokens:   1000,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("sonic.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Do: %s: %w", err.Error(), constants.ErrLabelUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %s: %w", err.Error(), constants.ErrLabelUnavailable)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, constants.ErrLabelRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("status code error: %d: %w", resp.StatusCode, constants.ErrLabelService)
	}

	var chat chatResponse
	if err = sonic.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("decode completion: %s: %w", err.Error(), constants.ErrLabelService)
	}
	if len(chat.Choices) == 0 || strings.TrimSpace(chat.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("empty completion: %w", constants.ErrLabelUnreadable)
	}

	var reading Reading
	if err = sonic.UnmarshalString(stripFences(chat.Choices[0].Message.Content), &reading); err != nil {
		return nil, fmt.Errorf("decode label json: %s: %w", err.Error(), constants.ErrLabelUnreadable)
	}
	return &reading, nil
}

// stripFences removes a markdown code block around the answer.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
