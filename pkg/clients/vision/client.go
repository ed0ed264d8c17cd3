package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-3-haiku-20240307"
	maxTokens    = 1024
)

// Client defines the interface for image understanding tasks.
type Client interface {
	ReadTemperatureDisplay(ctx context.Context, image []byte, mediaType string) (TemperatureReading, error)
	ExtractInvoice(ctx context.Context, image []byte, mediaType string) (InvoiceExtraction, error)
}

// TemperatureReading is the parsed result of a thermometer display photo.
type TemperatureReading struct {
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"` // C or F
	Confidence float64 `json:"confidence"`
}

// InvoiceLine is one extracted line item of a supplier invoice.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// InvoiceExtraction is the structured result of an invoice photo scan.
type InvoiceExtraction struct {
	SupplierName string        `json:"supplier_name"`
	InvoiceDate  string        `json:"invoice_date"` // YYYY-MM-DD when legible
	Lines        []InvoiceLine `json:"lines"`
	GrandTotal   float64       `json:"grand_total"`
}

type visionClient struct {
	httpClient *resty.Client
	model      string
}

// NewClient creates a configured vision client. Model may be empty to use the
// default.
func NewClient(apiKey, model string) Client {
	if model == "" {
		model = defaultModel
	}

	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	return &visionClient{httpClient: client, model: model}
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"` // "base64"
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const temperatureSystemPrompt = `You read thermometer and temperature display photos from commercial kitchens.
Given one photo, output ONLY a JSON object:
  {"value": (number shown on the display), "unit": "C" or "F", "confidence": (0.0-1.0)}
RULES:
- If the display shows a minus sign, the value is negative.
- If the unit is not visible, assume "C".
- If you cannot read a number at all, set confidence to 0.0 and value to 0.`

const invoiceSystemPrompt = `You extract line items from supplier invoice photos taken in commercial kitchens.
Given one photo, output ONLY a JSON object:
  {"supplier_name": string, "invoice_date": "YYYY-MM-DD" or "", "lines": [{"description": string, "quantity": number, "unit_price": number, "total": number}], "grand_total": number}
RULES:
- Skip headers, VAT summaries and payment terms; only product lines go in "lines".
- Use 0 for any numeric value that is not legible.
- Output valid JSON with no commentary.`

// complete sends one image plus instruction and returns the model's JSON text.
// The assistant turn is prefilled with "{" to force a JSON object response.
func (c *visionClient) complete(ctx context.Context, system, instruction string, image []byte, mediaType string) (string, error) {
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages: []message{
			{
				Role: "user",
				Content: []contentBlock{
					{Type: "image", Source: &imageSource{
						Type:      "base64",
						MediaType: mediaType,
						Data:      base64.StdEncoding.EncodeToString(image),
					}},
					{Type: "text", Text: instruction},
				},
			},
			{
				Role:    "assistant",
				Content: []contentBlock{{Type: "text", Text: "{"}},
			},
		},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return "", fmt.Errorf("vision api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("vision api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from vision api")
	}

	// Reconstruct the full JSON since we prefilled the opening brace
	responseText := "{" + respBody.Content[0].Text

	// Clean up potential markdown code blocks if the model wraps the JSON
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}

	return strings.TrimSpace(responseText), nil
}

func (c *visionClient) ReadTemperatureDisplay(ctx context.Context, image []byte, mediaType string) (TemperatureReading, error) {
	text, err := c.complete(ctx, temperatureSystemPrompt, "Read the temperature on this display.", image, mediaType)
	if err != nil {
		return TemperatureReading{}, err
	}

	var reading TemperatureReading
	if err := json.Unmarshal([]byte(text), &reading); err != nil {
		return TemperatureReading{}, fmt.Errorf("could not parse vision response: %w. Response was: %s", err, text)
	}
	if reading.Unit == "" {
		reading.Unit = "C"
	}

	return reading, nil
}

func (c *visionClient) ExtractInvoice(ctx context.Context, image []byte, mediaType string) (InvoiceExtraction, error) {
	text, err := c.complete(ctx, invoiceSystemPrompt, "Extract the line items from this invoice.", image, mediaType)
	if err != nil {
		return InvoiceExtraction{}, err
	}

	var extraction InvoiceExtraction
	if err := json.Unmarshal([]byte(text), &extraction); err != nil {
		return InvoiceExtraction{}, fmt.Errorf("could not parse vision response: %w. Response was: %s", err, text)
	}

	return extraction, nil
}
