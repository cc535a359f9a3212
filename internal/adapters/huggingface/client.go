package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultModel is the multilingual 1-5 star review classifier
const DefaultModel = "nlptown/bert-base-multilingual-uncased-sentiment"

// Client calls a text-classification model on the Hugging Face inference API
type Client struct {
	baseURL  string
	model    string
	apiToken string
	client   *http.Client
	logger   *zap.Logger
}

type classifyRequest struct {
	Inputs  string         `json:"inputs"`
	Options requestOptions `json:"options"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// Prediction is one label and its confidence
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a new inference API client
func NewClient(baseURL, model, apiToken string, timeout time.Duration, logger *zap.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		model:    model,
		apiToken: apiToken,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// ClassifyText returns the highest scoring label for text, e.g. "4 stars"
func (c *Client) ClassifyText(ctx context.Context, text string) (string, error) {
	predictions, err := c.Predict(ctx, text)
	if err != nil {
		return "", err
	}

	best := predictions[0]
	for _, p := range predictions[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best.Label, nil
}

// Predict returns every label the model scored for text
func (c *Client) Predict(ctx context.Context, text string) ([]Prediction, error) {
	body, err := json.Marshal(classifyRequest{
		Inputs:  text,
		Options: requestOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call inference API: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("inference API returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}

	predictions, err := decodePredictions(payload)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Received predictions",
		zap.String("model", c.model),
		zap.Int("labels", len(predictions)))

	return predictions, nil
}

// decodePredictions accepts both the nested [[...]] and the flat [...] response shapes
func decodePredictions(payload []byte) ([]Prediction, error) {
	var nested [][]Prediction
	if err := json.Unmarshal(payload, &nested); err == nil {
		if len(nested) > 0 && len(nested[0]) > 0 {
			return nested[0], nil
		}
		return nil, fmt.Errorf("empty response from inference API")
	}

	var flat []Prediction
	if err := json.Unmarshal(payload, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode inference response: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("empty response from inference API")
	}
	return flat, nil
}
