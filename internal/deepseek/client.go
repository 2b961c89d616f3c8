package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/bottomline-assist/talent-matcher/internal/logger"
	"github.com/bottomline-assist/talent-matcher/internal/models"
)

const (
	provider = "deepseek"

	defaultAPIURL       = "https://api.deepseek.com/v1/chat/completions"
	defaultModel        = "deepseek-chat"
	defaultMaxRetries   = 3
	defaultMaxLogLength = 200

	requestTimeout = 60 * time.Second
	contentType    = "application/json"

	evaluationSystemPrompt = "You are an expert HR analyst. You always respond with valid JSON only."
	summarySystemPrompt    = "You are an expert HR analyst providing clear, concise summaries."

	evaluationTemperature = 0.3
	evaluationMaxTokens   = 2000
	summaryTemperature    = 0.4
	summaryMaxTokens      = 200

	expectedStrengths = 4
	expectedGaps      = 2
)

//go:embed schema.json
var evaluationSchema string

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client talks to the DeepSeek chat completions API.
type Client struct {
	apiKey string
	logger *zap.Logger

	HTTPClient   *http.Client
	APIURL       string
	Model        string
	MaxRetries   int
	MaxLogLength int
}

func New(apiKey string, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("deepseek api key is required")
	}

	return &Client{
		apiKey: apiKey,
		logger: log,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
		APIURL:       defaultAPIURL,
		Model:        defaultModel,
		MaxRetries:   defaultMaxRetries,
		MaxLogLength: defaultMaxLogLength,
	}, nil
}

// Evaluate sends an evaluation prompt and parses the model reply into an
// evaluation. Failed attempts are retried immediately, up to MaxRetries
// attempts in total; the error from the last attempt is returned.
func (c *Client) Evaluate(ctx context.Context, prompt string) (*models.Evaluation, error) {
	log := logger.WithCompletionFields(c.logger, provider, c.Model)

	log.Debug("evaluation completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, c.MaxLogLength)),
	)

	attempts := c.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := c.complete(ctx, evaluationSystemPrompt, prompt, evaluationTemperature, evaluationMaxTokens)
		if err != nil {
			lastErr = err
			log.Warn("evaluation attempt failed",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", attempts),
				zap.Error(err),
			)
			continue
		}

		log.Debug("evaluation completion response",
			zap.Int("response_length", utf8.RuneCountInString(content)),
			zap.String("response_preview", logger.TruncateForLog(content, c.MaxLogLength)),
		)

		evaluation, err := c.parseEvaluation(log, content)
		if err != nil {
			lastErr = err
			log.Warn("evaluation attempt returned unusable content",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", attempts),
				zap.String("response_preview", logger.TruncateForLog(content, c.MaxLogLength)),
				zap.Error(err),
			)
			continue
		}

		return evaluation, nil
	}

	return nil, lastErr
}

// Summarize sends a summary prompt and returns the completion text verbatim.
// It makes a single attempt and does not retry.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	log := logger.WithCompletionFields(c.logger, provider, c.Model)

	log.Debug("summary completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, c.MaxLogLength)),
	)

	return c.complete(ctx, summarySystemPrompt, prompt, summaryTemperature, summaryMaxTokens)
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Cause: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Cause: fmt.Errorf("bad status: %s: %s", resp.Status, logger.TruncateForLog(string(data), c.MaxLogLength))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &MalformedResponseError{Raw: string(data), Cause: fmt.Errorf("decode chat response: %w", err)}
	}

	if len(parsed.Choices) == 0 {
		return "", &MalformedResponseError{Raw: string(data), Cause: errors.New("chat response has no choices")}
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", &MalformedResponseError{Raw: string(data), Cause: errors.New("chat response content is empty")}
	}

	return content, nil
}

// parseEvaluation turns a raw completion into an evaluation. The content is
// stripped of markdown fences, checked against the embedded schema and then
// decoded. Strength and gap counts other than the requested ones are accepted
// with a warning.
func (c *Client) parseEvaluation(log *zap.Logger, content string) (*models.Evaluation, error) {
	cleaned := extractJSON(content)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(evaluationSchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return nil, &MalformedResponseError{Raw: content, Cause: fmt.Errorf("parse evaluation: %w", err)}
	}

	if !result.Valid() {
		return nil, &MalformedResponseError{Raw: content, Cause: fmt.Errorf("evaluation rejected by schema: %s", validationFailures(result))}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, &MalformedResponseError{Raw: content, Cause: err}
	}

	evaluation := &models.Evaluation{}
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   evaluation,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("build evaluation decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, &MalformedResponseError{Raw: content, Cause: err}
	}

	if len(evaluation.Strengths) != expectedStrengths || len(evaluation.PotentialGaps) != expectedGaps {
		log.Warn("evaluation has unexpected strength or gap count",
			zap.String("candidate_name", evaluation.CandidateName),
			zap.Int("strengths", len(evaluation.Strengths)),
			zap.Int("potential_gaps", len(evaluation.PotentialGaps)),
		)
	}

	return evaluation, nil
}

func validationFailures(result *gojsonschema.Result) string {
	failures := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		failures = append(failures, fmt.Sprintf("%s: %s", field, desc.Description()))
	}

	return strings.Join(failures, "; ")
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
