package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"feed-curator/domain"
	"feed-curator/internal/config"
)

// StatusError reports a non-2xx reply from an upstream endpoint.
type StatusError struct {
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream request failed with status: %s", e.Status)
}

type payloadModel struct {
	Model     string       `json:"model"`
	Prompt    string       `json:"prompt"`
	Options   optionsModel `json:"options"`
	KeepAlive int          `json:"keep_alive"`
	Stream    bool         `json:"stream"`
}

type optionsModel struct {
	Stop          []string `json:"stop"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"top_p"`
	NumPredict    int      `json:"num_predict"`
	RepeatPenalty float64  `json:"repeat_penalty"`
	NumCtx        int      `json:"num_ctx"`
}

type OllamaResponse struct {
	Model      string `json:"model"`
	Response   string `json:"response"`
	DoneReason string `json:"done_reason"`
	Done       bool   `json:"done"`
}

// classificationWire is the JSON object the model is instructed to emit.
// RelevanceScore is a pointer so a missing field is distinguishable from
// a genuine zero score.
type classificationWire struct {
	RelevanceScore *float64 `json:"relevance_score"`
	Summary        string   `json:"summary"`
	FilteredReason string   `json:"filtered_reason"`
	KeyTopics      []string `json:"key_topics"`
}

const promptTemplate = `<start_of_turn>user
You are a strict content curator for a technology reading feed. Score how relevant and substantial the item below is for the "%s" category.

%sGUIDELINES:
- relevance_score is a float between 0.0 and 1.0
- summary is at most two plain sentences
- key_topics lists up to five short topic labels
- filtered_reason briefly explains a low score and stays empty otherwise
- Respond with a single JSON object and nothing else

ITEM TITLE: %s

ITEM CONTENT:
---
%s
---
<end_of_turn>
<start_of_turn>model
`

// Keep prompts inside the model context window. Counted in runes, not
// bytes, so multibyte content is not over-trimmed.
const maxPromptContentRunes = 6000

var scorerHTTPClient = &http.Client{}

// ContentScorerAPIClient asks the model endpoint to classify one item.
// Guidance is the category prompt text and may be empty.
func ContentScorerAPIClient(ctx context.Context, item *domain.ContentItem, guidance string, cfg config.ScorerConfig, logger *slog.Logger) (*domain.Classification, error) {
	guidanceBlock := ""
	if g := strings.TrimSpace(guidance); g != "" {
		guidanceBlock = "CATEGORY GUIDANCE:\n" + g + "\n\n"
	}

	prompt := fmt.Sprintf(promptTemplate,
		item.Category,
		guidanceBlock,
		item.Title,
		truncateRunes(item.Body, maxPromptContentRunes))

	apiURL := cfg.Host + cfg.APIPath

	payload := payloadModel{
		Model:     cfg.Model,
		Prompt:    prompt,
		Stream:    false,
		KeepAlive: -1,
		Options: optionsModel{
			Temperature:   cfg.Temperature,
			TopP:          0.9,
			NumPredict:    cfg.NumPredict,
			RepeatPenalty: 1.00,
			NumCtx:        cfg.NumCtx,
			Stop:          []string{"<end_of_turn>"},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorContext(ctx, "failed to marshal scorer payload", "error", err)
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonData))
	if err != nil {
		logger.ErrorContext(ctx, "failed to create scorer request", "error", err, "api_url", apiURL)
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	logger.DebugContext(ctx, "requesting classification",
		"api_url", apiURL,
		"model", cfg.Model,
		"fingerprint", item.Fingerprint)

	resp, err := scorerHTTPClient.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "failed to send scorer request", "error", err, "api_url", apiURL)
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.WarnContext(ctx, "scorer overloaded",
			"retry_after", resp.Header.Get("Retry-After"),
			"body", string(bodyBytes))

		return nil, fmt.Errorf("%w: %s", domain.ErrScorerOverloaded, resp.Status)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.ErrorContext(ctx, "scorer returned non-200 status",
			"status", resp.Status,
			"code", resp.StatusCode,
			"body", string(bodyBytes))

		return nil, &StatusError{Status: resp.Status, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read scorer response body", "error", err)
		return nil, err
	}

	var apiResponse OllamaResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		logger.ErrorContext(ctx, "failed to unmarshal scorer response", "error", err)
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	if !apiResponse.Done {
		logger.WarnContext(ctx, "received incomplete response from scorer",
			"done_reason", apiResponse.DoneReason)
	}

	classification, err := parseClassification(apiResponse.Response)
	if err != nil {
		logger.ErrorContext(ctx, "scorer reply unusable",
			"error", err,
			"fingerprint", item.Fingerprint)

		return nil, err
	}

	logger.InfoContext(ctx, "classification generated",
		"fingerprint", item.Fingerprint,
		"relevance_score", classification.RelevanceScore)

	return classification, nil
}

func parseClassification(raw string) (*domain.Classification, error) {
	payload, ok := extractJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in reply", domain.ErrMalformedScorerResponse)
	}

	var wire classificationWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedScorerResponse, err)
	}

	if wire.RelevanceScore == nil {
		return nil, fmt.Errorf("%w: relevance_score missing", domain.ErrMalformedScorerResponse)
	}

	score := *wire.RelevanceScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return &domain.Classification{
		RelevanceScore: score,
		Summary:        strings.TrimSpace(wire.Summary),
		KeyTopics:      wire.KeyTopics,
		FilteredReason: strings.TrimSpace(wire.FilteredReason),
	}, nil
}

// extractJSONObject returns the first balanced top-level JSON object in
// raw. Models wrap replies in prose or code fences often enough that a
// plain Unmarshal of the whole string is not reliable.
func extractJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}

	return "", false
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
