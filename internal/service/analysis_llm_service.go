package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tvqhuy/Classboard/config"
)

// AnalysisLLMService talks to the external language-model collaborator:
// one HTTP round trip per file, fixed timeout, no retries.
type AnalysisLLMService interface {
	AnalyzeFile(ctx context.Context, prompt, content string) (string, error)
}

type analysisLLMService struct {
	client *http.Client
	url    string
}

type analysisRequest struct {
	Prompt  string `json:"prompt"`
	Content string `json:"content"`
}

type analysisResponse struct {
	Response string `json:"response"`
}

func NewAnalysisLLMService(cfg *config.Config) AnalysisLLMService {
	if cfg.Analysis.URL == "" {
		log.Warn().Msg("ANALYSIS_URL is not set. AnalysisLLMService will be non-functional.")
	}
	return &analysisLLMService{
		client: &http.Client{Timeout: time.Duration(cfg.Analysis.TimeoutSeconds) * time.Second},
		url:    cfg.Analysis.URL,
	}
}

const (
	reasoningOpen  = "<think>"
	reasoningClose = "</think>"
)

// stripReasoning removes embedded reasoning markup from the collaborator's
// text. An unterminated marker drops everything after it.
func stripReasoning(text string) string {
	for {
		open := strings.Index(text, reasoningOpen)
		if open == -1 {
			break
		}
		end := strings.Index(text[open:], reasoningClose)
		if end == -1 {
			text = text[:open]
			break
		}
		text = text[:open] + text[open+end+len(reasoningClose):]
	}
	return strings.TrimSpace(text)
}

func (s *analysisLLMService) AnalyzeFile(ctx context.Context, prompt, content string) (string, error) {
	if s.url == "" {
		return "", fmt.Errorf("analysis service is not configured")
	}

	body, err := json.Marshal(analysisRequest{Prompt: prompt, Content: content})
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("analysis service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var parsed analysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode analysis response: %w", err)
	}
	if parsed.Response == "" {
		return "", fmt.Errorf("analysis service returned no content")
	}

	return stripReasoning(parsed.Response), nil
}
