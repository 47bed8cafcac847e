package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvqhuy/Classboard/config"
)

func newAnalysisService(url string) AnalysisLLMService {
	return NewAnalysisLLMService(&config.Config{
		Analysis: config.Analysis{URL: url, TimeoutSeconds: 5},
	})
}

func TestAnalyzeFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt  string `json:"prompt"`
			Content string `json:"content"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "summarize", req.Prompt)
		assert.Equal(t, "file body", req.Content)

		json.NewEncoder(w).Encode(map[string]string{
			"response": "<think>internal chain of thought</think>This is the analysis.",
		})
	}))
	defer server.Close()

	svc := newAnalysisService(server.URL)
	got, err := svc.AnalyzeFile(context.Background(), "summarize", "file body")
	require.NoError(t, err)
	assert.Equal(t, "This is the analysis.", got)
}

func TestAnalyzeFileNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newAnalysisService(server.URL)
	_, err := svc.AnalyzeFile(context.Background(), "summarize", "file body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestAnalyzeFileEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": ""})
	}))
	defer server.Close()

	svc := newAnalysisService(server.URL)
	_, err := svc.AnalyzeFile(context.Background(), "summarize", "file body")
	require.Error(t, err)
}

func TestAnalyzeFileUnconfigured(t *testing.T) {
	svc := newAnalysisService("")
	_, err := svc.AnalyzeFile(context.Background(), "summarize", "file body")
	require.Error(t, err)
}

func TestStripReasoning(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no markers", "plain text", "plain text"},
		{"single block", "<think>hidden</think>visible", "visible"},
		{"block in middle", "start <think>hidden</think>end", "start end"},
		{"multiple blocks", "<think>a</think>one<think>b</think> two", "one two"},
		{"unterminated marker", "kept<think>dropped to the end", "kept"},
		{"whitespace trimmed", "  <think>x</think>  result  ", "result"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripReasoning(tc.in))
		})
	}
}
