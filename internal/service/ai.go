package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"planhaus/internal/model"
)

// AIService wraps an OpenAI-compatible chat completions endpoint. The rest of
// the app treats it as prompt-in/text-out.
type AIService struct {
	baseURL string
	apiKey  string
	mdl     string
	client  *http.Client
}

func NewAIService(baseURL, apiKey, mdl string) *AIService {
	return &AIService{baseURL: baseURL, apiKey: apiKey, mdl: mdl, client: &http.Client{}}
}

func (s *AIService) doChat(ctx context.Context, messages []map[string]string, stream bool, flush func(string)) (string, error) {
	body := map[string]interface{}{
		"model":    s.mdl,
		"stream":   stream,
		"messages": messages,
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm status %d: %s", resp.StatusCode, data)
	}

	if !stream {
		data, _ := io.ReadAll(resp.Body)
		var result struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(data, &result); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		if len(result.Choices) == 0 {
			return "", fmt.Errorf("empty choices")
		}
		return result.Choices[0].Message.Content, nil
	}

	scanner := bufio.NewScanner(resp.Body)
	var full strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := line[6:]
		if data == "[DONE]" {
			break
		}
		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if json.Unmarshal([]byte(data), &chunk) == nil && len(chunk.Choices) > 0 {
			token := chunk.Choices[0].Delta.Content
			if token != "" {
				full.WriteString(token)
				if flush != nil {
					flush(token)
				}
			}
		}
	}
	return full.String(), nil
}

// Generate is the plain prompt-in/text-out call.
func (s *AIService) Generate(ctx context.Context, system, user string) (string, error) {
	return s.doChat(ctx, []map[string]string{
		{"role": "system", "content": system},
		{"role": "user", "content": user},
	}, false, nil)
}

const assistantSystem = `You are PlanHaus, a wedding planning assistant. You help couples with
budgets, timelines, vendors, guests and seating. Be concrete and concise.
When project context is provided, ground your answers in it.`

// StreamAssistant streams an assistant reply, feeding tokens to flush as they
// arrive. History is replayed ahead of the new message.
func (s *AIService) StreamAssistant(ctx context.Context, projectContext string, history []model.HistoryItem, text string, flush func(string)) (string, error) {
	system := assistantSystem
	if projectContext != "" {
		system += "\n\nProject context:\n" + projectContext
	}
	messages := []map[string]string{{"role": "system", "content": system}}
	for _, h := range history {
		if h.Role != "user" && h.Role != "assistant" {
			continue
		}
		messages = append(messages, map[string]string{"role": h.Role, "content": h.Content})
	}
	messages = append(messages, map[string]string{"role": "user", "content": text})
	return s.doChat(ctx, messages, true, flush)
}

// SuggestNextSteps produces a short list of next planning actions for the
// project state summary.
func (s *AIService) SuggestNextSteps(ctx context.Context, summary string) (string, error) {
	system := `Given the current state of a wedding project, suggest the three most
useful next actions as a short bulleted list. No preamble.`
	out, err := s.Generate(ctx, system, summary)
	if err != nil {
		return "", fmt.Errorf("suggest next steps: %w", err)
	}
	return out, nil
}
