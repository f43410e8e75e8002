package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Analyzer decides whether an announcement reports a class cancellation by
// asking an OpenAI chat model for a structured JSON verdict.
type Analyzer struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

func New(apiKey, model string, temperature float64, maxTokens int64) *Analyzer {
	return &Analyzer{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Run classifies a single announcement. Transport failures and unparsable
// model output both surface as *AnalysisError.
func (a *Analyzer) Run(ctx context.Context, title, body string) (*Classification, error) {
	prompt := buildPrompt(title, body)

	response, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(a.temperature),
		MaxTokens:   openai.Int(a.maxTokens),
	})
	if err != nil {
		return nil, &AnalysisError{Err: fmt.Errorf("openai request failed: %w", err)}
	}

	if len(response.Choices) == 0 {
		return nil, &AnalysisError{Err: fmt.Errorf("no response from openai")}
	}

	return parseResponse(response.Choices[0].Message.Content)
}

// parseResponse extracts the classification JSON from the model output.
// Models frequently wrap JSON in fenced code blocks despite instructions not
// to, so fences are stripped before parsing.
func parseResponse(content string) (*Classification, error) {
	cleaned := stripCodeFence(content)

	var result Classification
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &AnalysisError{
			Err:         fmt.Errorf("failed to parse model response: %w", err),
			RawResponse: content,
		}
	}

	return &result, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func buildPrompt(title, body string) string {
	var sb strings.Builder
	sb.WriteString("Decide whether the following course announcement reports a class cancellation.\n")
	sb.WriteString("If it does, extract the details; if not, set canceled to false.\n\n")
	sb.WriteString("Use null for any field that cannot be determined. Dates are YYYY-MM-DD,\n")
	sb.WriteString("periods are written like \"period 3\".\n\n")
	sb.WriteString("Announcement title: " + title + "\n")
	sb.WriteString("Announcement body: " + body + "\n\n")
	sb.WriteString("Output JSON format:\n")
	sb.WriteString("```json\n")
	sb.WriteString(`{
  "course": "course name",
  "date": "YYYY-MM-DD",
  "period": "period",
  "canceled": true/false,
  "source": "KLMS",
  "message": "short note about the cancellation"
}`)
	sb.WriteString("\n```\n\n")
	sb.WriteString("Output only the JSON. Do not include any additional text or explanation.\n")
	return sb.String()
}
