package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umuganda/community-activity-api/internal/analytics"
)

// NarrativeService turns computed insights into a short prose summary for
// report documents. It sits outside the analytics engine: the engine stays
// deterministic, and the narrative is a presentation extra that is simply
// unavailable when no API key is configured.
type NarrativeService struct {
	client *openai.Client
}

func NewNarrativeService(apiKey string) *NarrativeService {
	return &NarrativeService{
		client: openai.NewClient(apiKey),
	}
}

// Summarize writes a short narrative paragraph from an activity's computed
// analytics.
func (s *NarrativeService) Summarize(ctx context.Context, report *analytics.ActivityReport) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are drafting the narrative section of a community activity report.

Activity: %s
Overall status: %s
Completion rate: %d%%
Participation rate: %d%%
Cost variance: %d

Key points:
%s

Recommendations:
%s

Write one short paragraph (3-5 sentences) in plain English summarizing how the activity went. State facts from the figures above only; do not invent numbers. Return only the paragraph.`,
		report.Activity.Title,
		report.Insights.OverallStatus,
		report.Summary.CompletionRate,
		report.Participation.ParticipationRate,
		report.Financial.CostVariance,
		bulletList(report.Insights.KeyPoints),
		bulletList(report.Insights.Recommendations),
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- none"
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
