package output

import (
	"fmt"
	"strings"

	"github.com/adforge/adforge/internal/veolink"
)

// MarkdownFormatter renders results as markdown.
type MarkdownFormatter struct{}

// FormatResponse renders a prompt response as markdown, one section per
// strategy. Segments that satisfy the tag contract are rendered line by
// line; anything else falls back to a fenced block.
func (f *MarkdownFormatter) FormatResponse(response *veolink.PromptResponse) (string, error) {
	if response == nil || len(response.Strategies) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for i, strategy := range response.Strategies {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", strategy.Title))
		sb.WriteString(fmt.Sprintf("**Angle**: %s\n", strategy.MarketingAngle))
		sb.WriteString(fmt.Sprintf("**Duration**: %s\n", strategy.TotalDuration))
		if strategy.TikTokCaption != "" {
			sb.WriteString(fmt.Sprintf("**Caption**: %s\n", strategy.TikTokCaption))
		}
		if len(strategy.TikTokHashtags) > 0 {
			sb.WriteString(fmt.Sprintf("**Hashtags**: %s\n", hashtagLine(strategy.TikTokHashtags)))
		}

		for _, segment := range strategy.Segments {
			sb.WriteString(fmt.Sprintf("\n### Segment %d", segment.Index+1))
			if segment.DurationGuide != "" {
				sb.WriteString(" (" + segment.DurationGuide + ")")
			}
			sb.WriteString("\n\n")

			lines, err := veolink.ParsePromptBlock(segment.FullPrompt)
			if err != nil {
				sb.WriteString("```\n" + segment.FullPrompt + "\n```\n")
				continue
			}
			for _, line := range lines {
				sb.WriteString(fmt.Sprintf("- **%s**: %s\n", line.Tag, escapeMarkdownCell(line.Content)))
			}
		}
	}

	return sb.String(), nil
}

// FormatHistory renders a history listing as a markdown table.
func (f *MarkdownFormatter) FormatHistory(items []veolink.HistoryItem) (string, error) {
	if len(items) == 0 {
		return "No history yet.", nil
	}

	var sb strings.Builder
	sb.WriteString("| ID | Created | Product | Strategy |\n")
	sb.WriteString("|----|---------|---------|----------|\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			escapeMarkdownCell(item.ID),
			item.CreatedAt.Format("2006-01-02 15:04"),
			escapeMarkdownCell(item.ProductName),
			escapeMarkdownCell(item.Strategy.Title),
		))
	}

	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
