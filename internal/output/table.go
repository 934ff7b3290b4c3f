package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/adforge/adforge/internal/veolink"
)

// TableFormatter renders results as ASCII tables with the full prompt text
// printed beneath each strategy, ready to copy into the video tool.
type TableFormatter struct{}

// FormatResponse renders the strategies of a prompt response.
func (f *TableFormatter) FormatResponse(response *veolink.PromptResponse) (string, error) {
	if response == nil || len(response.Strategies) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for i, strategy := range response.Strategies {
		if i > 0 {
			sb.WriteString("\n\n")
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetTitle(strategy.Title)
		t.AppendRow(table.Row{"Angle", strategy.MarketingAngle})
		t.AppendRow(table.Row{"Duration", strategy.TotalDuration})
		if strategy.TikTokCaption != "" {
			t.AppendRow(table.Row{"Caption", strategy.TikTokCaption})
		}
		if len(strategy.TikTokHashtags) > 0 {
			t.AppendRow(table.Row{"Hashtags", hashtagLine(strategy.TikTokHashtags)})
		}
		sb.WriteString(t.Render())

		for _, segment := range strategy.Segments {
			sb.WriteString(fmt.Sprintf("\n\n--- Segment %d", segment.Index+1))
			if segment.DurationGuide != "" {
				sb.WriteString(" (" + segment.DurationGuide + ")")
			}
			sb.WriteString(" ---\n")
			sb.WriteString(segment.FullPrompt)
		}
	}

	return sb.String(), nil
}

// FormatHistory renders a history listing as a table.
func (f *TableFormatter) FormatHistory(items []veolink.HistoryItem) (string, error) {
	if len(items) == 0 {
		return "No history yet.", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Created", "Product", "Strategy"})

	for _, item := range items {
		t.AppendRow(table.Row{
			item.ID,
			item.CreatedAt.Format("2006-01-02 15:04"),
			item.ProductName,
			item.Strategy.Title,
		})
	}

	return t.Render(), nil
}
