package output

import (
	"encoding/json"

	"github.com/adforge/adforge/internal/veolink"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatResponse renders a prompt response as JSON.
func (f *JSONFormatter) FormatResponse(response *veolink.PromptResponse) (string, error) {
	if response == nil {
		return "", nil
	}
	return f.marshal(response)
}

// FormatHistory renders a history listing as JSON.
func (f *JSONFormatter) FormatHistory(items []veolink.HistoryItem) (string, error) {
	if items == nil {
		items = []veolink.HistoryItem{}
	}
	return f.marshal(items)
}

func (f *JSONFormatter) marshal(value any) (string, error) {
	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
