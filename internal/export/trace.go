package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/allvis/internal/experiment"
)

// TraceJSON writes the trace document: visualizer, input, result and
// every step.
func TraceJSON(w io.Writer, tv experiment.TraceView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tv); err != nil {
		return fmt.Errorf("export: trace json: %w", err)
	}
	return nil
}

// TraceCSV writes one row per step under the view's header.
func TraceCSV(w io.Writer, tv experiment.TraceView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tv.Header()); err != nil {
		return fmt.Errorf("export: trace csv: %w", err)
	}
	for i := 0; i < tv.Len(); i++ {
		if err := cw.Write(tv.Row(i)); err != nil {
			return fmt.Errorf("export: trace csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
