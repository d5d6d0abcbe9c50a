// Package report turns ledger history into exportable text: CSV for
// spreadsheets and plain-text worknotes for ticketing systems.
package report

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/jsr4564/WepaAPP/internal/domain"
)

var csvHeader = []string{"timestamp", "component_id", "previous_condition", "new_condition"}

// CSV renders the event history as RFC 4180 comma-separated text, one row
// per event in ledger (chronological) order, header included.
func CSV(events []domain.Event) (string, error) {
	var out strings.Builder
	writer := csv.NewWriter(&out)

	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, event := range events {
		row := []string{
			formatTimestamp(event.Timestamp),
			string(event.Component),
			string(event.Previous),
			string(event.New),
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return out.String(), nil
}

func formatTimestamp(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return at.Format(time.RFC3339)
}
