package report

import (
	"encoding/json"
	"io"

	"github.com/praxisdev/praxis/internal/domain"
)

// WriteJSON serializes a validation report directly; the report shape is the
// stable contract owed to external consumers.
func WriteJSON(w io.Writer, report *domain.ValidationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
