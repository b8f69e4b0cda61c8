package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/amishk599/careerpath/internal/miner"
	"github.com/amishk599/careerpath/internal/model"
)

// Ensure CSVExporter implements Exporter.
var _ Exporter = (*CSVExporter)(nil)

// CSVExporter writes rules as a comma-separated table. Multi-valued
// antecedent/consequent fields are joined with ", ".
type CSVExporter struct {
	w      io.Writer
	closer io.Closer
}

// NewCSVExporter writes to w.
func NewCSVExporter(w io.Writer) *CSVExporter {
	return &CSVExporter{w: w}
}

// NewCSVFileExporter creates (or truncates) the file at path.
func NewCSVFileExporter(path string) (*CSVExporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVExporter{w: f, closer: f}, nil
}

// Export writes the header and one row per rule. Meta is not part of the CSV layout.
func (e *CSVExporter) Export(rules []model.Rule, _ Meta) error {
	cw := csv.NewWriter(e.w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rules {
		row := []string{
			miner.Join(r.Antecedents),
			miner.Join(r.Consequents),
			formatFloat(r.AntecedentSupport),
			formatFloat(r.ConsequentSupport),
			formatFloat(r.Support),
			formatFloat(r.Confidence),
			formatFloat(r.Lift),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing rule row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// Close closes the underlying file, if the exporter opened one.
func (e *CSVExporter) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
