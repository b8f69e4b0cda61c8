package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/amishk599/careerpath/internal/model"
)

// Meta describes the rule set being exported.
type Meta struct {
	Source     string
	DatasetID  string
	Thresholds model.Thresholds
}

// Exporter writes a ranked rule list somewhere.
type Exporter interface {
	Export(rules []model.Rule, meta Meta) error
	Close() error
}

// Header is the column layout of the delimited rules export.
var Header = []string{
	"antecedents",
	"consequents",
	"antecedent support",
	"consequent support",
	"support",
	"confidence",
	"lift",
}

// ForPath picks the exporter from the file extension: .db, .sqlite and
// .sqlite3 produce a SQLite file, anything else a CSV file.
func ForPath(path string) (Exporter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		s, err := NewSQLiteExporter(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite export: %w", err)
		}
		return s, nil
	default:
		c, err := NewCSVFileExporter(path)
		if err != nil {
			return nil, fmt.Errorf("open csv export: %w", err)
		}
		return c, nil
	}
}
