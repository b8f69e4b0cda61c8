package dataset

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/amishk599/careerpath/internal/model"
)

// BundledSource is the Source name of the embedded default dataset.
const BundledSource = "bundled"

//go:embed default_paths.csv
var bundledCSV []byte

// Options controls how a table is turned into career paths.
type Options struct {
	// StepColumns names the ordered step columns. Empty means every column
	// after the first (id-like) one.
	StepColumns []string
}

// Table is a decoded, delimiter-split input file.
type Table struct {
	Source    string
	Encoding  string
	Delimiter rune
	Header    []string
	Rows      [][]string
	Steps     []int // header indexes of the step columns, in step order
	hash      string
}

// StepNames returns the header names of the step columns.
func (t *Table) StepNames() []string {
	names := make([]string, len(t.Steps))
	for i, idx := range t.Steps {
		names[i] = t.Header[idx]
	}
	return names
}

type decoder struct {
	name   string
	decode func([]byte) (string, bool)
}

// Tried in order; the first one that yields a usable table wins. The x/text
// EUC-KR decoder covers the CP949 extension, so it serves both labels.
var decoders = []decoder{
	{name: "utf-8", decode: decodeUTF8},
	{name: "cp949", decode: decodeKorean},
}

var delimiters = []rune{',', ';', '\t', '|'}

// Load reads the table at path, or the bundled default when path is empty.
func Load(path string, opts Options) (*Table, error) {
	if path == "" {
		return Parse(BundledSource, bytes.NewReader(bundledCSV), opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &model.DataFormatError{Source: path, Reason: "open file", Err: err}
	}
	defer f.Close()
	return Parse(path, f, opts)
}

// Parse decodes r by trying each known encoding and delimiter and resolves
// the step columns. It fails with *model.DataFormatError when no combination
// produces a non-empty table with the requested columns.
func Parse(source string, r io.Reader, opts Options) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &model.DataFormatError{Source: source, Reason: "read input", Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &model.DataFormatError{Source: source, Reason: "empty input"}
	}

	var lastErr error
	for _, dec := range decoders {
		text, ok := dec.decode(raw)
		if !ok {
			continue
		}
		t, err := split(text)
		if err != nil {
			lastErr = err
			continue
		}
		t.Source = source
		t.Encoding = dec.name
		if len(t.Rows) == 0 {
			return nil, &model.DataFormatError{Source: source, Reason: "no data rows"}
		}
		steps, err := resolveSteps(t.Header, opts.StepColumns)
		if err != nil {
			return nil, &model.DataFormatError{Source: source, Reason: "resolve step columns", Err: err}
		}
		t.Steps = steps
		t.hash = hashTable(t)
		return t, nil
	}
	return nil, &model.DataFormatError{Source: source, Reason: "unreadable under every tried encoding and delimiter", Err: lastErr}
}

func decodeUTF8(raw []byte) (string, bool) {
	if !utf8.Valid(raw) {
		return "", false
	}
	// UTF8BOM strips a leading byte order mark when present.
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func decodeKorean(raw []byte) (string, bool) {
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), raw)
	if err != nil {
		return "", false
	}
	s := string(out)
	if strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}
	return s, true
}

// split sniffs the delimiter: the candidate whose rows most consistently match
// the header width wins, wider headers breaking ties.
func split(text string) (*Table, error) {
	var (
		best      [][]string
		bestDelim rune
		bestScore float64
		lastErr   error
	)
	for _, d := range delimiters {
		records, err := readAll(text, d)
		if err != nil {
			lastErr = err
			continue
		}
		if len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		width := len(records[0])
		consistent := 0
		for _, rec := range records[1:] {
			if len(rec) == width {
				consistent++
			}
		}
		score := 1.0
		if len(records) > 1 {
			score = float64(consistent) / float64(len(records)-1)
		}
		if best == nil || score > bestScore || (score == bestScore && width > len(best[0])) {
			best, bestDelim, bestScore = records, d, score
		}
	}
	if best == nil {
		if lastErr == nil {
			lastErr = fmt.Errorf("no delimiter yields at least two columns")
		}
		return nil, lastErr
	}

	header := make([]string, len(best[0]))
	for i, h := range best[0] {
		header[i] = Clean(h)
	}
	var rows [][]string
	for _, rec := range best[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return &Table{Delimiter: bestDelim, Header: header, Rows: rows}, nil
}

func readAll(text string, delim rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func resolveSteps(header []string, want []string) ([]int, error) {
	if len(want) == 0 {
		steps := make([]int, 0, len(header)-1)
		for i := 1; i < len(header); i++ {
			steps = append(steps, i)
		}
		return steps, nil
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	steps := make([]int, 0, len(want))
	var missing []string
	for _, w := range want {
		idx, ok := index[Clean(w)]
		if !ok {
			missing = append(missing, w)
			continue
		}
		steps = append(steps, idx)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %q (have %q)", missing, header)
	}
	return steps, nil
}

// Clean trims a cell and normalises it to NFC so that the same position
// typed on different systems compares equal.
func Clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func hashTable(t *Table) string {
	h := sha256.New()
	for _, col := range t.Header {
		io.WriteString(h, col)
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0x1e})
	// The same table read with other step columns is a different dataset.
	for _, idx := range t.Steps {
		fmt.Fprintf(h, "%d", idx)
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0x1e})
	for _, row := range t.Rows {
		for _, c := range row {
			io.WriteString(h, c)
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
