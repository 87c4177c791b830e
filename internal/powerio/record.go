package powerio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/samdwyer/powereditor/internal/power"
)

// ErrBadRecord is returned when clipboard text is not a header line followed by a value line.
var ErrBadRecord = errors.New("not a power record")

// EncodeRecord renders one power as two CSV lines: its columns and its values.
// This is the clipboard format used for copy and paste.
func EncodeRecord(p *power.Power) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(p.Columns()); err != nil {
		return "", err
	}
	if err := w.Write(p.Values()); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DecodeRecord parses text produced by EncodeRecord into column values.
func DecodeRecord(text string) (map[string]string, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	if len(rows) != 2 {
		return nil, fmt.Errorf("%w: want 2 lines, got %d", ErrBadRecord, len(rows))
	}
	header, values := trimHeader(rows[0]), rows[1]
	if !contains(header, power.ColID) || !contains(header, power.ColName) {
		return nil, fmt.Errorf("%w: missing %s or %s", ErrBadRecord, power.ColID, power.ColName)
	}
	if len(values) > len(header) {
		return nil, fmt.Errorf("%w: %d values for %d columns", ErrBadRecord, len(values), len(header))
	}

	out := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(values) {
			out[col] = values[i]
		} else {
			out[col] = ""
		}
	}
	return out, nil
}
