// Package powerio loads and saves power tables and the column description file.
package powerio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/telemetry"
)

// Preamble is the optional first line of a power table, written back on save.
const Preamble = "powerTypes"

var (
	// ErrNoHeader is returned when a file has no header row.
	ErrNoHeader = errors.New("missing header row")
	// ErrMissingColumn is returned when the header lacks PowerID or PowerName.
	ErrMissingColumn = errors.New("missing required column")
)

// LoadResult reports what LoadPowers read.
type LoadResult struct {
	Powers  []*power.Power
	Columns []string
	Skipped int // malformed rows dropped
}

// LoadPowers reads a power table from path.
func LoadPowers(ctx context.Context, path string) (*LoadResult, error) {
	tracer := telemetry.Tracer("powerio")
	_, span := tracer.Start(ctx, "powers.load")
	defer span.End()
	span.SetAttributes(attribute.String("file.path", path))

	f, err := os.Open(path)
	if err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	res, err := ReadPowers(f)
	if err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	span.SetAttributes(
		attribute.Int("powers.count", len(res.Powers)),
		attribute.Int("powers.skipped", res.Skipped),
		attribute.Int("powers.columns", len(res.Columns)),
	)
	return res, nil
}

// ReadPowers parses a power table. A leading "powerTypes" line is skipped. Rows that fail
// to parse are dropped and counted rather than failing the load.
func ReadPowers(r io.Reader) (*LoadResult, error) {
	br := bufio.NewReader(r)
	if err := skipPreamble(br); err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}
	header = trimHeader(header)
	for _, required := range []string{power.ColID, power.ColName} {
		if !contains(header, required) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	res := &LoadResult{Columns: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}
		if isBlankRow(row) {
			continue
		}
		if len(row) > len(header) {
			res.Skipped++
			continue
		}
		res.Powers = append(res.Powers, power.FromRow(header, row))
	}
	return res, nil
}

func skipPreamble(br *bufio.Reader) error {
	peek, err := br.Peek(len(Preamble) + len("\ufeff"))
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return err
	}
	peek = bytes.TrimPrefix(peek, []byte("\ufeff"))
	if !bytes.HasPrefix(peek, []byte(Preamble)) {
		return nil
	}
	_, err = br.ReadString('\n')
	if err == io.EOF {
		return nil
	}
	return err
}

func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SavePowers writes powers to path through a temporary file renamed into place, so a failed
// save leaves the original untouched.
func SavePowers(ctx context.Context, path string, powers []*power.Power) (err error) {
	tracer := telemetry.Tracer("powerio")
	_, span := tracer.Start(ctx, "powers.save")
	defer span.End()
	span.SetAttributes(
		attribute.String("file.path", path),
		attribute.Int("powers.count", len(powers)),
	)

	tmpPath := path + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			span.SetAttributes(attribute.Bool("failed", true))
		}
	}()

	if err = WritePowers(tmp, powers); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// WritePowers writes the preamble, the header and one row per power. The header is the
// column shape of the first power, or DefaultColumns for an empty list.
func WritePowers(w io.Writer, powers []*power.Power) error {
	if _, err := io.WriteString(w, Preamble+"\n"); err != nil {
		return err
	}

	columns := DefaultColumns
	if len(powers) > 0 {
		columns = powers[0].Columns()
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, p := range powers {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = p.Get(col)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
