package tracker

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/trackerview/internal/logging"
)

// ErrNoNameColumn is returned when the dataset header lacks the name column.
var ErrNoNameColumn = errors.New("dataset has no " + ColumnName + " column")

// LoadFile reads the CSV dataset at path.
func LoadFile(ctx context.Context, path string) ([]Row, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided dataset
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	rows, err := Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	logging.FromContext(ctx).Debug("dataset loaded",
		slog.String("path", path),
		slog.Int("rows", len(rows)),
	)

	return rows, nil
}

// Parse reads CSV records from r. The first record is the header; columns
// are matched by their snake_cased name and unknown columns are ignored.
// Records without a name are skipped.
func Parse(ctx context.Context, r io.Reader) ([]Row, error) {
	logger := logging.FromContext(ctx)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make([]string, len(header))
	hasName := false

	for i, h := range header {
		columns[i] = toSnakeCase(h)
		if columns[i] == ColumnName {
			hasName = true
		}
	}

	if !hasName {
		return nil, ErrNoNameColumn
	}

	rows := []Row{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		var row Row

		for i, value := range record {
			if i >= len(columns) {
				break
			}

			row.setColumn(columns[i], strings.TrimSpace(value))
		}

		if row.Name == "" {
			line, _ := reader.FieldPos(0)
			logger.Debug("skipping record without name", slog.Int("line", line))

			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// toSnakeCase converts "Use Case" or "use-case" into "use_case".
func toSnakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, " ", "_")

	return strings.ReplaceAll(s, "-", "_")
}
