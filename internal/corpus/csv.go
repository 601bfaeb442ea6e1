package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	titleColumn  = "title"
	genresColumn = "genres"
)

// CSVSource reads a comma-separated dataset with a header row.
type CSVSource struct {
	Path    string
	Options Options
}

// Load implements Source.
func (s CSVSource) Load(ctx context.Context) ([]Record, error) {
	return LoadCSV(ctx, s.Path, s.Options)
}

// Describe implements Source.
func (s CSVSource) Describe() string {
	return "csv:" + s.Path
}

// LoadCSV reads the dataset at path.
func LoadCSV(ctx context.Context, path string, opts Options) ([]Record, error) {
	if strings.TrimSpace(path) == "" {
		return nil, newLoadError("csv", "no corpus path configured", nil)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, newLoadError(path, "open dataset", err)
	}
	defer file.Close()
	return ReadCSV(ctx, file, path, opts)
}

// ReadCSV parses CSV data from r. name identifies the source in errors and logs.
func ReadCSV(ctx context.Context, r io.Reader, name string, opts Options) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, newLoadError(name, "dataset is empty", nil)
		}
		return nil, newLoadError(name, "read header", err)
	}
	titleCol, genresCol, err := locateColumns(header)
	if err != nil {
		return nil, newLoadError(name, err.Error(), nil)
	}

	b := newBuilder(ctx, name, opts)
	for row := 2; ; row++ {
		if row%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				b.skip(row, parseErr.Err.Error())
				continue
			}
			return nil, newLoadError(name, fmt.Sprintf("read row %d", row), err)
		}
		b.add(row, field(fields, titleCol), field(fields, genresCol))
	}
	return b.finish()
}

func locateColumns(header []string) (int, int, error) {
	titleCol, genresCol := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch name {
		case titleColumn:
			if titleCol < 0 {
				titleCol = i
			}
		case genresColumn:
			if genresCol < 0 {
				genresCol = i
			}
		}
	}
	var missing []string
	if titleCol < 0 {
		missing = append(missing, titleColumn)
	}
	if genresCol < 0 {
		missing = append(missing, genresColumn)
	}
	if len(missing) > 0 {
		return 0, 0, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return titleCol, genresCol, nil
}

func field(fields []string, col int) string {
	if col < len(fields) {
		return fields[col]
	}
	return ""
}
