// Package csv loads delimited text files into domain tables.
// It owns encoding negotiation: sources that are not valid UTF-8 fall
// back to legacy single-byte encodings before parsing.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
	"github.com/veridata-labs/veridata-cli/internal/logger"
)

// DefaultDelimiter is the field separator used when none is
// configured.
const DefaultDelimiter = ','

// missingSentinels are cell literals treated as absent values.
var missingSentinels = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"null": true,
	"NULL": true,
	"NaN":  true,
	"nan":  true,
}

// Ensure Loader implements the interface.
var _ driven.TableLoader = (*Loader)(nil)

// Loader parses delimited files into fully materialised tables.
type Loader struct {
	delimiter rune
}

// Option configures the loader.
type Option func(*Loader)

// WithDelimiter sets the default field separator.
func WithDelimiter(d rune) Option {
	return func(l *Loader) {
		if d != 0 {
			l.delimiter = d
		}
	}
}

// New creates a loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads, decodes and parses the file at path. Row count is
// uniform across columns by construction: ragged records fail the
// parse. A file with no data rows loads successfully as an empty
// table; flagging that is the structural check's job.
func (l *Loader) Load(_ context.Context, path string, opts domain.LoadOptions) (*domain.Table, error) {
	delim := l.delimiter
	if opts.Delimiter != 0 {
		delim = opts.Delimiter
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text, encName, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	logger.Debug("decoded %s as %s (%d bytes)", path, encName, len(data))

	r := stdcsv.NewReader(strings.NewReader(text))
	r.Comma = delim
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	tbl := &domain.Table{}
	if len(records) > 0 {
		headers := records[0]
		rows := records[1:]

		tbl.Columns = make([]domain.Column, len(headers))
		for i, name := range headers {
			tbl.Columns[i] = domain.Column{
				Name:   name,
				Values: make([]domain.Value, 0, len(rows)),
			}
		}
		for _, rec := range rows {
			for i := range tbl.Columns {
				tbl.Columns[i].Values = append(tbl.Columns[i].Values, classify(rec[i]))
			}
		}
	}

	tbl.Source = domain.SourceInfo{
		Path:      path,
		Encoding:  encName,
		Delimiter: string(delim),
		SizeBytes: int64(len(data)),
		Rows:      tbl.RowCount(),
		Columns:   tbl.ColumnCount(),
		Headers:   tbl.Headers(),
	}
	return tbl, nil
}

// classify types a single cell. Classification happens exactly once
// here; checks downstream rely on the cell kind instead of re-parsing.
func classify(cell string) domain.Value {
	if missingSentinels[cell] {
		return domain.Value{Kind: domain.KindMissing}
	}
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return domain.Value{Kind: domain.KindNumeric, Raw: cell, Num: n}
	}
	switch cell {
	case "true", "True", "TRUE":
		return domain.Value{Kind: domain.KindBoolean, Raw: cell, Bool: true}
	case "false", "False", "FALSE":
		return domain.Value{Kind: domain.KindBoolean, Raw: cell, Bool: false}
	}
	return domain.Value{Kind: domain.KindText, Raw: cell}
}
