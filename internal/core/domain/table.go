package domain

// ValueKind classifies a single cell value.
type ValueKind int

const (
	// KindMissing marks an absent value (empty cell or NA sentinel).
	KindMissing ValueKind = iota

	// KindText is free-form textual content.
	KindText

	// KindNumeric is a value that parses as a floating-point number.
	KindNumeric

	// KindBoolean is a true/false literal.
	KindBoolean
)

// String returns the lower-case name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindText:
		return "text"
	case KindNumeric:
		return "numeric"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is a single cell. The loader classifies each cell once;
// checks never re-parse beyond what Kind already encodes.
type Value struct {
	// Kind is the semantic type of this cell.
	Kind ValueKind

	// Raw is the original string form as read from the source.
	// Empty for missing values.
	Raw string

	// Num holds the parsed number when Kind is KindNumeric.
	Num float64

	// Bool holds the parsed boolean when Kind is KindBoolean.
	Bool bool
}

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Column is a named, ordered sequence of cell values.
type Column struct {
	// Name is the declared header. Uniqueness is NOT guaranteed;
	// duplicate names are a structural finding, not a load error.
	Name string

	// Values holds one cell per row, in row order.
	Values []Value
}

// Type returns the dominant inferred type of the column:
// numeric when every non-missing value is numeric, boolean when every
// non-missing value is boolean, otherwise text. A column with no
// non-missing values reports KindMissing.
func (c *Column) Type() ValueKind {
	var seen int
	allNumeric, allBoolean := true, true
	for _, v := range c.Values {
		if v.IsMissing() {
			continue
		}
		seen++
		if v.Kind != KindNumeric {
			allNumeric = false
		}
		if v.Kind != KindBoolean {
			allBoolean = false
		}
	}
	switch {
	case seen == 0:
		return KindMissing
	case allNumeric:
		return KindNumeric
	case allBoolean:
		return KindBoolean
	default:
		return KindText
	}
}

// NonMissing returns the non-missing values in row order.
func (c *Column) NonMissing() []Value {
	out := make([]Value, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.IsMissing() {
			out = append(out, v)
		}
	}
	return out
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			n++
		}
	}
	return n
}

// SourceInfo describes the originating delimited source, as reported
// by the loader. The core never touches the filesystem itself.
type SourceInfo struct {
	// Path is the location the table was loaded from.
	Path string `json:"path"`

	// Encoding is the character encoding that was actually used
	// after fallback negotiation.
	Encoding string `json:"encoding"`

	// Delimiter is the field separator used when parsing.
	Delimiter string `json:"delimiter"`

	// SizeBytes is the byte size of the originating source.
	SizeBytes int64 `json:"size_bytes"`

	// Rows is the data row count (headers excluded).
	Rows int `json:"rows"`

	// Columns is the column count.
	Columns int `json:"columns"`

	// Headers holds the column names in declared order.
	Headers []string `json:"headers"`
}

// Table is a fully materialised dataset: an ordered sequence of named
// columns with a uniform row count. Tables are exclusively owned by a
// single audit run and are never mutated by any check.
type Table struct {
	// Columns in declared order.
	Columns []Column

	// Source carries the loader-reported statistics.
	Source SourceInfo
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// Headers returns the column names in declared order.
func (t *Table) Headers() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// Column returns the first column with the given name.
// Lookup is positional under duplicate names: the earliest wins.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// LoadOptions controls how a source is parsed into a Table.
type LoadOptions struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
}
