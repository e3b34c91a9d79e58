package ingest

import (
	"iter"
	"strings"
)

// candidate delimiters, in tie-break priority order
var delimiters = []rune{',', '\t', ';', '|'}

// Cell is one header/value pair of a parsed row.
type Cell struct {
	Header string
	Value  string
}

// Row keeps the column order of the source line.
type Row []Cell

// Get returns the first non-empty value among the cells named key.
// Duplicate headers resolve by column order.
func (r Row) Get(key string) string {
	for _, c := range r {
		if c.Header == key && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

func (r Row) Headers() []string {
	out := make([]string, 0, len(r))
	for _, c := range r {
		out = append(out, c.Header)
	}
	return out
}

func (r Row) blank() bool {
	for _, c := range r {
		if strings.TrimSpace(c.Value) != "" {
			return false
		}
	}
	return true
}

// Table is the result of Parse or FromRecords. Rows are built lazily from
// the retained lines (or pre-split records), so Rows can be ranged over any
// number of times.
type Table struct {
	headers []string
	delim   rune
	lines   []string
	records [][]string
}

func (t *Table) Headers() []string { return t.headers }
func (t *Table) Delimiter() rune   { return t.delim }

// Empty reports whether the input had no header or no data line.
func (t *Table) Empty() bool {
	return len(t.headers) == 0 || len(t.lines)+len(t.records) == 0
}

func (t *Table) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		if t.Empty() {
			return
		}
		emit := func(fields []string) bool {
			row := t.buildRow(fields)
			return row.blank() || yield(row)
		}
		for _, line := range t.lines {
			if !emit(SplitLine(line, t.delim)) {
				return
			}
		}
		for _, rec := range t.records {
			if !emit(rec) {
				return
			}
		}
	}
}

// Len counts the rows Rows would emit.
func (t *Table) Len() int {
	n := 0
	for range t.Rows() {
		n++
	}
	return n
}

func (t *Table) buildRow(fields []string) Row {
	row := make(Row, len(t.headers))
	for i, h := range t.headers {
		v := ""
		if i < len(fields) {
			v = fields[i]
		}
		row[i] = Cell{Header: h, Value: v}
	}
	return row
}

// Parse reads delimited text using the first non-blank line as header.
// Fewer than two non-blank lines yields an empty table, not an error.
func Parse(text string) *Table {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return &Table{delim: ','}
	}
	delim := DetectDelimiter(lines[0])
	raw := SplitLine(lines[0], delim)
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = NormalizeHeader(h)
	}
	return &Table{headers: headers, delim: delim, lines: lines[1:]}
}

// FromRecords builds a table from cells that are already split, such as
// spreadsheet rows. No delimiter detection happens; the first non-blank
// record is the header and line breaks inside cells become spaces.
func FromRecords(records [][]string) *Table {
	var kept [][]string
	for _, rec := range records {
		clean := make([]string, len(rec))
		blank := true
		for i, v := range rec {
			clean[i] = strings.TrimSpace(cellBreaks.Replace(v))
			if clean[i] != "" {
				blank = false
			}
		}
		if !blank {
			kept = append(kept, clean)
		}
	}
	if len(kept) < 2 {
		return &Table{delim: ','}
	}
	headers := make([]string, len(kept[0]))
	for i, h := range kept[0] {
		headers[i] = NormalizeHeader(h)
	}
	return &Table{headers: headers, delim: ',', records: kept[1:]}
}

var cellBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func nonBlankLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// DetectDelimiter picks the candidate that yields the most fields on line;
// the first candidate reaching the maximum wins.
func DetectDelimiter(line string) rune {
	best, bestN := delimiters[0], 0
	for _, d := range delimiters {
		if n := len(SplitLine(line, d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

// NormalizeHeader trims, lower-cases, strips surrounding quotes and maps
// every byte outside [a-z0-9_] to '_'. It is idempotent.
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SplitLine splits one logical line. '"' toggles quoted mode, '""' inside
// quotes is a literal quote and the delimiter is inert while quoted.
func SplitLine(line string, delim rune) []string {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
	)
	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '"' && quoted && i+1 < len(rs) && rs[i+1] == '"':
			cur.WriteRune('"')
			i++
		case r == '"':
			quoted = !quoted
		case r == delim && !quoted:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(cur.String()))
}
