package export

// Table is a column-ordered dataset ready for rendering. Rows are keyed by
// header name so sections with different column sets can share one renderer.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Append adds a row, ignoring keys that are not part of the header set.
func (t *Table) Append(row map[string]string) {
	filtered := make(map[string]string, len(t.Headers))
	for _, header := range t.Headers {
		filtered[header] = row[header]
	}
	t.Rows = append(t.Rows, filtered)
}
