package core

// TableSnapshot is a point-in-time copy of one table. It is never refreshed;
// load again to see later changes.
type TableSnapshot struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Null stands for SQL NULL in row values. Strings emits it for NULL cells;
// Insert and Update bind it as NULL and validation treats the field as absent.
const Null = "\x00"

// Strings converts every row to text aligned with Columns, in a form that
// Insert accepts back. NULL cells become Null.
func (s *TableSnapshot) Strings() [][]string {
	out := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		vals := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				vals[j] = Null
				continue
			}
			vals[j] = FormatValue(v)
		}
		out[i] = vals
	}
	return out
}

// ColumnIndex returns the position of name in Columns, ignoring case, or -1.
func (s *TableSnapshot) ColumnIndex(name string) int {
	return indexFold(s.Columns, name)
}
