package core

import (
	"strings"

	"github.com/JonMunkholm/PharmaDB/internal/database"
)

// indexFold returns the position of target in names, preferring an exact
// match over a case-insensitive one, or -1.
func indexFold(names []string, target string) int {
	fold := -1
	for i, name := range names {
		if name == target {
			return i
		}
		if fold < 0 && strings.EqualFold(name, target) {
			fold = i
		}
	}
	return fold
}

func quoteColumns(d database.Dialect, cols []string) []string {
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = d.QuoteIdent(col)
	}
	return quoted
}

// textArgs binds each value as text, and Null as NULL.
func textArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = textArg(v)
	}
	return args
}

func textArg(v string) any {
	if v == Null {
		return nil
	}
	return v
}
