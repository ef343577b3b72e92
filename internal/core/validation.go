package core

import "strings"

// FieldRule checks one column of an entity kind.
type FieldRule struct {
	Field  string
	Check  func(value string) bool
	Reason string
}

// EntityKind is a named set of field rules applied to the table of the same name.
type EntityKind struct {
	Name  string
	Rules []FieldRule
}

// Verdict is the outcome of validating one row.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Field    string `json:"field,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Accept is the verdict for a row that passed.
var Accept = Verdict{Accepted: true}

// Validate checks values against the kind registered for table.
//
// Columns are matched by name ignoring case; a rule whose field is absent or
// Null is skipped, and a column given twice is judged by its last value.
// Rules run in registration order and the first failure is the verdict.
// Tables without a registered kind are always accepted.
func Validate(table string, columns, values []string) Verdict {
	kind, ok := Lookup(table)
	if !ok {
		return Accept
	}

	fields := make(map[string]string, len(columns))
	for i, col := range columns {
		if i >= len(values) {
			break
		}
		key := strings.ToLower(col)
		if values[i] == Null {
			delete(fields, key)
			continue
		}
		fields[key] = values[i]
	}

	for _, rule := range kind.Rules {
		value, present := fields[strings.ToLower(rule.Field)]
		if !present {
			continue
		}
		if !rule.Check(value) {
			return Verdict{Field: rule.Field, Reason: rule.Reason}
		}
	}
	return Accept
}

// validateRow runs Validate and converts a rejection into a *ValidationError.
func validateRow(table string, columns, values []string) error {
	v := Validate(table, columns, values)
	if v.Accepted {
		return nil
	}
	value := ""
	for i, col := range columns {
		if strings.EqualFold(col, v.Field) && i < len(values) {
			value = values[i]
		}
	}
	return &ValidationError{Table: table, Field: v.Field, Value: value, Message: v.Reason}
}

// checkShape rejects rows whose value count does not match the column count.
func checkShape(columns, values []string) error {
	if len(columns) == 0 {
		return &FormatError{Field: "columns", Reason: "at least one column is required"}
	}
	if len(columns) != len(values) {
		return &FormatError{
			Field:  "values",
			Value:  strings.Join(values, ","),
			Reason: "value count does not match column count",
		}
	}
	return nil
}
