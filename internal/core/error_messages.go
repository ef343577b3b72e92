package core

// Error codes shown to operators. Typed errors map directly; anything else is
// classified by matching its message (case-insensitive, first match wins):
//
//	VAL001  a field failed validation          (*ValidationError)
//	NF001   table, column or order not found   (*NotFoundError)
//	FMT001  malformed input                    (*FormatError)
//	RND001  document could not be produced     (*RenderError)
//	DB001   duplicate key                      "duplicate key", "duplicate entry"
//	DB002   unique constraint                  "unique constraint", "violates unique"
//	DB003   foreign key                        "foreign key constraint", "violates foreign key"
//	DB004   connection refused                 "connection refused"
//	DB005   connection reset                   "connection reset"
//	DB006   timeout                            "timeout"
//	DB007   deadlock                           "deadlock"
//	UPL004  request cancelled                  "context canceled"
//	UPL005  request timed out                  "context deadline exceeded"
//	ERR000  anything else

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// Specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Use a different key or update the existing record",
			Code:    "DB001",
		},
	},
	{
		// mysql: Error 1062: Duplicate entry '1' for key 'PRIMARY'
		pattern: "duplicate entry",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Use a different key or update the existing record",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Check for an existing record with the same value",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Check for an existing record with the same value",
			Code:    "DB002",
		},
	},
	{
		pattern: "foreign key constraint",
		msg: UserMessage{
			Message: "Referenced record does not exist or is still in use",
			Action:  "Create the referenced record first, or remove the rows that depend on this one",
			Code:    "DB003",
		},
	},
	{
		pattern: "violates foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist or is still in use",
			Action:  "Create the referenced record first, or remove the rows that depend on this one",
			Code:    "DB003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again or check your connection",
			Code:    "UPL005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
}

// defaultMessage is returned when nothing matches. Check the logs for the
// underlying error when an operator reports ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error into a message fit for the operator.
// Typed errors carry their own message; others are matched by pattern.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		valErr    *ValidationError
		notFound  *NotFoundError
		formatErr *FormatError
		renderErr *RenderError
	)
	switch {
	case errors.As(err, &valErr):
		return UserMessage{
			Message: valErr.Message,
			Action:  fmt.Sprintf("Correct the %s field and try again", valErr.Field),
			Code:    "VAL001",
		}
	case errors.As(err, &notFound):
		return UserMessage{
			Message: fmt.Sprintf("%s not found: %s", capitalize(notFound.Entity), notFound.Key),
			Action:  fmt.Sprintf("Verify the %s name or id is correct", notFound.Entity),
			Code:    "NF001",
		}
	case errors.As(err, &formatErr):
		return UserMessage{
			Message: formatErr.Error(),
			Action:  "Check the submitted values and try again",
			Code:    "FMT001",
		}
	case errors.As(err, &renderErr):
		return UserMessage{
			Message: "The document could not be generated",
			Action:  "Check that the output directory is writable and try again",
			Code:    "RND001",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders MapError as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
