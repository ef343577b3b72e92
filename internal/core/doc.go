// Package core is the schema-driven data access layer behind PharmaDB.
//
// Nothing here knows about specific tables. The [Service] discovers tables
// and columns at runtime and builds INSERT, UPDATE and DELETE statements for
// whatever table the caller names, after resolving every identifier against a
// fresh catalog listing. Values are always bound as parameters.
//
// # Entity kinds
//
// Field validation is data, registered at init time with [Register]:
//
//	core.Register(core.EntityKind{
//	    Name: "customer",
//	    Rules: []core.FieldRule{
//	        {Field: "Phone", Check: tenDigits, Reason: "Invalid Phone Number. Must be 10 digits."},
//	    },
//	})
//
// A table whose name matches a registered kind (case-insensitively) has its
// rows checked by [Validate] before any statement is built. Tables with no
// kind are accepted as-is. The shipped kinds live in package core/kinds.
//
// # Errors
//
// Operations return typed errors ([DataAccessError], [ValidationError],
// [NotFoundError], [FormatError], [RenderError]) that callers inspect with
// errors.As. [MapError] turns any of them into a [UserMessage] with a support
// code:
//
//   - VAL001: a field failed validation
//   - NF001: table, column or order not found
//   - FMT001: malformed input (shape mismatch, bad order id)
//   - RND001: document rendering or persisting failed
//   - DB001-DB007: database errors classified by driver message
//   - UPL004-UPL005: request cancelled or timed out
package core
