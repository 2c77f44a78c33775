// Package validator provides rule based validation of request values.
//
// Rules are plain values built by constructor functions and evaluated with
// Apply, which collects every failing rule into ValidationErrors:
//
//	err := validator.Apply(
//		validator.RequiredString("username", req.Username),
//		validator.MaxLenString("username", req.Username, 50),
//		validator.ValidEmail("email", req.Email),
//	)
//
// Each ValidationError names the offending field, a human readable message
// and a short machine readable type such as "missing" or "string_too_long".
package validator
