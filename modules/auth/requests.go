package auth

import "github.com/dmitrymomot/progenglish/pkg/validator"

// loginRequest accepts a username or an email in the username field.
// Fields are pointers so a missing field fails validation while an empty
// value is a plain credential mismatch.
type loginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (r *loginRequest) Validate() error {
	return validator.Apply(
		required("username", r.Username),
		required("password", r.Password),
	)
}

func required(field string, v *string) validator.Rule {
	return validator.Rule{
		Check: func() bool { return v != nil },
		Error: validator.ValidationError{Field: field, Message: "field required", Type: validator.TypeMissing},
	}
}
