package apperr

// ConstraintType names the integrity rule a storage write violated.
type ConstraintType string

const (
	ConstraintUnique     ConstraintType = "unique"
	ConstraintForeignKey ConstraintType = "foreign_key"
	ConstraintNotNull    ConstraintType = "not_null"
	ConstraintOther      ConstraintType = "other"
)

var constraintMessages = map[ConstraintType]string{
	ConstraintUnique:     "data already exists",
	ConstraintForeignKey: "reference error",
	ConstraintNotNull:    "required field missing",
	ConstraintOther:      "data integrity constraint violated",
}

// ConstraintMessage returns the client facing message for t.
func ConstraintMessage(t ConstraintType) string {
	if m, ok := constraintMessages[t]; ok {
		return m
	}
	return constraintMessages[ConstraintOther]
}

// Constraint builds a KindConstraint failure for t.
func Constraint(t ConstraintType, cause error) *Error {
	return &Error{Kind: KindConstraint, Message: ConstraintMessage(t), Err: cause}
}
