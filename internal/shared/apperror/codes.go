package apperror

// Codes are part of the public API; clients switch on them.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	// CodeInvalidState rejects a workflow step (swap, payroll) that the
	// record's current status does not allow.
	CodeInvalidState = "INVALID_STATE"
	CodeTooManyCalls = "TOO_MANY_REQUESTS"

	CodeInternalError = "INTERNAL_ERROR"
)
