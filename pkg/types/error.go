package types

// ConstError is an error that can be declared as a constant.
type ConstError string

func (err ConstError) Error() string { return string(err) }

// These are the kinds of failure every operation reports. Specific errors
// wrap exactly one of them.
const (
	InvalidArgumentErr   ConstError = "invalid argument"
	ResourceExhaustedErr ConstError = "resource exhausted"
	NotFoundErr          ConstError = "not found"
	UnsupportedErr       ConstError = "not supported"
	CorruptionErr        ConstError = "corruption"
)

// KindError is a specific error belonging to one of the error kinds above.
// KindError values are comparable, so they work as sentinels with
// `errors.Is()`, and they unwrap to their kind.
type KindError struct {
	Kind    ConstError
	Message string
}

func (err KindError) Error() string { return err.Message }

func (err KindError) Unwrap() error { return err.Kind }

// NewError declares a specific error of the provided kind.
func NewError(kind ConstError, message string) KindError {
	return KindError{Kind: kind, Message: message}
}
