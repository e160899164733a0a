package error

// coded is the shape shared by every domain error that reaches the API with
// a stable code. Each domain embeds it with its own code type.
type coded[C ~string] struct {
	Code    C
	Message string
	Err     error
}

// Error implements the error interface.
func (e *coded[C]) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *coded[C]) Unwrap() error {
	return e.Err
}
