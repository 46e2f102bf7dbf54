package usecase

// ValidationError rejects a submission before anything is persisted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// PersistenceError carries a generic message for the caller; the underlying
// store error stays wrapped for logs only.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsPersistenceError(err error) bool {
	_, ok := err.(*PersistenceError)
	return ok
}
