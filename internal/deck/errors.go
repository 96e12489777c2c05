package deck

import (
	"errors"
	"fmt"
)

// Field identifies the user input a ValidationError refers to.
type Field string

const (
	FieldQuestion Field = "question"
	FieldAnswer   Field = "answer"
	FieldDeckName Field = "deck-name"
)

var (
	ErrBothFieldsRequired = errors.New("both fields required")
	ErrDeckNameRequired   = errors.New("deck name required")
	ErrEmptyDeck          = errors.New("cannot save empty deck")
)

// ValidationError is a user-correctable input problem. No state was mutated.
type ValidationError struct {
	Field Field
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PersistenceError is a storage failure (read, decode, encode or write).
// The session is left as it was before the operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence reports whether err is (or wraps) a *PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
