package errorx

import (
	"errors"
	"fmt"
)

// TaggedError is the internal-component counterpart to Record: a plain
// Go error carrying a closed-taxonomy Code, used by leaf components so
// that the tool handler layer can recover the code with errors.As
// instead of re-sniffing message text.
type TaggedError struct {
	Code    Code
	Message string
}

func (e *TaggedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Tag builds a TaggedError with a formatted message.
func Tag(code Code, format string, args ...interface{}) error {
	return &TaggedError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsTagged extracts the Code/Message pair from err if it (or something it
// wraps) is a *TaggedError.
func AsTagged(err error) (code Code, message string, ok bool) {
	var te *TaggedError
	if !errors.As(err, &te) {
		return "", "", false
	}
	return te.Code, te.Message, true
}

func (e *TaggedError) ErrorCode() (Code, string) {
	return e.Code, e.Message
}

// coded is satisfied by any error that already carries a closed-taxonomy
// Code — *TaggedError here, *emulator.apiError in the emulator package.
// Keeping the interface here (rather than a shared concrete type) lets
// leaf packages tag their own errors without importing one another.
type coded interface {
	ErrorCode() (Code, string)
}

// FromAny builds a Record from any error a leaf component raised,
// recovering its Code when the error implements coded, falling back to
// InternalError otherwise.
func FromAny(err error) *Record {
	if err == nil {
		return nil
	}
	if c, ok := err.(coded); ok {
		code, msg := c.ErrorCode()
		return Newf(code, msg)
	}
	return Newf(InternalError, err.Error())
}
