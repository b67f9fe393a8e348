package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFEN is matched by every *ParseError.
	ErrInvalidFEN = errors.New("invalid FEN")
	// ErrIllegalMove is matched by every *IllegalMoveError.
	ErrIllegalMove = errors.New("illegal move")
	// ErrNoHistory is returned by Undo when no move has been applied.
	ErrNoHistory = errors.New("no move to undo")
)

// ParseError reports which FEN field was rejected and why.
type ParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid FEN: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid FEN: %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidFEN
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidFEN
}

// IllegalMoveError reports a move text that was refused.
type IllegalMoveError struct {
	Move   string
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %q: %s", e.Move, e.Reason)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

func parseErr(field, value, format string, args ...any) *ParseError {
	return &ParseError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
