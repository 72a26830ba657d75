package tally

import (
	"errors"
	"fmt"
)

type OverflowError struct {
	Value  uint64
	Amount uint64
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("overflow: cannot increase %d by %d", e.Value, e.Amount)
}

func Overflow(value uint64, amount uint64) OverflowError {
	return OverflowError{Value: value, Amount: amount}
}

func AsOverflow(err error) (OverflowError, bool) {
	var overflow OverflowError
	ok := errors.As(err, &overflow)

	return overflow, ok
}

type UnderflowError struct {
	Value  uint64
	Amount uint64
}

func (e UnderflowError) Error() string {
	return fmt.Sprintf("underflow: cannot decrease %d by %d", e.Value, e.Amount)
}

func Underflow(value uint64, amount uint64) UnderflowError {
	return UnderflowError{Value: value, Amount: amount}
}

func AsUnderflow(err error) (UnderflowError, bool) {
	var underflow UnderflowError
	ok := errors.As(err, &underflow)

	return underflow, ok
}

func UnknownCommand(command CommandName) UnknownCommandError {
	return UnknownCommandError{Command: command}
}

type UnknownCommandError struct {
	Command CommandName
}

func (e UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Command)
}
