package tallyhttp

import (
	"fmt"

	tally "github.com/weegigs/tally-go"
)

func MissingOperand(command tally.CommandName, field string) MissingOperandError {
	return MissingOperandError{Command: command, Field: field}
}

type MissingOperandError struct {
	Command tally.CommandName
	Field   string
}

func (e MissingOperandError) Error() string {
	return fmt.Sprintf("%s requires %s", e.Command, e.Field)
}
