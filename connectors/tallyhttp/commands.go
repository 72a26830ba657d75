package tallyhttp

import (
	tally "github.com/weegigs/tally-go"
)

// CommandRequest is the wire form of a counter command, e.g.
// {"command": "tally:increment-by", "amount": 3}. Amount carries the
// operand for increment-by and decrement-by, value the operand for set.
type CommandRequest struct {
	Name   tally.CommandName `json:"command"`
	Amount *uint64           `json:"amount,omitempty"`
	Value  *uint64           `json:"value,omitempty"`
}

func (r CommandRequest) Command() (tally.Command, error) {
	switch r.Name {
	case tally.CommandNameOf(tally.Increment{}):
		return tally.Increment{}, nil
	case tally.CommandNameOf(tally.IncrementBy{}):
		if r.Amount == nil {
			return nil, MissingOperand(r.Name, "amount")
		}
		return tally.IncrementBy{Amount: *r.Amount}, nil
	case tally.CommandNameOf(tally.Decrement{}):
		return tally.Decrement{}, nil
	case tally.CommandNameOf(tally.DecrementBy{}):
		if r.Amount == nil {
			return nil, MissingOperand(r.Name, "amount")
		}
		return tally.DecrementBy{Amount: *r.Amount}, nil
	case tally.CommandNameOf(tally.Reset{}):
		return tally.Reset{}, nil
	case tally.CommandNameOf(tally.Set{}):
		if r.Value == nil {
			return nil, MissingOperand(r.Name, "value")
		}
		return tally.Set{Value: *r.Value}, nil
	default:
		return nil, tally.UnknownCommand(r.Name)
	}
}
