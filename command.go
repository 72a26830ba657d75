package tally

type CommandName string
type Command any

// The six commands a counter accepts. Their names are derived from the type,
// e.g. IncrementBy becomes "tally:increment-by".

type Increment struct{}

type IncrementBy struct {
	Amount uint64 `json:"amount"`
}

type Decrement struct{}

type DecrementBy struct {
	Amount uint64 `json:"amount"`
}

type Reset struct{}

type Set struct {
	Value uint64 `json:"value"`
}

func CommandNameOf(command Command) CommandName {
	return CommandName(NameOf(command))
}
