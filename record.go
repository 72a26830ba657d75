package tally

// Direction tags which family of operation produced a change record. Reset
// and Set carry fixed tags regardless of the arithmetic sign of the change.
type Direction string

const (
	Increased = Direction("increased")
	Decreased = Direction("decreased")
)

func (d Direction) String() string {
	return string(d)
}

// ChangeRecord describes a successful mutation: the value after the change,
// when it happened, and the direction tag. Records are emitted synchronously
// and never stored by the counter itself.
type ChangeRecord struct {
	Value     uint64    `json:"value"`
	Timestamp Timestamp `json:"timestamp"`
	Direction Direction `json:"direction"`
}
