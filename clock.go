package tally

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct {
}

func (systemClock) Now() time.Time {
	return time.Now()
}
