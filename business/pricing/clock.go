package pricing

import "time"

// Clock lets tests pin the wall clock the time evaluator reads.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
