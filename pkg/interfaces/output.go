package interfaces

import "time"

// Query is an inclusive calendar date range. End equals Start for a single day.
type Query struct {
	Start time.Time
	End   time.Time
}

// SingleDay reports whether the query covers exactly one date.
func (q Query) SingleDay() bool {
	return q.Start.Format("2006-01-02") == q.End.Format("2006-01-02")
}

type OutputWriter interface {
	Persist(records []MessageRecord, query Query) (string, error)
	ValidateOutputDir() error
}
