package calculator

import "fmt"

// EmptyCorpusError reports that no active records of a kind exist at all,
// so resolution cannot even be attempted.
type EmptyCorpusError struct {
	Kind string
}

func (e *EmptyCorpusError) Error() string {
	return fmt.Sprintf("no active %s records exist", e.Kind)
}

// NotFoundError reports that a query string matched no active record at or
// above the fuzzy cutoff.
type NotFoundError struct {
	Kind  string
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Query)
}

// UnparseableDateError reports a date string no accepted format matched.
type UnparseableDateError struct {
	Raw string
}

func (e *UnparseableDateError) Error() string {
	return fmt.Sprintf("cannot parse date: %q", e.Raw)
}

// NoPriceError reports that no price band qualifies for the combination.
type NoPriceError struct {
	ProjectCode string
	MixCode     string
	LoadM3      float64
}

func (e *NoPriceError) Error() string {
	return fmt.Sprintf("no price found: project=%s, mix=%s, load=%gm³",
		e.ProjectCode, e.MixCode, e.LoadM3)
}

// DuplicateError guards commit against entering the same trip twice: same
// date, project, truck and load among non-cancelled records.
type DuplicateError struct {
	DispatchNo string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("suspected duplicate: same day, project, truck and load already recorded (%s)", e.DispatchNo)
}
