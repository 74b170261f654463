package models

import "time"

// Result is the outcome of one Pair. Value is meaningful only when Error is empty.
type Result struct {
	Pair  Pair    `json:"pair"`
	Value float64 `json:"value"`
	Error string  `json:"error,omitempty"`
}

// OK reports whether the query produced a value.
func (r *Result) OK() bool {
	return r.Error == ""
}

// Run is one evaluation of a pair list against one loaded vector file.
type Run struct {
	ID         string    `json:"id"`
	ModelPath  string    `json:"model_path"`
	VocabSize  int       `json:"vocab_size"`
	Dimensions int       `json:"dimensions"`
	CreatedAt  time.Time `json:"created_at"`
	Results    []*Result `json:"results,omitempty"`
	// ResultCount is filled by journal listings that do not load Results.
	ResultCount int   `json:"result_count"`
	QueryTime   int64 `json:"query_time_ms"`
}

// Failed returns the number of results that carry an error.
func (r *Run) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}
