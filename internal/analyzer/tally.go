package analyzer

import (
	"sort"
)

// Tally maps a pattern label to a match count.
type Tally map[string]int

// Add folds other into t and returns t. A nil receiver allocates a new tally,
// so the result must always be used.
func (t Tally) Add(other Tally) Tally {
	if t == nil {
		t = make(Tally, len(other))
	}
	for label, count := range other {
		t[label] += count
	}
	return t
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	total := 0
	for _, count := range t {
		total += count
	}
	return total
}

// Labels returns the labels in ascending lexical order.
func (t Tally) Labels() []string {
	labels := make([]string, 0, len(t))
	for label := range t {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
