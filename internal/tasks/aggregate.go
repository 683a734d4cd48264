package tasks

import (
	"slices"
	"sort"
)

// Input is either a flat list (personal endpoint) or a status-keyed
// grouping (team endpoint). Build it with Flat or Grouped.
type Input struct {
	grouped bool
	list    []RawTask
	groups  map[string][]RawTask
}

func Flat(list []RawTask) Input {
	return Input{list: list}
}

func Grouped(groups map[string][]RawTask) Input {
	return Input{grouped: true, groups: groups}
}

func (in Input) IsGrouped() bool {
	return in.grouped
}

// Raw returns every record in the input. Grouped buckets are emitted in
// lifecycle order, unrecognized keys last in lexical order. Records without
// a status take the status of the bucket they came from.
func (in Input) Raw() []RawTask {
	if !in.grouped {
		return in.list
	}

	keys := make([]string, 0, len(in.groups))
	for k := range in.groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := statusRank(ParseStatus(keys[i])), statusRank(ParseStatus(keys[j]))
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	var out []RawTask
	for _, k := range keys {
		for _, raw := range in.groups[k] {
			if raw.Status == "" {
				raw.Status = k
			}
			out = append(out, raw)
		}
	}
	return out
}

func (in Input) Len() int {
	if !in.grouped {
		return len(in.list)
	}
	n := 0
	for _, v := range in.groups {
		n += len(v)
	}
	return n
}

// Aggregation is the flat and the status-grouped view of one snapshot.
// Flat is never filtered; ByStatus is.
type Aggregation struct {
	Flat     []Task
	ByStatus map[Status][]Task
}

// Aggregate normalizes the input and groups it by status, applying f to the
// grouping only. ByStatus always holds a non-nil slice for every status in
// StatusOrder and for StatusUnknown.
func Aggregate(in Input, f Filter) Aggregation {
	flat := NormalizeAll(in.Raw())

	byStatus := make(map[Status][]Task, len(StatusOrder)+1)
	for _, s := range allBuckets() {
		byStatus[s] = []Task{}
	}

	match := f.Predicate()
	for _, t := range flat {
		if !match(t) {
			continue
		}
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	return Aggregation{Flat: flat, ByStatus: byStatus}
}

// Bucket looks a status up by any external spelling.
func (a Aggregation) Bucket(status string) []Task {
	if b, ok := a.ByStatus[ParseStatus(status)]; ok {
		return b
	}
	return []Task{}
}

func (a Aggregation) Counts() map[Status]int {
	counts := make(map[Status]int, len(a.ByStatus))
	for s, b := range a.ByStatus {
		counts[s] = len(b)
	}
	return counts
}

func allBuckets() []Status {
	return append(slices.Clone(StatusOrder), StatusUnknown)
}

func statusRank(s Status) int {
	if i := slices.Index(StatusOrder, s); i >= 0 {
		return i
	}
	return len(StatusOrder)
}
