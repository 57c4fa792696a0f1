package assignment

import "time"

// Span returns the earliest creation time and the latest creation or close
// time across events. ok is false for an empty slice.
func Span(events []Event) (earliest, latest time.Time, ok bool) {
	if len(events) == 0 {
		return time.Time{}, time.Time{}, false
	}
	earliest, latest = events[0].Created, events[0].Created
	for _, e := range events {
		if e.Created.Before(earliest) {
			earliest = e.Created
		}
		if e.Created.After(latest) {
			latest = e.Created
		}
		if e.Closed != nil && e.Closed.After(latest) {
			latest = *e.Closed
		}
	}
	return earliest, latest, true
}

// Windows returns contiguous buckets from the period containing earliest up to
// and including the period containing latest. Counts are zero.
func Windows(earliest, latest time.Time, g Granularity) []Bucket {
	var out []Bucket
	latest = latest.UTC()
	for start := g.Truncate(earliest); !start.After(latest); start = g.Next(start) {
		out = append(out, Bucket{Start: start, End: g.Next(start)})
	}
	return out
}

// Bucketize counts assignment and unassignment actions per bucket. Every
// bucket is computed from the full event slice: an action counts in a bucket
// when its pull request was created by the bucket end, was still open after
// the bucket start, and the action happened by the bucket end. Actions are
// counted per row, not per distinct pull request.
func Bucketize(events []Event, g Granularity) ([]Bucket, error) {
	if !g.Valid() {
		return nil, &InvalidArgumentError{Name: "granularity", Value: string(g)}
	}
	earliest, latest, ok := Span(events)
	if !ok {
		return nil, ErrNoData
	}

	buckets := Windows(earliest, latest, g)
	for i := range buckets {
		b := &buckets[i]
		for _, e := range events {
			if !liveIn(e, b.Start, b.End) || e.AssignDate.After(b.End) {
				continue
			}
			switch e.Action {
			case ActionAssigned:
				b.Assigned++
			case ActionUnassigned:
				b.Unassigned++
			}
		}
	}
	return buckets, nil
}

func liveIn(e Event, start, end time.Time) bool {
	if e.Created.After(end) {
		return false
	}
	return e.Closed == nil || e.Closed.After(start)
}
