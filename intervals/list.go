package intervals

import (
	"net/url"
	"strconv"
)

// ListOptions specifies the optional filter parameters accepted by the
// various List methods. Dates are local-date or local-date-time strings in
// ISO-8601 form ("2024-01-20") and are forwarded verbatim.
type ListOptions struct {
	// Oldest bounds results to entries on or after this date.
	Oldest string

	// Newest bounds results to entries on or before this date.
	Newest string

	// Limit caps the number of entries returned.
	Limit int

	// Offset skips the first N entries, for paging through large ranges.
	Offset int
}

// values encodes the set options as query parameters.
func (o *ListOptions) values() url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}

	if o.Oldest != "" {
		q.Set("oldest", o.Oldest)
	}
	if o.Newest != "" {
		q.Set("newest", o.Newest)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q
}
