// Package intervals provides a typed Go client for the intervals.icu API (v1).
//
// The client authenticates with a static API key (HTTP Basic, username
// "API_KEY"), exposes one service per resource family, tracks the rate-limit
// headers returned on every response, and normalizes every failure into a
// single *Error carrying an optional symbolic code.
//
// # Quick Start
//
//	client := intervals.NewClient(os.Getenv("ICU_API_KEY"))
//
//	athlete, err := client.Athlete.Get(ctx)
//
// # Errors
//
// Every failed call returns a *intervals.Error. Branch on its Code for
// programmatic handling:
//
//	_, err := client.Events.Get(ctx, 99999)
//	var apiErr *intervals.Error
//	if errors.As(err, &apiErr) && apiErr.Code == intervals.CodeNotFound {
//	    // the event does not exist
//	}
//
// # Rate limits
//
// The most recently observed quota headers are available at any time:
//
//	if remaining, ok := client.RateLimitRemaining(); ok {
//	    fmt.Println("requests left:", remaining)
//	}
package intervals
