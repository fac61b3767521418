// Package fetch provides the page rendering capability consumed by
// acquisition strategies. The engine only ever sees flattened page text;
// any fetch failure is surfaced as a typed FetchError that strategies
// demote to a miss.
package fetch

import (
	"context"
	"fmt"
)

// Link is one anchor discovered on a page.
type Link struct {
	Href string
	Text string
}

// Renderer fetches a URL and returns its visible text.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// LinkFinder discovers anchors on a page whose href contains a substring.
type LinkFinder interface {
	FindLinks(ctx context.Context, pageURL, hrefSubstring string) ([]Link, error)
}

// FetchError wraps navigation timeouts, non-200 responses, and network
// failures. Callers treat any FetchError as a strategy miss.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
