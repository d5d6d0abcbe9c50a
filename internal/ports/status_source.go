package ports

import "context"

// StatusSource fetches one raw reading of printer state from whatever
// collaborator knows how to reach it (the monitor page, a saved file, a
// test fake). Keys are component identifiers; values are loosely typed and
// only become trustworthy after normalization.
type StatusSource interface {
	Fetch(ctx context.Context) (map[string]any, error)
}
