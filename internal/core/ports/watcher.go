package ports

import "context"

// Watcher re-runs work when files change.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch calls onChange after each debounced batch of changes to paths, until ctx is done.
	// Errors returned by onChange are passed to onError and do not stop watching.
	Watch(ctx context.Context, paths []string, onChange func() error, onError func(error)) error
}
