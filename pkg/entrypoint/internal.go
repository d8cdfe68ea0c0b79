package entrypoint

import (
	"context"

	"ptykit/pkg/engine"
	"ptykit/pkg/manager"
)

// managerInterface defines the manager surface the run loop drives.
type managerInterface interface {
	Open(ctx context.Context, opts engine.Options) (*manager.Entry, error)
	SendToCurrent(p []byte) error
	ResizeAll(pixelWidth, pixelHeight, cellWidth, cellHeight int)
	CloseAll() error
}

// managerFactory is a function type for creating managers.
type managerFactory func(opts manager.Options) managerInterface

// realManagerFactory returns the actual manager factory used in production.
func realManagerFactory() managerFactory {
	return func(opts manager.Options) managerInterface {
		return manager.New(opts)
	}
}
