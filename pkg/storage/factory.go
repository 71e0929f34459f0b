package storage

import (
	"context"
	"fmt"

	"github.com/jsgroupfr/merge-videos-api/pkg/config"
)

// Constructor is a function that creates a client instance
type Constructor func(ctx context.Context, cfg config.StorageConfig) (Client, error)

var registry = make(map[string]Constructor)

// Register registers a driver constructor. Drivers call this from init().
func Register(driver string, constructor Constructor) {
	registry[driver] = constructor
}

// Factory creates storage clients from configuration
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create instantiates a client for the configured driver
func (f *Factory) Create(ctx context.Context, cfg config.StorageConfig) (Client, error) {
	constructor, ok := registry[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}

	return constructor(ctx, cfg)
}
