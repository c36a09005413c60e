package catalog

import "context"

// Repository defines the interface for glass catalog storage.
type Repository interface {
	// FindOrCreate returns the glass matching spec, inserting it when missing.
	FindOrCreate(ctx context.Context, spec Spec) (*Glass, error)
	List(ctx context.Context) ([]*Glass, error)
}
