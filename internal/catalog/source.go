package catalog

import "context"

// Source supplies the full catalog in display order.
type Source interface {
	List(ctx context.Context) ([]Product, error)
}

// StaticSource serves the compiled-in seed list.
type StaticSource struct{}

// List implements Source.
func (StaticSource) List(context.Context) ([]Product, error) {
	return Seed(), nil
}
