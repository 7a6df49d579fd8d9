package catalog

import (
	"context"
	"fmt"

	"github.com/electronicsstore/storefront/pkg/enums"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
)

type searchRecorder interface {
	CatalogSearch(category string, results int)
}

// Service exposes read access to the catalog.
type Service interface {
	Search(ctx context.Context, filter FilterState) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	Categories() []enums.Category
}

type service struct {
	source  Source
	metrics searchRecorder
}

// NewService builds a catalog service over the provided source. metrics may be nil.
func NewService(source Source, metrics searchRecorder) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	return &service{source: source, metrics: metrics}, nil
}

func (s *service) Search(ctx context.Context, filter FilterState) ([]Product, error) {
	if filter.Category == "" {
		filter.Category = enums.CategoryAll
	}
	products, err := s.source.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := filter.Apply(products)
	if s.metrics != nil {
		s.metrics.CatalogSearch(filter.Category.String(), len(visible))
	}
	return visible, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive").
			WithDetails(map[string]any{"product_id": id})
	}
	products, err := s.source.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) Categories() []enums.Category {
	return enums.Categories()
}
