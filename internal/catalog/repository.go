package catalog

import (
	"context"
	"fmt"

	"github.com/electronicsstore/storefront/pkg/enums"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// productRecord mirrors the products table created by the goose migrations.
type productRecord struct {
	ID       int64           `gorm:"column:id;primaryKey"`
	Name     string          `gorm:"column:name;not null"`
	Category string          `gorm:"column:category;not null"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Image    string          `gorm:"column:image;not null"`
}

func (productRecord) TableName() string { return "products" }

// Repository reads the catalog from a SQL database through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a repository to the given connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List implements Source, returning products ordered by id.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	var rows []productRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		product, err := row.toProduct()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode catalog row")
		}
		products = append(products, product)
	}
	return products, nil
}

// Upsert writes products keyed by id. It does not open a transaction of
// its own; SeedDatabase supplies one.
func (r *Repository) Upsert(ctx context.Context, products []Product) error {
	tx := r.db.WithContext(ctx)
	for _, p := range products {
		row := fromProduct(p)
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("save product %d: %w", p.ID, err)
		}
	}
	return nil
}

// TxRunner runs fn in a database transaction; *db.Client implements it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SeedDatabase restores the given products in a single transaction. Rows
// with other ids are left alone, so it is safe to rerun after edits.
func SeedDatabase(ctx context.Context, runner TxRunner, products []Product) error {
	if runner == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "seed requires a database")
	}
	err := runner.WithTx(ctx, func(tx *gorm.DB) error {
		return NewRepository(tx).Upsert(ctx, products)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed catalog")
	}
	return nil
}

func (r productRecord) toProduct() (Product, error) {
	category, err := enums.ParseCategory(r.Category)
	if err != nil || category.IsAll() {
		return Product{}, fmt.Errorf("product %d has invalid category %q", r.ID, r.Category)
	}
	price, err := wholeRubles(r.Price)
	if err != nil {
		return Product{}, fmt.Errorf("product %d: %w", r.ID, err)
	}
	return Product{
		ID:       r.ID,
		Name:     r.Name,
		Category: category,
		Price:    price,
		Image:    r.Image,
	}, nil
}

func fromProduct(p Product) productRecord {
	return productRecord{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category.String(),
		Price:    decimal.NewFromInt(p.Price),
		Image:    p.Image,
	}
}

// wholeRubles rejects fractional or negative stored prices.
func wholeRubles(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("negative price %s", d.String())
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("fractional price %s", d.StringFixed(2))
	}
	return d.IntPart(), nil
}
