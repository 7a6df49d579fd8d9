package storefront

import (
	"context"
	"fmt"

	"github.com/electronicsstore/storefront/internal/cart"
	"github.com/electronicsstore/storefront/internal/catalog"
	"github.com/electronicsstore/storefront/pkg/enums"
	"github.com/electronicsstore/storefront/pkg/money"
	"github.com/electronicsstore/storefront/pkg/phone"
)

const (
	NoProductsText = "Товары не найдены"
	EmptyCartText  = "Корзина пуста"
)

type catalogReader interface {
	Search(ctx context.Context, filter catalog.FilterState) ([]catalog.Product, error)
	Categories() []enums.Category
}

type cartReader interface {
	Get(ctx context.Context, sessionID string) (cart.Snapshot, error)
}

// CategoryOption is one entry of the category selector.
type CategoryOption struct {
	Name   enums.Category `json:"name"`
	Active bool           `json:"active"`
}

// ProductCard is a visible product with its display price.
type ProductCard struct {
	catalog.Product
	PriceText string `json:"price_text"`
	InCart    int    `json:"in_cart"`
}

// CartLineView is a cart line with display prices and the quantities the
// decrement/increment buttons submit.
type CartLineView struct {
	ProductID    int64  `json:"product_id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	Subtotal     string `json:"subtotal"`
	DecrementQty int    `json:"decrement_quantity"`
	IncrementQty int    `json:"increment_quantity"`
}

// Contact is a phone shown on the page.
type Contact struct {
	Display string `json:"display"`
	TelURI  string `json:"tel_uri"`
}

// View is the full derived page state, rebuilt after every transition.
type View struct {
	StoreName      string           `json:"store_name"`
	Query          string           `json:"query"`
	Category       enums.Category   `json:"category"`
	Categories     []CategoryOption `json:"categories"`
	Products       []ProductCard    `json:"products"`
	NoResults      bool             `json:"no_results"`
	NoResultsText  string           `json:"no_results_text,omitempty"`
	CartLines      []CartLineView   `json:"cart_lines"`
	CartEmpty      bool             `json:"cart_empty"`
	CartEmptyText  string           `json:"cart_empty_text,omitempty"`
	TotalItems     int              `json:"total_items"`
	ShowBadge      bool             `json:"show_badge"`
	TotalPrice     int64            `json:"total_price"`
	TotalPriceText string           `json:"total_price_text"`
	ContactPhone   Contact          `json:"contact_phone"`
	PaymentPhone   Contact          `json:"payment_phone"`
}

type Options struct {
	StoreName    string
	ContactPhone phone.Number
	PaymentPhone phone.Number
	Formatter    *money.Formatter
}

// Builder derives the storefront view from catalog and cart state.
type Builder struct {
	catalog catalogReader
	carts   cartReader
	opts    Options
}

func NewBuilder(catalogSvc catalogReader, carts cartReader, opts Options) (*Builder, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if opts.Formatter == nil {
		opts.Formatter = money.NewRussian(money.DefaultSymbol)
	}
	return &Builder{catalog: catalogSvc, carts: carts, opts: opts}, nil
}

func (b *Builder) Build(ctx context.Context, sessionID string, filter catalog.FilterState) (View, error) {
	if filter.Category == "" {
		filter.Category = enums.CategoryAll
	}

	products, err := b.catalog.Search(ctx, filter)
	if err != nil {
		return View{}, err
	}
	snapshot, err := b.carts.Get(ctx, sessionID)
	if err != nil {
		return View{}, err
	}

	view := View{
		StoreName:      b.opts.StoreName,
		Query:          filter.Query,
		Category:       filter.Category,
		Categories:     b.categoryOptions(filter.Category),
		Products:       make([]ProductCard, 0, len(products)),
		CartLines:      make([]CartLineView, 0, len(snapshot.Lines)),
		TotalItems:     snapshot.Totals.TotalItems,
		ShowBadge:      snapshot.Totals.TotalItems > 0,
		TotalPrice:     snapshot.Totals.TotalPrice,
		TotalPriceText: b.opts.Formatter.Format(snapshot.Totals.TotalPrice),
		ContactPhone:   contactFor(b.opts.ContactPhone),
		PaymentPhone:   contactFor(b.opts.PaymentPhone),
	}

	for _, p := range products {
		view.Products = append(view.Products, ProductCard{
			Product:   p,
			PriceText: b.opts.Formatter.Format(p.Price),
			InCart:    snapshot.Lines.Quantity(p.ID),
		})
	}
	if len(view.Products) == 0 {
		view.NoResults = true
		view.NoResultsText = NoProductsText
	}

	for _, line := range snapshot.Lines {
		view.CartLines = append(view.CartLines, CartLineView{
			ProductID:    line.Product.ID,
			Name:         line.Product.Name,
			Image:        line.Product.Image,
			Quantity:     line.Quantity,
			UnitPrice:    b.opts.Formatter.Format(line.Product.Price),
			Subtotal:     b.opts.Formatter.Format(line.Subtotal()),
			DecrementQty: line.Quantity - 1,
			IncrementQty: line.Quantity + 1,
		})
	}
	if len(view.CartLines) == 0 {
		view.CartEmpty = true
		view.CartEmptyText = EmptyCartText
	}

	return view, nil
}

func (b *Builder) categoryOptions(selected enums.Category) []CategoryOption {
	categories := b.catalog.Categories()
	options := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, CategoryOption{Name: c, Active: c == selected})
	}
	return options
}

func contactFor(n phone.Number) Contact {
	if n == "" {
		return Contact{}
	}
	return Contact{Display: n.Display(), TelURI: n.TelURI()}
}
