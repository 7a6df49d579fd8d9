package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/electronicsstore/storefront/internal/cart"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
	"github.com/electronicsstore/storefront/pkg/logger"
	"github.com/electronicsstore/storefront/pkg/phone"
)

type cartReader interface {
	Get(ctx context.Context, sessionID string) (cart.Snapshot, error)
}

type intentRecorder interface {
	CheckoutRequested()
}

// Intent is everything the phone collaborator needs to place the order.
// No order record exists behind it.
type Intent struct {
	Phone        string    `json:"phone"`
	PhoneDisplay string    `json:"phone_display"`
	TelURI       string    `json:"tel_uri"`
	TotalItems   int       `json:"total_items"`
	TotalPrice   int64     `json:"total_price"`
	RequestedAt  time.Time `json:"requested_at"`
}

// Service turns a session cart into a checkout intent.
type Service interface {
	Request(ctx context.Context, sessionID string) (Intent, error)
}

type service struct {
	carts   cartReader
	phone   phone.Number
	logg    *logger.Logger
	metrics intentRecorder
	now     func() time.Time
}

// NewService wires the checkout collaborator. logg and metrics may be nil.
func NewService(carts cartReader, paymentPhone phone.Number, logg *logger.Logger, metrics intentRecorder) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if paymentPhone == "" {
		return nil, fmt.Errorf("payment phone required")
	}
	return &service{
		carts:   carts,
		phone:   paymentPhone,
		logg:    logg,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

func (s *service) Request(ctx context.Context, sessionID string) (Intent, error) {
	snapshot, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return Intent{}, err
	}
	if snapshot.Empty() {
		return Intent{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	intent := Intent{
		Phone:        s.phone.Digits(),
		PhoneDisplay: s.phone.Display(),
		TelURI:       s.phone.TelURI(),
		TotalItems:   snapshot.Totals.TotalItems,
		TotalPrice:   snapshot.Totals.TotalPrice,
		RequestedAt:  s.now().UTC(),
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"total_items": intent.TotalItems,
			"total_price": intent.TotalPrice,
			"lines":       len(snapshot.Lines),
		})
		s.logg.Info(logCtx, "checkout.requested")
	}
	if s.metrics != nil {
		s.metrics.CheckoutRequested()
	}
	return intent, nil
}
