package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/electronicsstore/storefront/internal/catalog"
	pkgerrors "github.com/electronicsstore/storefront/pkg/errors"
)

type countingRecorder struct {
	mu  sync.Mutex
	ops map[string]int
}

func (c *countingRecorder) CartTransition(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ops == nil {
		c.ops = map[string]int{}
	}
	c.ops[op]++
}

type brokenStore struct{ err error }

func (b brokenStore) Load(context.Context, string) (State, error) { return nil, b.err }
func (b brokenStore) Save(context.Context, string, State) error { return b.err }
func (b brokenStore) Delete(context.Context, string) error { return b.err }

func newTestService(t *testing.T, rec transitionRecorder) Service {
	t.Helper()
	products, err := catalog.NewService(catalog.StaticSource{}, nil)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	svc, err := NewService(NewMemoryStore(time.Hour), products, rec)
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	return svc
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	products, _ := catalog.NewService(catalog.StaticSource{}, nil)
	if _, err := NewService(nil, products, nil); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := NewService(NewMemoryStore(time.Hour), nil, nil); err == nil {
		t.Fatal("expected error for nil product lookup")
	}
}

func TestServiceScenario(t *testing.T) {
	rec := &countingRecorder{}
	svc := newTestService(t, rec)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "s1", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	snap, err := svc.Add(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if len(snap.Lines) != 2 || snap.Lines[0].Product.ID != 1 || snap.Lines[0].Quantity != 2 || snap.Lines[1].Product.ID != 2 {
		t.Fatalf("unexpected lines %+v", snap.Lines)
	}
	if snap.Totals.TotalItems != 3 || snap.Totals.TotalPrice != 2*89990+124990 {
		t.Fatalf("unexpected totals %+v", snap.Totals)
	}

	snap, err = svc.UpdateQuantity(ctx, "s1", 1, 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(snap.Lines) != 1 || snap.Lines[0].Product.ID != 2 {
		t.Fatalf("expected only product 2 left, got %+v", snap.Lines)
	}

	snap, err = svc.Remove(ctx, "s1", 42)
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(snap.Lines) != 1 {
		t.Fatalf("remove of absent id changed cart: %+v", snap.Lines)
	}

	snap, err = svc.Clear(ctx, "s1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !snap.Empty() || snap.Totals != (Totals{}) {
		t.Fatalf("expected empty cart after clear, got %+v", snap)
	}

	if rec.ops[OpAdd] != 3 || rec.ops[OpUpdate] != 1 || rec.ops[OpRemove] != 1 || rec.ops[OpClear] != 1 {
		t.Fatalf("unexpected transition counts %v", rec.ops)
	}
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, _ = svc.Add(ctx, "alice", 3)
	snap, err := svc.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !snap.Empty() {
		t.Fatalf("bob should have an empty cart, got %+v", snap.Lines)
	}
}

func TestServiceAddUnknownProduct(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Add(context.Background(), "s1", 404)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceRequiresSession(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.Get(context.Background(), " "); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceWrapsStoreFailures(t *testing.T) {
	products, _ := catalog.NewService(catalog.StaticSource{}, nil)
	svc, _ := NewService(brokenStore{err: errors.New("redis down")}, products, nil)

	if _, err := svc.Add(context.Background(), "s1", 1); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if _, err := svc.Clear(context.Background(), "s1"); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceSerializesConcurrentAdds(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Add(ctx, "busy", 5); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	wg.Wait()

	snap, err := svc.Get(ctx, "busy")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(snap.Lines) != 1 || snap.Lines[0].Quantity != n {
		t.Fatalf("expected one line with quantity %d, got %+v", n, snap.Lines)
	}
}
