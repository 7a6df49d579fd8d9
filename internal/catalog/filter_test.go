package catalog

import (
	"strings"
	"testing"

	"github.com/electronicsstore/storefront/pkg/enums"
)

func names(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFilterQueryIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"iphone", "IPHONE", "iPhOnE", "15 pro"} {
		got := Filter(Seed(), q, enums.CategoryAll)
		if len(got) != 1 || got[0].Name != "iPhone 15 Pro" {
			t.Fatalf("query %q: expected only iPhone 15 Pro, got %v", q, names(got))
		}
	}
}

func TestFilterEmptyQueryAllCategoryReturnsCatalog(t *testing.T) {
	t.Parallel()

	seed := Seed()
	got := Filter(seed, "", enums.CategoryAll)
	if len(got) != len(seed) {
		t.Fatalf("expected %d products, got %d", len(seed), len(got))
	}
	for i := range seed {
		if got[i].ID != seed[i].ID {
			t.Fatalf("order changed at %d: %d vs %d", i, got[i].ID, seed[i].ID)
		}
	}
}

func TestFilterCategoryExactMatch(t *testing.T) {
	t.Parallel()

	got := Filter(Seed(), "", enums.CategorySmartphones)
	want := []string{"iPhone 15 Pro", "Samsung Galaxy S24"}
	if strings.Join(names(got), "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, names(got))
	}

	if got := Filter(Seed(), "", enums.Category("смартфоны")); len(got) != 0 {
		t.Fatalf("category match must be case-sensitive, got %v", names(got))
	}
}

func TestFilterEveryCategoryMatchesSubset(t *testing.T) {
	t.Parallel()

	seed := Seed()
	for _, category := range enums.Categories() {
		if category.IsAll() {
			continue
		}
		got := Filter(seed, "", category)
		var want []int64
		for _, p := range seed {
			if p.Category == category {
				want = append(want, p.ID)
			}
		}
		if len(got) != len(want) {
			t.Fatalf("category %q: expected %d products, got %d", category, len(want), len(got))
		}
		for i, p := range got {
			if p.ID != want[i] {
				t.Fatalf("category %q: order mismatch at %d", category, i)
			}
		}
	}
}

func TestFilterQueryAndCategoryCombine(t *testing.T) {
	t.Parallel()

	got := Filter(Seed(), "pro", enums.CategoryHeadphones)
	if len(got) != 1 || got[0].Name != "AirPods Pro 2" {
		t.Fatalf("expected AirPods Pro 2, got %v", names(got))
	}
}

func TestFilterNoMatchReturnsEmptySlice(t *testing.T) {
	t.Parallel()

	got := Filter(Seed(), "nokia", enums.CategoryAll)
	if got == nil {
		t.Fatal("expected non-nil empty result")
	}
	if len(got) != 0 {
		t.Fatalf("expected no products, got %v", names(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	seed := Seed()
	_ = Filter(seed, "a", enums.CategoryLaptops)
	if seed[0].Name != "iPhone 15 Pro" || len(seed) != 8 {
		t.Fatalf("input catalog was modified")
	}
}

func TestFilterStateApply(t *testing.T) {
	t.Parallel()

	f := FilterState{Query: "SONY", Category: enums.CategoryAll}
	got := f.Apply(Seed())
	if len(got) != 1 || got[0].ID != 6 {
		t.Fatalf("expected Sony WH-1000XM5, got %v", names(got))
	}
}
