package catalog

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

func sizeColorGroups() types.OptionGroups {
	return types.OptionGroups{
		{
			Key:   "size",
			Label: "Size",
			Values: []types.OptionValue{
				{ID: "s", Label: "S"},
				{ID: "m", Label: "M"},
				{ID: "l", Label: "L"},
			},
		},
		{
			Key:   "color",
			Label: "Màu Sắc",
			Values: []types.OptionValue{
				{ID: "red", Label: "Đỏ"},
				{ID: "blue", Label: "Xanh Dương"},
			},
		},
	}
}

func TestSignatureOrderIndependent(t *testing.T) {
	t.Parallel()

	a := types.OptionSelection{{Key: "size", ValueID: "m"}, {Key: "color", ValueID: "red"}}
	b := types.OptionSelection{{Key: "color", ValueID: "red"}, {Key: "size", ValueID: "m"}}
	if Signature(a) != Signature(b) {
		t.Fatalf("signatures differ: %q vs %q", Signature(a), Signature(b))
	}
	if got, want := Signature(a), "color:red|size:m"; got != want {
		t.Fatalf("Signature = %q, want %q", got, want)
	}
}

func TestCombinationsCartesianProduct(t *testing.T) {
	t.Parallel()

	combos := Combinations(sizeColorGroups())
	if len(combos) != 6 {
		t.Fatalf("expected 3x2=6 combinations, got %d", len(combos))
	}

	seen := make(map[string]struct{}, len(combos))
	for _, sel := range combos {
		sig := Signature(sel)
		if _, dup := seen[sig]; dup {
			t.Fatalf("duplicate signature %q", sig)
		}
		seen[sig] = struct{}{}
	}
	for _, want := range []string{
		"color:red|size:s", "color:blue|size:s",
		"color:red|size:m", "color:blue|size:m",
		"color:red|size:l", "color:blue|size:l",
	} {
		if _, ok := seen[want]; !ok {
			t.Fatalf("missing combination %q", want)
		}
	}
}

func TestCombinationsEmptyGroupYieldsNone(t *testing.T) {
	t.Parallel()

	groups := types.OptionGroups{
		{Key: "size", Label: "Size", Values: []types.OptionValue{{ID: "s", Label: "S"}}},
		{Key: "color", Label: "Color"},
	}
	if combos := Combinations(groups); combos != nil {
		t.Fatalf("expected no combinations, got %d", len(combos))
	}
}

func TestVariantSKUFollowsGroupOrder(t *testing.T) {
	t.Parallel()

	groups := sizeColorGroups()
	sel := types.OptionSelection{{Key: "color", ValueID: "blue"}, {Key: "size", ValueID: "m"}}
	if got, want := VariantSKU("TSHIRT-01", groups, sel), "TSHIRT-01-M-XANH-DUONG"; got != want {
		t.Fatalf("VariantSKU = %q, want %q", got, want)
	}
}

func TestPlanVariantsInitialGeneration(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		ID:      uuid.New(),
		SKUCode: "DIAPER-PACK",
		Price:   100_000,
		Stock:   40,
		Options: types.OptionGroups{{
			Key:   "size",
			Label: "Size",
			Values: []types.OptionValue{
				{ID: "s", Label: "S"}, {ID: "m", Label: "M"}, {ID: "l", Label: "L"},
			},
		}},
	}

	plan := PlanVariants(product, nil)
	if len(plan.DeleteID) != 0 {
		t.Fatalf("unexpected deletions: %v", plan.DeleteID)
	}
	if len(plan.Create) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(plan.Create))
	}
	for _, v := range plan.Create {
		if v.Price != 100_000 || v.Stock != 40 || !v.IsActive {
			t.Fatalf("variant did not inherit base price/stock: %+v", v)
		}
		if v.ProductID != product.ID {
			t.Fatalf("variant bound to wrong product: %s", v.ProductID)
		}
	}
}

func TestPlanVariantsPreservesMatchedAndDeletesStale(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		ID:      uuid.New(),
		SKUCode: "DIAPER-PACK",
		Price:   100_000,
		Options: types.OptionGroups{{
			Key:   "size",
			Label: "Size",
			Values: []types.OptionValue{
				{ID: "s", Label: "S"}, {ID: "m", Label: "M"},
			},
		}},
	}

	staleID := uuid.New()
	existing := []models.Variant{
		{
			ID:      uuid.New(),
			Options: types.OptionSelection{{Key: "size", ValueID: "s"}},
			Price:   120_000, // manual edit, must survive
		},
		{
			ID:      uuid.New(),
			Options: types.OptionSelection{{Key: "size", ValueID: "m"}},
		},
		{
			ID:      staleID,
			Options: types.OptionSelection{{Key: "size", ValueID: "l"}},
		},
	}

	plan := PlanVariants(product, existing)
	if len(plan.Create) != 0 {
		t.Fatalf("matched combinations must not be recreated, got %d creates", len(plan.Create))
	}
	if len(plan.DeleteID) != 1 || plan.DeleteID[0] != staleID {
		t.Fatalf("expected exactly the stale variant deleted, got %v", plan.DeleteID)
	}
}

func TestPlanVariantsSkipsWithoutSKUCode(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		ID: uuid.New(),
		Options: types.OptionGroups{{
			Key:    "size",
			Label:  "Size",
			Values: []types.OptionValue{{ID: "s", Label: "S"}},
		}},
	}
	existing := []models.Variant{{
		ID:      uuid.New(),
		Options: types.OptionSelection{{Key: "size", ValueID: "obsolete"}},
	}}

	if plan := PlanVariants(product, existing); !plan.Empty() {
		t.Fatalf("expected empty plan without sku code, got %+v", plan)
	}
}
