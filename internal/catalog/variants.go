package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// Signature derives the canonical identity of an option combination: pairs
// sorted by group key and joined as key:valueID. Two selections with the same
// values produce the same signature regardless of group ordering.
func Signature(sel types.OptionSelection) string {
	parts := make([]string, 0, len(sel))
	for _, pair := range sel {
		parts = append(parts, pair.Key+":"+pair.ValueID)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// Combinations expands option groups into the full cartesian product of their
// values, preserving group order within each selection so SKU suffixes stay
// stable. A group with no values yields no combinations at all.
func Combinations(groups types.OptionGroups) []types.OptionSelection {
	if len(groups) == 0 {
		return nil
	}

	selections := []types.OptionSelection{{}}
	for _, group := range groups {
		if len(group.Values) == 0 {
			return nil
		}
		next := make([]types.OptionSelection, 0, len(selections)*len(group.Values))
		for _, base := range selections {
			for _, value := range group.Values {
				sel := make(types.OptionSelection, len(base), len(base)+1)
				copy(sel, base)
				sel = append(sel, types.OptionPair{Key: group.Key, ValueID: value.ID})
				next = append(next, sel)
			}
		}
		selections = next
	}
	return selections
}

// VariantSKU builds the derived SKU for one combination: the product's SKU
// code followed by the normalized label of each selected value, in group
// order.
func VariantSKU(skuCode string, groups types.OptionGroups, sel types.OptionSelection) string {
	parts := make([]string, 0, len(sel)+1)
	parts = append(parts, strings.TrimSpace(skuCode))
	for _, group := range groups {
		valueID := sel.Get(group.Key)
		if valueID == "" {
			continue
		}
		for _, value := range group.Values {
			if value.ID == valueID {
				if fragment := SKUFragment(value.Label); fragment != "" {
					parts = append(parts, fragment)
				}
				break
			}
		}
	}
	return strings.Join(parts, "-")
}

// SelectionLabel renders a human-readable name for one combination, joining
// the selected value labels in group order, e.g. "M / Xanh Dương".
func SelectionLabel(groups types.OptionGroups, sel types.OptionSelection) string {
	labels := make([]string, 0, len(sel))
	for _, group := range groups {
		valueID := sel.Get(group.Key)
		if valueID == "" {
			continue
		}
		for _, value := range group.Values {
			if value.ID == valueID {
				labels = append(labels, value.Label)
				break
			}
		}
	}
	return strings.Join(labels, " / ")
}

// VariantPlan is the reconciliation outcome for one product: variants to
// insert for newly possible combinations and ids of variants whose
// combination no longer exists. Matched variants are absent from both lists
// so manual price/stock edits survive.
type VariantPlan struct {
	Create   []models.Variant
	DeleteID []uuid.UUID
}

// Empty reports whether the plan requires no writes.
func (p VariantPlan) Empty() bool {
	return len(p.Create) == 0 && len(p.DeleteID) == 0
}

// PlanVariants reconciles a product's existing variants against the cartesian
// product of its current option groups. Products without a SKU code are
// skipped entirely, existing variants included, so incomplete listings never
// grow or lose variants.
func PlanVariants(product *models.Product, existing []models.Variant) VariantPlan {
	var plan VariantPlan
	if strings.TrimSpace(product.SKUCode) == "" {
		return plan
	}

	wanted := Combinations(product.Options)
	wantedBySig := make(map[string]types.OptionSelection, len(wanted))
	order := make(map[string]int, len(wanted))
	for i, sel := range wanted {
		sig := Signature(sel)
		wantedBySig[sig] = sel
		order[sig] = i
	}

	existingSigs := make(map[string]struct{}, len(existing))
	for _, variant := range existing {
		sig := Signature(variant.Options)
		existingSigs[sig] = struct{}{}
		if _, ok := wantedBySig[sig]; !ok {
			plan.DeleteID = append(plan.DeleteID, variant.ID)
		}
	}

	for _, sel := range wanted {
		sig := Signature(sel)
		if _, ok := existingSigs[sig]; ok {
			continue
		}
		plan.Create = append(plan.Create, models.Variant{
			ProductID: product.ID,
			Options:   sel,
			SKU:       VariantSKU(product.SKUCode, product.Options, sel),
			Price:     product.Price,
			Stock:     product.Stock,
			IsActive:  true,
			SortOrder: order[sig],
		})
	}

	return plan
}
