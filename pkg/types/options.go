package types

// OptionValue is one selectable value inside an option group, e.g. "M" in "Size".
// The ID is stable across edits so variants can reference it after relabeling.
type OptionValue struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OptionGroup is a named axis of product customization. Key is derived from
// Label (slugified) and is unique within a product.
type OptionGroup struct {
	Key    string        `json:"key"`
	Label  string        `json:"label"`
	Values []OptionValue `json:"values"`
}

// OptionGroups is the ordered list of option groups declared on a product.
// Group order is load-bearing: variant SKU suffixes follow it.
type OptionGroups []OptionGroup

// OptionPair binds an option-group key to the selected value's ID.
type OptionPair struct {
	Key     string `json:"key"`
	ValueID string `json:"value_id"`
}

// OptionSelection is one concrete combination of option values, stored as an
// explicit ordered sequence rather than a map so encoding stays deterministic.
type OptionSelection []OptionPair

// Get returns the selected value id for a group key, or "" when absent.
func (s OptionSelection) Get(key string) string {
	for _, pair := range s {
		if pair.Key == key {
			return pair.ValueID
		}
	}
	return ""
}
