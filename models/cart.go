package models

import (
	"sort"
	"strings"
)

// LineItem is one distinct product+variant entry in a cart with its own
// quantity. The snapshot fields are frozen at add-to-cart time.
type LineItem struct {
	ProductSnapshot
	SelectedVariant map[string]string `json:"selected_variant,omitempty"`
	Quantity        int               `json:"quantity"`
}

// IdentityKey builds the merge key for a line: product id plus the variant
// selection canonicalized as sorted type=option pairs, so key equality never
// depends on map iteration or serialization order.
func (l LineItem) IdentityKey() string {
	return LineIdentityKey(l.ProductID, l.SelectedVariant)
}

func LineIdentityKey(productID string, variant map[string]string) string {
	if len(variant) == 0 {
		return productID
	}
	pairs := make([]string, 0, len(variant))
	for k, v := range variant {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return productID + "|" + strings.Join(pairs, "|")
}

// CartState is the full persisted cart: active items plus saved-for-later,
// both in insertion order. A line is never in both sequences at once.
type CartState struct {
	Items         []LineItem `json:"items"`
	SavedForLater []LineItem `json:"saved_for_later"`
}

func (s CartState) Total() float64 {
	total := 0.0
	for _, item := range s.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (s CartState) Count() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// Clone deep-copies the state so callers cannot mutate store internals.
func (s CartState) Clone() CartState {
	return CartState{
		Items:         cloneLines(s.Items),
		SavedForLater: cloneLines(s.SavedForLater),
	}
}

func cloneLines(lines []LineItem) []LineItem {
	out := make([]LineItem, len(lines))
	for i, l := range lines {
		out[i] = l
		if l.SelectedVariant != nil {
			variant := make(map[string]string, len(l.SelectedVariant))
			for k, v := range l.SelectedVariant {
				variant[k] = v
			}
			out[i].SelectedVariant = variant
		}
	}
	return out
}
