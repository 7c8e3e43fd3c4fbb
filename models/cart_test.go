package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIdentityKey(t *testing.T) {
	plain := LineIdentityKey("p-1", nil)
	assert.Equal(t, "p-1", plain)

	a := LineIdentityKey("p-1", map[string]string{"Color": "Black", "Size": "M"})
	b := LineIdentityKey("p-1", map[string]string{"Size": "M", "Color": "Black"})
	assert.Equal(t, a, b)

	c := LineIdentityKey("p-1", map[string]string{"Color": "Silver", "Size": "M"})
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, plain, a)
}

func TestCartStateClone(t *testing.T) {
	state := CartState{
		Items: []LineItem{{
			ProductSnapshot: ProductSnapshot{ProductID: "p-1", Price: 9.99},
			SelectedVariant: map[string]string{"Color": "Black"},
			Quantity:        1,
		}},
	}

	clone := state.Clone()
	clone.Items[0].Quantity = 7
	clone.Items[0].SelectedVariant["Color"] = "Red"

	assert.Equal(t, 1, state.Items[0].Quantity)
	assert.Equal(t, "Black", state.Items[0].SelectedVariant["Color"])
}

func TestCartStateTotalAndCount(t *testing.T) {
	state := CartState{
		Items: []LineItem{
			{ProductSnapshot: ProductSnapshot{ProductID: "p-1", Price: 19.99}, Quantity: 2},
			{ProductSnapshot: ProductSnapshot{ProductID: "p-2", Price: 5.00}, Quantity: 1},
		},
		SavedForLater: []LineItem{
			{ProductSnapshot: ProductSnapshot{ProductID: "p-3", Price: 100.00}, Quantity: 1},
		},
	}

	assert.InDelta(t, 44.98, state.Total(), 0.001)
	assert.Equal(t, 3, state.Count())
}
