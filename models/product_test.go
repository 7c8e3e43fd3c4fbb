package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductSnapshot(t *testing.T) {
	p := Product{
		ID:     "p-1",
		Title:  "Widget",
		Price:  9.99,
		Images: []string{"/images/widget-front.jpg", "/images/widget-back.jpg"},
		Stock:  5,
		Prime:  true,
	}

	snap := p.Snapshot()
	assert.Equal(t, "p-1", snap.ProductID)
	assert.Equal(t, "/images/widget-front.jpg", snap.Image)
	assert.Equal(t, 9.99, snap.Price)

	assert.Empty(t, Product{ID: "p-2"}.Snapshot().Image)
}

func TestProductSavings(t *testing.T) {
	p := Product{Price: 199.99, OriginalPrice: 249.99}
	savings := p.Savings()
	require.NotNil(t, savings)
	assert.InDelta(t, 50.00, savings.Amount, 0.001)
	assert.Equal(t, 20, savings.Percentage)
	assert.Equal(t, "$50.00 (20%)", savings.Formatted)

	assert.Nil(t, Product{Price: 10, OriginalPrice: 10}.Savings())
	assert.Nil(t, Product{Price: 10}.Savings())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$19.99", FormatPrice(19.99))
	assert.Equal(t, "$1299.00", FormatPrice(1299))
}
