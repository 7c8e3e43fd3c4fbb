package models

import "fmt"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type Variation struct {
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

type Product struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Brand         string      `json:"brand"`
	Category      string      `json:"category"`
	Subcategory   string      `json:"subcategory,omitempty"`
	Price         float64     `json:"price"`
	OriginalPrice float64     `json:"original_price,omitempty"`
	Rating        float64     `json:"rating"`
	ReviewCount   int         `json:"review_count"`
	Images        []string    `json:"images"`
	Stock         int         `json:"stock"`
	DeliveryDays  int         `json:"delivery_days"`
	Prime         bool        `json:"prime"`
	Deal          bool        `json:"deal"`
	Variations    []Variation `json:"variations,omitempty"`
}

// ProductSnapshot is the subset of product fields copied into a cart line
// at add-to-cart time. Later catalog changes never alter it.
type ProductSnapshot struct {
	ProductID    string  `json:"product_id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Image        string  `json:"image,omitempty"`
	Stock        int     `json:"stock"`
	DeliveryDays int     `json:"delivery_days"`
	Prime        bool    `json:"prime"`
}

func (p Product) Snapshot() ProductSnapshot {
	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return ProductSnapshot{
		ProductID:    p.ID,
		Title:        p.Title,
		Price:        p.Price,
		Image:        image,
		Stock:        p.Stock,
		DeliveryDays: p.DeliveryDays,
		Prime:        p.Prime,
	}
}

type Savings struct {
	Amount     float64 `json:"amount"`
	Percentage int     `json:"percentage"`
	Formatted  string  `json:"formatted"`
}

func (p Product) Savings() *Savings {
	if p.OriginalPrice <= p.Price {
		return nil
	}
	amount := p.OriginalPrice - p.Price
	pct := int(amount/p.OriginalPrice*100 + 0.5)
	return &Savings{
		Amount:     amount,
		Percentage: pct,
		Formatted:  fmt.Sprintf("$%.2f (%d%%)", amount, pct),
	}
}

func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
