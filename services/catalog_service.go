package services

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"storefront/data"
	"storefront/models"
)

// Sort keys accepted by Search.
const (
	SortPriceAsc    = "price-asc"
	SortPriceDesc   = "price-desc"
	SortRating      = "rating-desc"
	SortReviewCount = "review-count-desc"
	SortNewest      = "newest"
	SortRelevance   = "relevance"
)

type SearchOptions struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	PrimeOnly bool
	SortBy    string
	Limit     int
	Offset    int
}

// CatalogService answers read-only queries over the bundled product list.
// The list never changes at runtime; cart and order flows copy snapshots
// out of it rather than referencing it.
type CatalogService struct {
	products   []models.Product
	categories []models.Category
}

func NewCatalogService() (*CatalogService, error) {
	var products []models.Product
	if err := json.Unmarshal(data.Products, &products); err != nil {
		return nil, fmt.Errorf("parse products: %w", err)
	}
	var categories []models.Category
	if err := json.Unmarshal(data.Categories, &categories); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	return &CatalogService{products: products, categories: categories}, nil
}

func (s *CatalogService) Categories() []models.Category {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *CatalogService) GetByID(id string) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
}

// Search filters, sorts, and paginates the catalog. Every lowercase term of
// query must appear in the product's title, description, brand, or
// category. The default sort is relevance: rating x review count,
// descending.
func (s *CatalogService) Search(query string, opts SearchOptions) models.SearchResponse {
	results := make([]models.Product, 0, len(s.products))
	terms := strings.Fields(strings.ToLower(query))

	for _, p := range s.products {
		if len(terms) > 0 && !matchesTerms(p, terms) {
			continue
		}
		if opts.Category != "" && opts.Category != "all" &&
			p.Category != opts.Category && p.Subcategory != opts.Category {
			continue
		}
		if opts.MinPrice != nil && p.Price < *opts.MinPrice {
			continue
		}
		if opts.MaxPrice != nil && p.Price > *opts.MaxPrice {
			continue
		}
		if opts.MinRating != nil && p.Rating < *opts.MinRating {
			continue
		}
		if opts.PrimeOnly && !p.Prime {
			continue
		}
		results = append(results, p)
	}

	sortProducts(results, opts.SortBy)

	total := len(results)
	if opts.Limit > 0 {
		start := opts.Offset
		if start > total {
			start = total
		}
		end := start + opts.Limit
		if end > total {
			end = total
		}
		results = results[start:end]
	}

	return models.SearchResponse{
		Products: results,
		Total:    total,
		HasMore:  opts.Offset+len(results) < total,
	}
}

func matchesTerms(p models.Product, terms []string) bool {
	haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.Brand + " " + p.Category)
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func sortProducts(products []models.Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	case SortReviewCount:
		sort.SliceStable(products, func(i, j int) bool { return products[i].ReviewCount > products[j].ReviewCount })
	case SortNewest:
		// newest is defined as catalog reverse order
		for i, j := 0, len(products)-1; i < j; i, j = i+1, j-1 {
			products[i], products[j] = products[j], products[i]
		}
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating*float64(products[i].ReviewCount) >
				products[j].Rating*float64(products[j].ReviewCount)
		})
	}
}

// GetRelated returns up to limit products sharing a category or subcategory
// with the given product, excluding the product itself.
func (s *CatalogService) GetRelated(id string, limit int) []models.Product {
	product, err := s.GetByID(id)
	if err != nil {
		return nil
	}
	related := []models.Product{}
	for _, p := range s.products {
		if len(related) >= limit {
			break
		}
		if p.ID == id {
			continue
		}
		if p.Category == product.Category ||
			(product.Subcategory != "" && p.Subcategory == product.Subcategory) {
			related = append(related, p)
		}
	}
	return related
}

func (s *CatalogService) Deals(limit int) []models.Product {
	deals := []models.Product{}
	for _, p := range s.products {
		if len(deals) >= limit {
			break
		}
		if p.Deal {
			deals = append(deals, p)
		}
	}
	return deals
}

// Featured ranks by rating weighted by log10 of review count, so products
// with a handful of five-star reviews do not outrank well-reviewed ones.
func (s *CatalogService) Featured(limit int) []models.Product {
	featured := make([]models.Product, len(s.products))
	copy(featured, s.products)
	sort.SliceStable(featured, func(i, j int) bool {
		return featuredScore(featured[i]) > featuredScore(featured[j])
	})
	if limit > 0 && limit < len(featured) {
		featured = featured[:limit]
	}
	return featured
}

func featuredScore(p models.Product) float64 {
	return p.Rating * math.Log10(float64(p.ReviewCount)+1)
}
