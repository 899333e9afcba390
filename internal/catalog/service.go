package catalog

import (
	"context"
	"log"
	"strings"

	"storefront/internal/domain"
)

const (
	defaultListLimit = 20
	searchResultCap  = 10
)

type gatewayClient interface {
	Products(ctx context.Context, limit int) ([]domain.Product, error)
	Collections(ctx context.Context, limit int) ([]domain.Collection, error)
	Collection(ctx context.Context, title string, limit int) (*domain.Collection, []domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	ProductByTitle(ctx context.Context, title string) (*domain.Product, error)
}

// Service is the catalog read path over the commerce gateway.
type Service struct {
	gw     gatewayClient
	logger *log.Logger
}

func New(gw gatewayClient, logger *log.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.gw.Products(ctx, limit)
}

func (s *Service) Collections(ctx context.Context, limit int) ([]domain.Collection, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.gw.Collections(ctx, limit)
}

func (s *Service) Collection(ctx context.Context, title string, limit int) (*domain.Collection, []domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.gw.Collection(ctx, title, limit)
}

func (s *Service) ProductByTitle(ctx context.Context, title string) (*domain.Product, error) {
	return s.gw.ProductByTitle(ctx, title)
}

// SearchResult is the compact per-product view search consumers get.
type SearchResult struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	ProductType       string        `json:"productType,omitempty"`
	Handle            string        `json:"handle,omitempty"`
	ImageURL          string        `json:"image,omitempty"`
	Price             *domain.Money `json:"price,omitempty"`
	CompareAtPrice    *domain.Money `json:"compareAtPrice,omitempty"`
	VariantID         string        `json:"variantId,omitempty"`
	QuantityAvailable int           `json:"quantityAvailable"`
	AvailableForSale  bool          `json:"availableForSale"`
}

// Search runs the keyword through several platform query patterns,
// merges and dedupes the hits, and falls back to fetch-and-filter when
// the platform search comes up empty. Only title and product type
// matches survive the final relevance filter.
func (s *Service) Search(ctx context.Context, keyword string) ([]SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}

	patterns := []string{
		keyword,
		"title:*" + keyword + "*",
		"product_type:*" + keyword + "*",
		"tag:*" + keyword + "*",
	}

	var merged []domain.Product
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		products, err := s.gw.SearchProducts(ctx, pattern)
		if err != nil {
			// One pattern failing must not sink the whole search.
			s.logger.Printf("search pattern %q failed: %v", pattern, err)
			continue
		}
		for _, p := range products {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}

	if len(merged) == 0 {
		all, err := s.gw.Products(ctx, 50)
		if err != nil {
			return nil, err
		}
		merged = filterByKeyword(all, keyword, true)
	}

	matched := filterByKeyword(merged, keyword, false)

	if len(matched) > searchResultCap {
		matched = matched[:searchResultCap]
	}
	results := make([]SearchResult, 0, len(matched))
	for _, p := range matched {
		results = append(results, toSearchResult(p))
	}
	return results, nil
}

func filterByKeyword(products []domain.Product, keyword string, includeTags bool) []domain.Product {
	lower := strings.ToLower(keyword)
	var out []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), lower) ||
			strings.Contains(strings.ToLower(p.ProductType), lower) {
			out = append(out, p)
			continue
		}
		if includeTags && tagMatches(p.Tags, lower) {
			out = append(out, p)
		}
	}
	return out
}

func tagMatches(tags []string, lower string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), lower) {
			return true
		}
	}
	return false
}

func toSearchResult(p domain.Product) SearchResult {
	out := SearchResult{
		ID:          shortID(p.ID),
		Title:       p.Title,
		ProductType: p.ProductType,
		Handle:      p.Handle,
	}
	if len(p.ImageURLs) > 0 {
		out.ImageURL = p.ImageURLs[0]
	}
	if len(p.Variants) > 0 {
		v := p.Variants[0]
		price := v.Price
		out.Price = &price
		out.CompareAtPrice = v.CompareAtPrice
		out.VariantID = v.ID
		out.QuantityAvailable = v.QuantityAvailable
		out.AvailableForSale = v.AvailableForSale
	}
	return out
}

// shortID strips the GID prefix, keeping the trailing numeric segment.
func shortID(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
