package gateway

import (
	"context"
	"strings"

	"storefront/internal/domain"
)

// Products lists catalog products up to limit.
func (c *Client) Products(ctx context.Context, limit int) ([]domain.Product, error) {
	var resp struct {
		Products struct {
			Edges []struct {
				Node sfProduct `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.post(ctx, "products", productsQuery, map[string]interface{}{"limit": limit}, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(resp.Products.Edges))
	for _, edge := range resp.Products.Edges {
		out = append(out, edge.Node.toDomain())
	}
	return out, nil
}

// SearchProducts runs a single platform-side product search with the
// given query pattern.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	var resp struct {
		Products struct {
			Edges []struct {
				Node sfProduct `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.post(ctx, "searchProducts", productSearchQuery, map[string]interface{}{"query": query}, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(resp.Products.Edges))
	for _, edge := range resp.Products.Edges {
		out = append(out, edge.Node.toDomain())
	}
	return out, nil
}

// ProductByTitle resolves one product by title, preferring an exact
// case-insensitive match over the platform's fuzzy ordering.
func (c *Client) ProductByTitle(ctx context.Context, title string) (*domain.Product, error) {
	var resp struct {
		Products struct {
			Edges []struct {
				Node sfProduct `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	vars := map[string]interface{}{"query": "title:" + title}
	if err := c.post(ctx, "productByTitle", productByTitleQuery, vars, &resp); err != nil {
		return nil, err
	}
	if len(resp.Products.Edges) == 0 {
		return nil, domain.ErrNotFound
	}
	pick := resp.Products.Edges[0].Node
	for _, edge := range resp.Products.Edges {
		if strings.EqualFold(edge.Node.Title, title) {
			pick = edge.Node
			break
		}
	}
	product := pick.toDomain()
	return &product, nil
}

// Collections lists merchandising collections up to limit.
func (c *Client) Collections(ctx context.Context, limit int) ([]domain.Collection, error) {
	var resp struct {
		Collections struct {
			Edges []struct {
				Node sfCollection `json:"node"`
			} `json:"edges"`
		} `json:"collections"`
	}
	if err := c.post(ctx, "collections", collectionsQuery, map[string]interface{}{"limit": limit}, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Collection, 0, len(resp.Collections.Edges))
	for _, edge := range resp.Collections.Edges {
		out = append(out, edge.Node.toDomain())
	}
	return out, nil
}

// Collection resolves a collection by title together with its products,
// preferring an exact case-insensitive title match.
func (c *Client) Collection(ctx context.Context, title string, limit int) (*domain.Collection, []domain.Product, error) {
	var resp struct {
		Collections struct {
			Edges []struct {
				Node sfCollection `json:"node"`
			} `json:"edges"`
		} `json:"collections"`
	}
	vars := map[string]interface{}{
		"title": "title:" + title,
		"limit": limit,
	}
	if err := c.post(ctx, "collection", collectionQuery, vars, &resp); err != nil {
		return nil, nil, err
	}
	if len(resp.Collections.Edges) == 0 {
		return nil, nil, domain.ErrNotFound
	}
	pick := resp.Collections.Edges[0].Node
	for _, edge := range resp.Collections.Edges {
		if strings.EqualFold(edge.Node.Title, title) {
			pick = edge.Node
			break
		}
	}
	collection := pick.toDomain()
	products := make([]domain.Product, 0, len(pick.Products.Edges))
	for _, edge := range pick.Products.Edges {
		products = append(products, edge.Node.toDomain())
	}
	return &collection, products, nil
}
