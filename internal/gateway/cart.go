package gateway

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// LineUpdate sets a new quantity for one line item.
type LineUpdate struct {
	LineID   string
	Quantity int
}

type mutationPayload struct {
	Cart       *sfCart            `json:"cart"`
	UserErrors []domain.UserError `json:"userErrors"`
}

func (p mutationPayload) cart(op string) (*domain.Cart, error) {
	if len(p.UserErrors) > 0 {
		return nil, &domain.RejectedError{Op: op, UserErrors: p.UserErrors}
	}
	if p.Cart == nil {
		return nil, &domain.NetworkError{Op: op, Err: errors.New("mutation returned no cart")}
	}
	return p.Cart.toDomain(), nil
}

// CreateCart creates a fresh empty cart on the platform.
func (c *Client) CreateCart(ctx context.Context) (*domain.Cart, error) {
	var resp struct {
		CartCreate mutationPayload `json:"cartCreate"`
	}
	if err := c.post(ctx, "cartCreate", cartCreateMutation, nil, &resp); err != nil {
		return nil, err
	}
	return resp.CartCreate.cart("cartCreate")
}

// GetCart fetches a cart by id. A nil cart with nil error means the id
// is no longer valid on the platform, which is not a failure.
func (c *Client) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	var resp struct {
		Cart *sfCart `json:"cart"`
	}
	if err := c.post(ctx, "cart", cartQuery, map[string]interface{}{"cartId": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Cart == nil {
		return nil, nil
	}
	return resp.Cart.toDomain(), nil
}

// AddLines adds a variant to the cart. The platform decides whether to
// merge with an existing line or create a new one.
func (c *Client) AddLines(ctx context.Context, cartID, variantID string, quantity int) (*domain.Cart, error) {
	var resp struct {
		CartLinesAdd mutationPayload `json:"cartLinesAdd"`
	}
	vars := map[string]interface{}{
		"cartId":    cartID,
		"variantId": variantID,
		"quantity":  quantity,
	}
	if err := c.post(ctx, "cartLinesAdd", cartLinesAddMutation, vars, &resp); err != nil {
		return nil, err
	}
	return resp.CartLinesAdd.cart("cartLinesAdd")
}

// RemoveLines removes the given line items from the cart.
func (c *Client) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	var resp struct {
		CartLinesRemove mutationPayload `json:"cartLinesRemove"`
	}
	vars := map[string]interface{}{
		"cartId":  cartID,
		"lineIds": lineIDs,
	}
	if err := c.post(ctx, "cartLinesRemove", cartLinesRemoveMutation, vars, &resp); err != nil {
		return nil, err
	}
	return resp.CartLinesRemove.cart("cartLinesRemove")
}

// UpdateLines sets new quantities for the given line items.
func (c *Client) UpdateLines(ctx context.Context, cartID string, updates []LineUpdate) (*domain.Cart, error) {
	lines := make([]map[string]interface{}, 0, len(updates))
	for _, u := range updates {
		lines = append(lines, map[string]interface{}{"id": u.LineID, "quantity": u.Quantity})
	}
	var resp struct {
		CartLinesUpdate mutationPayload `json:"cartLinesUpdate"`
	}
	vars := map[string]interface{}{
		"cartId": cartID,
		"lines":  lines,
	}
	if err := c.post(ctx, "cartLinesUpdate", cartLinesUpdateMutation, vars, &resp); err != nil {
		return nil, err
	}
	return resp.CartLinesUpdate.cart("cartLinesUpdate")
}
