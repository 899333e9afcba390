package domain

// Cart mirrors the remote shopping cart resource. The ID never changes
// for the lifetime of the value; when the platform reports the cart gone,
// callers must obtain a new Cart rather than mutate this one.
type Cart struct {
	ID          string     `json:"id"`
	CheckoutURL string     `json:"checkoutUrl"`
	Lines       []LineItem `json:"lines"`
	TotalAmount Money      `json:"totalAmount"`
}

// LineItem is one merchandise line within a cart. Quantity is always
// positive; removal replaces a zero-quantity line.
type LineItem struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise"`
	Subtotal    Money       `json:"subtotal"`
}

// Merchandise references the purchasable variant behind a line item.
type Merchandise struct {
	VariantID     string `json:"variantId"`
	Title         string `json:"title"`
	ImageURL      string `json:"imageUrl,omitempty"`
	ProductTitle  string `json:"productTitle"`
	ProductHandle string `json:"productHandle,omitempty"`
}

// ItemCount sums line quantities. Zero for a nil cart.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}
