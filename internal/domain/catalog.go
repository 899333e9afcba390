package domain

// Product is a catalog entry as returned by the commerce platform.
type Product struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Handle          string          `json:"handle,omitempty"`
	ProductType     string          `json:"productType,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
	Description     string          `json:"description,omitempty"`
	DescriptionHTML string          `json:"descriptionHtml,omitempty"`
	ImageURLs       []string        `json:"images,omitempty"`
	Variants        []Variant       `json:"variants,omitempty"`
	Options         []ProductOption `json:"options,omitempty"`
}

// Variant is a purchasable configuration of a product.
type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable int              `json:"quantityAvailable"`
	Price             Money            `json:"price"`
	CompareAtPrice    *Money           `json:"compareAtPrice,omitempty"`
	ImageURL          string           `json:"imageUrl,omitempty"`
	SelectedOptions   []SelectedOption `json:"selectedOptions,omitempty"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductOption struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Collection groups products for merchandising pages.
type Collection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Handle      string `json:"handle"`
	ImageURL    string `json:"image,omitempty"`
}
