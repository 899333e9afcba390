package gateway

import "storefront/internal/domain"

// Wire shapes for the Storefront API's edges/node envelopes, mapped to
// flat domain types before leaving this package.

type sfMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

func (m sfMoney) toDomain() domain.Money {
	return domain.Money{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

type sfImage struct {
	URL string `json:"url"`
}

type sfCart struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
	Cost        struct {
		TotalAmount sfMoney `json:"totalAmount"`
	} `json:"cost"`
	Lines struct {
		Edges []struct {
			Node sfLine `json:"node"`
		} `json:"edges"`
	} `json:"lines"`
}

type sfLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Cost     struct {
		SubtotalAmount sfMoney `json:"subtotalAmount"`
	} `json:"cost"`
	Merchandise struct {
		ID      string   `json:"id"`
		Title   string   `json:"title"`
		Image   *sfImage `json:"image"`
		Product struct {
			Title  string `json:"title"`
			Handle string `json:"handle"`
		} `json:"product"`
	} `json:"merchandise"`
}

func (c sfCart) toDomain() *domain.Cart {
	out := &domain.Cart{
		ID:          c.ID,
		CheckoutURL: c.CheckoutURL,
		TotalAmount: c.Cost.TotalAmount.toDomain(),
	}
	for _, edge := range c.Lines.Edges {
		line := edge.Node
		item := domain.LineItem{
			ID:       line.ID,
			Quantity: line.Quantity,
			Subtotal: line.Cost.SubtotalAmount.toDomain(),
			Merchandise: domain.Merchandise{
				VariantID:     line.Merchandise.ID,
				Title:         line.Merchandise.Title,
				ProductTitle:  line.Merchandise.Product.Title,
				ProductHandle: line.Merchandise.Product.Handle,
			},
		}
		if line.Merchandise.Image != nil {
			item.Merchandise.ImageURL = line.Merchandise.Image.URL
		}
		out.Lines = append(out.Lines, item)
	}
	return out
}

type sfVariant struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	AvailableForSale  bool     `json:"availableForSale"`
	QuantityAvailable int      `json:"quantityAvailable"`
	Price             sfMoney  `json:"price"`
	CompareAtPrice    *sfMoney `json:"compareAtPrice"`
	Image             *sfImage `json:"image"`
	SelectedOptions   []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
}

func (v sfVariant) toDomain() domain.Variant {
	out := domain.Variant{
		ID:                v.ID,
		Title:             v.Title,
		AvailableForSale:  v.AvailableForSale,
		QuantityAvailable: v.QuantityAvailable,
		Price:             v.Price.toDomain(),
	}
	if v.CompareAtPrice != nil {
		price := v.CompareAtPrice.toDomain()
		out.CompareAtPrice = &price
	}
	if v.Image != nil {
		out.ImageURL = v.Image.URL
	}
	for _, opt := range v.SelectedOptions {
		out.SelectedOptions = append(out.SelectedOptions, domain.SelectedOption{Name: opt.Name, Value: opt.Value})
	}
	return out
}

type sfProduct struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Handle          string   `json:"handle"`
	ProductType     string   `json:"productType"`
	Tags            []string `json:"tags"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Images          struct {
		Edges []struct {
			Node sfImage `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node sfVariant `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
	Options []struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"options"`
}

func (p sfProduct) toDomain() domain.Product {
	out := domain.Product{
		ID:              p.ID,
		Title:           p.Title,
		Handle:          p.Handle,
		ProductType:     p.ProductType,
		Tags:            p.Tags,
		Description:     p.Description,
		DescriptionHTML: p.DescriptionHTML,
	}
	for _, edge := range p.Images.Edges {
		out.ImageURLs = append(out.ImageURLs, edge.Node.URL)
	}
	for _, edge := range p.Variants.Edges {
		out.Variants = append(out.Variants, edge.Node.toDomain())
	}
	for _, opt := range p.Options {
		out.Options = append(out.Options, domain.ProductOption{ID: opt.ID, Name: opt.Name, Values: opt.Values})
	}
	return out
}

type sfCollection struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Handle      string   `json:"handle"`
	Image       *sfImage `json:"image"`
	Products    struct {
		Edges []struct {
			Node sfProduct `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

func (c sfCollection) toDomain() domain.Collection {
	out := domain.Collection{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Handle:      c.Handle,
	}
	if c.Image != nil {
		out.ImageURL = c.Image.URL
	}
	return out
}
