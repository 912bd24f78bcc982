package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/enums"
)

// ProductDTO is the wire shape for one catalog product.
type ProductDTO struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Price      decimal.Decimal   `json:"price"`
	Unit       enums.ProductUnit `json:"unit"`
	GramAmount *int              `json:"gram_amount,omitempty"`
	Extra      bool              `json:"extra"`
	Weighed    bool              `json:"weighed"`
	Available  bool              `json:"available"`
	Position   *int              `json:"position,omitempty"`
	Icon       *string           `json:"icon,omitempty"`
	ImageURL   *string           `json:"image_url,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// StorefrontDTO splits the public catalog into its two display sections.
type StorefrontDTO struct {
	General []ProductDTO `json:"general"`
	Extras  []ProductDTO `json:"extras"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name       string          `json:"name" validate:"required,min=1,max=120"`
	Price      decimal.Decimal `json:"price" validate:"required"`
	Unit       string          `json:"unit" validate:"required"`
	GramAmount *int            `json:"gram_amount" validate:"omitempty,gt=0"`
	Extra      bool            `json:"extra"`
	Weighed    bool            `json:"weighed"`
	Available  *bool           `json:"available"`
	Icon       *string         `json:"icon" validate:"omitempty,max=16"`
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=120"`
	Price      *decimal.Decimal `json:"price"`
	Unit       *string          `json:"unit"`
	GramAmount *int             `json:"gram_amount" validate:"omitempty,gt=0"`
	Extra      *bool            `json:"extra"`
	Weighed    *bool            `json:"weighed"`
	Available  *bool            `json:"available"`
	Icon       *string          `json:"icon" validate:"omitempty,max=16"`
}

// SeedProductInput is one row of a bulk catalog upload.
type SeedProductInput struct {
	Name       string          `json:"name" validate:"required,min=1,max=120"`
	Price      decimal.Decimal `json:"price" validate:"required"`
	Unit       string          `json:"unit" validate:"required"`
	GramAmount *int            `json:"gram_amount" validate:"omitempty,gt=0"`
	Extra      bool            `json:"extra"`
	Weighed    bool            `json:"weighed"`
	Icon       *string         `json:"icon" validate:"omitempty,max=16"`
}

// ImageURLResolver maps a stored object reference to its public URL. A nil
// resolver leaves image urls unset.
type ImageURLResolver interface {
	PublicURL(object string) string
}

// NewProductDTO maps a product row to its wire shape.
func NewProductDTO(product *models.Product, images ImageURLResolver) ProductDTO {
	dto := ProductDTO{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price,
		Unit:       product.Unit,
		GramAmount: product.GramAmount,
		Extra:      product.Extra,
		Weighed:    product.Weighed,
		Available:  product.Available,
		Position:   product.Position,
		Icon:       product.Icon,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
	if product.ImageRef != nil && images != nil {
		url := images.PublicURL(*product.ImageRef)
		if url != "" {
			dto.ImageURL = &url
		}
	}
	return dto
}

func newProductDTOs(products []models.Product, images ImageURLResolver) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, NewProductDTO(&products[i], images))
	}
	return out
}
