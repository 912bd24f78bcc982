package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ingenio-organico-app/ingenio-organico-app/internal/ordering"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/enums"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
)

// Service exposes catalog management and the public storefront read.
type Service interface {
	Storefront(ctx context.Context) (*StorefrontDTO, error)
	ListAll(ctx context.Context) ([]ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	SetAvailability(ctx context.Context, productID uuid.UUID, available bool) (*ProductDTO, error)
	Move(ctx context.Context, productID uuid.UUID, direction ordering.Direction) ([]ProductDTO, error)
	Reorder(ctx context.Context, extra bool, fromIndex, toIndex int) ([]ProductDTO, error)
	Seed(ctx context.Context, inputs []SeedProductInput) ([]ProductDTO, error)
}

type imageRemover interface {
	Remove(ctx context.Context, ref string) error
}

type service struct {
	repo     Repository
	dbClient *db.Client
	images   ImageURLResolver
	remover  imageRemover
}

// NewService constructs a catalog service. images and remover may be nil when
// object storage is not configured; image urls are then omitted and deletes
// skip storage cleanup.
func NewService(repo Repository, dbClient *db.Client, images ImageURLResolver, remover imageRemover) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, images: images, remover: remover}, nil
}

func (s *service) Storefront(ctx context.Context) (*StorefrontDTO, error) {
	products, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing storefront products: %w", err)
	}
	out := &StorefrontDTO{General: []ProductDTO{}, Extras: []ProductDTO{}}
	for i := range products {
		dto := NewProductDTO(&products[i], s.images)
		if products[i].Extra {
			out.Extras = append(out.Extras, dto)
		} else {
			out.General = append(out.General, dto)
		}
	}
	return out, nil
}

func (s *service) ListAll(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return newProductDTOs(products, s.images), nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	unit, err := parseUnit(input.Unit)
	if err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	product := &models.Product{
		Name:       input.Name,
		Price:      input.Price,
		Unit:       unit,
		GramAmount: input.GramAmount,
		Extra:      input.Extra,
		Weighed:    input.Weighed,
		Available:  available,
		Icon:       input.Icon,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	dto := NewProductDTO(created, s.images)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Unit != nil {
		unit, err := parseUnit(*input.Unit)
		if err != nil {
			return nil, err
		}
		product.Unit = unit
	}
	if input.GramAmount != nil {
		product.GramAmount = input.GramAmount
	}
	if input.Extra != nil && *input.Extra != product.Extra {
		// Crossing sections invalidates the manual slot; the product re-enters
		// its new group unplaced.
		product.Extra = *input.Extra
		product.Position = nil
	}
	if input.Weighed != nil {
		product.Weighed = *input.Weighed
	}
	if input.Available != nil {
		product.Available = *input.Available
	}
	if input.Icon != nil {
		product.Icon = input.Icon
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}
	dto := NewProductDTO(updated, s.images)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return fmt.Errorf("deleting product: %w", err)
	}

	// Storage cleanup is best effort; an orphaned object is preferable to a
	// catalog row that refuses to die.
	if product.ImageRef != nil && s.remover != nil {
		_ = s.remover.Remove(ctx, *product.ImageRef)
	}
	return nil
}

func (s *service) SetAvailability(ctx context.Context, productID uuid.UUID, available bool) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Available = available

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("updating availability: %w", err)
	}
	dto := NewProductDTO(updated, s.images)
	return &dto, nil
}

func (s *service) Move(ctx context.Context, productID uuid.UUID, direction ordering.Direction) ([]ProductDTO, error) {
	if !direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "direction must be up or down")
	}
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var result []ProductDTO
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		group, err := repo.ListGroup(ctx, product.Extra)
		if err != nil {
			return err
		}
		items := ordering.MoveWithinGroup(toItems(group), productID, direction)
		if err := repo.UpdatePositions(ctx, toPositions(items)); err != nil {
			return err
		}
		result = reorderedDTOs(group, items, s.images)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("moving product: %w", err)
	}
	return result, nil
}

func (s *service) Reorder(ctx context.Context, extra bool, fromIndex, toIndex int) ([]ProductDTO, error) {
	var result []ProductDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		group, err := repo.ListGroup(ctx, extra)
		if err != nil {
			return err
		}
		items := ordering.ReorderAfterDrag(toItems(group), fromIndex, toIndex)
		if err := repo.UpdatePositions(ctx, toPositions(items)); err != nil {
			return err
		}
		result = reorderedDTOs(group, items, s.images)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reordering products: %w", err)
	}
	return result, nil
}

func (s *service) Seed(ctx context.Context, inputs []SeedProductInput) ([]ProductDTO, error) {
	if len(inputs) == 0 {
		return []ProductDTO{}, nil
	}

	candidates := make([]models.Product, 0, len(inputs))
	for i, input := range inputs {
		if input.Name == "" {
			continue
		}
		unit, err := parseUnit(input.Unit)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("row %d: unknown unit %q", i, input.Unit))
		}
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("row %d: price cannot be negative", i))
		}
		// Position keeps the row's place in the uploaded list, even when
		// earlier rows get skipped as duplicates.
		position := i
		candidates = append(candidates, models.Product{
			Name:       input.Name,
			Price:      input.Price,
			Unit:       unit,
			GramAmount: input.GramAmount,
			Extra:      input.Extra,
			Weighed:    input.Weighed,
			Available:  true,
			Position:   &position,
			Icon:       input.Icon,
		})
	}

	var created []models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		names, err := txRepo.ListNames(ctx)
		if err != nil {
			return fmt.Errorf("listing product names: %w", err)
		}
		existing := make(map[string]struct{}, len(names))
		for _, name := range names {
			existing[name] = struct{}{}
		}

		created = created[:0]
		for _, candidate := range candidates {
			if _, dup := existing[candidate.Name]; dup {
				continue
			}
			created = append(created, candidate)
		}
		if len(created) == 0 {
			return nil
		}
		return txRepo.CreateBatch(ctx, created)
	})
	if err != nil {
		return nil, fmt.Errorf("seeding products: %w", err)
	}
	return newProductDTOs(created, s.images), nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, fmt.Errorf("loading product: %w", err)
	}
	return product, nil
}

func parseUnit(raw string) (enums.ProductUnit, error) {
	unit, err := enums.ParseProductUnit(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown unit %q", raw))
	}
	return unit, nil
}

func toItems(products []models.Product) []ordering.Item {
	items := make([]ordering.Item, 0, len(products))
	for _, p := range products {
		items = append(items, ordering.Item{ID: p.ID, Name: p.Name, Position: p.Position})
	}
	return items
}

func toPositions(items []ordering.Item) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		if it.Position != nil {
			out[it.ID] = *it.Position
		}
	}
	return out
}

// reorderedDTOs projects the ledger result back onto the loaded rows so the
// response reflects the new display order without a second read.
func reorderedDTOs(products []models.Product, items []ordering.Item, images ImageURLResolver) []ProductDTO {
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	out := make([]ProductDTO, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ID]
		if !ok {
			continue
		}
		p.Position = it.Position
		out = append(out, NewProductDTO(p, images))
	}
	return out
}
