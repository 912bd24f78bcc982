package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
)

// Repository defines persistence operations for catalog products.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	CreateBatch(ctx context.Context, products []models.Product) error
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListNames(ctx context.Context) ([]string, error)
	ListAvailable(ctx context.Context) ([]models.Product, error)
	ListGroup(ctx context.Context, extra bool) ([]models.Product, error)
	UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) CreateBatch(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	for i := range products {
		if products[i].ID == uuid.Nil {
			products[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&products).Error
}

func (r *repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Order("extra ASC, position ASC NULLS LAST, name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *repository) ListAvailable(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("extra ASC, position ASC NULLS LAST, name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListGroup(ctx context.Context, extra bool) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("extra = ?", extra).
		Order("position ASC NULLS LAST, name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	for id, pos := range positions {
		err := r.db.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ?", id).
			Update("position", pos).Error
		if err != nil {
			return err
		}
	}
	return nil
}
