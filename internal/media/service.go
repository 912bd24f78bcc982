// Package media manages product images in object storage.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
)

// ObjectStore is the storage surface the media service needs.
type ObjectStore interface {
	Upload(ctx context.Context, object, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, object string) error
	PublicURL(object string) string
}

// ProductStore is the catalog surface the media service needs.
type ProductStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
}

// ImageDTO describes the stored image after an upload.
type ImageDTO struct {
	Ref string `json:"ref"`
	URL string `json:"url"`
}

// Service attaches and detaches product images.
type Service interface {
	UploadProductImage(ctx context.Context, productID uuid.UUID, filename, contentType string, body io.Reader) (*ImageDTO, error)
	RemoveProductImage(ctx context.Context, productID uuid.UUID) error
	Remove(ctx context.Context, ref string) error
	PublicURL(object string) string
}

type service struct {
	store    ObjectStore
	products ProductStore
	prefix   string
}

// NewService constructs the media service.
func NewService(store ObjectStore, products ProductStore, cfg config.GCSConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product store required")
	}
	return &service{store: store, products: products, prefix: cfg.PathPrefix}, nil
}

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// UploadProductImage stores the object keyed by product id and records the
// reference on the product row. Re-uploading replaces the object in place, so
// stale references never accumulate.
func (s *service) UploadProductImage(ctx context.Context, productID uuid.UUID, filename, contentType string, body io.Reader) (*ImageDTO, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported image type %q", contentType))
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	ref := s.objectRef(productID, ext)
	url, err := s.store.Upload(ctx, ref, contentType, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading image")
	}

	// Replacing an image with a different extension leaves the old object
	// behind; delete it first.
	if product.ImageRef != nil && *product.ImageRef != ref {
		_ = s.store.Delete(ctx, *product.ImageRef)
	}

	product.ImageRef = &ref
	if _, err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("recording image ref: %w", err)
	}

	return &ImageDTO{Ref: ref, URL: url}, nil
}

func (s *service) RemoveProductImage(ctx context.Context, productID uuid.UUID) error {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.ImageRef == nil {
		return nil
	}

	if err := s.store.Delete(ctx, *product.ImageRef); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting image")
	}

	product.ImageRef = nil
	if _, err := s.products.Update(ctx, product); err != nil {
		return fmt.Errorf("clearing image ref: %w", err)
	}
	return nil
}

// Remove deletes a raw object reference. Used for cleanup when the owning
// product row is already gone.
func (s *service) Remove(ctx context.Context, ref string) error {
	return s.store.Delete(ctx, ref)
}

func (s *service) PublicURL(object string) string {
	return s.store.PublicURL(object)
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, fmt.Errorf("loading product: %w", err)
	}
	return product, nil
}

func (s *service) objectRef(productID uuid.UUID, ext string) string {
	name := productID.String() + ext
	if s.prefix == "" {
		return name
	}
	return path.Join(strings.Trim(s.prefix, "/"), name)
}
