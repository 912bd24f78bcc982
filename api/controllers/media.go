package controllers

import (
	"net/http"

	"github.com/ingenio-organico-app/ingenio-organico-app/api/responses"
	"github.com/ingenio-organico-app/ingenio-organico-app/api/validators"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/media"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
)

const maxImageUploadBytes = 8 << 20

// UploadProductImage accepts a multipart upload under the "image" field and
// attaches it to the product.
func UploadProductImage(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
		if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart payload"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image field missing"))
			return
		}
		defer func() { _ = file.Close() }()

		image, err := svc.UploadProductImage(r.Context(), productID, header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, image)
	}
}

// DeleteProductImage detaches and removes the product's stored image.
func DeleteProductImage(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveProductImage(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
