package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuseats/ordering-gateway/api/responses"
	"github.com/campuseats/ordering-gateway/internal/media"
	"github.com/campuseats/ordering-gateway/pkg/config"
	pkgerrors "github.com/campuseats/ordering-gateway/pkg/errors"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

type uploadView struct {
	URL string `json:"url"`
}

// MediaUpload receives one multipart file under the "file" field and stores
// it in the folder named by the route.
func MediaUpload(svc *media.Service, cfg config.BlobConfig, logg *logger.Logger) http.HandlerFunc {
	maxBytes := int64(cfg.MaxUploadMB) << 20

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "el archivo supera el tamaño permitido"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "falta el archivo a subir"))
			return
		}
		defer file.Close()

		url, err := svc.Upload(ctx, media.Folder(chi.URLParam(r, "folder")), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, uploadView{URL: url})
	}
}
