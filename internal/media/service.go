package media

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/campuseats/ordering-gateway/pkg/errors"
	"github.com/campuseats/ordering-gateway/pkg/logger"
	"github.com/campuseats/ordering-gateway/pkg/storage/blob"
)

// Folder namespaces uploaded objects inside the blob store bucket.
type Folder string

const (
	FolderProducts    Folder = "products"
	FolderRestaurants Folder = "restaurants"
	FolderMenus       Folder = "menus"
)

var allowedContentTypes = map[Folder]map[string]bool{
	FolderProducts:    {"image/jpeg": true, "image/png": true, "image/webp": true},
	FolderRestaurants: {"image/jpeg": true, "image/png": true, "image/webp": true},
	FolderMenus:       {"application/pdf": true},
}

// Service uploads POS media (product/restaurant images, menu PDFs) to the
// external blob store and hands back the retrievable URL. Retention and
// serving stay with the store.
type Service struct {
	blob *blob.Client
	logg *logger.Logger
}

// NewService builds the media service. A nil blob client keeps the gateway
// running with uploads reported as unavailable.
func NewService(blobClient *blob.Client, logg *logger.Logger) *Service {
	return &Service{blob: blobClient, logg: logg}
}

// Upload stores one object under the folder and returns its URL. The object
// name is a fresh UUID carrying the original file extension, so uploads never
// collide and the source filename leaks nothing into the store.
func (s *Service) Upload(ctx context.Context, folder Folder, filename, contentType string, body io.Reader) (string, error) {
	if s.blob == nil {
		return "", errors.New(errors.CodeDependency, "la carga de archivos no está disponible")
	}
	allowed, ok := allowedContentTypes[folder]
	if !ok {
		return "", errors.New(errors.CodeValidation, "destino de carga desconocido")
	}
	if !allowed[strings.ToLower(contentType)] {
		return "", errors.New(errors.CodeValidation, "tipo de archivo no permitido: "+contentType)
	}

	objectName := string(folder) + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	url, err := s.blob.Upload(ctx, objectName, contentType, body)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "media upload failed", err)
		}
		return "", errors.Wrap(errors.CodeDependency, err, "no se pudo subir el archivo")
	}
	return url, nil
}
