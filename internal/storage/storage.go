// Package storage keeps progress-log photos taken by caretakers.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/plant-decor/internal/httperr"
)

const MaxPhotoBytes = 10 << 20

var ErrUnsupportedPhoto = httperr.ErrBusiness("unsupported_photo_type")

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type PhotoStore interface {
	// Put stores the object and returns its public URL.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// PhotoKey builds an object key for a request photo, rejecting non-image types.
func PhotoKey(requestID, contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := photoExtensions[ct]
	if !ok {
		return "", ErrUnsupportedPhoto
	}
	return path.Join("care-requests", requestID, uuid.NewString()+ext), nil
}
