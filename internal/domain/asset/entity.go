// internal/domain/asset/entity.go
package asset

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

var (
	ErrNoFile       = errors.New("asset: no file selected")
	ErrUnknownType  = errors.New("asset: unknown upload type")
	ErrInvalidImage = errors.New("asset: please upload a valid image file (JPEG, PNG, GIF, or WebP)")
	ErrInvalidModel = errors.New("asset: please upload a valid 3D model file (GLB or GLTF)")
)

// Type is what the uploader was opened for.
type Type string

const (
	TypeImage Type = "image"
	TypeModel Type = "model"
)

// ParseType defaults to image, matching the uploader widget.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case "", TypeImage:
		return TypeImage, nil
	case TypeModel:
		return TypeModel, nil
	}
	return "", ErrUnknownType
}

var (
	imageContentTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	modelContentTypes = map[string]bool{
		"model/gltf-binary": true,
		"model/gltf+json":   true,
	}
	modelExtensions = map[string]bool{
		".glb":  true,
		".gltf": true,
	}
)

// Upload is a single file dropped onto the uploader.
type Upload struct {
	Type        Type
	FileName    string
	ContentType string
	Data        []byte
}

// Stored describes where an upload ended up.
type Stored struct {
	ObjectPath   string `json:"objectPath"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	ContentType  string `json:"contentType"`
	Size         int    `json:"size"`
}

// Validate checks the file against the allowed types for u.Type.
// Models are accepted by content type or by .glb/.gltf extension since
// browsers often send application/octet-stream for them.
func (u Upload) Validate() error {
	if strings.TrimSpace(u.FileName) == "" || len(u.Data) == 0 {
		return ErrNoFile
	}
	ct := mediaType(u.ContentType)
	switch u.Type {
	case TypeImage:
		if !imageContentTypes[ct] {
			return ErrInvalidImage
		}
	case TypeModel:
		ext := strings.ToLower(path.Ext(u.FileName))
		if !modelContentTypes[ct] && !modelExtensions[ext] {
			return ErrInvalidModel
		}
	default:
		return ErrUnknownType
	}
	return nil
}

// Folder is the top-level object prefix for the type.
func (t Type) Folder() string {
	if t == TypeModel {
		return "models"
	}
	return "blogImages"
}

// ObjectPath is "<folder>/<unixMillis>-<file name>".
func ObjectPath(t Type, fileName string, now time.Time) string {
	return fmt.Sprintf("%s/%d-%s", t.Folder(), now.UnixMilli(), SanitizeFileName(fileName))
}

// ThumbnailPath maps an image object path to its thumbnail path.
func ThumbnailPath(objectPath string) string {
	base := path.Base(objectPath)
	ext := path.Ext(base)
	return "thumbnails/" + strings.TrimSuffix(base, ext) + ".jpg"
}

// SanitizeFileName keeps the base name and replaces characters that are
// awkward in object paths and URLs.
func SanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "file"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// ContentTypeFor fills in a content type for models sent without one.
func ContentTypeFor(u Upload) string {
	ct := mediaType(u.ContentType)
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	switch strings.ToLower(path.Ext(u.FileName)) {
	case ".glb":
		return "model/gltf-binary"
	case ".gltf":
		return "model/gltf+json"
	}
	return "application/octet-stream"
}

func mediaType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// Storage is the object storage port.
type Storage interface {
	Put(ctx context.Context, objectPath, contentType string, data []byte) error
	PublicURL(objectPath string) string
}

// Browser lists and removes stored objects (sitectl assets).
type Browser interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, objectPath string) error
	ObjectPathFromURL(u string) (string, bool)
}

// Thumbnailer produces a small JPEG preview of an image.
type Thumbnailer interface {
	Thumbnail(data []byte) ([]byte, error)
}
