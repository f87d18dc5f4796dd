// internal/application/usecase/asset_usecase.go
package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	assetdom "folio/internal/domain/asset"
)

var ErrAssetStorageNotConfigured = errors.New("asset_usecase: storage not configured")

// AssetUsecase stores uploaded images and 3D models.
type AssetUsecase struct {
	storage assetdom.Storage
	thumbs  assetdom.Thumbnailer
	clock   Clock
	log     *zap.Logger
}

func NewAssetUsecase(storage assetdom.Storage, thumbs assetdom.Thumbnailer, log *zap.Logger) *AssetUsecase {
	return NewAssetUsecaseWithClock(storage, thumbs, log, nil)
}

func NewAssetUsecaseWithClock(storage assetdom.Storage, thumbs assetdom.Thumbnailer, log *zap.Logger, clock Clock) *AssetUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &AssetUsecase{
		storage: storage,
		thumbs:  thumbs,
		clock:   clockOrSystem(clock),
		log:     log.Named("asset_usecase"),
	}
}

// Upload validates u, writes it under its type folder and, for images,
// writes a thumbnail next to it. A thumbnail failure does not fail the upload.
func (uc *AssetUsecase) Upload(ctx context.Context, u assetdom.Upload) (assetdom.Stored, error) {
	if uc.storage == nil {
		return assetdom.Stored{}, ErrAssetStorageNotConfigured
	}
	if err := u.Validate(); err != nil {
		return assetdom.Stored{}, err
	}

	objectPath := assetdom.ObjectPath(u.Type, u.FileName, uc.clock.Now())
	contentType := assetdom.ContentTypeFor(u)
	if err := uc.storage.Put(ctx, objectPath, contentType, u.Data); err != nil {
		uc.log.Error("put failed", zap.String("path", objectPath), zap.Error(err))
		return assetdom.Stored{}, err
	}

	out := assetdom.Stored{
		ObjectPath:  objectPath,
		URL:         uc.storage.PublicURL(objectPath),
		ContentType: contentType,
		Size:        len(u.Data),
	}

	if u.Type == assetdom.TypeImage && uc.thumbs != nil {
		if url, err := uc.thumbnail(ctx, objectPath, u.Data); err != nil {
			uc.log.Warn("thumbnail skipped", zap.String("path", objectPath), zap.Error(err))
		} else {
			out.ThumbnailURL = url
		}
	}

	uc.log.Info("uploaded", zap.String("path", objectPath), zap.String("type", string(u.Type)), zap.Int("size", out.Size))
	return out, nil
}

func (uc *AssetUsecase) thumbnail(ctx context.Context, objectPath string, data []byte) (string, error) {
	thumb, err := uc.thumbs.Thumbnail(data)
	if err != nil {
		return "", err
	}
	p := assetdom.ThumbnailPath(objectPath)
	if err := uc.storage.Put(ctx, p, "image/jpeg", thumb); err != nil {
		return "", err
	}
	return uc.storage.PublicURL(p), nil
}
