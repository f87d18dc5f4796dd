// internal/adapters/out/gcs/asset_storage_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"folio/internal/adapters/out/gcs/common"
)

// AssetStorageGCS implements asset.Storage on a GCS bucket.
//
// Layout (single bucket):
// - blogImages/<unixMillis>-<file>
// - models/<unixMillis>-<file>
// - thumbnails/<unixMillis>-<file>.jpg
//
// Public access:
//   - The bucket is expected to grant "allUsers: Storage Object Viewer"
//     (uniform access), so objects are readable without per-object ACLs.
type AssetStorageGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewAssetStorageGCS(client *storage.Client, bucket, publicBaseURL string) *AssetStorageGCS {
	return &AssetStorageGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: strings.TrimSpace(publicBaseURL),
	}
}

func (r *AssetStorageGCS) bucket() (*storage.BucketHandle, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("asset_storage_gcs: storage client is nil")
	}
	if r.Bucket == "" {
		return nil, errors.New("asset_storage_gcs: bucket is empty")
	}
	return r.Client.Bucket(r.Bucket), nil
}

// Put writes data to objectPath, replacing any existing object.
func (r *AssetStorageGCS) Put(ctx context.Context, objectPath, contentType string, data []byte) error {
	bh, err := r.bucket()
	if err != nil {
		return err
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if obj == "" {
		return errors.New("asset_storage_gcs: objectPath is empty")
	}

	w := bh.Object(obj).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("asset_storage_gcs: write %s: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("asset_storage_gcs: close %s: %w", obj, err)
	}
	return nil
}

func (r *AssetStorageGCS) PublicURL(objectPath string) string {
	return common.GCSPublicURL(r.PublicBaseURL, r.Bucket, objectPath)
}

// ObjectPathFromURL maps a public URL of this bucket back to its object path.
func (r *AssetStorageGCS) ObjectPathFromURL(u string) (string, bool) {
	b, obj, ok := common.ParseGCSURL(u)
	if !ok || b != r.Bucket {
		return "", false
	}
	return obj, true
}

// Delete removes an object; a missing object is not an error.
func (r *AssetStorageGCS) Delete(ctx context.Context, objectPath string) error {
	bh, err := r.bucket()
	if err != nil {
		return err
	}
	err = bh.Object(strings.TrimLeft(objectPath, "/")).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return err
	}
	return nil
}

// List lists object paths under prefix.
func (r *AssetStorageGCS) List(ctx context.Context, prefix string) ([]string, error) {
	bh, err := r.bucket()
	if err != nil {
		return nil, err
	}

	it := bh.Objects(ctx, &storage.Query{Prefix: strings.TrimSpace(prefix)})
	var out []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, attrs.Name)
	}
	return out, nil
}
