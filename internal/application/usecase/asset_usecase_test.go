package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	assetdom "folio/internal/domain/asset"
)

type fakeStorage struct {
	objects map[string]string
}

func (s *fakeStorage) Put(_ context.Context, objectPath, contentType string, _ []byte) error {
	if s.objects == nil {
		s.objects = map[string]string{}
	}
	s.objects[objectPath] = contentType
	return nil
}

func (s *fakeStorage) PublicURL(objectPath string) string { return "https://cdn.test/" + objectPath }

type fakeThumbs struct{ err error }

func (f fakeThumbs) Thumbnail([]byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte{0xff, 0xd8}, nil
}

func TestAssetUpload_Image(t *testing.T) {
	st := &fakeStorage{}
	uc := NewAssetUsecaseWithClock(st, fakeThumbs{}, zaptest.NewLogger(t), fixedClock{testNow})

	out, err := uc.Upload(context.Background(), assetdom.Upload{
		Type: assetdom.TypeImage, FileName: "cover.png", ContentType: "image/png", Data: []byte("png"),
	})
	require.NoError(t, err)

	want := assetdom.ObjectPath(assetdom.TypeImage, "cover.png", testNow)
	assert.Equal(t, want, out.ObjectPath)
	assert.Equal(t, "https://cdn.test/"+want, out.URL)
	assert.Equal(t, "https://cdn.test/"+assetdom.ThumbnailPath(want), out.ThumbnailURL)
	assert.Equal(t, "image/jpeg", st.objects[assetdom.ThumbnailPath(want)])
}

func TestAssetUpload_ModelSkipsThumbnail(t *testing.T) {
	st := &fakeStorage{}
	uc := NewAssetUsecaseWithClock(st, fakeThumbs{}, zaptest.NewLogger(t), fixedClock{testNow})

	out, err := uc.Upload(context.Background(), assetdom.Upload{
		Type: assetdom.TypeModel, FileName: "chair.glb", Data: []byte("glb"),
	})
	require.NoError(t, err)
	assert.Empty(t, out.ThumbnailURL)
	assert.Equal(t, "model/gltf-binary", out.ContentType)
	assert.Len(t, st.objects, 1)
}

func TestAssetUpload_RejectsBeforeWriting(t *testing.T) {
	st := &fakeStorage{}
	uc := NewAssetUsecase(st, fakeThumbs{}, zaptest.NewLogger(t))

	_, err := uc.Upload(context.Background(), assetdom.Upload{
		Type: assetdom.TypeImage, FileName: "a.txt", ContentType: "text/plain", Data: []byte("x"),
	})
	assert.ErrorIs(t, err, assetdom.ErrInvalidImage)
	assert.Empty(t, st.objects)
}

func TestAssetUpload_ThumbnailFailureIsNotFatal(t *testing.T) {
	st := &fakeStorage{}
	uc := NewAssetUsecase(st, fakeThumbs{err: errors.New("decode")}, zaptest.NewLogger(t))

	out, err := uc.Upload(context.Background(), assetdom.Upload{
		Type: assetdom.TypeImage, FileName: "a.gif", ContentType: "image/gif", Data: []byte("gif"),
	})
	require.NoError(t, err)
	assert.Empty(t, out.ThumbnailURL)
}
