package filestorage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	dbmodels "ptw-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	files   []dbmodels.PermitAttachment
	saveErr error
}

func (f *fakeStore) SaveFile(rec dbmodels.PermitAttachment) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.files = append(f.files, rec)
	return rec.ID, nil
}

func (f *fakeStore) GetFile(permitID, fileID string) (*dbmodels.PermitAttachment, error) {
	for _, rec := range f.files {
		if rec.PermitID == permitID && rec.ID == fileID {
			r := rec
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetFileList(permitID string) ([]dbmodels.PermitAttachment, error) {
	list := []dbmodels.PermitAttachment{}
	for _, rec := range f.files {
		if rec.PermitID == permitID {
			list = append(list, rec)
		}
	}
	return list, nil
}

type fakeObjects struct {
	objects map[string][]byte
	types   map[string]string
}

func newObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) MakeBucket(ctx context.Context) error { return nil }
func (f *fakeObjects) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}
func (f *fakeObjects) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}
func (f *fakeObjects) Remove(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func upload(name, contentType, body string) UploadFile {
	return UploadFile{FileName: name, ContentType: contentType, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestAttachments(t *testing.T) {
	ctx := context.Background()

	t.Run(`upload then download`, func(t *testing.T) {
		store := &fakeStore{}
		objects := newObjects()
		h := NewHandlerWithStore(store, objects, 1<<20)

		view, hMsg, err := h.Upload(ctx, "p1", "u1", upload("../method statement.TXT", "", "lift plan"))
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "method statement.TXT", view.FileName)
		require.True(t, strings.HasPrefix(view.ContentType, "text/plain"))
		require.True(t, strings.HasPrefix(store.files[0].ObjectKey, "permits/p1/"))
		require.True(t, strings.HasSuffix(store.files[0].ObjectKey, ".txt"))

		list, err := h.List("p1")
		require.NoError(t, err)
		require.Len(t, list, 1)

		file, err := h.Download(ctx, "p1", view.ID)
		require.NoError(t, err)
		require.Equal(t, []byte("lift plan"), file.Body)

		file, err = h.Download(ctx, "p2", view.ID)
		require.NoError(t, err)
		require.Nil(t, file)
	})

	t.Run(`size limit`, func(t *testing.T) {
		h := NewHandlerWithStore(&fakeStore{}, newObjects(), 4)
		_, hMsg, err := h.Upload(ctx, "p1", "u1", upload("a.pdf", "application/pdf", "too long"))
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		_, hMsg, err = h.Upload(ctx, "p1", "u1", upload("a.pdf", "application/pdf", ""))
		require.NoError(t, err)
		require.Equal(t, "file is empty", hMsg)
	})

	t.Run(`object removed when the record is not saved`, func(t *testing.T) {
		objects := newObjects()
		h := NewHandlerWithStore(&fakeStore{saveErr: errors.New("db down")}, objects, 0)
		_, _, err := h.Upload(ctx, "p1", "u1", upload("a.pdf", "application/pdf", "%PDF"))
		require.Error(t, err)
		require.Empty(t, objects.objects)
	})

	t.Run(`storage disabled`, func(t *testing.T) {
		h := NewHandlerWithStore(&fakeStore{}, nil, 0)
		_, _, err := h.Upload(ctx, "p1", "u1", upload("a.pdf", "application/pdf", "%PDF"))
		require.ErrorIs(t, err, ErrStorageDisabled)
		_, err = h.Download(ctx, "p1", "f1")
		require.ErrorIs(t, err, ErrStorageDisabled)
	})

	t.Run(`explicit content type kept`, func(t *testing.T) {
		objects := newObjects()
		h := NewHandlerWithStore(&fakeStore{}, objects, 0)
		view, _, err := h.Upload(ctx, "p1", "u1", UploadFile{FileName: "x.bin", ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte{1, 2, 3})})
		require.NoError(t, err)
		require.Equal(t, "image/png", view.ContentType)
	})
}
