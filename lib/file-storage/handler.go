package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"ptw-backend/config"
	"ptw-backend/db"
	filesdbstorage "ptw-backend/lib/file-storage/storage"
	initchecker "ptw-backend/lib/utils/init-checker"
	"ptw-backend/models"
	permitapimodels "ptw-backend/models/api/permit"
	dbmodels "ptw-backend/models/db"
	s3client "ptw-backend/s3"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Upload(ctx context.Context, permitID, uploaderID string, file UploadFile) (view *permitapimodels.AttachmentView, hMsg string, err error)
	List(permitID string) (list []permitapimodels.AttachmentView, err error)
	Download(ctx context.Context, permitID, fileID string) (file *models.File, err error)
}

// UploadFile is an incoming attachment.
type UploadFile struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

var Instance Provider

var ErrStorageDisabled = errors.New("attachment storage is not configured")

func NewHandler() {
	Instance = NewHandlerWithStore(filesdbstorage.NewInstance(db.DB), s3client.Instance, config.Conf.S3.MaxFileSizeMb<<20)
}

// NewHandlerWithStore builds the handler; objects may be nil when s3 is not configured.
func NewHandlerWithStore(store filesdbstorage.Provider, objects s3client.Provider, maxSize int64) Provider {
	instance := impl{
		store:   store,
		objects: objects,
		maxSize: maxSize,
	}
	initchecker.CheckInit("store", instance.store)
	return instance
}

type impl struct {
	store   filesdbstorage.Provider
	objects s3client.Provider
	maxSize int64
}

func (i impl) Upload(ctx context.Context, permitID, uploaderID string, file UploadFile) (*permitapimodels.AttachmentView, string, error) {
	logger := log.WithFields(log.Fields{
		"permit_id": permitID,
		"file_name": file.FileName,
	})
	if i.objects == nil {
		return nil, "", ErrStorageDisabled
	}
	fileName := filepath.Base(strings.TrimSpace(file.FileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, "file name is required", nil
	}
	if file.Size <= 0 {
		return nil, "file is empty", nil
	}
	if i.maxSize > 0 && file.Size > i.maxSize {
		return nil, fmt.Sprintf("file exceeds the %d MB limit", i.maxSize>>20), nil
	}
	body, contentType, err := sniff(file)
	if err != nil {
		return nil, "", errors.Wrap(err, "error reading uploaded file")
	}
	rec := dbmodels.PermitAttachment{
		BaseModel:    dbmodels.BaseModel{ID: uuid.New().String()},
		PermitID:     permitID,
		FileName:     fileName,
		ContentType:  contentType,
		Size:         file.Size,
		UploadedByID: uploaderID,
	}
	rec.ObjectKey = fmt.Sprintf("permits/%s/%s%s", permitID, rec.ID, strings.ToLower(filepath.Ext(fileName)))
	if err = i.objects.Put(ctx, rec.ObjectKey, body, file.Size, contentType); err != nil {
		return nil, "", errors.Wrap(err, "error uploading file to s3")
	}
	if _, err = i.store.SaveFile(rec); err != nil {
		if rmErr := i.objects.Remove(ctx, rec.ObjectKey); rmErr != nil {
			logger.WithError(rmErr).Warn("error removing orphan object")
		}
		return nil, "", errors.Wrap(err, "error saving attachment")
	}
	logger.WithField("file_id", rec.ID).Info("attachment uploaded")
	view := permitapimodels.AttachmentConvert(rec)
	return &view, "", nil
}

func (i impl) List(permitID string) ([]permitapimodels.AttachmentView, error) {
	recList, err := i.store.GetFileList(permitID)
	if err != nil {
		return nil, errors.Wrap(err, "error getting attachment list")
	}
	list := make([]permitapimodels.AttachmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, permitapimodels.AttachmentConvert(rec))
	}
	return list, nil
}

func (i impl) Download(ctx context.Context, permitID, fileID string) (*models.File, error) {
	if i.objects == nil {
		return nil, ErrStorageDisabled
	}
	rec, err := i.store.GetFile(permitID, fileID)
	if err != nil {
		return nil, errors.Wrap(err, "error getting attachment")
	}
	if rec == nil {
		return nil, nil
	}
	body, err := i.objects.Get(ctx, rec.ObjectKey)
	if err != nil {
		return nil, errors.Wrap(err, "error downloading file from s3")
	}
	return &models.File{
		FileName:    rec.FileName,
		ContentType: rec.ContentType,
		Body:        body,
	}, nil
}

// sniff fills a missing content type from the first bytes of the body.
func sniff(file UploadFile) (io.Reader, string, error) {
	contentType := strings.TrimSpace(file.ContentType)
	if contentType != "" && contentType != "application/octet-stream" {
		return file.Body, contentType, nil
	}
	head := make([]byte, 512)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	head = head[:n]
	return io.MultiReader(bytes.NewReader(head), file.Body), http.DetectContentType(head), nil
}
