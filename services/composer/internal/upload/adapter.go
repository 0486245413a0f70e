package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
)

// ErrInvalidFileName is returned for uploads whose name has no usable base name.
var ErrInvalidFileName = errors.New("upload has no file name")

// PendingFile is the file an editor upload request hands to the adapter.
type PendingFile struct {
	Name        string
	ContentType string
	Body        io.ReadCloser
}

// Loader supplies the file for a single upload request.
type Loader interface {
	File(ctx context.Context) (*PendingFile, error)
}

// Storage is the object store uploads are pushed to.
type Storage interface {
	PutObject(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	PublicURL(ctx context.Context, handle string) (string, error)
}

// MediaSink receives the URL of every successful upload.
type MediaSink func(ctx context.Context, url string) error

// Result is what the rich-text editor expects back from a successful upload.
type Result struct {
	Default string `json:"default"`
}

type Adapter interface {
	Upload(ctx context.Context) (*Result, error)
	Abort()
}

// Factory creates one Adapter per upload request.
type Factory func(loader Loader) Adapter

// NewFactory binds storage, key prefix and media sink into an adapter factory.
// onSinkError, when set, is told about sink failures; they never fail an upload.
func NewFactory(storage Storage, prefix string, sink MediaSink, onSinkError func(url string, err error)) Factory {
	return func(loader Loader) Adapter {
		return &adapter{
			loader:      loader,
			storage:     storage,
			prefix:      prefix,
			sink:        sink,
			onSinkError: onSinkError,
		}
	}
}

type adapter struct {
	loader      Loader
	storage     Storage
	prefix      string
	sink        MediaSink
	onSinkError func(url string, err error)
}

func (a *adapter) Upload(ctx context.Context) (*Result, error) {
	file, err := a.loader.File(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	defer file.Body.Close()

	key, err := ObjectKey(a.prefix, file.Name)
	if err != nil {
		return nil, err
	}

	handle, err := a.storage.PutObject(ctx, key, file.Body, contentTypeOf(file))
	if err != nil {
		return nil, err
	}

	url, err := a.storage.PublicURL(ctx, handle)
	if err != nil {
		return nil, err
	}

	if a.sink != nil {
		if err := a.sink(ctx, url); err != nil && a.onSinkError != nil {
			a.onSinkError(url, err)
		}
	}

	return &Result{Default: url}, nil
}

// Abort does nothing: an upload already handed to storage runs to completion.
func (a *adapter) Abort() {}

// ObjectKey places a file under prefix by its base name. Same-named uploads
// share a key, so a later upload replaces the earlier object.
func ObjectKey(prefix, name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return prefix + base, nil
}

func contentTypeOf(file *PendingFile) string {
	if file.ContentType != "" {
		return file.ContentType
	}
	return "application/octet-stream"
}

// MultipartLoader loads the file of a multipart form upload.
type MultipartLoader struct {
	Header *multipart.FileHeader
}

func (l MultipartLoader) File(ctx context.Context) (*PendingFile, error) {
	if l.Header == nil {
		return nil, fmt.Errorf("no file in upload request")
	}
	if strings.TrimSpace(l.Header.Filename) == "" {
		return nil, ErrInvalidFileName
	}
	src, err := l.Header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &PendingFile{
		Name:        l.Header.Filename,
		ContentType: l.Header.Header.Get("Content-Type"),
		Body:        src,
	}, nil
}
