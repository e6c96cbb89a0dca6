package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/moxxiRan/daily-site/internal/helpers"
)

var (
	ErrObjectNotExist = errors.New("object does not exist")
)

// Remote provides an abstraction in front of remote implementations.
//
// A remote stores the files of the static site (posts, manifest, feeds)
// under their path relative to the content root.
type Remote interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, content []byte) error
	DeleteObject(ctx context.Context, key string) error
}

/* FS */

type FSRemote struct {
	path string
}

func NewFSRemote(dirpath string) (*FSRemote, error) {
	stat, err := os.Stat(dirpath)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dirpath)
	}
	return &FSRemote{
		path: dirpath,
	}, nil
}

func (r *FSRemote) String() string {
	return fmt.Sprintf("fs remote %s", r.path)
}

func (r *FSRemote) GetObject(ctx context.Context, key string) ([]byte, error) {
	path := filepath.Join(r.path, filepath.FromSlash(key))
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotExist
	}
	return data, err
}

func (r *FSRemote) PutObject(ctx context.Context, key string, data []byte) error {
	filePath := filepath.Join(r.path, filepath.FromSlash(key))
	return helpers.WriteFileAtomic(filePath, data, 0644)
}

func (r *FSRemote) DeleteObject(ctx context.Context, key string) error {
	path := filepath.Join(r.path, filepath.FromSlash(key))
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrObjectNotExist
	}
	return os.Remove(path)
}

/* S3 */

type S3Remote struct {
	// Settings
	endpoint   string
	bucketName string
	prefix     string

	// Client
	minioClient *minio.Client
}

func NewS3RemoteWithCredentials(endpoint string, bucketName string, accessKey, secretKey string, secure bool) (*S3Remote, error) {
	// Initialize minio client object.
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	return &S3Remote{
		endpoint:    endpoint,
		bucketName:  bucketName,
		minioClient: minioClient,
	}, nil
}

// WithPrefix stores every object under the given key prefix (ex: "daily-site/").
func (r *S3Remote) WithPrefix(prefix string) *S3Remote {
	r.prefix = prefix
	return r
}

func (r *S3Remote) String() string {
	return fmt.Sprintf("s3 remote %s/%s", r.endpoint, r.bucketName)
}

func (r *S3Remote) objectName(key string) string {
	if r.prefix == "" {
		return key
	}
	return path.Join(r.prefix, key)
}

func (r *S3Remote) GetObject(ctx context.Context, key string) ([]byte, error) {
	object, err := r.minioClient.GetObject(ctx, r.bucketName, r.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()

	// Errors are only returned when reading the object
	if _, err := object.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotExist
		}
		return nil, err
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(object); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *S3Remote) PutObject(ctx context.Context, key string, data []byte) error {
	options := minio.PutObjectOptions{
		ContentType: contentType(key),
	}
	_, err := r.minioClient.PutObject(ctx, r.bucketName, r.objectName(key), bytes.NewReader(data), int64(len(data)), options)
	return err
}

func (r *S3Remote) DeleteObject(ctx context.Context, key string) error {
	_, err := r.minioClient.StatObject(ctx, r.bucketName, r.objectName(key), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return ErrObjectNotExist
		}
		return err
	}
	return r.minioClient.RemoveObject(ctx, r.bucketName, r.objectName(key), minio.RemoveObjectOptions{})
}

// contentType returns the MIME type served by the static site for a key.
func contentType(key string) string {
	switch path.Ext(key) {
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".json":
		return "application/json; charset=utf-8"
	case ".xml":
		return "application/rss+xml; charset=utf-8"
	}
	if t := mime.TypeByExtension(path.Ext(key)); t != "" {
		return t
	}
	return "application/octet-stream"
}
