package storage

import (
	"bytes"
	"context"
	"io"
	"sentinel/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultBlobObject = "sentinel/document.json"

// blobBackend persists the document as a single JSON object. The object
// store only offers whole-object overwrite, so every mutation rewrites the
// complete document; the docStore mutex keeps the cascade atomic for
// readers going through this process.
type blobBackend struct {
	client *minio.Client
	bucket string
	object string
}

// NewBlobStore connects to an S3-compatible object store, ensures the bucket
// exists and seeds the document on first use.
func NewBlobStore(conf structures.StorageConfig) (Store, error) {
	object := conf.BlobObject
	if object == "" {
		object = defaultBlobObject
	}
	client, err := minio.New(conf.BlobEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.BlobAccessKey, conf.BlobSecretKey, ""),
		Secure: conf.BlobUseSSL,
	})
	if err != nil {
		return nil, unavailable("connect", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, conf.BlobBucket)
	if err != nil {
		return nil, unavailable("connect", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, conf.BlobBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, unavailable("create bucket", err)
		}
	}

	b := &blobBackend{client: client, bucket: conf.BlobBucket, object: object}
	doc, err := b.Load(ctx)
	if err != nil {
		return nil, unavailable("open", err)
	}
	if doc == nil {
		if err := b.Save(ctx, newDocument()); err != nil {
			return nil, unavailable("seed", err)
		}
	}
	return newDocStore(b), nil
}

func (b *blobBackend) Load(ctx context.Context) (*document, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (b *blobBackend) Save(ctx context.Context, doc *document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = b.client.PutObject(ctx, b.bucket, b.object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (b *blobBackend) Close() error { return nil }
