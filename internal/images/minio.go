package images

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"aavkar_pos/internal/config"
)

func ConnectMinio(cfg config.MinioConfig) (*minio.Client, error) {
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
}

// Store keeps product images in a MinIO bucket and hands out presigned
// URLs for them. Paths it does not own go through the fallback resolver.
type Store struct {
	client   *minio.Client
	bucket   string
	ttl      time.Duration
	fallback Resolver
	log      *zap.Logger
}

func NewStore(client *minio.Client, cfg config.MinioConfig, fallback Resolver, log *zap.Logger) *Store {
	return &Store{
		client:   client,
		bucket:   cfg.Bucket,
		ttl:      cfg.SignedURLTTL,
		fallback: fallback,
		log:      log.Named("images"),
	}
}

func (s *Store) objectKey(p string) (string, bool) {
	prefix := "/" + s.bucket + "/"
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	return strings.TrimPrefix(p, prefix), true
}

func (s *Store) Resolve(ctx context.Context, p string) string {
	key, ok := s.objectKey(p)
	if !ok {
		return s.fallback.Resolve(ctx, p)
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, url.Values{})
	if err != nil {
		s.log.Warn("presign failed", zap.String("key", key), zap.Error(err))
		return s.fallback.Resolve(ctx, p)
	}
	return u.String()
}

// Upload stores one multipart file and returns its bucket path
// ("/bucket/products/<uuid>.jpg"), which Resolve later presigns.
func (s *Store) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := "products/" + uuid.NewString() + strings.ToLower(path.Ext(file.Filename))
	_, err = s.client.PutObject(ctx, s.bucket, key, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", file.Filename, err)
	}
	s.log.Info("image uploaded", zap.String("key", key), zap.Int64("size", file.Size))
	return "/" + s.bucket + "/" + key, nil
}
