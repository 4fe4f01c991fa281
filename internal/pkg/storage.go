package pkg

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const UploadURLTTL = 10 * time.Minute

// BlobStore 对象存储协作方：签发上传 URL、把对象 key 解析为可访问 URL。
// 核心只依赖这个接口，方便测试替换
type BlobStore interface {
	GenerateUploadURL(ctx context.Context) (uploadURL, ref string, err error)
	GetURL(ctx context.Context, ref string) (string, error)
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

// GenerateUploadURL 预签名 PUT，对象 key 随机生成并返回给调用方留存
func (s *MinioStore) GenerateUploadURL(ctx context.Context) (string, string, error) {
	ref := uuid.NewString()
	u, err := s.client.PresignedPutObject(ctx, s.bucket, ref, UploadURLTTL)
	if err != nil {
		return "", "", err
	}
	return u.String(), ref, nil
}

// GetURL 预签名 GET；对象不存在时由存储端 404，这里不额外探测
func (s *MinioStore) GetURL(ctx context.Context, ref string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, ref, UploadURLTTL, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
