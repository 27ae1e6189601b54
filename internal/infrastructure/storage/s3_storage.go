package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jbejarano/portal-casas-api/internal/application/payroll"
)

var _ payroll.DocumentStorage = (*S3Storage)(nil)

// S3Config credenciales y destino del bucket.
type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // opcional, para proveedores compatibles con S3
}

// S3Storage guarda los documentos firmados en un bucket S3.
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage construye el almacenamiento S3 con credenciales estáticas.
func NewS3Storage(cfg S3Config) *S3Storage {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return &S3Storage{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}
}

// Save sube el documento al bucket y devuelve su clave prefijada.
func (s *S3Storage) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := "signed-documents/" + filename
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("subir documento %s: %w", filename, err)
	}
	return key, nil
}
