// Package storage implementa el almacenamiento de imágenes de recibos sobre
// S3 o un servicio compatible (MinIO en desarrollo local).
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/obrasoft/obra-api/internal/application/ports"
	"github.com/obrasoft/obra-api/pkg/config"
)

var _ ports.FileStorage = (*S3Storage)(nil)

// S3Storage implementa FileStorage sobre el SDK v2 de AWS.
type S3Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// NewS3Storage construye el cliente. Con credenciales explícitas se usan esas
// (MinIO o AWS con claves); sin ellas se usa la cadena por defecto del SDK
// (roles IAM, env vars).
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	var awsCfg aws.Config
	var err error
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey, cfg.SecretKey, "",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cargar config AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
	}, nil
}

// Upload sube el contenido al bucket bajo la key dada.
func (s *S3Storage) Upload(ctx context.Context, key string, content io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: subir objeto %s: %w", key, err)
	}
	return nil
}

// SignedURL devuelve una URL de lectura firmada con la vigencia pedida.
func (s *S3Storage) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("storage: firmar URL de %s: %w", key, err)
	}
	return req.URL, nil
}
