// Package storage: archivo de facturas en un bucket S3 compatible (MinIO).
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
)

var _ ports.InvoiceArchive = (*MinioArchive)(nil)

// Config conexión al bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

// MinioArchive guarda cada factura en invoices/<orderId>.pdf.
type MinioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioArchive crea el cliente y asegura que el bucket exista.
func NewMinioArchive(ctx context.Context, cfg Config) (*MinioArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: crear cliente: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: comprobar bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio: crear bucket %s: %w", cfg.Bucket, err)
		}
	}
	return &MinioArchive{client: client, bucket: cfg.Bucket}, nil
}

// ObjectName ruta del PDF dentro del bucket.
func ObjectName(orderID string) string {
	return "invoices/" + orderID + ".pdf"
}

// Store sube (o reemplaza) el PDF de la orden.
func (a *MinioArchive) Store(ctx context.Context, orderID string, pdf []byte) error {
	_, err := a.client.PutObject(ctx, a.bucket, ObjectName(orderID), bytes.NewReader(pdf), int64(len(pdf)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return fmt.Errorf("minio: subir factura %s: %w", orderID, err)
	}
	return nil
}
