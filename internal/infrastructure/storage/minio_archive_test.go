package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	assert.Equal(t, "invoices/NK2IT-1.pdf", ObjectName("NK2IT-1"))
}

// Requiere MinIO: MINIO_ENDPOINT=localhost:9000 MINIO_ACCESS_KEY=... MINIO_SECRET_KEY=...
func TestStore_Integracion(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT no definido")
	}
	a, err := NewMinioArchive(context.Background(), Config{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    "licenseshop-test",
	})
	require.NoError(t, err)
	require.NoError(t, a.Store(context.Background(), "NK2IT-TEST", []byte("%PDF-1.3")))
}
