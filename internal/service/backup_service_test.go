package service

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/config"
	"billbook/internal/domain"
	"billbook/internal/port"
	"billbook/mocks"
)

func newBackupFixture(storage port.ObjectStorage) (BackupService, uuid.UUID, *mocks.MockInvoiceRepo) {
	businessID := uuid.New()

	businessRepo := new(mocks.MockBusinessRepo)
	contactRepo := new(mocks.MockContactRepo)
	productRepo := new(mocks.MockProductRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)

	businessRepo.On("GetByID", mock.Anything, businessID).
		Return(&domain.Business{ID: businessID, Name: "Acme"}, nil)
	contactRepo.On("List", mock.Anything, businessID).Return([]domain.Contact{{Name: "Alice"}}, nil)
	productRepo.On("List", mock.Anything, businessID).Return([]domain.Product{{Name: "Widget"}}, nil)
	invoiceRepo.On("List", mock.Anything, businessID).Return([]domain.Invoice{{InvoiceNo: "INV-2025-001"}}, nil)

	svc := NewBackupService(businessRepo, contactRepo, productRepo, invoiceRepo, storage, config.BackupConfig{
		Bucket: "test-bucket",
		Prefix: "backups",
	})
	return svc, businessID, invoiceRepo
}

func TestBackupService_Export(t *testing.T) {
	svc, businessID, _ := newBackupFixture(new(mocks.MockObjectStorage))

	doc, err := svc.Export(context.Background(), businessID)
	require.NoError(t, err)

	assert.Equal(t, "Acme", doc.Business.Name)
	assert.Len(t, doc.Customers, 1)
	assert.Len(t, doc.Products, 1)
	assert.Len(t, doc.Invoices, 1)
	assert.False(t, doc.ExportedAt.IsZero())

	// round-trips as the interchange document
	payload, err := json.Marshal(doc)
	require.NoError(t, err)
	var decoded BackupDocument
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, doc.Business.ID, decoded.Business.ID)
}

func TestBackupService_Store(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc, businessID, _ := newBackupFixture(storage)

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" && in.ContentType == "application/json"
	})).Return(&port.UploadOutput{Location: "s3://test-bucket/key"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.Anything, int64(3600)).
		Return("https://signed", nil)

	receipt, err := svc.Store(context.Background(), businessID)
	require.NoError(t, err)

	assert.Contains(t, receipt.Key, "backups/"+businessID.String())
	assert.Equal(t, "s3://test-bucket/key", receipt.Location)
	assert.Equal(t, "https://signed", receipt.URL)
	assert.Positive(t, receipt.SizeBytes)
}

func TestBackupService_Store_UploadFailure(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc, businessID, _ := newBackupFixture(storage)

	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, io.ErrUnexpectedEOF)

	_, err := svc.Store(context.Background(), businessID)

	assert.ErrorIs(t, err, domain.ErrBackupUploadFailed)
}
