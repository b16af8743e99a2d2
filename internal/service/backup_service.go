package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"billbook/internal/config"
	"billbook/internal/domain"
	"billbook/internal/port"
)

// BackupDocument is the full data snapshot of one business. Its shape is
// the interchange format for export, cloud storage and restore.
type BackupDocument struct {
	Business   *domain.Business `json:"business"`
	Customers  []domain.Contact `json:"customers"`
	Products   []domain.Product `json:"products"`
	Invoices   []domain.Invoice `json:"invoices"`
	ExportedAt time.Time        `json:"exportedAt"`
}

// BackupReceipt describes a stored backup object.
type BackupReceipt struct {
	Key        string    `json:"key"`
	Location   string    `json:"location"`
	URL        string    `json:"url,omitempty"`
	SizeBytes  int       `json:"sizeBytes"`
	ExportedAt time.Time `json:"exportedAt"`
}

// BackupService assembles, stores and retrieves business snapshots.
type BackupService interface {
	Export(ctx context.Context, businessID uuid.UUID) (*BackupDocument, error)
	Store(ctx context.Context, businessID uuid.UUID) (*BackupReceipt, error)
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
}

type backupService struct {
	businessRepo port.BusinessRepository
	contactRepo  port.ContactRepository
	productRepo  port.ProductRepository
	invoiceRepo  port.InvoiceRepository
	storage      port.ObjectStorage
	cfg          config.BackupConfig
}

// NewBackupService creates a new BackupService implementation.
func NewBackupService(
	businessRepo port.BusinessRepository,
	contactRepo port.ContactRepository,
	productRepo port.ProductRepository,
	invoiceRepo port.InvoiceRepository,
	storage port.ObjectStorage,
	cfg config.BackupConfig,
) BackupService {
	return &backupService{
		businessRepo: businessRepo,
		contactRepo:  contactRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		storage:      storage,
		cfg:          cfg,
	}
}

func (s *backupService) Export(ctx context.Context, businessID uuid.UUID) (*BackupDocument, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contactRepo.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.List(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return &BackupDocument{
		Business:   business,
		Customers:  contacts,
		Products:   products,
		Invoices:   invoices,
		ExportedAt: time.Now().UTC(),
	}, nil
}

// Store exports a snapshot and uploads it to object storage under
// {prefix}/{businessID}/{timestamp}.json.
func (s *backupService) Store(ctx context.Context, businessID uuid.UUID) (*BackupReceipt, error) {
	doc, err := s.Export(ctx, businessID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("backup.Store: encoding snapshot: %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s.json", s.cfg.Prefix, businessID, doc.ExportedAt.Format("20060102T150405Z"))
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(payload),
		ContentType: "application/json",
		Size:        int64(len(payload)),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("backup upload failed")
		return nil, domain.ErrBackupUploadFailed
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, 3600)
	if err != nil {
		// Presigning is best-effort; the object is already stored.
		url = ""
	}

	return &BackupReceipt{
		Key:        key,
		Location:   out.Location,
		URL:        url,
		SizeBytes:  len(payload),
		ExportedAt: doc.ExportedAt,
	}, nil
}

func (s *backupService) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, s.cfg.Bucket, key)
}
