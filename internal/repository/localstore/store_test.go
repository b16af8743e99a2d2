package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestContactRepo_CRUD(t *testing.T) {
	store := newTestStore(t)
	repo := NewContactRepo(store)
	ctx := context.Background()
	businessID := uuid.New()

	contact := &domain.Contact{
		BusinessID: businessID,
		Name:       "Acme Traders",
		Type:       domain.ContactCustomer,
	}
	require.NoError(t, repo.Create(ctx, contact))
	assert.NotEqual(t, uuid.Nil, contact.ID)

	got, err := repo.GetByID(ctx, businessID, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", got.Name)

	got.Name = "Acme Trading Co"
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.List(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme Trading Co", list[0].Name)

	require.NoError(t, repo.Delete(ctx, businessID, contact.ID))
	_, err = repo.GetByID(ctx, businessID, contact.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactRepo_BusinessIsolation(t *testing.T) {
	store := newTestStore(t)
	repo := NewContactRepo(store)
	ctx := context.Background()

	mine := uuid.New()
	other := uuid.New()
	require.NoError(t, repo.Create(ctx, &domain.Contact{BusinessID: mine, Name: "Mine"}))
	require.NoError(t, repo.Create(ctx, &domain.Contact{BusinessID: other, Name: "Theirs"}))

	list, err := repo.List(ctx, mine)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mine", list[0].Name)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	businessID := uuid.New()

	store, err := New(dir)
	require.NoError(t, err)
	repo := NewProductRepo(store)
	product := &domain.Product{BusinessID: businessID, Name: "Widget", Stock: 10}
	require.NoError(t, repo.Create(ctx, product))

	reopened, err := New(dir)
	require.NoError(t, err)
	got, err := NewProductRepo(reopened).GetByID(ctx, businessID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
}

func TestProductRepo_AdjustStockClampsAtZero(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepo(store)
	ctx := context.Background()
	businessID := uuid.New()

	product := &domain.Product{BusinessID: businessID, Name: "Widget", Stock: 5}
	require.NoError(t, repo.Create(ctx, product))

	got, err := repo.AdjustStock(ctx, businessID, product.ID, -8)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	got, err = repo.AdjustStock(ctx, businessID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestSequenceRepo_NeverReusesNumbers(t *testing.T) {
	store := newTestStore(t)
	seqRepo := NewSequenceRepo(store)
	invRepo := NewInvoiceRepo(store)
	ctx := context.Background()
	businessID := uuid.New()

	first, err := seqRepo.Next(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	inv := &domain.Invoice{BusinessID: businessID, Sequence: first, InvoiceNo: "INV-2025-001"}
	require.NoError(t, invRepo.Create(ctx, inv))
	require.NoError(t, invRepo.Delete(ctx, businessID, inv.ID))

	// deleting the invoice must not free its number
	second, err := seqRepo.Next(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, 2, second)
}

func TestSequenceRepo_IndependentPerBusiness(t *testing.T) {
	store := newTestStore(t)
	repo := NewSequenceRepo(store)
	ctx := context.Background()

	a := uuid.New()
	b := uuid.New()

	seqA, err := repo.Next(ctx, a)
	require.NoError(t, err)
	seqB, err := repo.Next(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, 1, seqA)
	assert.Equal(t, 1, seqB)
}

func TestWatchContacts_DeliversFullSnapshots(t *testing.T) {
	store := newTestStore(t)
	repo := NewContactRepo(store)
	businessID := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, err := store.WatchContacts(ctx, businessID)
	require.NoError(t, err)

	// initial snapshot is empty
	select {
	case snapshot := <-feed:
		assert.Empty(t, snapshot)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	require.NoError(t, repo.Create(context.Background(), &domain.Contact{BusinessID: businessID, Name: "First"}))

	select {
	case snapshot := <-feed:
		require.Len(t, snapshot, 1)
		assert.Equal(t, "First", snapshot[0].Name)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after create")
	}

	cancel()
	// channel closes once the context ends
	select {
	case _, open := <-feed:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("feed did not close")
	}
}
