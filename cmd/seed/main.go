// Command seed loads a small demo dataset into the configured store:
// one business with its owner account, a few customers and products, and
// invoices in every payment state.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"billbook/internal/config"
	"billbook/internal/email/noop"
	"billbook/internal/port"
	"billbook/internal/repository/localstore"
	"billbook/internal/repository/postgres"
	"billbook/internal/service"
)

const (
	demoEmail    = "demo@billbook.app"
	demoPassword = "demo-password-123"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var (
		businessRepo port.BusinessRepository
		userRepo     port.UserRepository
		contactRepo  port.ContactRepository
		productRepo  port.ProductRepository
		invoiceRepo  port.InvoiceRepository
		sequenceRepo port.SequenceRepository
	)

	switch cfg.Store.Driver {
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		businessRepo = postgres.NewBusinessRepo(db)
		userRepo = postgres.NewUserRepo(db)
		contactRepo = postgres.NewContactRepo(db)
		productRepo = postgres.NewProductRepo(db)
		invoiceRepo = postgres.NewInvoiceRepo(db)
		sequenceRepo = postgres.NewSequenceRepo(db)

	case "local":
		store, err := localstore.New(cfg.Local.Dir)
		if err != nil {
			return fmt.Errorf("failed to open local store: %w", err)
		}
		businessRepo = localstore.NewBusinessRepo(store)
		userRepo = localstore.NewUserRepo(store)
		contactRepo = localstore.NewContactRepo(store)
		productRepo = localstore.NewProductRepo(store)
		invoiceRepo = localstore.NewInvoiceRepo(store)
		sequenceRepo = localstore.NewSequenceRepo(store)

	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	ctx := context.Background()

	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	registrationSvc := service.NewRegistrationService(businessRepo, userRepo, authSvc)
	contactSvc := service.NewContactService(contactRepo, invoiceRepo)
	productSvc := service.NewProductService(productRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, contactRepo, businessRepo, sequenceRepo, noop.NewNoopSender())

	out, err := registrationSvc.Register(ctx, service.RegisterInput{
		Email:        demoEmail,
		Password:     demoPassword,
		FullName:     "Demo Owner",
		BusinessName: "Sharma Traders",
	})
	if err != nil {
		return fmt.Errorf("seeding business: %w", err)
	}
	businessID := out.Business.ID
	log.Printf("seeded business %q (%s), login %s / %s", out.Business.Name, businessID, demoEmail, demoPassword)

	contacts := []service.ContactInput{
		{Name: "Acme Retail", Phone: "+91 98765 43210", Email: "orders@acme-retail.example", TaxID: "29ABCDE1234F1Z5", Type: "customer"},
		{Name: "Bharat Hardware", Phone: "+91 98111 22334", Type: "customer"},
		{Name: "Chawla Distributors", Email: "chawla@example.com", Type: "supplier"},
	}
	for _, in := range contacts {
		if _, err := contactSvc.Create(ctx, businessID, in); err != nil {
			return fmt.Errorf("seeding contact %q: %w", in.Name, err)
		}
	}
	log.Printf("seeded %d contacts", len(contacts))

	products := []service.ProductInput{
		{Name: "Steel Bolt M8", SKU: "BOLT-M8", Category: "Hardware", Unit: "pcs", SalePrice: 12, PurchasePrice: 8, Stock: 500, MinStock: 100, TaxRate: 18, Active: true},
		{Name: "Copper Wire 2mm", SKU: "WIRE-2MM", Category: "Electrical", Unit: "m", SalePrice: 45, PurchasePrice: 32, Stock: 120, MinStock: 50, TaxRate: 18, Active: true},
		{Name: "Wall Paint 1L", SKU: "PAINT-1L", Category: "Paint", Unit: "can", SalePrice: 320, PurchasePrice: 240, Stock: 15, MinStock: 20, TaxRate: 12, Active: true},
	}
	for _, in := range products {
		if _, err := productSvc.Create(ctx, businessID, in); err != nil {
			return fmt.Errorf("seeding product %q: %w", in.Name, err)
		}
	}
	log.Printf("seeded %d products", len(products))

	first, err := contactSvc.List(ctx, businessID)
	if err != nil {
		return fmt.Errorf("listing contacts: %w", err)
	}
	var customerID = first[0].ID
	for _, c := range first {
		if string(c.Type) == "customer" {
			customerID = c.ID
			break
		}
	}

	today := time.Now().UTC().Format("2006-01-02")
	invoices := []service.CreateInvoiceInput{
		{
			Date:       today,
			CustomerID: customerID,
			Items: []service.LineItemInput{
				{Name: "Steel Bolt M8", Unit: "pcs", Qty: 200, Price: 12, TaxRate: 18},
				{Name: "Copper Wire 2mm", Unit: "m", Qty: 30, Price: 45, TaxRate: 18},
			},
			TaxEnabled:     true,
			InitialPayment: &service.PaymentInput{Amount: 2000, Method: "bank"},
		},
		{
			Date:       today,
			CustomerID: customerID,
			Items: []service.LineItemInput{
				{Name: "Wall Paint 1L", Unit: "can", Qty: 5, Price: 320, TaxRate: 12},
			},
			Discount: 100,
		},
	}
	for _, in := range invoices {
		inv, _, err := invoiceSvc.Create(ctx, businessID, in)
		if err != nil {
			return fmt.Errorf("seeding invoice: %w", err)
		}
		log.Printf("seeded invoice %s (total %.2f, status %s)", inv.InvoiceNo, inv.Total, inv.Status)
	}

	return nil
}
