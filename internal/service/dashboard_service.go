package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

// MonthlyPoint is one month of revenue for the trend chart.
type MonthlyPoint struct {
	Month   string  `json:"month"` // "2025-03"
	Label   string  `json:"label"` // "Mar"
	Revenue float64 `json:"revenue"`
}

// DailyPoint is one day of revenue.
type DailyPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// ProductSales ranks a product by invoiced revenue.
type ProductSales struct {
	Name    string  `json:"name"`
	Qty     float64 `json:"qty"`
	Revenue float64 `json:"revenue"`
}

// CategoryShare is one category's slice of invoiced revenue.
type CategoryShare struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// StatusCounts breaks the invoice book down by payment status.
type StatusCounts struct {
	Paid    int `json:"paid"`
	Partial int `json:"partial"`
	Unpaid  int `json:"unpaid"`
}

// DashboardOverview is the aggregate snapshot behind the dashboard screen.
type DashboardOverview struct {
	TotalBilled      float64         `json:"totalBilled"`
	TotalCollected   float64         `json:"totalCollected"`
	TotalReceivable  float64         `json:"totalReceivable"`
	TaxCollected     float64         `json:"taxCollected"`
	InvoiceCount     int             `json:"invoiceCount"`
	Statuses         StatusCounts    `json:"statuses"`
	CustomerCount    int             `json:"customerCount"`
	ProductCount     int             `json:"productCount"`
	LowStockCount    int             `json:"lowStockCount"`
	RevenueGrowthPct float64         `json:"revenueGrowthPct"`
	MonthlyRevenue   []MonthlyPoint  `json:"monthlyRevenue"`
	DailyRevenue     []DailyPoint    `json:"dailyRevenue"`
	TopProducts      []ProductSales  `json:"topProducts"`
	CategoryShare    []CategoryShare `json:"categoryShare"`
}

// DashboardService assembles the overview from the ledger and catalog.
type DashboardService interface {
	Overview(ctx context.Context, businessID uuid.UUID) (*DashboardOverview, error)
}

type dashboardService struct {
	invoiceRepo port.InvoiceRepository
	contactRepo port.ContactRepository
	productRepo port.ProductRepository
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(
	invoiceRepo port.InvoiceRepository,
	contactRepo port.ContactRepository,
	productRepo port.ProductRepository,
) DashboardService {
	return &dashboardService{
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		productRepo: productRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

const (
	trendMonths = 6
	trendDays   = 7
	topProducts = 5
)

func (s *dashboardService) Overview(ctx context.Context, businessID uuid.UUID) (*DashboardOverview, error) {
	invoices, err := s.invoiceRepo.List(ctx, businessID)
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

	overview := &DashboardOverview{
		InvoiceCount:  len(invoices),
		CustomerCount: len(contacts),
		ProductCount:  len(products),
	}

	for _, p := range products {
		if p.Active && p.Stock <= p.MinStock {
			overview.LowStockCount++
		}
	}

	byMonth := map[string]float64{}
	byDay := map[string]float64{}
	byProduct := map[string]*ProductSales{}
	byCategory := map[string]float64{}
	categoryOf := map[uuid.UUID]string{}
	for _, p := range products {
		categoryOf[p.ID] = p.Category
	}

	for _, inv := range invoices {
		overview.TotalBilled += inv.Total
		overview.TotalCollected += inv.Paid
		overview.TotalReceivable += inv.BalanceDue()
		overview.TaxCollected += inv.TaxAmount

		switch inv.Status {
		case domain.StatusPaid:
			overview.Statuses.Paid++
		case domain.StatusPartial:
			overview.Statuses.Partial++
		default:
			overview.Statuses.Unpaid++
		}

		if t, err := time.Parse(domain.DateLayout, inv.Date); err == nil {
			byMonth[t.Format("2006-01")] += inv.Total
			byDay[inv.Date] += inv.Total
		}

		for _, item := range inv.Items {
			entry, ok := byProduct[item.Name]
			if !ok {
				entry = &ProductSales{Name: item.Name}
				byProduct[item.Name] = entry
			}
			entry.Qty += item.Qty
			entry.Revenue += item.Amount

			category := categoryOf[item.ProductID]
			if category == "" {
				category = "Uncategorized"
			}
			byCategory[category] += item.Amount
		}
	}

	now := s.now()

	// last N months, oldest first
	for i := trendMonths - 1; i >= 0; i-- {
		m := now.AddDate(0, -i, 0)
		key := m.Format("2006-01")
		overview.MonthlyRevenue = append(overview.MonthlyRevenue, MonthlyPoint{
			Month:   key,
			Label:   m.Format("Jan"),
			Revenue: byMonth[key],
		})
	}

	// last N days, oldest first
	for i := trendDays - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format(domain.DateLayout)
		overview.DailyRevenue = append(overview.DailyRevenue, DailyPoint{
			Date:    d,
			Revenue: byDay[d],
		})
	}

	// growth: current month vs previous
	current := byMonth[now.Format("2006-01")]
	previous := byMonth[now.AddDate(0, -1, 0).Format("2006-01")]
	if previous > 0 {
		overview.RevenueGrowthPct = (current - previous) / previous * 100
	}

	ranked := make([]ProductSales, 0, len(byProduct))
	for _, entry := range byProduct {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(a, b int) bool { return ranked[a].Revenue > ranked[b].Revenue })
	if len(ranked) > topProducts {
		ranked = ranked[:topProducts]
	}
	overview.TopProducts = ranked

	shares := make([]CategoryShare, 0, len(byCategory))
	for category, revenue := range byCategory {
		shares = append(shares, CategoryShare{Category: category, Revenue: revenue})
	}
	sort.Slice(shares, func(a, b int) bool { return shares[a].Revenue > shares[b].Revenue })
	overview.CategoryShare = shares

	return overview, nil
}
