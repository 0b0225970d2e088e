package services

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

const DefaultSalesRetention = 60 * 24 * time.Hour

// DaySummary groups the sales of one venue-local calendar day.
type DaySummary struct {
	Date         string             `json:"date"`
	Orders       []models.DailySale `json:"orders"`
	TotalSales   float64            `json:"total_sales"`
	TotalTax     float64            `json:"total_tax"`
	TotalRevenue float64            `json:"total_revenue"`
	OrderCount   int                `json:"order_count"`
}

// LedgerService is the append-only record of paid orders.
type LedgerService struct {
	db        *gorm.DB
	pub       notify.Publisher
	Retention time.Duration
	Location  *time.Location
	Now       func() time.Time
}

func NewLedgerService(db *gorm.DB, pub notify.Publisher) *LedgerService {
	if pub == nil {
		pub = notify.Nop{}
	}
	return &LedgerService{
		db:        db,
		pub:       pub,
		Retention: DefaultSalesRetention,
		Location:  time.Local,
		Now:       time.Now,
	}
}

// RecordSale snapshots a paid order into the ledger.
func (l *LedgerService) RecordSale(order *models.Order) (*models.DailySale, error) {
	paidAt := l.Now()
	if order.PaidAt != nil {
		paidAt = *order.PaidAt
	}

	items := make([]models.SaleItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, models.SaleItem{
			ID:        it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal,
			Cancelled: it.Cancelled,
		})
	}

	sale := &models.DailySale{
		OrderID:   order.ID,
		TableCode: order.TableCode,
		Items:     items,
		Subtotal:  order.Subtotal,
		Tax:       order.Tax,
		Total:     order.Total,
		PaidAt:    paidAt,
	}
	if err := l.Record(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Record appends a sale. Missing id and paid_at are filled in.
func (l *LedgerService) Record(sale *models.DailySale) error {
	if strings.TrimSpace(sale.TableCode) == "" {
		return fmt.Errorf("%w: table code is required", ErrValidation)
	}
	if sale.Total < 0 || sale.Subtotal < 0 || sale.Tax < 0 {
		return fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	}
	sale.Subtotal, sale.Tax, sale.Total = utils.Round2(sale.Subtotal), utils.Round2(sale.Tax), utils.Round2(sale.Total)
	if utils.Sum(sale.Subtotal, sale.Tax) != sale.Total {
		return fmt.Errorf("%w: total %.2f must equal subtotal %.2f plus tax %.2f",
			ErrValidation, sale.Total, sale.Subtotal, sale.Tax)
	}
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.PaidAt.IsZero() {
		sale.PaidAt = l.Now()
	}
	if sale.Items == nil {
		sale.Items = []models.SaleItem{}
	}

	if err := l.db.Create(sale).Error; err != nil {
		return fmt.Errorf("record sale for table %s: %w", sale.TableCode, err)
	}

	l.pub.Publish(notify.EventSaleRecorded, sale)
	utils.InfoLogger.Printf("New sale recorded: %s total %s", sale.ID, utils.FormatLira(sale.Total))
	return nil
}

// PruneOlderThan deletes sales paid before now-age.
func (l *LedgerService) PruneOlderThan(age time.Duration) (int64, error) {
	cutoff := l.Now().Add(-age)
	res := l.db.Where("paid_at < ?", cutoff).Delete(&models.DailySale{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune sales before %s: %w", cutoff.Format(time.RFC3339), res.Error)
	}
	if res.RowsAffected > 0 {
		utils.InfoLogger.Printf("Cleaned up %d sales older than %s", res.RowsAffected, age)
	}
	return res.RowsAffected, nil
}

// ListByDay prunes expired sales, then returns the rest grouped by day, newest first.
func (l *LedgerService) ListByDay() ([]DaySummary, error) {
	if _, err := l.PruneOlderThan(l.Retention); err != nil {
		return nil, err
	}

	var sales []models.DailySale
	if err := l.db.Order("paid_at desc").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return l.group(sales), nil
}

// Clear removes every sale (end of day reset).
func (l *LedgerService) Clear() (int64, error) {
	res := l.db.Where("1 = 1").Delete(&models.DailySale{})
	if res.Error != nil {
		return 0, fmt.Errorf("clear sales: %w", res.Error)
	}
	utils.InfoLogger.Printf("Daily sales cleared: %d records deleted", res.RowsAffected)
	return res.RowsAffected, nil
}

type dayTotals struct {
	summary  *DaySummary
	subtotal decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal
}

func (l *LedgerService) group(sales []models.DailySale) []DaySummary {
	days := make(map[string]*dayTotals)
	for _, sale := range sales {
		date := sale.PaidAt.In(l.Location).Format(models.ReservationDateLayout)
		d, ok := days[date]
		if !ok {
			d = &dayTotals{summary: &DaySummary{Date: date, Orders: []models.DailySale{}}}
			days[date] = d
		}
		d.summary.Orders = append(d.summary.Orders, sale)
		d.subtotal = d.subtotal.Add(decimal.NewFromFloat(sale.Subtotal))
		d.tax = d.tax.Add(decimal.NewFromFloat(sale.Tax))
		d.total = d.total.Add(decimal.NewFromFloat(sale.Total))
	}

	out := make([]DaySummary, 0, len(days))
	for _, d := range days {
		d.summary.TotalSales = d.subtotal.Round(2).InexactFloat64()
		d.summary.TotalTax = d.tax.Round(2).InexactFloat64()
		d.summary.TotalRevenue = d.total.Round(2).InexactFloat64()
		d.summary.OrderCount = len(d.summary.Orders)
		out = append(out, *d.summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// ExportPDF writes the daily summary report.
func (l *LedgerService) ExportPDF(w io.Writer) error {
	days, err := l.ListByDay()
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Daily Sales Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Daily Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+l.Now().In(l.Location).Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{35, 25, 42, 40, 48}
	headers := []string{"Date", "Orders", "Sales", "Tax", "Revenue"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	var orders int
	sales, tax, revenue := decimal.Zero, decimal.Zero, decimal.Zero
	pdf.SetFont("Helvetica", "", 10)
	for _, d := range days {
		pdf.CellFormat(widths[0], 7, d.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", d.OrderCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, utils.FormatLira(d.TotalSales), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, utils.FormatLira(d.TotalTax), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, utils.FormatLira(d.TotalRevenue), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)

		orders += d.OrderCount
		sales = sales.Add(decimal.NewFromFloat(d.TotalSales))
		tax = tax.Add(decimal.NewFromFloat(d.TotalTax))
		revenue = revenue.Add(decimal.NewFromFloat(d.TotalRevenue))
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0], 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", orders), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[2], 8, utils.FormatLira(sales.InexactFloat64()), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[3], 8, utils.FormatLira(tax.InexactFloat64()), "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[4], 8, utils.FormatLira(revenue.InexactFloat64()), "1", 0, "R", true, 0, "")
	pdf.Ln(-1)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render sales pdf: %w", err)
	}
	return nil
}
