package model

// ReportSummary is the headline block of a daily report.
type ReportSummary struct {
	TotalOrders       Numeric `json:"total_orders"`
	TotalSales        Numeric `json:"total_sales"`
	UniqueCustomers   Numeric `json:"unique_customers"`
	AverageOrderValue Numeric `json:"average_order_value"`
}

// ProductSales is one row of a report's top products table.
type ProductSales struct {
	ProductName  string  `json:"product_name"`
	QuantitySold Numeric `json:"quantity_sold"`
	Revenue      Numeric `json:"revenue"`
}

// PaymentMethodTotals is one row of a report's payment method table.
type PaymentMethodTotals struct {
	PaymentMethod string  `json:"payment_method"`
	OrderCount    Numeric `json:"order_count"`
	TotalAmount   Numeric `json:"total_amount"`
}

// HourlyOrders is one row of a report's orders by hour table.
type HourlyOrders struct {
	Hour       Numeric `json:"hour"`
	OrderCount Numeric `json:"order_count"`
	Sales      Numeric `json:"sales"`
}

// DailyReport is the body of /reports/daily?date=.
type DailyReport struct {
	Date              string                `json:"date"`
	ReportGeneratedAt string                `json:"report_generated_at"`
	PrintedBy         string                `json:"printedBy"`
	Summary           ReportSummary         `json:"summary"`
	TopProducts       []ProductSales        `json:"top_products"`
	PaymentMethods    []PaymentMethodTotals `json:"payment_methods"`
	OrdersByHour      []HourlyOrders        `json:"orders_by_hour"`
}

// ReportEntry is one row of a report listing (by-date, monthly or yearly).
type ReportEntry struct {
	ID          Numeric       `json:"id,omitempty"`
	Date        string        `json:"date,omitempty"`
	Month       string        `json:"month,omitempty"`
	Year        Numeric       `json:"year,omitempty"`
	TotalOrders Numeric       `json:"totalOrders,omitempty"`
	TotalSales  Numeric       `json:"totalSales,omitempty"`
	Summary     ReportSummary `json:"summary"`
}

// Orders returns the order count from whichever field the listing used.
func (e ReportEntry) Orders() int {
	if e.TotalOrders != "" {
		return e.TotalOrders.Int()
	}
	return e.Summary.TotalOrders.Int()
}

// Sales returns the sales total from whichever field the listing used.
func (e ReportEntry) Sales() float64 {
	if e.TotalSales != "" {
		return e.TotalSales.FloatOr(0)
	}
	return e.Summary.TotalSales.FloatOr(0)
}

// Period is the key used to request details for the entry.
func (e ReportEntry) Period() string {
	switch {
	case e.Date != "":
		return e.Date
	case e.Month != "":
		return e.Month
	default:
		return e.Year.String()
	}
}

// ReportFilters lists the periods the backend has data for.
type ReportFilters struct {
	Months []string  `json:"months"`
	Years  []Numeric `json:"years"`
	Dates  []string  `json:"dates"`
}

// ReportDetail is the per-tab payload of /reports/details; tables vary by
// tab so rows stay loosely typed.
type ReportDetail struct {
	Type              string           `json:"type"`
	Period            string           `json:"period"`
	Tab               string           `json:"tab"`
	ReportGeneratedAt string           `json:"report_generated_at"`
	PrintedBy         string           `json:"printedBy"`
	Summary           ReportSummary    `json:"summary"`
	Rows              []map[string]any `json:"data"`
}

// Report view types and detail tabs.
const (
	ViewDaily   = "daily"
	ViewMonthly = "monthly"
	ViewYearly  = "yearly"
)

var ReportTabs = []string{"order", "product", "payment", "customer"}
