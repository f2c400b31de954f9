package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/model"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) ReportsByDate(ctx context.Context, start, end string) ([]model.ReportEntry, error) {
	args := m.Called(ctx, start, end)
	entries, _ := args.Get(0).([]model.ReportEntry)
	return entries, args.Error(1)
}

func (m *mockSource) DailyReport(ctx context.Context, date string) (model.DailyReport, error) {
	args := m.Called(ctx, date)
	rep, _ := args.Get(0).(model.DailyReport)
	return rep, args.Error(1)
}

func day(date string, orders, sales, customers string) model.DailyReport {
	return model.DailyReport{
		Date:              date,
		ReportGeneratedAt: date + "T23:59:00Z",
		Summary: model.ReportSummary{
			TotalOrders:     model.Numeric(orders),
			TotalSales:      model.Numeric(sales),
			UniqueCustomers: model.Numeric(customers),
		},
	}
}

func TestMerge_SumsAndAverages(t *testing.T) {
	got := Merge([]model.DailyReport{
		day("2024-01-02", "3", "10.00", "2"),
		day("2024-01-01", "5", "20.00", "3"),
	})

	assert.Equal(t, Summary{
		TotalOrders:       8,
		TotalSales:        "30.00",
		UniqueCustomers:   5,
		AverageOrderValue: "3.75",
	}, got.Summary)
	assert.Equal(t, []string{"2024-01-02", "2024-01-01"}, got.DatesIncluded)
	assert.Equal(t, "2024-01-01T23:59:00Z", got.ReportGeneratedAt, "metadata comes from the last report")
	assert.Equal(t, DefaultPrintedBy, got.PrintedBy)
}

func TestMerge_Empty(t *testing.T) {
	got := Merge(nil)

	assert.Equal(t, Summary{TotalOrders: 0, TotalSales: "0.00", UniqueCustomers: 0, AverageOrderValue: "0.00"}, got.Summary)
	assert.NotNil(t, got.TopProducts)
	assert.NotNil(t, got.PaymentMethods)
	assert.NotNil(t, got.OrdersByHour)
	assert.Equal(t, DefaultPrintedBy, got.PrintedBy)
}

func TestMerge_AccumulatesAtFullPrecision(t *testing.T) {
	var days []model.DailyReport
	for i := 0; i < 3; i++ {
		days = append(days, day("2024-01-0"+string(rune('1'+i)), "1", "0.005", "1"))
	}
	// 0.005 * 3 = 0.015; rounding each day first would give 0.03.
	assert.Equal(t, "0.01", Merge(days).Summary.TotalSales)
}

func TestMerge_IsCommutativeForTotals(t *testing.T) {
	a := day("2024-01-01", "2", "15.50", "2")
	a.TopProducts = []model.ProductSales{{ProductName: "Siren", QuantitySold: "2", Revenue: "40"}}
	a.PaymentMethods = []model.PaymentMethodTotals{{PaymentMethod: "card", OrderCount: "2", TotalAmount: "15.5"}}
	b := day("2024-01-02", "4", "4.50", "1")
	b.TopProducts = []model.ProductSales{{ProductName: "Keypad", QuantitySold: "1", Revenue: "60"}}
	b.PaymentMethods = []model.PaymentMethodTotals{{PaymentMethod: "card", OrderCount: "4", TotalAmount: "4.5"}}

	ab := Merge([]model.DailyReport{a, b})
	ba := Merge([]model.DailyReport{b, a})

	if diff := cmp.Diff(ab.Summary, ba.Summary); diff != "" {
		t.Errorf("summary depends on order (-ab +ba):\n%s", diff)
	}
	assert.Equal(t, ab.TopProducts, ba.TopProducts)
	assert.Equal(t, ab.PaymentMethods, ba.PaymentMethods)
}

func TestMerge_TopProductsGroupedAndCut(t *testing.T) {
	d1 := day("2024-01-01", "1", "1", "1")
	d1.TopProducts = []model.ProductSales{
		{ProductName: "A", QuantitySold: "1", Revenue: "10"},
		{ProductName: "B", QuantitySold: "2", Revenue: "50"},
		{ProductName: "C", QuantitySold: "1", Revenue: "30"},
		{ProductName: "D", QuantitySold: "1", Revenue: "5"},
	}
	d2 := day("2024-01-02", "1", "1", "1")
	d2.TopProducts = []model.ProductSales{
		{ProductName: "A", QuantitySold: "3", Revenue: "45.5"},
		{ProductName: "E", QuantitySold: "1", Revenue: "20"},
		{ProductName: "F", QuantitySold: "1", Revenue: "1"},
	}

	got := Merge([]model.DailyReport{d1, d2}).TopProducts
	assert.Equal(t, []ProductTotal{
		{ProductName: "A", QuantitySold: 4, Revenue: "55.50"},
		{ProductName: "B", QuantitySold: 2, Revenue: "50.00"},
		{ProductName: "C", QuantitySold: 1, Revenue: "30.00"},
		{ProductName: "E", QuantitySold: 1, Revenue: "20.00"},
		{ProductName: "D", QuantitySold: 1, Revenue: "5.00"},
	}, got)
}

func TestMerge_PaymentMethodsFirstSeenOrder(t *testing.T) {
	d1 := day("2024-01-01", "1", "1", "1")
	d1.PaymentMethods = []model.PaymentMethodTotals{
		{PaymentMethod: "paypal", OrderCount: "1", TotalAmount: "10"},
		{PaymentMethod: "card", OrderCount: "2", TotalAmount: "20"},
	}
	d2 := day("2024-01-02", "1", "1", "1")
	d2.PaymentMethods = []model.PaymentMethodTotals{
		{PaymentMethod: "card", OrderCount: "1", TotalAmount: "5.25"},
	}
	d2.PrintedBy = "Jordan"

	got := Merge([]model.DailyReport{d1, d2})
	assert.Equal(t, []MethodTotal{
		{PaymentMethod: "paypal", OrderCount: 1, TotalAmount: "10.00"},
		{PaymentMethod: "card", OrderCount: 3, TotalAmount: "25.25"},
	}, got.PaymentMethods)
	assert.Equal(t, "Jordan", got.PrintedBy)
}

func TestAggregator_SkipsFailedDays(t *testing.T) {
	src := &mockSource{}
	src.On("ReportsByDate", mock.Anything, "2024-01-01", "2024-01-03").Return([]model.ReportEntry{
		{Date: "2024-01-03"}, {Date: "2024-01-02"}, {Date: "2024-01-01"},
	}, nil)
	src.On("DailyReport", mock.Anything, "2024-01-03").Return(day("2024-01-03", "3", "10.00", "2"), nil)
	src.On("DailyReport", mock.Anything, "2024-01-02").Return(model.DailyReport{}, errors.New("server error"))
	src.On("DailyReport", mock.Anything, "2024-01-01").Return(day("2024-01-01", "5", "20.00", "3"), nil)

	var progress []int
	agg := NewAggregator(src, WithMaxConcurrency(1), WithProgress(func(done, _ int) { progress = append(progress, done) }))
	got, err := agg.Range(context.Background(), "2024-01-01", "2024-01-03")
	require.NoError(t, err)

	assert.Equal(t, 8, got.Summary.TotalOrders)
	assert.Equal(t, "30.00", got.Summary.TotalSales)
	assert.Equal(t, "3.75", got.Summary.AverageOrderValue)
	assert.Equal(t, []string{"2024-01-03", "2024-01-01"}, got.DatesIncluded)
	assert.Equal(t, []string{"2024-01-02"}, got.DatesFailed)
	assert.Equal(t, "01/01/2024 to 01/03/2024", got.Date)
	assert.Equal(t, []int{1, 2, 3}, progress)
	src.AssertExpectations(t)
}

func TestAggregator_EmptyRange(t *testing.T) {
	src := &mockSource{}
	src.On("ReportsByDate", mock.Anything, "2024-02-01", "2024-02-02").Return([]model.ReportEntry{}, nil)
	fixed := time.Date(2024, 2, 3, 8, 0, 0, 0, time.UTC)

	got, err := NewAggregator(src, WithClock(func() time.Time { return fixed })).Range(context.Background(), "2024-02-01", "2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, Summary{TotalSales: "0.00", AverageOrderValue: "0.00"}, got.Summary)
	assert.Equal(t, "2024-02-03T08:00:00Z", got.ReportGeneratedAt)
	assert.Empty(t, got.DatesIncluded)
	src.AssertNotCalled(t, "DailyReport", mock.Anything, mock.Anything)
}

func TestAggregator_ValidatesRange(t *testing.T) {
	agg := NewAggregator(&mockSource{})

	_, err := agg.Range(context.Background(), "2024-02-05", "2024-02-01")
	assert.ErrorIs(t, err, common.ErrInvalidDateRange)

	_, err = agg.Range(context.Background(), "yesterday", "2024-02-01")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAggregator_ListingFailureIsAnError(t *testing.T) {
	src := &mockSource{}
	src.On("ReportsByDate", mock.Anything, mock.Anything, mock.Anything).Return(nil, common.ErrUnauthorized)

	_, err := NewAggregator(src).Range(context.Background(), "2024-02-01", "2024-02-02")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAggregator_CancelledContext(t *testing.T) {
	src := &mockSource{}
	src.On("ReportsByDate", mock.Anything, mock.Anything, mock.Anything).Return([]model.ReportEntry{{Date: "2024-01-01"}}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	src.On("DailyReport", mock.Anything, "2024-01-01").Run(func(mock.Arguments) { cancel() }).Return(model.DailyReport{}, context.Canceled)

	_, err := NewAggregator(src).Range(ctx, "2024-01-01", "2024-01-01")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromDaily(t *testing.T) {
	d := day("2024-03-04", "2", "9.999", "2")
	d.OrdersByHour = []model.HourlyOrders{{Hour: "10", OrderCount: "2", Sales: "9.999"}}

	got := FromDaily(d)
	assert.Equal(t, "03/04/2024", got.Date)
	assert.Equal(t, "10.00", got.Summary.TotalSales)
	assert.Equal(t, "5.00", got.Summary.AverageOrderValue)
	assert.Len(t, got.OrdersByHour, 1)
}
