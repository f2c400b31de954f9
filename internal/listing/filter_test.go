package listing

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/adroitalarm/shopdesk/internal/model"
)

func sampleOrders() []OrderRecord {
	return FormatOrders([]model.Order{
		{OrderID: "101", Status: "pending", PaymentStatus: "paid", PaymentMethod: "card", Date: "2024-01-05", TotalAmount: "10"},
		{OrderID: "102", Status: "shipped", PaymentStatus: "paid", PaymentMethod: "paypal", Date: "2024-01-10", TotalAmount: "20"},
		{OrderID: "103", Status: "pending", PaymentStatus: "failed", PaymentMethod: "card", Date: "2024-02-01", TotalAmount: "30"},
		{OrderID: "104", Status: "cancelled", PaymentStatus: "pending", PaymentMethod: "card", Date: "", TotalAmount: "40"},
		{OrderID: "105", Status: "pending", PaymentStatus: "paid", PaymentMethod: "card", Date: "2024-01-31", TotalAmount: "50"},
	})
}

var recordCmp = cmpopts.EquateEmpty()

func ids(records []OrderRecord) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestApply_AllIsNoPredicate(t *testing.T) {
	orders := sampleOrders()
	f := Filter{}.With(DimStatus, All).With(DimPaymentStatus, All)

	assert.False(t, f.Active())
	assert.Equal(t, ids(orders), ids(Apply(orders, f)))
}

func TestApply_Idempotent(t *testing.T) {
	orders := sampleOrders()
	filters := []Filter{
		{},
		Filter{}.With(DimStatus, "pending"),
		Filter{}.With(DimStatus, "pending").With(DimPaymentStatus, "paid"),
		Filter{}.Between(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
	}
	for _, f := range filters {
		once := Apply(orders, f)
		twice := Apply(once, f)
		if diff := cmp.Diff(once, twice, cmp.AllowUnexported(OrderRecord{}), recordCmp); diff != "" {
			t.Errorf("filter not idempotent (-once +twice):\n%s", diff)
		}
	}
}

func TestApply_ComposesAsConjunction(t *testing.T) {
	orders := sampleOrders()
	status := Filter{}.With(DimStatus, "pending")
	payment := Filter{}.With(DimPaymentStatus, "paid")
	both := status.With(DimPaymentStatus, "paid")

	sequential := Apply(Apply(orders, status), payment)
	combined := Apply(orders, both)
	if diff := cmp.Diff(sequential, combined, cmp.AllowUnexported(OrderRecord{}), recordCmp); diff != "" {
		t.Errorf("sequential and combined filters differ (-seq +combined):\n%s", diff)
	}
	assert.Equal(t, []string{"101", "105"}, ids(combined))

	reversed := Apply(Apply(orders, payment), status)
	assert.Equal(t, ids(combined), ids(reversed))
}

func TestApply_DateRangeInclusive(t *testing.T) {
	orders := sampleOrders()
	f := Filter{}.Between(
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)

	// 104 has no date and is excluded once a range is set.
	assert.Equal(t, []string{"101", "102", "105"}, ids(Apply(orders, f)))

	openEnded := Filter{From: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, []string{"103", "105"}, ids(Apply(orders, openEnded)))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	orders := sampleOrders()
	before := ids(orders)
	out := Apply(orders, Filter{}.With(DimStatus, "shipped"))

	assert.Equal(t, []string{"102"}, ids(out))
	assert.Equal(t, before, ids(orders))
	assert.NotNil(t, Apply(orders, Filter{}.With(DimStatus, "nope")))
}

func TestFilter_WithCopies(t *testing.T) {
	base := Filter{}.With(DimStatus, "pending")
	next := base.With(DimStatus, "shipped")

	assert.Equal(t, "pending", base.Value(DimStatus))
	assert.Equal(t, "shipped", next.Value(DimStatus))
	assert.Equal(t, All, base.Value(DimPaymentStatus))
}

func TestOptionsAndCycle(t *testing.T) {
	opts := Options(sampleOrders(), DimStatus)
	assert.Equal(t, []string{All, "pending", "shipped", "cancelled"}, opts)

	assert.Equal(t, "pending", Cycle(opts, All))
	assert.Equal(t, All, Cycle(opts, "cancelled"))
	assert.Equal(t, All, Cycle(opts, "gone"))
}
