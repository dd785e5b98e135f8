package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/freightdeck/freightdeck/internal/drivers"
	"github.com/freightdeck/freightdeck/internal/orders"
)

// MonthlyPoint is one month's revenue bucket.
type MonthlyPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Summary is the dashboard KPI payload.
type Summary struct {
	TotalOrders    int            `json:"totalOrders"`
	TotalRevenue   float64        `json:"totalRevenue"`
	MonthlyRevenue []MonthlyPoint `json:"monthlyRevenue"`
	VehiclesInUse  int            `json:"vehiclesInUse"`
	ActiveDrivers  int            `json:"activeDrivers"`
}

// Aggregate folds the company's orders and drivers into the dashboard
// summary.
//
// Revenue counts only orders with a positive coerced amount; zero-amount
// orders still count toward totalOrders but never enter a monthly
// bucket. Buckets run January through the current month of the current
// year, zero-filled, so the chart never has holes.
func Aggregate(orderList []orders.Order, driverList []drivers.Driver, now time.Time) Summary {
	s := Summary{TotalOrders: len(orderList)}

	type bucket struct {
		value float64
		count int
	}
	buckets := map[string]*bucket{}
	vehicles := map[string]struct{}{}

	for _, o := range orderList {
		if vt := strings.TrimSpace(o.Doc.String("vehicle_type")); vt != "" {
			vehicles[vt] = struct{}{}
		}
		if vn := strings.TrimSpace(o.Doc.String("vehicle_number")); vn != "" {
			vehicles[vn] = struct{}{}
		}

		amount := o.Amount()
		if amount <= 0 {
			continue
		}
		s.TotalRevenue += amount

		month := o.EffectiveDate(now).Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
		}
		b.value += amount
		b.count++
	}
	s.VehiclesInUse = len(vehicles)

	for _, d := range driverList {
		status := strings.ToLower(strings.TrimSpace(d.Doc.String("status")))
		if status == "active" || status == "available" {
			s.ActiveDrivers++
		}
	}

	s.MonthlyRevenue = make([]MonthlyPoint, 0, int(now.Month()))
	for m := time.January; m <= now.Month(); m++ {
		key := fmt.Sprintf("%04d-%02d", now.Year(), m)
		point := MonthlyPoint{Month: key}
		if b, ok := buckets[key]; ok {
			point.Value = b.value
			point.Count = b.count
		}
		s.MonthlyRevenue = append(s.MonthlyRevenue, point)
	}

	return s
}
