package rentroll

import (
	"math"
	"slices"

	"github.com/etnz/rentroll/date"
	"github.com/shopspring/decimal"
)

// PortfolioTitle is the title of reports merged across buildings.
const PortfolioTitle = "All Buildings"

// Point is one value of a time series, dated by the last day of its period.
type Point struct {
	On    date.Date `json:"on"`
	Value float64   `json:"value"`
}

// Report holds the rolling monthly analytics of a building or of a portfolio
// of buildings.
//
// Series are kept unrounded so that reports can be merged; accessors return
// copies.
type Report struct {
	title          string
	totalUnits     int
	occupied       int
	openComplaints int
	area           int
	periods        []date.Range
	avgRent        []float64 // rent per sqft
	vacancy        []float64 // in [0,1]
	revenue        []float64 // payments received
}

func newReport(title string, end date.Date, window int) *Report {
	periods := date.TrailingMonths(end, window)
	return &Report{
		title:   title,
		periods: periods,
		avgRent: make([]float64, len(periods)),
		vacancy: make([]float64, len(periods)),
		revenue: make([]float64, len(periods)),
	}
}

// NewBuildingReport computes 'window' monthly periods ending with the month
// containing 'end'.
//
// For each period, a lease is active if it started before the period and has
// not ended when the period starts. The average rent per area is the sum of
// active rents over the sum of their units' area; the vacancy rate is the share
// of units without any active lease; the revenue is the sum of payments dated
// within the period.
func NewBuildingReport(b *Building, end date.Date, window int) *Report {
	r := newReport(b.name, end, window)
	r.totalUnits = b.TotalUnits()
	r.occupied = b.Occupied()
	r.openComplaints = b.OpenComplaints()
	r.area = b.RentableArea()

	units := slices.Collect(b.Units())
	for i, p := range r.periods {
		var rent, area, occupied int
		for _, u := range units {
			for _, l := range u.leases {
				if l.ActiveOn(p.From) {
					rent += l.rent
					area += u.area
				}
			}
			if u.occupiedDuring(p.From) {
				occupied++
			}
		}
		r.avgRent[i] = ratio(float64(rent), float64(area))
		r.vacancy[i] = ratio(float64(len(units)-occupied), float64(len(units)))
	}

	revenue := make([]decimal.Decimal, len(r.periods))
	for _, u := range units {
		for _, l := range u.leases {
			for _, pay := range l.payments() {
				i := slices.IndexFunc(r.periods, func(p date.Range) bool { return p.Contains(pay.on) })
				if i >= 0 {
					revenue[i] = revenue[i].Add(pay.amount.value)
				}
			}
		}
	}
	for i, v := range revenue {
		r.revenue[i] = v.InexactFloat64()
	}
	return r
}

// NewPortfolioReport merges the reports of 'buildings', in the given order.
//
// The average rent and the vacancy rate are merged weighted by rentable area:
// the series is seeded with the first building, then for each following
// building
//
//	merged = merged × previousArea/totalArea + building × buildingArea/totalArea
//
// where previousArea is the area accumulated before the building and totalArea
// includes it. Revenue is summed. Floating point accumulation follows the
// building order, so the same order always gives the same values.
func NewPortfolioReport(buildings []*Building, end date.Date, window int) *Report {
	r := newReport(PortfolioTitle, end, window)
	for i, b := range buildings {
		br := NewBuildingReport(b, end, window)
		if i == 0 {
			copy(r.avgRent, br.avgRent)
			copy(r.vacancy, br.vacancy)
			copy(r.revenue, br.revenue)
			r.add(br)
			continue
		}
		previous := float64(r.area)
		r.add(br)
		total, area := float64(r.area), float64(br.area)
		for j := range r.periods {
			r.avgRent[j] = weighted(r.avgRent[j], previous, br.avgRent[j], area, total)
			r.vacancy[j] = weighted(r.vacancy[j], previous, br.vacancy[j], area, total)
			r.revenue[j] += br.revenue[j]
		}
	}
	return r
}

// add accumulates the counters of 'br'.
func (r *Report) add(br *Report) {
	r.totalUnits += br.totalUnits
	r.occupied += br.occupied
	r.openComplaints += br.openComplaints
	r.area += br.area
}

// weighted merges 'value' of weight 'area' into 'merged' of weight 'previous'.
func weighted(merged, previous, value, area, total float64) float64 {
	if total == 0 {
		return 0
	}
	return finite(merged*(previous/total) + value*(area/total))
}

// ratio returns num/den, or 0 when the result is not a finite number.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return finite(num / den)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (r *Report) Title() string         { return r.title }
func (r *Report) TotalUnits() int       { return r.totalUnits }
func (r *Report) Occupied() int         { return r.occupied }
func (r *Report) OpenComplaints() int   { return r.openComplaints }
func (r *Report) RentableArea() int     { return r.area }
func (r *Report) Periods() []date.Range { return slices.Clone(r.periods) }

// AverageRentPerArea returns the average rent per sqft, rounded to 2 decimals.
func (r *Report) AverageRentPerArea() []Point {
	return r.points(r.avgRent, func(v float64) float64 { return math.Round(v*100) / 100 })
}

// Rents returns the gross rental revenue per period.
func (r *Report) Rents() []Point { return r.points(r.revenue, nil) }

// VacancyRate returns the vacancy rate per period, in [0,1].
func (r *Report) VacancyRate() []Point { return r.points(r.vacancy, nil) }

func (r *Report) points(values []float64, f func(float64) float64) []Point {
	points := make([]Point, len(r.periods))
	for i, p := range r.periods {
		v := values[i]
		if f != nil {
			v = f(v)
		}
		points[i] = Point{On: p.To, Value: v}
	}
	return points
}

// MarshalJSON implements the json.Marshaler interface for Report.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("title", r.title)
	w.Append("totalUnits", r.totalUnits)
	w.Append("occupied", r.occupied)
	w.Append("openComplaints", r.openComplaints)
	w.Append("rentableArea", r.area)
	w.Append("averageRentPerArea", r.AverageRentPerArea())
	w.Append("rents", r.Rents())
	w.Append("vacancyRate", r.VacancyRate())
	return w.MarshalJSON()
}
