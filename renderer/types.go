package renderer

import (
	"github.com/etnz/rentroll"
	"github.com/etnz/rentroll/date"
)

// Report is the analytics report data for rendering.
type Report struct {
	Title          string  `json:"title"`
	TotalUnits     int     `json:"totalUnits"`
	Occupied       int     `json:"occupied"`
	OpenComplaints int     `json:"openComplaints"`
	RentableArea   int     `json:"rentableArea"`
	Months         []Month `json:"months"`
}

// Month is one row of the report trend.
type Month struct {
	Name        string  `json:"name"`
	RentPerArea float64 `json:"rentPerArea"`
	Vacancy     float64 `json:"vacancy"`
	Revenue     float64 `json:"revenue"`
}

// NewReport converts an analytics report.
func NewReport(r *rentroll.Report) *Report {
	rents, vacancy, revenue := r.AverageRentPerArea(), r.VacancyRate(), r.Rents()
	out := &Report{
		Title:          r.Title(),
		TotalUnits:     r.TotalUnits(),
		Occupied:       r.Occupied(),
		OpenComplaints: r.OpenComplaints(),
		RentableArea:   r.RentableArea(),
	}
	for i, p := range r.Periods() {
		out.Months = append(out.Months, Month{
			Name:        p.Identifier(),
			RentPerArea: rents[i].Value,
			Vacancy:     vacancy[i].Value,
			Revenue:     revenue[i].Value,
		})
	}
	return out
}

// Statement is a resident's account statement on a given day.
type Statement struct {
	Username string             `json:"username"`
	Name     string             `json:"name"`
	On       string             `json:"on"`
	Balance  rentroll.Money     `json:"balance"`
	Late     bool               `json:"late"`
	Charges  []StatementCharge  `json:"charges"`
	Payments []StatementPayment `json:"payments,omitempty"`
}

// StatementCharge is a posted charge line.
type StatementCharge struct {
	Posted  string         `json:"posted"`
	Due     string         `json:"due"`
	Name    string         `json:"name"`
	Amount  rentroll.Money `json:"amount"`
	Balance rentroll.Money `json:"balance"`
	Status  string         `json:"status"`
}

// StatementPayment is a payment line.
type StatementPayment struct {
	Date         string         `json:"date"`
	Confirmation int64          `json:"confirmation"`
	Charge       string         `json:"charge"`
	Amount       rentroll.Money `json:"amount"`
	Account      string         `json:"account"`
	Note         string         `json:"note,omitempty"`
}

// NewStatement lists the charges of 'res' posted on day 'on' and their payments.
func NewStatement(res *rentroll.Resident, on date.Date) *Statement {
	s := &Statement{
		Username: res.Username(),
		Name:     res.DisplayName(),
		On:       on.String(),
		Balance:  res.Balance(on),
		Late:     res.IsLate(on),
	}
	for _, c := range res.Charges() {
		if !c.IsPosted(on) {
			continue
		}
		s.Charges = append(s.Charges, StatementCharge{
			Posted:  c.PostingDate().String(),
			Due:     c.DueDate().String(),
			Name:    c.Name(),
			Amount:  c.Amount(),
			Balance: c.Balance(),
			Status:  c.Status(on).String(),
		})
		for _, p := range c.Payments() {
			s.Payments = append(s.Payments, StatementPayment{
				Date:         p.Date().String(),
				Confirmation: p.Confirmation(),
				Charge:       c.Name(),
				Amount:       p.Amount(),
				Account:      p.MaskedAccount(),
				Note:         p.Note(),
			})
		}
	}
	return s
}

// Lease is the charge schedule of a lease.
type Lease struct {
	Building string        `json:"building"`
	Unit     string        `json:"unit"`
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Rent     int           `json:"rent"`
	Charges  []LeaseCharge `json:"charges"`
}

// LeaseCharge is a monthly charge and its items.
type LeaseCharge struct {
	Name    string         `json:"name"`
	Posted  string         `json:"posted"`
	Due     string         `json:"due"`
	Amount  rentroll.Money `json:"amount"`
	Balance rentroll.Money `json:"balance"`
	Items   []LeaseItem    `json:"items"`
}

// LeaseItem is a sub-charge of a monthly charge.
type LeaseItem struct {
	Name   string         `json:"name"`
	Amount rentroll.Money `json:"amount"`
}

// NewLease converts a lease and its schedule.
func NewLease(l *rentroll.Lease) *Lease {
	out := &Lease{
		Building: l.Unit().Building(),
		Unit:     l.Unit().Number(),
		Start:    l.Start().String(),
		End:      l.End().String(),
		Rent:     l.MonthlyRent(),
	}
	for _, c := range l.Charges() {
		lc := LeaseCharge{
			Name:    c.Name(),
			Posted:  c.PostingDate().String(),
			Due:     c.DueDate().String(),
			Amount:  c.Amount(),
			Balance: c.Balance(),
		}
		for _, s := range c.SubCharges() {
			lc.Items = append(lc.Items, LeaseItem{Name: s.Name(), Amount: s.Amount()})
		}
		out.Charges = append(out.Charges, lc)
	}
	return out
}
