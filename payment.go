package rentroll

import "github.com/etnz/rentroll/date"

// Payment is an immutable record of money applied to a Charge.
type Payment struct {
	confirmation int64
	on           date.Date
	amount       Money
	account      string
	note         string
}

func (p Payment) Confirmation() int64 { return p.confirmation }
func (p Payment) Date() date.Date     { return p.on }
func (p Payment) Amount() Money       { return p.amount }
func (p Payment) Account() string     { return p.account }
func (p Payment) Note() string        { return p.note }

// MaskedAccount returns the account with all but the last four digits hidden.
func (p Payment) MaskedAccount() string {
	if len(p.account) <= 4 {
		return p.account
	}
	masked := make([]byte, len(p.account))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], p.account[len(p.account)-4:])
	return string(masked)
}

// MarshalJSON implements the json.Marshaler interface for Payment.
func (p Payment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("confirmation", p.confirmation)
	w.Append("date", p.on)
	w.EmbedFrom(p.amount)
	w.Append("account", p.MaskedAccount())
	w.Optional("note", p.note)
	return w.MarshalJSON()
}
