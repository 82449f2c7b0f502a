package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/etnz/rentroll"
	"github.com/sirupsen/logrus"
)

// leaseOwner locates a lease in a resident's history.
type leaseOwner struct {
	username string
	ord      int
}

// Save replaces the stored registry with 'reg' in a single transaction.
func (s *Store) Save(ctx context.Context, reg *rentroll.Registry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range tables {
		if err := s.exec(ctx, tx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	meta := map[string]string{"currency": reg.Currency()}
	if seq, ok := reg.Sequence().(lastNumber); ok {
		meta["sequence"] = strconv.FormatInt(seq.Last(), 10)
	}
	for name, value := range meta {
		if err := s.exec(ctx, tx, "INSERT INTO meta (name, value) VALUES (?, ?)", name, value); err != nil {
			return fmt.Errorf("saving %s: %w", name, err)
		}
	}

	owners := make(map[*rentroll.Lease]leaseOwner)
	for i, u := range reg.Users() {
		kind, currency := "admin", ""
		if res, ok := u.(*rentroll.Resident); ok {
			kind, currency = "resident", res.Currency()
			for j, l := range res.Leases() {
				owners[l] = leaseOwner{res.Username(), j}
			}
		}
		if err := s.exec(ctx, tx, "INSERT INTO users (username, display, kind, currency, ord) VALUES (?, ?, ?, ?, ?)",
			u.Username(), u.DisplayName(), kind, currency, i); err != nil {
			return fmt.Errorf("saving user %q: %w", u.Username(), err)
		}
	}

	units, leases, charges := 0, 0, 0
	for i, b := range reg.Buildings() {
		if err := s.exec(ctx, tx, "INSERT INTO buildings (name, ord) VALUES (?, ?)", b.Name(), i); err != nil {
			return fmt.Errorf("saving building %q: %w", b.Name(), err)
		}
		for u := range b.Units() {
			if err := s.saveUnit(ctx, tx, u); err != nil {
				return fmt.Errorf("saving unit %s/%s: %w", b.Name(), u.Number(), err)
			}
			units++
			for j, l := range u.Leases() {
				owner := owners[l]
				if err := s.exec(ctx, tx, `INSERT INTO leases
					(id, unit_id, unit_ord, resident, resident_ord, start_date, end_date, monthly_rent)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					l.ID().String(), u.ID().String(), j, owner.username, owner.ord,
					l.Start().String(), l.End().String(), l.MonthlyRent()); err != nil {
					return fmt.Errorf("saving lease %s: %w", l.ID(), err)
				}
				leases++
				for k, c := range l.Charges() {
					n, err := s.saveCharge(ctx, tx, l.ID().String(), "", k, c)
					if err != nil {
						return fmt.Errorf("saving charge %q: %w", c.Name(), err)
					}
					charges += n
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"buildings": len(reg.Buildings()),
		"units":     units,
		"leases":    leases,
		"charges":   charges,
	}).Info("registry saved")
	return nil
}

func (s *Store) saveUnit(ctx context.Context, tx *sql.Tx, u *rentroll.Unit) error {
	resident := ""
	if res, ok := u.Resident(); ok {
		resident = res.Username()
	}
	if err := s.exec(ctx, tx, `INSERT INTO units (id, building, floor_number, unit_number, area, resident)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID().String(), u.Building(), u.Floor(), u.Number(), u.Area(), resident); err != nil {
		return err
	}
	for i, c := range u.Complaints() {
		if err := s.exec(ctx, tx, `INSERT INTO complaints (unit_id, ord, opened, description, resolved)
			VALUES (?, ?, ?, ?, ?)`,
			u.ID().String(), i, c.Opened.String(), c.Description, c.Resolved.String()); err != nil {
			return err
		}
	}
	return nil
}

// saveCharge saves c, its payments and its sub-charges. It returns the number
// of charges saved.
func (s *Store) saveCharge(ctx context.Context, tx *sql.Tx, leaseID, parentID string, ord int, c *rentroll.Charge) (int, error) {
	id := c.ID().String()
	if err := s.exec(ctx, tx, `INSERT INTO charges
		(id, lease_id, parent_id, ord, name, amount, balance, currency, posting, due)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, leaseID, parentID, ord, c.Name(), c.Amount().Decimal().String(), c.Balance().Decimal().String(),
		c.Amount().Currency(), c.PostingDate().String(), c.DueDate().String()); err != nil {
		return 0, err
	}
	for i, p := range c.Payments() {
		if err := s.exec(ctx, tx, `INSERT INTO payments
			(charge_id, ord, confirmation, paid_on, amount, currency, account, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, p.Confirmation(), p.Date().String(), p.Amount().Decimal().String(),
			p.Amount().Currency(), p.Account(), p.Note()); err != nil {
			return 0, err
		}
	}
	n := 1
	for i, sub := range c.SubCharges() {
		m, err := s.saveCharge(ctx, tx, leaseID, id, i, sub)
		if err != nil {
			return 0, err
		}
		n += m
	}
	return n, nil
}
