package store

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"

	"github.com/etnz/rentroll"
	"github.com/etnz/rentroll/date"
	"github.com/google/uuid"
)

// chargeRow is a stored charge before its tree is rebuilt.
type chargeRow struct {
	id, leaseID, parentID string
	name                  string
	amount, balance       rentroll.Money
	posting, due          date.Date
}

// leaseRow is a stored lease before it is attached.
type leaseRow struct {
	id, unitID, resident string
	residentOrd          int
	start, end           date.Date
	rent                 int
}

// Load rebuilds the stored registry. Leases are given 'terms' for future
// signings; an empty database yields an empty registry in the terms currency.
func (s *Store) Load(ctx context.Context, terms rentroll.Terms) (*rentroll.Registry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	meta, err := s.loadMeta(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("loading meta: %w", err)
	}
	currency := terms.ServiceFee.Currency()
	if c, ok := meta["currency"]; ok && c != currency {
		return nil, fmt.Errorf("registry is in %s, configured ledger currency is %s: %w", c, currency, rentroll.ErrCurrencyMismatch)
	}
	last := rentroll.ConfirmationBase
	if v, ok := meta["sequence"]; ok {
		if last, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid sequence %q: %w", v, err)
		}
	}
	reg := rentroll.NewRegistry(currency, terms, rentroll.NewCounter(last))

	if err := s.loadUsers(ctx, tx, reg); err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	units, err := s.loadBuildings(ctx, tx, reg)
	if err != nil {
		return nil, fmt.Errorf("loading buildings: %w", err)
	}
	charges, err := s.loadCharges(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("loading charges: %w", err)
	}
	if err := s.loadLeases(ctx, tx, reg, units, charges); err != nil {
		return nil, fmt.Errorf("loading leases: %w", err)
	}

	s.log.WithField("buildings", len(reg.Buildings())).Debug("registry loaded")
	return reg, nil
}

func (s *Store) query(ctx context.Context, tx *sql.Tx, query string, args ...any) (*sql.Rows, error) {
	return tx.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) loadMeta(ctx context.Context, tx *sql.Tx) (map[string]string, error) {
	rows, err := s.query(ctx, tx, "SELECT name, value FROM meta")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	meta := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		meta[name] = value
	}
	return meta, rows.Err()
}

func (s *Store) loadUsers(ctx context.Context, tx *sql.Tx, reg *rentroll.Registry) error {
	rows, err := s.query(ctx, tx, "SELECT username, display, kind, currency FROM users ORDER BY ord")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var username, display, kind, currency string
		if err := rows.Scan(&username, &display, &kind, &currency); err != nil {
			return err
		}
		var u rentroll.User
		switch kind {
		case "admin":
			u = rentroll.NewAdmin(username, display)
		case "resident":
			u = rentroll.NewResident(username, display, currency)
		default:
			return fmt.Errorf("user %q has unknown kind %q", username, kind)
		}
		if err := reg.AddUser(u); err != nil {
			return err
		}
	}
	return rows.Err()
}

// loadBuildings restores buildings, units and complaints. It returns units by id.
func (s *Store) loadBuildings(ctx context.Context, tx *sql.Tx, reg *rentroll.Registry) (map[string]*rentroll.Unit, error) {
	rows, err := s.query(ctx, tx, "SELECT name FROM buildings ORDER BY ord")
	if err != nil {
		return nil, err
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return nil, err
		}
		names = append(names, name)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, name := range names {
		if _, err := reg.AddBuilding(name); err != nil {
			return nil, err
		}
	}

	units := make(map[string]*rentroll.Unit)
	occupants := make(map[*rentroll.Unit]string)
	rows, err = s.query(ctx, tx, "SELECT id, building, floor_number, unit_number, area, resident FROM units")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id, building, number, resident string
		var floor, area int
		if err := rows.Scan(&id, &building, &floor, &number, &area, &resident); err != nil {
			_ = rows.Close()
			return nil, err
		}
		uid, err := uuid.Parse(id)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("unit %s/%s: %w", building, number, err)
		}
		b, ok := reg.Building(building)
		if !ok {
			_ = rows.Close()
			return nil, fmt.Errorf("unit %s/%s: %w", building, number, rentroll.ErrNotFound)
		}
		u, err := b.RestoreUnit(uid, floor, number, area)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		units[id] = u
		if resident != "" {
			occupants[u] = resident
		}
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for u, username := range occupants {
		res, err := reg.Resident(username)
		if err != nil {
			return nil, err
		}
		if err := u.MoveIn(res); err != nil {
			return nil, err
		}
	}

	rows, err = s.query(ctx, tx, "SELECT unit_id, opened, description, resolved FROM complaints ORDER BY unit_id, ord")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var unitID, opened, description, resolved string
		if err := rows.Scan(&unitID, &opened, &description, &resolved); err != nil {
			return nil, err
		}
		u, ok := units[unitID]
		if !ok {
			return nil, fmt.Errorf("complaint on unit %s: %w", unitID, rentroll.ErrNotFound)
		}
		c := rentroll.Complaint{Description: description}
		if c.Opened, err = parseDate(opened); err != nil {
			return nil, err
		}
		if c.Resolved, err = parseDate(resolved); err != nil {
			return nil, err
		}
		u.RestoreComplaint(c)
	}
	return units, rows.Err()
}

// loadCharges rebuilds the charge trees. It returns the top-level charges by lease id, in order.
func (s *Store) loadCharges(ctx context.Context, tx *sql.Tx) (map[string][]*rentroll.Charge, error) {
	payments, err := s.loadPayments(ctx, tx)
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx, tx, `SELECT id, lease_id, parent_id, name, amount, balance, currency, posting, due
		FROM charges ORDER BY lease_id, parent_id, ord`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var all []chargeRow
	children := make(map[string][]chargeRow)
	for rows.Next() {
		var r chargeRow
		var amount, balance, currency, posting, due string
		if err := rows.Scan(&r.id, &r.leaseID, &r.parentID, &r.name, &amount, &balance, &currency, &posting, &due); err != nil {
			return nil, err
		}
		if r.amount, err = rentroll.ParseMoney(amount, currency); err != nil {
			return nil, err
		}
		if r.balance, err = rentroll.ParseMoney(balance, currency); err != nil {
			return nil, err
		}
		if r.posting, err = parseDate(posting); err != nil {
			return nil, err
		}
		if r.due, err = parseDate(due); err != nil {
			return nil, err
		}
		all = append(all, r)
		if r.parentID != "" {
			children[r.parentID] = append(children[r.parentID], r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var build func(r chargeRow) (*rentroll.Charge, error)
	build = func(r chargeRow) (*rentroll.Charge, error) {
		id, err := uuid.Parse(r.id)
		if err != nil {
			return nil, fmt.Errorf("charge %q: %w", r.name, err)
		}
		var subs []*rentroll.Charge
		for _, child := range children[r.id] {
			sub, err := build(child)
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		return rentroll.RestoreCharge(id, r.name, r.amount, r.balance, r.posting, r.due, payments[r.id], subs), nil
	}

	byLease := make(map[string][]*rentroll.Charge)
	for _, r := range all {
		if r.parentID != "" {
			continue
		}
		c, err := build(r)
		if err != nil {
			return nil, err
		}
		byLease[r.leaseID] = append(byLease[r.leaseID], c)
	}
	return byLease, nil
}

// loadPayments returns the payments by charge id, in order.
func (s *Store) loadPayments(ctx context.Context, tx *sql.Tx) (map[string][]rentroll.Payment, error) {
	rows, err := s.query(ctx, tx, `SELECT charge_id, confirmation, paid_on, amount, currency, account, note
		FROM payments ORDER BY charge_id, ord`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	payments := make(map[string][]rentroll.Payment)
	for rows.Next() {
		var chargeID, paidOn, amount, currency, account, note string
		var confirmation int64
		if err := rows.Scan(&chargeID, &confirmation, &paidOn, &amount, &currency, &account, &note); err != nil {
			return nil, err
		}
		on, err := parseDate(paidOn)
		if err != nil {
			return nil, err
		}
		m, err := rentroll.ParseMoney(amount, currency)
		if err != nil {
			return nil, err
		}
		payments[chargeID] = append(payments[chargeID], rentroll.RestorePayment(confirmation, on, m, account, note))
	}
	return payments, rows.Err()
}

func (s *Store) loadLeases(ctx context.Context, tx *sql.Tx, reg *rentroll.Registry, units map[string]*rentroll.Unit, charges map[string][]*rentroll.Charge) error {
	rows, err := s.query(ctx, tx, `SELECT id, unit_id, resident, resident_ord, start_date, end_date, monthly_rent
		FROM leases ORDER BY unit_id, unit_ord`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	owned := make(map[string][]*rentroll.Lease)
	order := make(map[*rentroll.Lease]int)
	for rows.Next() {
		var r leaseRow
		var start, end string
		if err := rows.Scan(&r.id, &r.unitID, &r.resident, &r.residentOrd, &start, &end, &r.rent); err != nil {
			return err
		}
		id, err := uuid.Parse(r.id)
		if err != nil {
			return fmt.Errorf("lease %s: %w", r.id, err)
		}
		if r.start, err = parseDate(start); err != nil {
			return err
		}
		if r.end, err = parseDate(end); err != nil {
			return err
		}
		u, ok := units[r.unitID]
		if !ok {
			return fmt.Errorf("lease %s on unit %s: %w", r.id, r.unitID, rentroll.ErrNotFound)
		}
		l := rentroll.RestoreLease(id, u, r.start, r.end, r.rent, charges[r.id])
		u.AddLease(l)
		if r.resident != "" {
			owned[r.resident] = append(owned[r.resident], l)
			order[l] = r.residentOrd
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for username, leases := range owned {
		res, err := reg.Resident(username)
		if err != nil {
			return err
		}
		slices.SortFunc(leases, func(a, b *rentroll.Lease) int { return cmp.Compare(order[a], order[b]) })
		for _, l := range leases {
			res.AddLease(l)
		}
	}
	return nil
}

// parseDate parses a stored date; the empty string is the zero date.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}
