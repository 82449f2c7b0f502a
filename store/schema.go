package store

// schemaSQL is portable between sqlite and postgres. Identifiers avoid
// reserved words of both.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS meta (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	display  TEXT NOT NULL,
	kind     TEXT NOT NULL,
	currency TEXT NOT NULL,
	ord      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS buildings (
	name TEXT PRIMARY KEY,
	ord  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS units (
	id           TEXT PRIMARY KEY,
	building     TEXT NOT NULL,
	floor_number INTEGER NOT NULL,
	unit_number  TEXT NOT NULL,
	area         INTEGER NOT NULL,
	resident     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS leases (
	id            TEXT PRIMARY KEY,
	unit_id       TEXT NOT NULL,
	unit_ord      INTEGER NOT NULL,
	resident      TEXT NOT NULL,
	resident_ord  INTEGER NOT NULL,
	start_date    TEXT NOT NULL,
	end_date      TEXT NOT NULL,
	monthly_rent  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS charges (
	id        TEXT PRIMARY KEY,
	lease_id  TEXT NOT NULL,
	parent_id TEXT NOT NULL,
	ord       INTEGER NOT NULL,
	name      TEXT NOT NULL,
	amount    TEXT NOT NULL,
	balance   TEXT NOT NULL,
	currency  TEXT NOT NULL,
	posting   TEXT NOT NULL,
	due       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
	charge_id    TEXT NOT NULL,
	ord          INTEGER NOT NULL,
	confirmation BIGINT NOT NULL,
	paid_on      TEXT NOT NULL,
	amount       TEXT NOT NULL,
	currency     TEXT NOT NULL,
	account      TEXT NOT NULL,
	note         TEXT NOT NULL,
	PRIMARY KEY (charge_id, ord)
);

CREATE TABLE IF NOT EXISTS complaints (
	unit_id     TEXT NOT NULL,
	ord         INTEGER NOT NULL,
	opened      TEXT NOT NULL,
	description TEXT NOT NULL,
	resolved    TEXT NOT NULL,
	PRIMARY KEY (unit_id, ord)
);
`

// tables lists the tables in deletion order.
var tables = []string{"payments", "charges", "leases", "complaints", "units", "buildings", "users", "meta"}
