package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database. These run on
// startup to ensure tables exist.
//
// Monetary amounts and fractions are stored as exact decimal strings in
// TEXT columns, never REAL, so the persistence path cannot reintroduce
// binary floating point. Timestamps are Unix nanoseconds so "created
// strictly after a settlement" never collides within a second.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_users_name ON users(name);

-- bills and assignments keep raw user IDs instead of foreign keys: bills
-- are immutable history and must survive the deletion of a settled user.
CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    payer_id TEXT NOT NULL,
    description TEXT NOT NULL,
    tax TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bills_payer_id ON bills(payer_id);
CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills(created_at DESC);

CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    description TEXT NOT NULL,
    cost TEXT NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_items_bill_id ON items(bill_id);

CREATE TABLE IF NOT EXISTS assignments (
    item_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    fraction TEXT NOT NULL,
    PRIMARY KEY (item_id, user_id),
    FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_assignments_item_id ON assignments(item_id);
CREATE INDEX IF NOT EXISTS idx_assignments_user_id ON assignments(user_id);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    settled_at INTEGER NOT NULL,
    note TEXT
);
CREATE INDEX IF NOT EXISTS idx_settlements_settled_at ON settlements(settled_at DESC);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
