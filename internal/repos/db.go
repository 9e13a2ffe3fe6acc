package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// TimeLayout is the canonical timestamp format stored in TEXT columns.
// date(created_at) works on it, which the dashboard grouping relies on.
const TimeLayout = "2006-01-02 15:04:05"

func Now() string { return time.Now().Format(TimeLayout) }

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure a demo owner exists (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog data if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id),
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  cost NUMERIC NOT NULL DEFAULT 0 CHECK (cost >= 0),
  category TEXT NOT NULL DEFAULT '',
  unit TEXT NOT NULL DEFAULT 'unidad',
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  min_stock INTEGER NOT NULL DEFAULT 0 CHECK (min_stock >= 0),
  barcode TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_owner ON products(owner_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_owner_name
  ON products(owner_id, LOWER(name)) WHERE is_active = 1;
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_barcode
  ON products(barcode) WHERE barcode <> '';

CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id),
  type TEXT NOT NULL CHECK (type IN ('product','free')),
  payment_method TEXT NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('paid','debt')),
  subtotal NUMERIC NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL CHECK (total >= 0),
  paid_amount NUMERIC NOT NULL DEFAULT 0,
  debt_amount NUMERIC NOT NULL DEFAULT 0,
  client_id TEXT,
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_sales_owner      ON sales(owner_id);
CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at);

CREATE TABLE IF NOT EXISTS sale_items(
  sale_id TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);

CREATE TABLE IF NOT EXISTS expenses(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id),
  description TEXT NOT NULL,
  amount NUMERIC NOT NULL CHECK (amount >= 0),
  category TEXT NOT NULL DEFAULT '',
  supplier_id TEXT,
  payment_method TEXT NOT NULL DEFAULT 'cash',
  status TEXT NOT NULL CHECK (status IN ('pending','paid')),
  recurring INTEGER NOT NULL DEFAULT 0,
  frequency TEXT NOT NULL DEFAULT '',
  expense_date TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_expenses_owner ON expenses(owner_id);

-- Append-only settlement records. No FK to sales: a hard-deleted sale keeps
-- its payment rows as audit trail.
CREATE TABLE IF NOT EXISTS payments(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id),
  reference_type TEXT NOT NULL CHECK (reference_type IN ('sale','expense')),
  reference_id TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  payment_date TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_payments_owner ON payments(owner_id);
CREATE INDEX IF NOT EXISTS idx_payments_ref   ON payments(reference_type, reference_id);

CREATE TABLE IF NOT EXISTS clients(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id),
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_clients_owner ON clients(owner_id);

CREATE TABLE IF NOT EXISTS suppliers(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id),
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_suppliers_owner ON suppliers(owner_id);

CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id),
  name TEXT NOT NULL,
  color TEXT NOT NULL DEFAULT '',
  icon TEXT NOT NULL DEFAULT '',
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_owner_name ON categories(owner_id, LOWER(name));

CREATE TABLE IF NOT EXISTS settings(
  owner_id TEXT PRIMARY KEY REFERENCES users(id),
  business_name TEXT NOT NULL DEFAULT '',
  currency TEXT NOT NULL DEFAULT 'USD',
  slug TEXT NOT NULL DEFAULT '',
  catalog_public INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_settings_slug ON settings(slug) WHERE slug <> '';
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures the demo owner exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	h, _ := bcrypt.GenerateFromPassword([]byte("Demo1234!"), 12)
	_, err := db.Exec(`
		INSERT INTO users(id,email,name,password_hash)
		VALUES('u-demo','demo@multiciber.test','Demo',?)
		ON CONFLICT(email) DO NOTHING
	`, string(h))
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,owner_id,name,color,icon,sort_order) VALUES
	  ('cat-bebidas','u-demo','Bebidas','#3b82f6','cup',1),
	  ('cat-snacks','u-demo','Snacks','#f59e0b','cookie',2),
	  ('cat-papeleria','u-demo','Papeleria','#10b981','pencil',3)`)

	tx.MustExec(`INSERT INTO products(id,owner_id,name,price,cost,category,unit,stock,min_stock,barcode) VALUES
	  ('p-cola','u-demo','Coca Cola 600ml',1.50,1.00,'Bebidas','unidad',48,12,'7501055300891'),
	  ('p-agua','u-demo','Agua 1L',0.80,0.45,'Bebidas','unidad',60,20,''),
	  ('p-papas','u-demo','Papas fritas',1.20,0.70,'Snacks','unidad',30,10,''),
	  ('p-cuaderno','u-demo','Cuaderno 100h',2.50,1.60,'Papeleria','unidad',15,5,'')`)

	tx.MustExec(`INSERT INTO settings(owner_id,business_name,currency)
	  VALUES('u-demo','Multiciber Demo','USD')`)

	return tx.Commit()
}
