package repos

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"printforge/internal/domain"
)

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
	// Seed the default catalog if the DB is empty (idempotent; safe on every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY CHECK (id > 0),
  name TEXT NOT NULL,
  price INTEGER NOT NULL CHECK (price > 0),
  model TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));
`
	_, err := db.Exec(schema)
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

	log.Println("[seed] inserting default catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,price,model,description,image) VALUES
	  (1,'Dragon figurine',500,'dragon.stl','10 cm dragon, PLA plastic.','images/dragon.jpg'),
	  (2,'Phone stand',300,'phone_holder.stl','Universal smartphone stand.','images/phone_holder.jpg'),
	  (3,'Wall key holder',450,'key_holder.stl','Wall-mounted key holder with 5 hooks.','images/key_holder.jpg')`)
	return tx.Commit()
}

// LoadCatalogFile replaces the catalog with the products listed in a YAML
// file. Duplicate ids, non-positive ids or prices, and an empty list are
// configuration errors.
func LoadCatalogFile(db *sqlx.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog file: %w", err)
	}

	var products []domain.Product
	if err := yaml.Unmarshal(raw, &products); err != nil {
		return fmt.Errorf("catalog file %s: %w", path, err)
	}
	if len(products) == 0 {
		return fmt.Errorf("catalog file %s: no products", path)
	}

	seen := map[int]bool{}
	for _, p := range products {
		if p.ID <= 0 {
			return fmt.Errorf("catalog file %s: product %q: id must be positive", path, p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("catalog file %s: duplicate product id %d", path, p.ID)
		}
		seen[p.ID] = true
		if p.Name == "" || p.Model == "" {
			return fmt.Errorf("catalog file %s: product %d: name and model are required", path, p.ID)
		}
		if p.Price <= 0 {
			return fmt.Errorf("catalog file %s: product %d: price must be positive", path, p.ID)
		}
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := tx.Exec(`INSERT INTO products(id,name,price,model,description,image) VALUES(?,?,?,?,?,?)`,
			p.ID, p.Name, p.Price, p.Model, p.Description, p.Image); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("[catalog] loaded %d products from %s", len(products), path)
	return nil
}
