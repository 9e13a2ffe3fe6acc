package repos

import (
	"path/filepath"
	"testing"
)

func TestOpenDBIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenDB(path)
	if err != nil {
		t.Fatal(err)
	}
	var products, users int
	if err := db.Get(&products, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if products == 0 {
		t.Fatal("expected seeded products")
	}
	db.Close()

	// reopening must not duplicate schema or seeds
	db2, err := OpenDB(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db2.Close()
	var again int
	if err := db2.Get(&again, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if again != products {
		t.Fatalf("seed ran twice: %d -> %d products", products, again)
	}
	if err := db2.Get(&users, `SELECT COUNT(*) FROM users WHERE email='demo@multiciber.test'`); err != nil {
		t.Fatal(err)
	}
	if users != 1 {
		t.Fatalf("expected exactly one demo user, got %d", users)
	}
}

func TestNowLayout(t *testing.T) {
	s := Now()
	if len(s) != len(TimeLayout) {
		t.Fatalf("Now() = %q, want %s shape", s, TimeLayout)
	}
}
