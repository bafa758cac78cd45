package db

import "testing"

func TestMigrationChecksum(t *testing.T) {
	a := migrationChecksum([]byte("CREATE TABLE employees (id UUID PRIMARY KEY);"))
	b := migrationChecksum([]byte("CREATE TABLE employees (id UUID PRIMARY KEY);"))
	if a != b {
		t.Fatal("expected identical content to hash identically")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}

	c := migrationChecksum([]byte("CREATE TABLE employees (id UUID PRIMARY KEY); -- edited"))
	if a == c {
		t.Fatal("expected edited content to hash differently")
	}
}
