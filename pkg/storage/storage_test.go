package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/dot/internal/config"
	doterrors "github.com/vango-dev/dot/internal/errors"
)

// exercise runs the behavior every backend must share.
func exercise(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	data, err := b.Load(ctx, "missing")
	if err != nil || data != nil {
		t.Fatalf("Load(missing) = %q, %v; want nil, nil", data, err)
	}

	if err := b.Save(ctx, "todos", []byte(`{"todos":[]}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := b.Save(ctx, "counter", []byte(`{"count":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := b.Save(ctx, "counter", []byte(`{"count":2}`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	data, err = b.Load(ctx, "counter")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `{"count":2}` {
		t.Errorf("Load(counter) = %s, want {\"count\":2}", data)
	}

	keys, err := b.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if diff := cmp.Diff([]string{"counter", "todos"}, keys); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}

	if err := b.Delete(ctx, "counter"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := b.Delete(ctx, "counter"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
	if data, _ := b.Load(ctx, "counter"); data != nil {
		t.Errorf("Load after Delete = %s, want nil", data)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := b.Load(ctx, "todos"); !errors.Is(err, ErrClosed) {
		t.Errorf("Load after Close = %v, want ErrClosed", err)
	}
	if err := b.Save(ctx, "todos", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Save after Close = %v, want ErrClosed", err)
	}
	if _, err := b.Keys(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Keys after Close = %v, want ErrClosed", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	exercise(t, NewMemory())
}

func TestMemoryBackendCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := []byte("abc")
	_ = m.Save(ctx, "k", in)
	in[0] = 'x'

	out, _ := m.Load(ctx, "k")
	if string(out) != "abc" {
		t.Errorf("Save kept a reference to the caller's slice: %s", out)
	}
	out[1] = 'y'
	again, _ := m.Load(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("Load returned internal storage: %s", again)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestBoltBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	b, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	if b.Path() != path {
		t.Errorf("Path = %q, want %q", b.Path(), path)
	}
	exercise(t, b)
}

func TestBoltBackendReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	b, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	if err := b.Save(ctx, "prefs", []byte(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()

	data, err := b.Load(ctx, "prefs")
	if err != nil || string(data) != `{"theme":"dark"}` {
		t.Errorf("Load after reopen = %s, %v", data, err)
	}
}

func TestBoltBackendEmptyPath(t *testing.T) {
	if _, err := OpenBolt(" "); err == nil {
		t.Error("OpenBolt accepted an empty path")
	}
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	// Each :memory: connection is its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLBackend(t *testing.T) {
	b := NewSQL(openSQLite(t), WithTable("snapshots_test"))
	if err := b.CreateTable(context.Background()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := b.CreateTable(context.Background()); err != nil {
		t.Fatalf("CreateTable is not idempotent: %v", err)
	}
	exercise(t, b)
}

func TestSQLBackendLeavesCallerDBOpen(t *testing.T) {
	db := openSQLite(t)
	b := NewSQL(db)
	if err := b.CreateTable(context.Background()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	_ = b.Close()
	if err := db.Ping(); err != nil {
		t.Errorf("Close closed a caller-owned db: %v", err)
	}
}

func TestSQLPlaceholders(t *testing.T) {
	tests := []struct {
		dialect SQLDialect
		want    string
	}{
		{DialectSQLite, "?"},
		{DialectPostgreSQL, "$2"},
	}
	for _, tt := range tests {
		b := NewSQL(nil, WithDialect(tt.dialect))
		if got := b.placeholder(2); got != tt.want {
			t.Errorf("placeholder(2) = %q, want %q", got, tt.want)
		}
	}

	if DialectFor("postgres") != DialectPostgreSQL || DialectFor("sqlite") != DialectSQLite {
		t.Error("DialectFor mapped a driver to the wrong dialect")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{"default", config.StorageConfig{}, "*storage.MemoryBackend"},
		{"memory", config.StorageConfig{Backend: config.BackendMemory}, "*storage.MemoryBackend"},
		{"bolt", config.StorageConfig{Backend: config.BackendBolt, Path: filepath.Join(dir, "s.db")}, "*storage.BoltBackend"},
		{"sql", config.StorageConfig{Backend: config.BackendSQL, Driver: "sqlite", DSN: filepath.Join(dir, "s.sqlite")}, "*storage.SQLBackend"},
		{"s3", config.StorageConfig{Backend: config.BackendS3, Bucket: "b", Region: "us-east-1"}, "*storage.S3Backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer b.Close()
			if got := typeName(b); got != tt.want {
				t.Errorf("Open returned %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.StorageConfig
		code string
	}{
		{"unknown backend", config.StorageConfig{Backend: "etcd"}, "E030"},
		{"s3 without bucket", config.StorageConfig{Backend: config.BackendS3}, "E022"},
		{"unregistered driver", config.StorageConfig{Backend: config.BackendSQL, Driver: "nope", DSN: "x"}, "E002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(ctx, tt.cfg)
			if got := doterrors.Code(err); got != tt.code {
				t.Errorf("Open error = %v (code %q), want %s", err, got, tt.code)
			}
		})
	}
}

func TestSQLSnapshotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := config.StorageConfig{Backend: config.BackendSQL, Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "s.sqlite")}

	b, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := b.Save(ctx, "todos", []byte(`[1]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = b.Close()

	b, err = Open(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()
	data, err := b.Load(ctx, "todos")
	if err != nil || string(data) != "[1]" {
		t.Errorf("Load after reopen = %s, %v", data, err)
	}
}

func TestEnvCredentials(t *testing.T) {
	env := map[string]string{
		"AWS_ACCESS_KEY_ID":     "AKIA",
		"AWS_SECRET_ACCESS_KEY": "secret",
	}
	creds, err := EnvCredentials(func(k string) string { return env[k] }).Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if creds.AccessKeyID != "AKIA" || creds.SecretAccessKey != "secret" {
		t.Errorf("Retrieve = %+v", creds)
	}

	_, err = EnvCredentials(func(string) string { return "" }).Retrieve(context.Background())
	if err == nil {
		t.Error("Retrieve succeeded without credentials")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *MemoryBackend:
		return "*storage.MemoryBackend"
	case *BoltBackend:
		return "*storage.BoltBackend"
	case *SQLBackend:
		return "*storage.SQLBackend"
	case *S3Backend:
		return "*storage.S3Backend"
	}
	return "unknown"
}
