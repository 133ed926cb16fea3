package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	sq, err := OpenSQL(filepath.Join(t.TempDir(), "n.db"))
	if err != nil {
		t.Fatalf("OpenSQL: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	out := map[string]Store{
		"file":   fs,
		"memory": NewMemStore(),
		"sqlite": sq,
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rs, err := OpenRedis(context.Background(), addr, "netacho-test:"+t.Name()+":")
		if err != nil {
			t.Fatalf("OpenRedis: %v", err)
		}
		t.Cleanup(func() { rs.Close() })
		out["redis"] = rs
	}
	return out
}

func TestStore_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := s.Get(ctx, "wizard-progress.json"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get missing: err = %v, want ErrNotFound", err)
			}

			if err := s.Put(ctx, "wizard-progress.json", []byte(`{"currentStep":1}`)); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := s.Put(ctx, "wizard-progress.json", []byte(`{"currentStep":2}`)); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			got, err := s.Get(ctx, "wizard-progress.json")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != `{"currentStep":2}` {
				t.Errorf("Get = %s, last write should win", got)
			}

			for _, k := range []string{
				"auto-sessions/auto_2/session.json",
				"auto-sessions/auto_1/session.json",
				"auto-sessions/auto_1/final_script.md",
			} {
				if err := s.Put(ctx, k, []byte("x")); err != nil {
					t.Fatalf("Put %s: %v", k, err)
				}
			}
			keys, err := s.List(ctx, "auto-sessions/")
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			want := []string{
				"auto-sessions/auto_1/final_script.md",
				"auto-sessions/auto_1/session.json",
				"auto-sessions/auto_2/session.json",
			}
			if diff := cmp.Diff(want, keys); diff != "" {
				t.Errorf("List mismatch (-want +got):\n%s", diff)
			}

			none, err := s.List(ctx, "nothing/")
			if err != nil || len(none) != 0 {
				t.Errorf("List empty prefix: %v %v", none, err)
			}
		})
	}
}

func TestStore_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		for _, key := range []string{"", "/etc/passwd", "../x.json", "a/../../x"} {
			if err := s.Put(ctx, key, []byte("x")); err == nil {
				t.Errorf("%s: Put(%q) should fail", name, key)
			}
		}
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	type doc struct {
		Cursor int `json:"currentStep"`
	}
	if err := PutJSON(ctx, s, "k.json", doc{Cursor: 3}); err != nil {
		t.Fatalf("PutJSON: %v", err)
	}
	var d doc
	if err := GetJSON(ctx, s, "k.json", &d); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if d.Cursor != 3 {
		t.Errorf("Cursor = %d, want 3", d.Cursor)
	}

	_ = s.Put(ctx, "bad.json", []byte("{"))
	if err := GetJSON(ctx, s, "bad.json", &d); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("GetJSON corrupt: err = %v, want decode error", err)
	}
}

func TestSQLStore_ReopenKeepsDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.db")
	s, err := OpenSQL(path)
	if err != nil {
		t.Fatalf("OpenSQL: %v", err)
	}
	ctx := context.Background()
	if err := s.Put(ctx, "wizard-state.json", []byte(`{}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.Close()

	s2, err := OpenSQL(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	var v int
	if err := s2.db.QueryRow("SELECT version FROM schema_version").Scan(&v); err != nil || v != currentSchemaVersion {
		t.Fatalf("schema version = %d err %v", v, err)
	}
	if _, err := s2.Get(ctx, "wizard-state.json"); err != nil {
		t.Errorf("Get after reopen: %v", err)
	}
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, Options{Dir: dir})
	if err != nil {
		t.Fatalf("Open default: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("default backend = %T, want *FileStore", s)
	}

	s, err = Open(ctx, Options{Backend: BackendSQLite, Dir: dir})
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	s.Close()
	if _, err := os.Stat(filepath.Join(dir, DefaultDBName)); err != nil {
		t.Errorf("sqlite file not created: %v", err)
	}

	if _, err := Open(ctx, Options{Backend: "etcd"}); err == nil {
		t.Error("unknown backend should fail")
	}
}
