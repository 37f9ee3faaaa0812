package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	var name string
	err = s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='compiles'",
	).Scan(&name)
	if err != nil {
		t.Errorf("compiles table not found after idempotent opens: %v", err)
	}
}

func TestAppend_AssignsSequenceAndID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r1, err := s.Append(ctx, "f", "hash-a", "")
	if err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	r2, err := s.Append(ctx, "g", "hash-b", "from_graph: rejected")
	if err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	if r1.Seq != 1 || r2.Seq != 2 {
		t.Errorf("sequences = %d, %d, want 1, 2", r1.Seq, r2.Seq)
	}
	if r1.Status != StatusOK {
		t.Errorf("first record status = %q, want %q", r1.Status, StatusOK)
	}
	if r2.Status != StatusError {
		t.Errorf("second record status = %q, want %q", r2.Status, StatusError)
	}
	if r1.ID == "" || r1.ID == r2.ID {
		t.Errorf("record IDs not distinct: %q, %q", r1.ID, r2.ID)
	}
}

func TestRecordID_Deterministic(t *testing.T) {
	a := recordID("f", "h", StatusOK, "", 1)
	b := recordID("f", "h", StatusOK, "", 1)
	if a != b {
		t.Errorf("recordID not deterministic: %q vs %q", a, b)
	}
	if c := recordID("f", "h", StatusOK, "", 2); c == a {
		t.Error("recordID ignores sequence")
	}
	if c := recordID("f", "h", StatusError, "boom", 1); c == a {
		t.Error("recordID ignores outcome")
	}

	// Field boundaries are length-prefixed: shifting a byte between
	// adjacent fields must change the identity.
	if recordID("ab", "c", StatusOK, "", 1) == recordID("a", "bc", StatusOK, "", 1) {
		t.Error("recordID field boundaries are ambiguous")
	}
}

func TestReadAll_EmptyLog(t *testing.T) {
	s := openTestStore(t)

	records, err := s.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if records == nil {
		t.Error("ReadAll() returned nil, want empty slice")
	}
	if len(records) != 0 {
		t.Errorf("ReadAll() returned %d records, want 0", len(records))
	}
}

func TestReadAll_OrderedBySequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"c", "a", "b"} {
		if _, err := s.Append(ctx, name, "hash-"+name, ""); err != nil {
			t.Fatalf("Append(%q) failed: %v", name, err)
		}
	}

	records, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ReadAll() returned %d records, want 3", len(records))
	}
	for i, want := range []string{"c", "a", "b"} {
		if records[i].FunctionName != want {
			t.Errorf("records[%d].FunctionName = %q, want %q (append order)", i, records[i].FunctionName, want)
		}
		if records[i].Seq != int64(i+1) {
			t.Errorf("records[%d].Seq = %d, want %d", i, records[i].Seq, i+1)
		}
		if records[i].CreatedAt == "" {
			t.Errorf("records[%d].CreatedAt is empty", i)
		}
	}
}

func TestReadByGraphHash(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Append(ctx, "f", "hash-a", "")
	s.Append(ctx, "f", "hash-b", "")
	s.Append(ctx, "f", "hash-a", "from_graph: rejected")

	records, err := s.ReadByGraphHash(ctx, "hash-a")
	if err != nil {
		t.Fatalf("ReadByGraphHash() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records for hash-a, want 2", len(records))
	}
	if records[0].Status != StatusOK || records[1].Status != StatusError {
		t.Errorf("statuses = %q, %q, want ok then error", records[0].Status, records[1].Status)
	}
}

func TestReadByFunction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Append(ctx, "f", "hash-a", "")
	s.Append(ctx, "g", "hash-b", "")

	records, err := s.ReadByFunction(ctx, "g")
	if err != nil {
		t.Fatalf("ReadByFunction() failed: %v", err)
	}
	if len(records) != 1 || records[0].GraphHash != "hash-b" {
		t.Errorf("unexpected records for g: %+v", records)
	}

	records, err = s.ReadByFunction(ctx, "missing")
	if err != nil {
		t.Fatalf("ReadByFunction() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records for unknown function, want 0", len(records))
	}
}
