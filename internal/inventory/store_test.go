package inventory

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestAddAccumulates(t *testing.T) {
	s := New(nil, nil)
	if err := s.Add("apple", 10); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add("apple", 5); err != nil {
		t.Fatalf("add: %v", err)
	}
	qty, err := s.Quantity("apple")
	if err != nil {
		t.Fatalf("quantity: %v", err)
	}
	if qty != 15 {
		t.Fatalf("expected 15, got %d", qty)
	}
}

func TestAddZeroCreatesEntry(t *testing.T) {
	s := New(nil, nil)
	if err := s.Add("pear", 0); err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", s.Len())
	}
}

func TestAddValidation(t *testing.T) {
	s := New(nil, nil)
	_ = s.Add("apple", 3)

	cases := []struct {
		name string
		item string
		qty  int
	}{
		{"empty item", "", 1},
		{"negative qty", "apple", -2},
	}
	for _, tc := range cases {
		err := s.Add(tc.item, tc.qty)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}

	qty, _ := s.Quantity("apple")
	if qty != 3 {
		t.Fatalf("stock changed by rejected add: %d", qty)
	}
}

func TestRemoveDecrements(t *testing.T) {
	s := New(nil, nil)
	_ = s.Add("apple", 10)

	if err := s.Remove("apple", 3); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if qty, _ := s.Quantity("apple"); qty != 7 {
		t.Fatalf("expected 7, got %d", qty)
	}

	if err := s.Remove("apple", 7); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if qty, _ := s.Quantity("apple"); qty != 0 {
		t.Fatalf("expected 0, got %d", qty)
	}
	if s.Len() != 0 {
		t.Fatalf("drained entry not deleted")
	}
}

func TestRemoveMoreThanCurrentDeletes(t *testing.T) {
	s := New(nil, nil)
	_ = s.Add("banana", 2)
	if err := s.Remove("banana", 99); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := s.Items()["banana"]; ok {
		t.Fatalf("entry survived full removal")
	}
}

func TestRemoveNotFound(t *testing.T) {
	s := New(nil, nil)
	_ = s.Add("apple", 1)

	err := s.Remove("orange", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if qty, _ := s.Quantity("apple"); qty != 1 {
		t.Fatalf("stock changed by failed remove")
	}
}

func TestRemoveValidation(t *testing.T) {
	s := New(nil, nil)
	_ = s.Add("apple", 1)

	for _, qty := range []int{0, -4} {
		err := s.Remove("apple", qty)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("qty=%d: expected ValidationError, got %v", qty, err)
		}
	}
	if qty, _ := s.Quantity("apple"); qty != 1 {
		t.Fatalf("stock changed by rejected remove")
	}
}

func TestQuantityAbsentIsZero(t *testing.T) {
	s := New(nil, nil)
	qty, err := s.Quantity("ghost")
	if err != nil {
		t.Fatalf("quantity: %v", err)
	}
	if qty != 0 {
		t.Fatalf("expected 0, got %d", qty)
	}
}

func TestQuantityEmptyItem(t *testing.T) {
	s := New(nil, nil)
	_, err := s.Quantity("")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLowStock(t *testing.T) {
	s := New(nil, nil)
	_ = s.Add("apple", 10)
	_ = s.Add("banana", 2)
	_ = s.Add("pear", 5)

	low, err := s.LowStock(5)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if !reflect.DeepEqual(low, []string{"banana"}) {
		t.Fatalf("expected [banana], got %v", low)
	}

	if _, err := s.LowStock(-1); err == nil {
		t.Fatalf("negative threshold accepted")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	s := New(nil, nil)
	_ = s.Add("apple", 10)
	_ = s.Add("banana", 2)
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored := New(nil, nil)
	_ = restored.Add("stale", 99)
	if err := restored.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	want := map[string]int{"apple": 10, "banana": 2}
	if !reflect.DeepEqual(restored.Items(), want) {
		t.Fatalf("round trip mismatch: %v", restored.Items())
	}
}

func TestSaveWritesIndentedObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	s := New(nil, nil)
	_ = s.Add("apple", 1)
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"apple\": 1") {
		t.Fatalf("expected indented output, got %q", string(b))
	}
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("not valid json: %v", err)
	}
}

func TestSaveReportsWriteFailure(t *testing.T) {
	s := New(nil, nil)
	_ = s.Add("apple", 1)

	err := s.Save(filepath.Join(t.TempDir(), "missing", "inventory.json"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if ioErr.Op != "save" {
		t.Fatalf("unexpected op %q", ioErr.Op)
	}
}

func TestLoadMissingFileKeepsStock(t *testing.T) {
	s := New(nil, nil)
	_ = s.Add("apple", 4)

	if err := s.Load(filepath.Join(t.TempDir(), "nope.json")); err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if !reflect.DeepEqual(s.Items(), map[string]int{"apple": 4}) {
		t.Fatalf("stock changed by missing-file load: %v", s.Items())
	}
}

func TestLoadMalformedKeepsStock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	s := New(nil, nil)
	_ = s.Add("apple", 4)

	err := s.Load(path)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if !reflect.DeepEqual(s.Items(), map[string]int{"apple": 4}) {
		t.Fatalf("stock changed by malformed load: %v", s.Items())
	}
}

func TestLoadTrailingDataKeepsStock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte(`{"apple": 1} trailing-garbage`), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	s := New(nil, nil)
	_ = s.Add("pear", 9)

	err := s.Load(path)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if !reflect.DeepEqual(s.Items(), map[string]int{"pear": 9}) {
		t.Fatalf("stock changed by trailing-data load: %v", s.Items())
	}
}

func TestLoadNonObjectKeepsStock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte(`[1, 2, 3]`), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	s := New(nil, nil)
	_ = s.Add("apple", 4)
	if err := s.Load(path); err == nil {
		t.Fatalf("non-object accepted")
	}
	if qty, _ := s.Quantity("apple"); qty != 4 {
		t.Fatalf("stock changed by non-object load")
	}
}

func TestLoadNullKeepsStock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("null"), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	s := New(nil, nil)
	_ = s.Add("apple", 4)
	if err := s.Load(path); err == nil {
		t.Fatalf("null document accepted")
	}
	if qty, _ := s.Quantity("apple"); qty != 4 {
		t.Fatalf("stock changed by null load")
	}
}

func TestLoadSkipsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	raw := `{
		"apple": 10,
		"banana": "7",
		"pear": 3.0,
		"broken": 2.5,
		"flag": true,
		"nothing": null,
		"nested": {"x": 1},
		"debt": -4,
		"huge": 1e300,
		"hugeint": 99999999999999999999,
		"": 9
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	s := New(nil, nil)
	if err := s.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	want := map[string]int{"apple": 10, "banana": 7, "pear": 3}
	if !reflect.DeepEqual(s.Items(), want) {
		t.Fatalf("expected %v, got %v", want, s.Items())
	}
}

func TestLoadReplacesWholeStock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte(`{"pear": 1}`), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	s := New(nil, nil)
	_ = s.Add("apple", 10)
	if err := s.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(s.Items(), map[string]int{"pear": 1}) {
		t.Fatalf("previous stock survived load: %v", s.Items())
	}
}

func TestReportSortedAndEmptyNotice(t *testing.T) {
	s := New(nil, nil)
	if got := s.Report(); got != "Items Report\n(no items)\n" {
		t.Fatalf("empty report: %q", got)
	}

	_ = s.Add("pear", 5)
	_ = s.Add("apple", 10)
	_ = s.Add("banana", 2)

	want := "Items Report\napple -> 10\nbanana -> 2\npear -> 5\n"
	if got := s.Report(); got != want {
		t.Fatalf("report mismatch:\n%q\nwant\n%q", got, want)
	}
}

func TestJournalRecordsMutations(t *testing.T) {
	j := NewMemoryJournal(16)
	s := New(nil, j)

	_ = s.Add("apple", 10)
	_ = s.Remove("apple", 3)
	_ = s.Remove("apple", 7)
	_ = s.Add("", 1) // rejected, must not journal

	entries := j.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !strings.Contains(entries[0].Message, "Added 10 of apple") {
		t.Fatalf("unexpected first entry: %q", entries[0].Message)
	}
	if !strings.Contains(entries[2].Message, "removed all 7") {
		t.Fatalf("unexpected last entry: %q", entries[2].Message)
	}
	for _, e := range entries {
		if e.At.IsZero() {
			t.Fatalf("entry missing timestamp: %+v", e)
		}
	}
}

func TestMemoryJournalBounded(t *testing.T) {
	j := NewMemoryJournal(2)
	s := New(nil, j)
	for i := 0; i < 5; i++ {
		_ = s.Add("apple", 1)
	}
	if len(j.Entries()) != 2 {
		t.Fatalf("expected 2 retained entries, got %d", len(j.Entries()))
	}
}

func TestScenario(t *testing.T) {
	s := New(nil, nil)

	if err := s.Add("apple", 10); err != nil {
		t.Fatalf("add: %v", err)
	}
	if qty, _ := s.Quantity("apple"); qty != 10 {
		t.Fatalf("expected 10, got %d", qty)
	}

	if err := s.Remove("apple", 3); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if qty, _ := s.Quantity("apple"); qty != 7 {
		t.Fatalf("expected 7, got %d", qty)
	}

	if err := s.Remove("apple", 7); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if qty, _ := s.Quantity("apple"); qty != 0 {
		t.Fatalf("expected 0, got %d", qty)
	}
}

func TestLowStockManyLow(t *testing.T) {
	s := New(nil, nil)
	_ = s.Add("a", 1)
	_ = s.Add("b", 2)
	_ = s.Add("c", 9)

	low, err := s.LowStock(3)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	sort.Strings(low)
	if !reflect.DeepEqual(low, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", low)
	}
}
