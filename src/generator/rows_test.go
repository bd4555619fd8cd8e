package generator

import (
	"regexp"
	"strconv"
	"testing"
)

var idPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestNextIDFormat(t *testing.T) {
	s := newRowSource(1, nil)
	for i := 0; i < 1000; i++ {
		id := s.nextID()
		if !idPattern.MatchString(id) {
			t.Fatalf("id %q is not 64 lowercase hex characters", id)
		}
	}
}

func TestNextNameMembership(t *testing.T) {
	names := []string{"Liam", "Noah", "Jack"}
	table := make(map[string]bool, len(names))
	for _, name := range names {
		table[name] = true
	}

	s := newRowSource(7, names)
	for i := 0; i < 1000; i++ {
		if name := s.nextName(); !table[name] {
			t.Fatalf("name %q is not in the configured table", name)
		}
	}
}

func TestNextNameEmptyTable(t *testing.T) {
	s := newRowSource(7, nil)
	for i := 0; i < 100; i++ {
		if name := s.nextName(); name != "" {
			t.Fatalf("expected empty name for empty table, got %q", name)
		}
	}
}

func TestNextNameSoloTable(t *testing.T) {
	s := newRowSource(7, []string{"Solo"})
	for i := 0; i < 100; i++ {
		if name := s.nextName(); name != "Solo" {
			t.Fatalf("expected Solo, got %q", name)
		}
	}
}

func TestNextAgeBounds(t *testing.T) {
	s := newRowSource(3, nil)
	for i := 0; i < 10000; i++ {
		if age := s.nextAge(); age < ageMin || age > ageMax {
			t.Fatalf("age %d outside [%d, %d]", age, ageMin, ageMax)
		}
	}
}

func TestNextRecordShape(t *testing.T) {
	s := newRowSource(5, []string{"Mia"})
	record := s.nextRecord()
	if len(record) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(record))
	}
	if !idPattern.MatchString(record[0]) {
		t.Errorf("id field %q is malformed", record[0])
	}
	if record[1] != "Mia" {
		t.Errorf("name field is %q, want Mia", record[1])
	}
	age, err := strconv.Atoi(record[2])
	if err != nil {
		t.Fatalf("age field %q does not round-trip: %v", record[2], err)
	}
	if age < ageMin || age > ageMax {
		t.Errorf("age %d outside [%d, %d]", age, ageMin, ageMax)
	}
}

func TestRowSourceDeterminism(t *testing.T) {
	names := []string{"Liam", "Noah", "Jack", "Levi"}
	a := newRowSource(42, names)
	b := newRowSource(42, names)

	for i := 0; i < 1000; i++ {
		ra, rb := a.nextRecord(), b.nextRecord()
		for f := range ra {
			if ra[f] != rb[f] {
				t.Fatalf("row %d field %d differs: %q vs %q", i, f, ra[f], rb[f])
			}
		}
	}
}
