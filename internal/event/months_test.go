package event

import (
	"reflect"
	"testing"
	"time"
)

func namedEvent(name string, end time.Time) *Event {
	return &Event{
		Begin:   end.Add(-90 * time.Minute),
		End:     end,
		Name:    name,
		Details: Details{Kind: KindOther},
	}
}

func TestPeriodKey(t *testing.T) {
	key := PeriodKey(time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC))
	if key != "202401" {
		t.Errorf("PeriodKey = %q, want 202401", key)
	}
}

func TestMerge_FreshOverwrites(t *testing.T) {
	a := namedEvent("A", time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC))
	b := namedEvent("B", time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC))

	archived := Months{"202401": {a}}
	fresh := Months{"202401": {b}}

	merged := Merge(fresh, archived)
	if !reflect.DeepEqual(merged, fresh) {
		t.Errorf("fresh month must replace the archived one entirely, got %v", merged)
	}
	if len(merged["202401"]) != 1 || merged["202401"][0].Name != "B" {
		t.Error("archived events must not survive an overwritten period")
	}
}

func TestMerge_ArchiveOnlyPeriodsRetained(t *testing.T) {
	old := namedEvent("Old", time.Date(2023, 11, 2, 9, 0, 0, 0, time.UTC))
	fresh := Months{"202401": {namedEvent("New", time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC))}}
	archived := Months{"202311": {old}}

	merged := Merge(fresh, archived)
	if len(merged) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(merged))
	}
	if merged["202311"][0] != old {
		t.Error("archive-only period must be retained unchanged")
	}
}

func TestMerge_Idempotent(t *testing.T) {
	fresh := Months{"202401": {namedEvent("New", time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC))}}
	archived := Months{
		"202311": {namedEvent("Old", time.Date(2023, 11, 2, 9, 0, 0, 0, time.UTC))},
		"202401": {namedEvent("Stale", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))},
	}

	once := Merge(fresh, archived)
	twice := Merge(fresh, once)
	if !reflect.DeepEqual(once, twice) {
		t.Error("merging the same fresh months twice must be a no-op")
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	fresh := Months{"202401": {namedEvent("New", time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC))}}
	archived := Months{"202401": {namedEvent("Old", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))}}

	Merge(fresh, archived)
	if archived["202401"][0].Name != "Old" {
		t.Error("merge must not mutate the archived mapping")
	}
}

func TestFlatten_ChronologicalOrder(t *testing.T) {
	months := Months{
		"202403": {namedEvent("C", time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC))},
		"202311": {namedEvent("A", time.Date(2023, 11, 2, 9, 0, 0, 0, time.UTC))},
		"202401": {namedEvent("B", time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC))},
	}

	var names []string
	for _, evt := range months.Flatten() {
		names = append(names, evt.Name)
	}
	if !reflect.DeepEqual(names, []string{"A", "B", "C"}) {
		t.Errorf("Flatten order = %v, want [A B C]", names)
	}
}
