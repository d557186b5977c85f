package planet

import (
	"errors"
	"testing"
	"time"
)

// fakeRow feeds fixed column values to scanEntry.
type fakeRow struct {
	values []interface{}
	err    error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int32:
			*p = r.values[i].(int32)
		case *string:
			*p = r.values[i].(string)
		case *SurfaceType:
			*p = SurfaceType(r.values[i].(string))
		case *float64:
			*p = r.values[i].(float64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanEntry(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	row := fakeRow{values: []interface{}{
		int32(42), "Gas Giant Prime", "gas", 4.5, 0.3, 0.1, 0.9, "#ffcc66", created, created,
	}}

	entry, err := scanEntry(row)
	if err != nil {
		t.Fatalf("scanEntry() unexpected error: %v", err)
	}
	if entry.Seed != 42 || entry.Name != "Gas Giant Prime" || entry.Profile.SurfaceType != SurfaceGas {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Profile.Color != (RGB{R: 0xff, G: 0xcc, B: 0x66}) {
		t.Errorf("color = %v", entry.Profile.Color)
	}
	if !entry.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v", entry.CreatedAt)
	}
}

func TestScanEntry_Errors(t *testing.T) {
	scanErr := errors.New("no rows")
	if _, err := scanEntry(fakeRow{err: scanErr}); !errors.Is(err, scanErr) {
		t.Errorf("scan error = %v, want %v", err, scanErr)
	}

	bad := fakeRow{values: []interface{}{
		int32(1), "x", "rocky", 4.0, 0.2, 0.0, 0.4, "orange", time.Time{}, time.Time{},
	}}
	if _, err := scanEntry(bad); err == nil {
		t.Error("scanEntry() accepted an invalid color column")
	}
}
