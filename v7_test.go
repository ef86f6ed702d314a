package guuid

import (
	"sort"
	"testing"
	"time"
)

func TestNewV7(t *testing.T) {
	uuid, err := NewV7()
	if err != nil {
		t.Fatalf("NewV7() error = %v", err)
	}

	if uuid.IsNil() {
		t.Error("NewV7() returned nil UUID")
	}

	if uuid.Version() != VersionTimeSorted {
		t.Errorf("NewV7() version = %v, want %v", uuid.Version(), VersionTimeSorted)
	}

	if uuid.Variant() != VariantRFC4122 {
		t.Errorf("NewV7() variant = %v, want %v", uuid.Variant(), VariantRFC4122)
	}
}

func TestNew(t *testing.T) {
	uuid, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if uuid.IsNil() {
		t.Error("New() returned nil UUID")
	}

	if uuid.Version() != VersionTimeSorted {
		t.Errorf("New() version = %v, want %v", uuid.Version(), VersionTimeSorted)
	}
}

func TestGenerator_NewV7_Clock(t *testing.T) {
	gen := NewGenerator(WithClock(fixedClock))

	uuid, err := gen.NewV7()
	if err != nil {
		t.Fatalf("NewV7() error = %v", err)
	}

	if got := uuid.UnixMilli(); got != fixedTime.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", got, fixedTime.UnixMilli())
	}
	if got := uuid.Time(); !got.Equal(fixedTime.Truncate(time.Millisecond)) {
		t.Errorf("Time() = %v, want %v", got, fixedTime.Truncate(time.Millisecond))
	}
}

func TestGenerator_NewV7FromMillis_Layout(t *testing.T) {
	tests := []struct {
		name string
		rand byte
		ms   uint64
		want string
	}{
		{"zero random", 0x00, 0x0123456789ab, "01234567-89ab-7000-8000-000000000000"},
		{"all ones random", 0xff, 0x0123456789ab, "01234567-89ab-7fff-bfff-ffffffffffff"},
		{"timestamp wider than 48 bits", 0x00, 0xffff0123456789ab, "01234567-89ab-7000-8000-000000000000"},
		{"max timestamp", 0x00, 0xffffffffffff, "ffffffff-ffff-7000-8000-000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(WithRandReader(constReader(tt.rand)))
			uuid, err := gen.NewV7FromMillis(tt.ms)
			if err != nil {
				t.Fatalf("NewV7FromMillis() error = %v", err)
			}
			if uuid.String() != tt.want {
				t.Errorf("NewV7FromMillis() = %v, want %v", uuid, tt.want)
			}
		})
	}
}

// randSeq is a reader returning a fixed byte sequence
type randSeq []byte

func (r randSeq) Read(p []byte) (int, error) {
	return copy(p, r), nil
}

func TestGenerator_NewV7FromMillis_RandomBits(t *testing.T) {
	gen := NewGenerator(WithRandReader(randSeq{0xab, 0xcd, 0xef, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xff}))
	uuid, err := gen.NewV7FromMillis(0)
	if err != nil {
		t.Fatalf("NewV7FromMillis() error = %v", err)
	}

	// rand_a is the first 12 random bits
	if uuid[6] != 0x7a || uuid[7] != 0xbc {
		t.Errorf("rand_a bytes = %#x %#x, want 0x7a 0xbc", uuid[6], uuid[7])
	}
	// rand_b continues with 0xd, 0xef, ... and drops the low 6 bits of the last byte
	if uuid[8] != 0xb7 {
		t.Errorf("uuid[8] = %#x, want 0xb7", uuid[8])
	}
	if uuid[15] != 0xaf {
		t.Errorf("uuid[15] = %#x, want 0xaf", uuid[15])
	}
}

func TestNewV7FromMillis_Monotonic(t *testing.T) {
	base := uint64(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())

	var uuids []UUID
	for i := uint64(0); i < 200; i++ {
		uuid, err := NewV7FromMillis(base + i)
		if err != nil {
			t.Fatalf("NewV7FromMillis() error = %v", err)
		}
		if got := uuid.UnixMilli(); got != int64(base+i) {
			t.Errorf("UnixMilli() = %d, want %d", got, base+i)
		}
		uuids = append(uuids, uuid)
	}

	for i := 1; i < len(uuids); i++ {
		if uuids[i].Compare(uuids[i-1]) <= 0 {
			t.Errorf("UUIDs not in ascending order at index %d: %v <= %v", i, uuids[i], uuids[i-1])
		}
		if uuids[i].String() <= uuids[i-1].String() {
			t.Errorf("UUID strings not in ascending order at index %d", i)
		}
	}
}

func TestSortability(t *testing.T) {
	uuids := make([]UUID, 10)
	for i := 0; i < 10; i++ {
		uuid, err := NewV7()
		if err != nil {
			t.Fatalf("Generation error: %v", err)
		}
		uuids[i] = uuid
		time.Sleep(2 * time.Millisecond) // ensure different timestamps
	}

	sorted := append([]UUID(nil), uuids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })
	for i := range uuids {
		if uuids[i] != sorted[i] {
			t.Errorf("UUIDs not in creation order at index %d", i)
		}
	}
}

func TestNewV7_Concurrent(t *testing.T) {
	const goroutines = 10
	const uuidsPerGoroutine = 100

	results := make(chan UUID, goroutines*uuidsPerGoroutine)
	done := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			for j := 0; j < uuidsPerGoroutine; j++ {
				uuid, err := NewV7()
				if err != nil {
					t.Errorf("Concurrent generation error: %v", err)
					break
				}
				results <- uuid
			}
			done <- true
		}()
	}

	for i := 0; i < goroutines; i++ {
		<-done
	}
	close(results)

	seen := make(map[UUID]bool)
	for uuid := range results {
		if seen[uuid] {
			t.Errorf("Duplicate UUID generated in concurrent test: %v", uuid)
		}
		seen[uuid] = true
	}

	if len(seen) != goroutines*uuidsPerGoroutine {
		t.Errorf("Expected %d unique UUIDs, got %d", goroutines*uuidsPerGoroutine, len(seen))
	}
}
