package bringup

import (
	"strings"
	"testing"
)

func TestCheckStore_MatchingStampUntouched(t *testing.T) {
	f := newFixture(Config{})

	if !f.h.checkStore() {
		t.Fatal("expected pass with matching stamp")
	}
	// Idempotence: a second check must not modify the store either.
	if !f.h.checkStore() {
		t.Fatal("expected second pass")
	}
	if f.store.erases != 0 || f.store.writes != 0 {
		t.Fatalf("store modified: erases=%d writes=%d", f.store.erases, f.store.writes)
	}
}

func TestCheckStore_MismatchErasesAndRestamps(t *testing.T) {
	f := newFixture(Config{})
	f.store.mem[nvVersionAddr] = 41

	if !f.h.checkStore() {
		t.Fatal("expected pass after re-stamp")
	}
	if f.store.erases != 1 {
		t.Fatalf("erases = %d, want 1", f.store.erases)
	}
	if v, _ := f.store.ReadByte(nvVersionAddr); v != LayoutVersion {
		t.Fatalf("version byte = %d, want %d", v, LayoutVersion)
	}
	if !strings.Contains(f.logbuf.String(), "re-stamped") {
		t.Fatalf("log = %q", f.logbuf.String())
	}
}

func TestCheckStore_ReadBackMismatchFails(t *testing.T) {
	f := newFixture(Config{})
	f.store.mem[nvVersionAddr] = 41
	f.store.dropWrites = true

	if f.h.checkStore() {
		t.Fatal("expected store-integrity failure when the stamp does not persist")
	}
	if !strings.Contains(f.logbuf.String(), "read-back mismatch") {
		t.Fatalf("log = %q", f.logbuf.String())
	}
}

func TestCheckStore_InitFailure(t *testing.T) {
	f := newFixture(Config{})
	f.store.cfgErr = errFake
	if f.h.checkStore() {
		t.Fatal("expected failure when store init fails")
	}
}

func TestRecordBringUp_StampsStatusAndCounter(t *testing.T) {
	f := newFixture(Config{})

	f.h.recordBringUp()
	if v, _ := f.store.ReadByte(nvStatusAddr); v != statusBringUpOK {
		t.Fatalf("status byte = %d, want %d", v, statusBringUpOK)
	}
	if v, _ := f.store.ReadByte(nvBootCountAddr); v != 1 {
		t.Fatalf("boot count = %d, want 1", v)
	}
	f.h.recordBringUp()
	if v, _ := f.store.ReadByte(nvBootCountAddr); v != 2 {
		t.Fatalf("boot count = %d, want 2", v)
	}
}
