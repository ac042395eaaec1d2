// services/bringup/nvstore.go
package bringup

// Non-volatile layout. The version byte is stamped by the build that owns
// the layout; any mismatch wipes the store and re-stamps it.
const (
	nvVersionAddr    = 0x0000
	nvStatusAddr     = 0x0001
	nvBootCountAddr  = 0x0050 // counter region base
	nvCycleCountAddr = 0x0051

	// LayoutVersion is the expected contents of nvVersionAddr.
	LayoutVersion = 42

	statusBringUpOK = 0x01
)

// checkStore initializes the store and verifies the layout version byte.
// On mismatch the store is erased, re-stamped, and the stamp read back; a
// read-back mismatch is a store-integrity failure. When the stamp already
// matches, the store is left untouched.
func (h *Harness) checkStore() bool {
	if err := h.store.Configure(); err != nil {
		h.log.Printf("fram: init failed: %v", err)
		return false
	}
	v, err := h.store.ReadByte(nvVersionAddr)
	if err != nil {
		h.log.Printf("fram: version read failed: %v", err)
		return false
	}
	if v == LayoutVersion {
		h.log.Printf("fram: layout version %d ok", v)
		return true
	}
	h.log.Printf("fram: layout version %d, want %d; erasing", v, LayoutVersion)
	if err := h.store.Erase(); err != nil {
		h.log.Printf("fram: erase failed: %v", err)
		return false
	}
	if err := h.store.WriteByte(nvVersionAddr, LayoutVersion); err != nil {
		h.log.Printf("fram: stamp write failed: %v", err)
		return false
	}
	back, err := h.store.ReadByte(nvVersionAddr)
	if err != nil || back != LayoutVersion {
		h.log.Printf("fram: stamp read-back mismatch, got %d", back)
		return false
	}
	h.log.Printf("fram: layout re-stamped to version %d", LayoutVersion)
	return true
}

// recordBringUp stamps the system-status byte and bumps the boot counter.
// Best effort: the store already passed its integrity check.
func (h *Harness) recordBringUp() {
	if err := h.store.WriteByte(nvStatusAddr, statusBringUpOK); err != nil {
		h.log.Printf("fram: status stamp failed: %v", err)
		return
	}
	h.bumpCounter(nvBootCountAddr)
}

func (h *Harness) bumpCounter(memaddr uint16) {
	v, err := h.store.ReadByte(memaddr)
	if err != nil {
		return
	}
	_ = h.store.WriteByte(memaddr, v+1)
}
