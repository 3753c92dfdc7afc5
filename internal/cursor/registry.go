package cursor

import (
	"fmt"
	"image"
	"sync"
)

// Handle is an opaque platform cursor resource.
type Handle uintptr

// Registry is the platform's system cursor table.
type Registry interface {
	// Load copies the cursor currently bound to kind.
	Load(kind Kind) (Bitmap, error)
	// Build assembles an independent cursor resource from b.
	Build(kind Kind, b Bitmap) (Handle, error)
	// Install makes h the active system cursor for kind. The registry takes
	// ownership of h.
	Install(kind Kind, h Handle) error
	// ResetAll restores the platform's default cursor set. Calling it while
	// nothing is installed is not an error.
	ResetAll() error
}

// MemoryRegistry keeps cursors in process memory. It stands in for the system
// registry in dry runs and tests.
type MemoryRegistry struct {
	mu       sync.Mutex
	defaults map[Kind]Bitmap
	built    map[Handle]Bitmap
	active   map[Kind]Handle
	next     Handle
	resets   int
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		defaults: make(map[Kind]Bitmap),
		built:    make(map[Handle]Bitmap),
		active:   make(map[Kind]Handle),
	}
}

// Seed sets the default bitmap returned for kind.
func (r *MemoryRegistry) Seed(kind Kind, b Bitmap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults[kind] = b
}

// SeedDefaults fills every listed kind with a blank square bitmap of the
// given size, hotspot at the top-left corner.
func (r *MemoryRegistry) SeedDefaults(size int, kinds ...Kind) {
	for _, k := range kinds {
		bounds := image.Rect(0, 0, size, size)
		r.Seed(k, Bitmap{Mask: image.NewGray(bounds), Color: image.NewRGBA(bounds)})
	}
}

func (r *MemoryRegistry) Load(kind Kind) (Bitmap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.active[kind]; ok {
		return r.built[h], nil
	}
	b, ok := r.defaults[kind]
	if !ok {
		return Bitmap{}, loadError(kind, "LoadCursor", 0)
	}
	return b, nil
}

func (r *MemoryRegistry) Build(kind Kind, b Bitmap) (Handle, error) {
	if b.Mask == nil || b.Color == nil {
		return 0, buildError(kind, "CreateIconIndirect", 0)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.built[r.next] = b
	return r.next, nil
}

func (r *MemoryRegistry) Install(kind Kind, h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.built[h]; !ok {
		return fmt.Errorf("install %s: unknown handle %d", kind, h)
	}
	if old, ok := r.active[kind]; ok && old != h {
		delete(r.built, old)
	}
	r.active[kind] = h
	return nil
}

func (r *MemoryRegistry) ResetAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Nothing stays installed, so every built cursor is released, including
	// ones that were never installed.
	r.active = make(map[Kind]Handle)
	r.built = make(map[Handle]Bitmap)
	r.resets++
	return nil
}

// Active returns the bitmap installed for kind, if any.
func (r *MemoryRegistry) Active(kind Kind) (Bitmap, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.active[kind]
	if !ok {
		return Bitmap{}, false
	}
	return r.built[h], true
}

// Built reports how many cursor resources are currently held.
func (r *MemoryRegistry) Built() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.built)
}

// Resets reports how many times ResetAll was called.
func (r *MemoryRegistry) Resets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resets
}
