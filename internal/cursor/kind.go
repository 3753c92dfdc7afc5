package cursor

import (
	"fmt"
	"strings"
)

// Kind identifies a system cursor role. Each kind is bound to one cursor resource
// system-wide.
type Kind int

const (
	Arrow Kind = iota
	IBeam
	Wait
	Cross
	Up
	SizeNWSE
	SizeNESW
	SizeWE
	SizeNS
	SizeAll
	No
	Hand
	AppStarting
)

var kindNames = map[Kind]string{
	Arrow:       "arrow",
	IBeam:       "ibeam",
	Wait:        "wait",
	Cross:       "cross",
	Up:          "up",
	SizeNWSE:    "size-nwse",
	SizeNESW:    "size-nesw",
	SizeWE:      "size-we",
	SizeNS:      "size-ns",
	SizeAll:     "size-all",
	No:          "no",
	Hand:        "hand",
	AppStarting: "app-starting",
}

// OCR_* identifiers accepted by LoadCursor and SetSystemCursor.
var kindIDs = map[Kind]uint32{
	Arrow:       32512,
	IBeam:       32513,
	Wait:        32514,
	Cross:       32515,
	Up:          32516,
	SizeNWSE:    32642,
	SizeNESW:    32643,
	SizeWE:      32644,
	SizeNS:      32645,
	SizeAll:     32646,
	No:          32648,
	Hand:        32649,
	AppStarting: 32650,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// SystemID returns the platform cursor identifier for k.
func (k Kind) SystemID() uint32 {
	return kindIDs[k]
}

// ParseKind resolves a kind from its name. Matching is case-insensitive and
// accepts a few common aliases ("pointer", "text", "busy", "crosshair").
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "pointer", "normal":
		return Arrow, nil
	case "text", "text-beam", "beam":
		return IBeam, nil
	case "busy":
		return Wait, nil
	case "crosshair":
		return Cross, nil
	case "vertical", "up-arrow":
		return Up, nil
	}
	for k, n := range kindNames {
		if n == normalized {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// ParseKinds resolves an ordered list of kind names, rejecting duplicates.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	seen := make(map[Kind]bool, len(names))
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			return nil, fmt.Errorf("cursor kind %q listed twice", k)
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds, nil
}
