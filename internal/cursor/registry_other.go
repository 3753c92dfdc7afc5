//go:build !windows

package cursor

// NewSystemRegistry returns ErrUnsupported outside Windows.
func NewSystemRegistry() (Registry, error) {
	return nil, ErrUnsupported
}
