// Package shared holds helpers common to the master-data modules.
package shared

const (
	// DefaultLimit is applied when a list request carries no window.
	DefaultLimit = 100
	// MaxLimit caps a single list page.
	MaxLimit = 1000
)

// ListWindow is the skip/limit window accepted by every list endpoint.
type ListWindow struct {
	Skip  int
	Limit int
}

// Clamp normalizes the window to the supported bounds.
func (w ListWindow) Clamp() ListWindow {
	if w.Skip < 0 {
		w.Skip = 0
	}
	if w.Limit <= 0 {
		w.Limit = DefaultLimit
	}
	if w.Limit > MaxLimit {
		w.Limit = MaxLimit
	}
	return w
}
