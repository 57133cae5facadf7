package blocklist

import "context"

type Repository interface {
	// GetOverlay returns the full admin-managed overlay.
	GetOverlay(ctx context.Context) (GlobalBlocklists, error)
	// MergeWrite unions the given lists into the stored overlay. Existing
	// entries are kept; duplicates collapse.
	MergeWrite(ctx context.Context, lists GlobalBlocklists) error
}
