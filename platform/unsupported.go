package platform

import "context"

// Unsupported is used where no keystroke strategy exists
type Unsupported struct{}

func (Unsupported) Name() string {
	return "unsupported"
}

// CopySelection always fails; callers depend on the copy having happened
func (Unsupported) CopySelection(ctx context.Context) error {
	return ErrUnavailable
}

// ClearSelections is best effort, so unavailability is not an error
func (Unsupported) ClearSelections(ctx context.Context) (Broadcast, error) {
	return BroadcastUnavailable, nil
}
