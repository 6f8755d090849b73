package nodenet

import "fmt"

// SetupError is a fatal initialization failure, such as the rendering surface
// being unobtainable. It identifies the owning component and aborts
// initialization; there is no silent fallback to a no-op canvas.
type SetupError struct {
	Component string
	Err       error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("nodenet: %s setup failed: %v", e.Component, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}
