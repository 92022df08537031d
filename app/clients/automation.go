package clients

import "context"

// Automation is the device interaction capability driven by the server.
// Implementations report failures through their boolean results.
type Automation interface {
	IsAccessibilityEnabled(ctx context.Context) bool
	TakeScreenshotBase64(ctx context.Context) (string, bool)
	PerformTap(ctx context.Context, x, y int) bool
	PerformSwipe(ctx context.Context, x1, y1, x2, y2, durationMs int) bool
	PerformInput(ctx context.Context, text string) bool
}
