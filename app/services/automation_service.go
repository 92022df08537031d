package services

import (
	"context"
	"log"
	"time"

	"autoglm-helper/app/clients"
)

// AutomationService bounds every device capability call by a timeout.
// A call that times out or panics is reported as a failed action.
type AutomationService struct {
	automation clients.Automation
	timeout    time.Duration
}

// NewAutomationService creates a new automation service
func NewAutomationService(automation clients.Automation, timeout time.Duration) *AutomationService {
	return &AutomationService{automation: automation, timeout: timeout}
}

// IsAccessibilityEnabled queries the accessibility status
func (s *AutomationService) IsAccessibilityEnabled(ctx context.Context) bool {
	return bounded(ctx, s.timeout, "accessibility", false, s.automation.IsAccessibilityEnabled)
}

// TakeScreenshot captures the screen as base64, returning false if none was produced
func (s *AutomationService) TakeScreenshot(ctx context.Context) (string, bool) {
	type shot struct {
		image string
		ok    bool
	}
	res := bounded(ctx, s.timeout, "screenshot", shot{}, func(ctx context.Context) shot {
		image, ok := s.automation.TakeScreenshotBase64(ctx)
		return shot{image: image, ok: ok && image != ""}
	})
	return res.image, res.ok
}

// Tap performs a tap at (x, y)
func (s *AutomationService) Tap(ctx context.Context, x, y int) bool {
	return bounded(ctx, s.timeout, "tap", false, func(ctx context.Context) bool {
		return s.automation.PerformTap(ctx, x, y)
	})
}

// Swipe performs a swipe gesture lasting durationMs
func (s *AutomationService) Swipe(ctx context.Context, x1, y1, x2, y2, durationMs int) bool {
	// the gesture itself may legitimately take durationMs
	timeout := s.timeout + time.Duration(durationMs)*time.Millisecond
	return bounded(ctx, timeout, "swipe", false, func(ctx context.Context) bool {
		return s.automation.PerformSwipe(ctx, x1, y1, x2, y2, durationMs)
	})
}

// Input types text into the focused field
func (s *AutomationService) Input(ctx context.Context, text string) bool {
	return bounded(ctx, s.timeout, "input", false, func(ctx context.Context) bool {
		return s.automation.PerformInput(ctx, text)
	})
}

func bounded[T any](ctx context.Context, timeout time.Duration, action string, fallback T, fn func(context.Context) T) T {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan T, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[automation] %s panicked: %v", action, r)
				done <- fallback
			}
		}()
		done <- fn(ctx)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		log.Printf("[automation] %s aborted: %v", action, ctx.Err())
		return fallback
	}
}
