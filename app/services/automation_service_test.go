package services

import (
	"context"
	"testing"
	"time"
)

type fakeAutomation struct {
	delay      time.Duration
	panicOnTap bool
	image      string
	lastSwipe  []int
	lastText   string
}

func (f *fakeAutomation) wait(ctx context.Context) bool {
	select {
	case <-time.After(f.delay):
		return true
	case <-ctx.Done():
		return false
	}
}

func (f *fakeAutomation) IsAccessibilityEnabled(ctx context.Context) bool {
	return f.wait(ctx)
}

func (f *fakeAutomation) TakeScreenshotBase64(ctx context.Context) (string, bool) {
	if !f.wait(ctx) {
		return "", false
	}
	return f.image, true
}

func (f *fakeAutomation) PerformTap(ctx context.Context, x, y int) bool {
	if f.panicOnTap {
		panic("accessibility service gone")
	}
	return f.wait(ctx)
}

func (f *fakeAutomation) PerformSwipe(ctx context.Context, x1, y1, x2, y2, durationMs int) bool {
	f.lastSwipe = []int{x1, y1, x2, y2, durationMs}
	return f.wait(ctx)
}

func (f *fakeAutomation) PerformInput(ctx context.Context, text string) bool {
	f.lastText = text
	return f.wait(ctx)
}

func TestAutomationServicePassesThrough(t *testing.T) {
	auto := &fakeAutomation{image: "aGVsbG8="}
	svc := NewAutomationService(auto, time.Second)
	ctx := context.Background()

	if !svc.Tap(ctx, 1, 2) {
		t.Error("expected tap to succeed")
	}
	if !svc.Swipe(ctx, 1, 2, 3, 4, 50) || len(auto.lastSwipe) != 5 || auto.lastSwipe[4] != 50 {
		t.Errorf("unexpected swipe: %v", auto.lastSwipe)
	}
	if !svc.Input(ctx, "hello") || auto.lastText != "hello" {
		t.Errorf("unexpected input %q", auto.lastText)
	}
	if image, ok := svc.TakeScreenshot(ctx); !ok || image != "aGVsbG8=" {
		t.Errorf("unexpected screenshot %q (ok=%v)", image, ok)
	}
	if !svc.IsAccessibilityEnabled(ctx) {
		t.Error("expected accessibility enabled")
	}
}

func TestAutomationServiceTimeout(t *testing.T) {
	auto := &fakeAutomation{delay: time.Second}
	svc := NewAutomationService(auto, 20*time.Millisecond)

	start := time.Now()
	if svc.Tap(context.Background(), 1, 1) {
		t.Error("expected tap to time out")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("expected prompt return, took %v", elapsed)
	}
}

func TestAutomationServiceSwipeAllowsGestureDuration(t *testing.T) {
	auto := &fakeAutomation{delay: 60 * time.Millisecond}
	svc := NewAutomationService(auto, 20*time.Millisecond)

	if !svc.Swipe(context.Background(), 0, 0, 10, 10, 200) {
		t.Error("expected swipe within gesture duration to succeed")
	}
}

func TestAutomationServiceRecoversPanic(t *testing.T) {
	svc := NewAutomationService(&fakeAutomation{panicOnTap: true}, time.Second)

	if svc.Tap(context.Background(), 1, 1) {
		t.Error("expected panicking tap to report failure")
	}
}

func TestAutomationServiceEmptyScreenshot(t *testing.T) {
	svc := NewAutomationService(&fakeAutomation{image: ""}, time.Second)

	if _, ok := svc.TakeScreenshot(context.Background()); ok {
		t.Error("expected empty screenshot to fail")
	}
}
