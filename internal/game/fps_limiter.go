package game

import (
	"time"

	"konstructs/internal/config"
)

// spinWindow is how close to the deadline Wait stops sleeping and spins.
const spinWindow = 200 * time.Microsecond

// FPSLimiter caps the frame rate at config.GetFPSLimit
type FPSLimiter struct {
	next time.Time
	now  func() time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{now: time.Now}
}

// Wait blocks until the next frame is due. A limit of 0 returns at once.
func (f *FPSLimiter) Wait() {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		f.next = time.Time{}
		return
	}
	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// after a hitch, resync instead of rushing to catch up
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
