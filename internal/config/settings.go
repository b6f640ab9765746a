package config

import "sync"

// RuntimeSettings holds values the frame loop reads every tick and that may
// change while running.
type RuntimeSettings struct {
	mu               sync.RWMutex
	fpsLimit         int // 0 = unlimited
	mouseSensitivity float32
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit:         0,
	mouseSensitivity: 0.0025,
}

// Apply copies the runtime-adjustable parts of cfg into the global settings.
func Apply(cfg Config) {
	SetFPSLimit(cfg.Render.FPSLimit)
	SetMouseSensitivity(cfg.Input.MouseSensitivity)
}

// GetFPSLimit returns the frame cap, 0 meaning unlimited
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.fpsLimit = clampFPS(limit)
}

// GetMouseSensitivity returns radians per pixel of cursor travel
func GetMouseSensitivity() float32 {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.mouseSensitivity
}

// SetMouseSensitivity sets radians per pixel, ignoring non-positive values
func SetMouseSensitivity(s float32) {
	if s <= 0 {
		return
	}
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.mouseSensitivity = s
}

func clampFPS(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}
