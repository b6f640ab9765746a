// Package profiling accumulates per-frame CPU time by name.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)
)

// Track starts a timer and returns the function that stops it.
// Usage: defer profiling.Track("chunks.Draw")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		Add(name, time.Since(start))
	}
}

// Add records d under name for the current frame.
func Add(name string, d time.Duration) {
	mu.Lock()
	totals[name] += d
	mu.Unlock()
}

// ResetFrame drops the current frame's totals.
func ResetFrame() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot copies the current frame's totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every entry whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n most expensive entries, e.g.
// "chunks.Draw:4.2ms, crosshair.Render:0.1ms".
func TopN(n int) string {
	type entry struct {
		name string
		dur  time.Duration
	}
	snap := Snapshot()
	list := make([]entry, 0, len(snap))
	for k, v := range snap {
		list = append(list, entry{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}

	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(list[i].name)
		sb.WriteByte(':')
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		sb.WriteString(strconv.FormatFloat(ms, 'f', 1, 64))
		sb.WriteString("ms")
	}
	return sb.String()
}
