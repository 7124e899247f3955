package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timers. Worker goroutines record into the same totals, so a
// frame's figures include background generation and meshing time.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCounts = make(map[string]int)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("streaming.Update")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		frameCounts[name]++
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCounts)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// Count returns how many times name was tracked this frame.
func Count(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return frameCounts[name]
}

// SumWithPrefix adds up every total whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest totals, e.g.
// "streaming.Update:4.2ms(1), meshing.BuildChunkMesh:2.1ms(3)".
func TopN(n int) string {
	mu.Lock()
	type entry struct {
		name  string
		dur   time.Duration
		count int
	}
	list := make([]entry, 0, len(frameTotals))
	for k, v := range frameTotals {
		list = append(list, entry{name: k, dur: v, count: frameCounts[k]})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		ms := float64(e.dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms(%d)", e.name, ms, e.count))
	}
	return strings.Join(parts, ", ")
}
