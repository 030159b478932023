package genarena

import "fmt"

// Stats describes an arena's occupancy and storage.
//
// Note on semantics:
//   - Live + Free + Retired == Slots
//   - Reused/Appended: historical Create counts by slot source
//   - Pages/Capacity/BytesReserved: current backing storage
type Stats struct {
	Live     int
	Free     int
	Retired  int
	Slots    int
	Capacity int

	Reused   uint64
	Appended uint64

	Pages         int
	BytesReserved int64

	Policy GenerationPolicy
}

// Stats returns the current arena statistics.
func (a *Arena[T, G, I]) Stats() Stats {
	ps := a.slots.Stats()
	return Stats{
		Live:          a.live,
		Free:          a.free,
		Retired:       a.retired,
		Slots:         ps.Len,
		Capacity:      ps.Cap,
		Reused:        a.reused,
		Appended:      a.appended,
		Pages:         ps.ActivePages,
		BytesReserved: ps.BytesReserved,
		Policy:        a.policy,
	}
}

// Usage returns live elements as a percentage of slots.
func (a *Arena[T, G, I]) Usage() float64 {
	n := a.slots.Len()
	if n == 0 {
		return 0
	}
	return float64(a.live) / float64(n) * 100
}

func (a *Arena[T, G, I]) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{live: %d, free: %d, retired: %d, slots: %d, pages: %d, reserved: %.2f KB, usage: %.1f%%}",
		stats.Live,
		stats.Free,
		stats.Retired,
		stats.Slots,
		stats.Pages,
		float64(stats.BytesReserved)/1024,
		a.Usage(),
	)
}
