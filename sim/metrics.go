// Aggregates boarding-run statistics for final reporting: total ticks,
// per-passenger wait distribution, and aisle congestion.

package sim

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes one boarding run. BlockedPct is the percentage of
// (tick x passenger) slots spent blocked in the aisle — the headline
// congestion number the boarding order is meant to minimize.
type Metrics struct {
	TotalTicks   int
	SeatedCount  int
	AvgWaitTicks float64
	MaxWaitTicks int
	BlockedPct   float64
	Truncated    bool
	WaitPerID    map[int]int // passenger id -> accumulated wait ticks
}

// NewMetrics creates an empty metrics record.
func NewMetrics() *Metrics {
	return &Metrics{WaitPerID: make(map[int]int)}
}

// collect derives the summary from the finished (or truncated) run.
func (m *Metrics) collect(s *Simulator) {
	m.TotalTicks = s.Clock
	m.Truncated = s.Truncated

	waits := make([]float64, 0, len(s.Passengers))
	for _, p := range s.Passengers {
		st := s.state(p.ID)
		if st.State == StateSeated {
			m.SeatedCount++
		}
		m.WaitPerID[p.ID] = st.WaitTicks
		waits = append(waits, float64(st.WaitTicks))
		if st.WaitTicks > m.MaxWaitTicks {
			m.MaxWaitTicks = st.WaitTicks
		}
	}
	if len(waits) > 0 {
		m.AvgWaitTicks = stat.Mean(waits, nil)
	}
	if s.Clock > 0 && len(s.Passengers) > 0 {
		m.BlockedPct = 100 * float64(s.blocked) / (float64(s.Clock) * float64(len(s.Passengers)))
	}
}

// Print displays the aggregated metrics at the end of a run.
func (m *Metrics) Print() {
	fmt.Println("=== Boarding Metrics ===")
	fmt.Printf("Total Ticks          : %d\n", m.TotalTicks)
	fmt.Printf("Passengers Seated    : %d\n", m.SeatedCount)
	fmt.Printf("Average Wait         : %.2f ticks\n", m.AvgWaitTicks)
	fmt.Printf("Max Wait             : %d ticks\n", m.MaxWaitTicks)
	fmt.Printf("Blocked Slots        : %.2f%%\n", m.BlockedPct)
	if m.Truncated {
		fmt.Println("WARNING: run truncated at max-tick guard; metrics are partial")
	}
}
