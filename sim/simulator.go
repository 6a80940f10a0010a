package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// RunStateKind is a passenger's behavioral state during one run.
type RunStateKind string

const (
	StateWaiting   RunStateKind = "waiting"
	StateWalking   RunStateKind = "walking"
	StateStowing   RunStateKind = "stowing"
	StateShuffling RunStateKind = "shuffling"
	StateSeating   RunStateKind = "seating"
	StateSeated    RunStateKind = "seated"
)

// Stow durations per carry-on size, in ticks.
const (
	stowTicksSmall = 3
	stowTicksLarge = 8
	// shuffleTicksPerBlocker is the cost of each seated neighbor that must
	// stand to let a passenger through.
	shuffleTicksPerBlocker = 3
)

// DefaultMaxTicks is the non-termination guard for run-to-completion.
const DefaultMaxTicks = 10000

// RunState is the mutable per-passenger progress record for one run,
// addressed by passenger id. Created at reset, discarded at the end.
type RunState struct {
	State        RunStateKind
	Cell         int // current aisle cell, -1 before admission
	StowTicks    int
	ShuffleTicks int
	WaitTicks    int
	EntryStep    int
	SeatedStep   int
}

// Simulator is the discrete-time boarding state machine. It consumes a
// boarding order exactly once as its admission queue and advances every
// passenger through aisle → stow → shuffle → seat, emitting events and
// per-tick snapshots.
//
// Strictly synchronous and single-threaded: one tick fully resolves before
// the next begins. Each run owns its Layout and run states outright, so
// concurrent fitness evaluations can run independent simulators safely.
type Simulator struct {
	Layout     *Layout
	Passengers []Passenger
	Order      []int

	Clock     int
	MaxTicks  int
	Complete  bool
	Truncated bool

	Events    []Event
	Snapshots []Snapshot
	Metrics   *Metrics

	states   []RunState // indexed by passenger id - 1
	queueIdx int
	blocked  int // blocked (tick x passenger) slots, for the congestion metric
}

// NewSimulator wires a run together. The order must be a permutation of the
// passenger ids; the layout must be freshly reset (no occupied seats).
func NewSimulator(layout *Layout, passengers []Passenger, order []int, maxTicks int) (*Simulator, error) {
	if len(order) != len(passengers) {
		return nil, fmt.Errorf("boarding order has %d entries for %d passengers", len(order), len(passengers))
	}
	seen := make(map[int]bool, len(order))
	for _, id := range order {
		if id < 1 || id > len(passengers) || seen[id] {
			return nil, fmt.Errorf("boarding order is not a permutation of passenger ids: %d", id)
		}
		seen[id] = true
	}
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	s := &Simulator{
		Layout:     layout,
		Passengers: passengers,
		Order:      order,
		MaxTicks:   maxTicks,
		Metrics:    NewMetrics(),
		states:     make([]RunState, len(passengers)),
	}
	for i := range s.states {
		s.states[i] = RunState{State: StateWaiting, Cell: -1}
	}
	s.Snapshots = append(s.Snapshots, s.snapshot())
	return s, nil
}

func (s *Simulator) state(id int) *RunState {
	return &s.states[id-1]
}

func (s *Simulator) passenger(id int) Passenger {
	return s.Passengers[id-1]
}

// aisleOrder returns the ids of all passengers occupying an aisle cell,
// sorted by descending cell index. Processing closest-to-seat first lets
// forward movement free cells for passengers behind within the same tick.
func (s *Simulator) aisleOrder() []int {
	var ids []int
	for i := range s.states {
		switch s.states[i].State {
		case StateWalking, StateStowing, StateShuffling, StateSeating:
			ids = append(ids, i+1)
		}
	}
	sort.Slice(ids, func(a, b int) bool {
		return s.state(ids[a]).Cell > s.state(ids[b]).Cell
	})
	return ids
}

// Step advances the simulation by one tick.
func (s *Simulator) Step() {
	if s.Complete {
		return
	}
	s.Clock++

	for _, id := range s.aisleOrder() {
		st := s.state(id)
		switch st.State {
		case StateWalking:
			s.stepWalking(id, st)
		case StateStowing:
			s.stepStowing(id, st)
		case StateShuffling:
			s.stepShuffling(id, st)
		case StateSeating:
			s.stepSeating(id, st)
		}
	}

	s.admitNext()

	s.Complete = true
	for i := range s.states {
		if s.states[i].State != StateSeated {
			s.Complete = false
			break
		}
	}
	s.Snapshots = append(s.Snapshots, s.snapshot())
}

func (s *Simulator) stepWalking(id int, st *RunState) {
	p := s.passenger(id)
	if st.Cell == p.Row {
		if p.CarryOn != CarryNone {
			st.State = StateStowing
			if p.CarryOn == CarryLarge {
				st.StowTicks = stowTicksLarge
			} else {
				st.StowTicks = stowTicksSmall
			}
			s.record(Event{Step: s.Clock, Kind: EventStowStarted, PassengerID: id, Row: p.Row, Column: p.Column, Cell: st.Cell})
			return
		}
		s.evaluateSeating(id, st)
		return
	}
	next := st.Cell + 1
	if next <= s.Layout.Rows() && s.Layout.AisleOccupant(next) == 0 {
		s.Layout.MoveAisle(st.Cell, next, id)
		st.Cell = next
		return
	}
	st.WaitTicks++
	s.blocked++
	s.record(Event{Step: s.Clock, Kind: EventBlocked, PassengerID: id, Row: p.Row, Column: p.Column, Cell: st.Cell,
		Detail: fmt.Sprintf("cell %d occupied", next)})
}

func (s *Simulator) stepStowing(id int, st *RunState) {
	st.StowTicks--
	if st.StowTicks > 0 {
		st.WaitTicks++
		return
	}
	p := s.passenger(id)
	// Best-effort: a full bin is logged, not enforced. The luggage still
	// counts as stowed so the run keeps its tick-count contract.
	if !s.Layout.ConsumeBin(p.Row, p.CarryOn) {
		s.record(Event{Step: s.Clock, Kind: EventBinFull, PassengerID: id, Row: p.Row, Column: p.Column, Cell: st.Cell,
			Detail: fmt.Sprintf("row %d bin has %d units, needed %d", p.Row, s.Layout.BinRemaining(p.Row), p.CarryOn.Units())})
	}
	s.evaluateSeating(id, st)
}

func (s *Simulator) stepShuffling(id int, st *RunState) {
	st.ShuffleTicks--
	st.WaitTicks++
	if st.ShuffleTicks <= 0 {
		st.State = StateSeating
	}
}

func (s *Simulator) stepSeating(id int, st *RunState) {
	p := s.passenger(id)
	s.Layout.LeaveAisle(st.Cell)
	s.Layout.OccupySeat(p.Row, p.ColIdx, id)
	st.State = StateSeated
	st.SeatedStep = s.Clock
	st.Cell = -1
	s.record(Event{Step: s.Clock, Kind: EventSeated, PassengerID: id, Row: p.Row, Column: p.Column})
}

// evaluateSeating decides between SEATING and SHUFFLING once a passenger is
// done at the aisle in front of their row.
func (s *Simulator) evaluateSeating(id int, st *RunState) {
	p := s.passenger(id)
	blockers := s.Layout.BlockingSeats(p.Row, p.ColIdx)
	if len(blockers) == 0 {
		st.State = StateSeating
		return
	}
	st.State = StateShuffling
	st.ShuffleTicks = shuffleTicksPerBlocker * len(blockers)
	labels := make([]string, len(blockers))
	for i, c := range blockers {
		labels[i] = s.Layout.Config().Columns[c]
	}
	s.record(Event{Step: s.Clock, Kind: EventShuffleStarted, PassengerID: id, Row: p.Row, Column: p.Column, Cell: st.Cell,
		BlockedBy: labels})
}

// admitNext moves at most one passenger from the order queue into the entry
// cell. The single boarding door is a hard serialization point.
func (s *Simulator) admitNext() {
	if s.queueIdx >= len(s.Order) || s.Layout.AisleOccupant(0) != 0 {
		return
	}
	id := s.Order[s.queueIdx]
	s.queueIdx++
	st := s.state(id)
	st.State = StateWalking
	st.Cell = 0
	st.EntryStep = s.Clock
	s.Layout.EnterAisle(0, id)
	p := s.passenger(id)
	s.record(Event{Step: s.Clock, Kind: EventAdmitted, PassengerID: id, Row: p.Row, Column: p.Column, Cell: 0})
}

func (s *Simulator) record(ev Event) {
	logrus.Debug(ev.String())
	s.Events = append(s.Events, ev)
}

// Run steps to completion or until the max-tick guard trips. A truncated
// run still yields its partial snapshots and metrics, flagged explicitly.
func (s *Simulator) Run() *Metrics {
	for !s.Complete && s.Clock < s.MaxTicks {
		s.Step()
	}
	if !s.Complete {
		s.Truncated = true
		s.record(Event{Step: s.Clock, Kind: EventTruncated, Detail: fmt.Sprintf("max ticks %d reached", s.MaxTicks)})
		logrus.Warnf("[tick %04d] boarding truncated at max-tick guard", s.Clock)
	} else {
		logrus.Infof("[tick %04d] boarding complete, %d passengers seated", s.Clock, len(s.Passengers))
	}
	s.Metrics.collect(s)
	return s.Metrics
}

// WaitTicks returns the accumulated wait counter for a passenger id.
func (s *Simulator) WaitTicks(id int) int {
	return s.state(id).WaitTicks
}

// StateOf returns a copy of a passenger's current run state.
func (s *Simulator) StateOf(id int) RunState {
	return *s.state(id)
}
