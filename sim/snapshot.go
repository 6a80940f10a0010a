package sim

// AisleOccupant is one passenger currently standing in the aisle.
type AisleOccupant struct {
	PassengerID int
	Cell        int
	State       RunStateKind
}

// Snapshot is a point-in-time projection of all run states, partitioned the
// way rendering collaborators consume them. It is derived data: the
// simulator can recompute it from run states at any tick.
type Snapshot struct {
	Step     int
	InAisle  []AisleOccupant // ordered by descending aisle cell
	Seated   []int           // passenger ids
	Waiting  []int           // not yet admitted, in remaining boarding order
	Complete bool
}

// snapshot projects the current run states into a Snapshot.
func (s *Simulator) snapshot() Snapshot {
	snap := Snapshot{Step: s.Clock, Complete: s.Complete}
	for _, id := range s.aisleOrder() {
		st := s.state(id)
		snap.InAisle = append(snap.InAisle, AisleOccupant{
			PassengerID: id,
			Cell:        st.Cell,
			State:       st.State,
		})
	}
	for _, p := range s.Passengers {
		if s.state(p.ID).State == StateSeated {
			snap.Seated = append(snap.Seated, p.ID)
		}
	}
	for i := s.queueIdx; i < len(s.Order); i++ {
		snap.Waiting = append(snap.Waiting, s.Order[i])
	}
	return snap
}
