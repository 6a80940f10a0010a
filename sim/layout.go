package sim

import (
	"fmt"
)

// LayoutConfig describes a single-aisle cabin. All fields are fixed before
// Layout construction and immutable thereafter.
type LayoutConfig struct {
	Rows        int      `yaml:"rows"`
	Columns     []string `yaml:"columns"`      // ordered labels, e.g. A,B,C,D,E,F
	AisleIndex  int      `yaml:"aisle_index"`  // columns[0:AisleIndex] sit left of the aisle
	BinCapacity int      `yaml:"bin_capacity"` // overhead units per row
}

// Validate reports the first structural problem with the configuration.
func (c LayoutConfig) Validate() error {
	if c.Rows <= 0 {
		return fmt.Errorf("layout: rows must be positive, got %d", c.Rows)
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("layout: at least one column label required")
	}
	if c.AisleIndex <= 0 || c.AisleIndex >= len(c.Columns) {
		return fmt.Errorf("layout: aisle index %d must split the %d columns", c.AisleIndex, len(c.Columns))
	}
	seen := map[string]bool{}
	for _, col := range c.Columns {
		if seen[col] {
			return fmt.Errorf("layout: duplicate column label %q", col)
		}
		seen[col] = true
	}
	if c.BinCapacity < 0 {
		return fmt.Errorf("layout: bin capacity must be non-negative, got %d", c.BinCapacity)
	}
	return nil
}

// DefaultLayoutConfig is the reference narrow-body cabin: 30 rows of six
// seats (ABC aisle DEF) with six overhead units per row.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Rows:        30,
		Columns:     []string{"A", "B", "C", "D", "E", "F"},
		AisleIndex:  3,
		BinCapacity: 6,
	}
}

// Layout is the spatial resource model: seat grid, aisle track, and per-row
// overhead-bin capacity. Occupancy is index-based — every slot holds a
// passenger id or 0 for empty — so each simulation run can own an
// independent Layout with no shared references.
type Layout struct {
	cfg LayoutConfig

	// seats[row-1][colIdx] = passenger id or 0
	seats [][]int
	// aisle has Rows+1 cells; cell 0 is the boarding door, cell r fronts row r
	aisle []int
	// bins[row-1] = remaining overhead units
	bins []int
}

// NewLayout builds an empty cabin from the configuration.
func NewLayout(cfg LayoutConfig) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &Layout{cfg: cfg}
	l.Reset()
	return l, nil
}

// Config returns the immutable cabin configuration.
func (l *Layout) Config() LayoutConfig {
	return l.cfg
}

// Rows returns the row count.
func (l *Layout) Rows() int {
	return l.cfg.Rows
}

// ColumnIndex resolves a column label to its index, or -1 if unknown.
func (l *Layout) ColumnIndex(label string) int {
	for i, c := range l.cfg.Columns {
		if c == label {
			return i
		}
	}
	return -1
}

// Reset clears all seats and aisle cells and restores every row's bin to the
// configured capacity.
func (l *Layout) Reset() {
	l.seats = make([][]int, l.cfg.Rows)
	for r := range l.seats {
		l.seats[r] = make([]int, len(l.cfg.Columns))
	}
	l.aisle = make([]int, l.cfg.Rows+1)
	l.bins = make([]int, l.cfg.Rows)
	for r := range l.bins {
		l.bins[r] = l.cfg.BinCapacity
	}
}

// SeatOccupant returns the passenger id seated at (row, colIdx), 0 if empty.
func (l *Layout) SeatOccupant(row, colIdx int) int {
	return l.seats[row-1][colIdx]
}

// OccupySeat places passenger id into (row, colIdx). Returns false if the
// seat is already taken.
func (l *Layout) OccupySeat(row, colIdx, id int) bool {
	if l.seats[row-1][colIdx] != 0 {
		return false
	}
	l.seats[row-1][colIdx] = id
	return true
}

// AisleOccupant returns the passenger id standing in aisle cell, 0 if empty.
func (l *Layout) AisleOccupant(cell int) int {
	return l.aisle[cell]
}

// EnterAisle places passenger id into the cell. Returns false if occupied.
func (l *Layout) EnterAisle(cell, id int) bool {
	if l.aisle[cell] != 0 {
		return false
	}
	l.aisle[cell] = id
	return true
}

// LeaveAisle empties the cell.
func (l *Layout) LeaveAisle(cell int) {
	l.aisle[cell] = 0
}

// MoveAisle shifts a passenger from one cell to an adjacent free cell.
// Returns false without mutating if the destination is occupied.
func (l *Layout) MoveAisle(from, to, id int) bool {
	if l.aisle[to] != 0 {
		return false
	}
	l.aisle[from] = 0
	l.aisle[to] = id
	return true
}

// BinRemaining returns the remaining overhead units at row.
func (l *Layout) BinRemaining(row int) int {
	return l.bins[row-1]
}

// HasBinSpace reports whether row can absorb a carry-on of the given size.
// CarryNone always fits.
func (l *Layout) HasBinSpace(row int, size CarryOn) bool {
	return l.bins[row-1] >= size.Units()
}

// ConsumeBin deducts the carry-on's units from row's bin. Returns false and
// leaves capacity untouched when insufficient; capacity never goes negative.
func (l *Layout) ConsumeBin(row int, size CarryOn) bool {
	units := size.Units()
	if l.bins[row-1] < units {
		return false
	}
	l.bins[row-1] -= units
	return true
}

// NearestBinRow searches outward from start for the closest row with space
// for the given size, checking row-offset before row+offset at each radius.
// Returns (0, false) when the whole aircraft lacks capacity.
func (l *Layout) NearestBinRow(start int, size CarryOn) (int, bool) {
	if l.HasBinSpace(start, size) {
		return start, true
	}
	for offset := 1; offset < l.cfg.Rows; offset++ {
		if r := start - offset; r >= 1 && l.HasBinSpace(r, size) {
			return r, true
		}
		if r := start + offset; r <= l.cfg.Rows && l.HasBinSpace(r, size) {
			return r, true
		}
	}
	return 0, false
}

// BlockingSeats returns the column indices of occupied seats between the
// aisle and the target seat in the same row, ordered aisle-outward. The
// target seat itself is excluded.
func (l *Layout) BlockingSeats(row, targetCol int) []int {
	var blockers []int
	if targetCol < l.cfg.AisleIndex {
		// left side: scan from the aisle-adjacent seat toward the window
		for c := l.cfg.AisleIndex - 1; c > targetCol; c-- {
			if l.seats[row-1][c] != 0 {
				blockers = append(blockers, c)
			}
		}
	} else {
		for c := l.cfg.AisleIndex; c < targetCol; c++ {
			if l.seats[row-1][c] != 0 {
				blockers = append(blockers, c)
			}
		}
	}
	return blockers
}

// SeatClassOf classifies a column index relative to the aisle split.
func (c LayoutConfig) SeatClassOf(colIdx int) SeatClass {
	switch {
	case colIdx == 0 || colIdx == len(c.Columns)-1:
		return SeatWindow
	case colIdx == c.AisleIndex-1 || colIdx == c.AisleIndex:
		return SeatAisle
	default:
		return SeatMiddle
	}
}

// SeatsToPassOf counts the seat positions between the aisle and the column,
// i.e. the neighbors a passenger must pass regardless of occupancy.
func (c LayoutConfig) SeatsToPassOf(colIdx int) int {
	if colIdx < c.AisleIndex {
		return c.AisleIndex - 1 - colIdx
	}
	return colIdx - c.AisleIndex
}
