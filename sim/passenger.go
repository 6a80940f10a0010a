package sim

import (
	"fmt"
)

// SeatClass classifies a seat by its position relative to the aisle.
type SeatClass string

const (
	SeatWindow SeatClass = "window"
	SeatMiddle SeatClass = "middle"
	SeatAisle  SeatClass = "aisle"
)

// WalkSpeed is a passenger's aisle walking class.
type WalkSpeed string

const (
	WalkSlow   WalkSpeed = "slow"
	WalkNormal WalkSpeed = "normal"
	WalkFast   WalkSpeed = "fast"
)

// CarryOn is a passenger's luggage size class.
type CarryOn string

const (
	CarryNone  CarryOn = "none"
	CarrySmall CarryOn = "small"
	CarryLarge CarryOn = "large"
)

// Units returns the overhead-bin units the carry-on consumes.
func (c CarryOn) Units() int {
	switch c {
	case CarrySmall:
		return 1
	case CarryLarge:
		return 2
	default:
		return 0
	}
}

// Compliance captures how closely a passenger follows their called order.
type Compliance string

const (
	Compliant    Compliance = "compliant"
	NonCompliant Compliance = "noncompliant"
)

// Attribute distributions for generation. Repetition biases frequency:
// normal walkers are three times as common as slow or fast ones.
var (
	walkSpeedWeights  = []WalkSpeed{WalkSlow, WalkNormal, WalkNormal, WalkNormal, WalkFast}
	carryOnWeights    = []CarryOn{CarryNone, CarrySmall, CarrySmall, CarrySmall, CarryLarge, CarryLarge}
	complianceWeights = []Compliance{Compliant, Compliant, Compliant, Compliant, NonCompliant}
)

// Passenger is an immutable boarding entity. Ids run 1..N in assignment
// order; all mutable per-run progress lives in the simulator's RunState,
// addressed by the same id.
type Passenger struct {
	ID         int
	Row        int
	Column     string
	ColIdx     int
	WalkSpeed  WalkSpeed
	CarryOn    CarryOn
	Compliance Compliance
	GroupID    int // 0 = traveling alone
}

// String returns a human-readable one-line description.
func (p Passenger) String() string {
	return fmt.Sprintf("Passenger %d (seat %d%s, %s walker, %s bag)", p.ID, p.Row, p.Column, p.WalkSpeed, p.CarryOn)
}

type seatPair struct {
	row, col int
}

// GeneratePassengers builds n passengers with unique seats drawn from the
// cabin. The full seat set is shuffled with the sequence and the first n
// pairs become assignments, so the same seed always yields the same
// manifest. Attribute classes are drawn from the weighted lists above.
func GeneratePassengers(n int, cfg LayoutConfig, seq *Sequence) ([]Passenger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	totalSeats := cfg.Rows * len(cfg.Columns)
	if n <= 0 || n > totalSeats {
		return nil, fmt.Errorf("passenger count %d outside [1, %d]", n, totalSeats)
	}

	pairs := make([]seatPair, 0, totalSeats)
	for row := 1; row <= cfg.Rows; row++ {
		for col := range cfg.Columns {
			pairs = append(pairs, seatPair{row: row, col: col})
		}
	}
	Shuffle(seq, pairs)

	passengers := make([]Passenger, 0, n)
	for i := 0; i < n; i++ {
		pair := pairs[i]
		passengers = append(passengers, Passenger{
			ID:         i + 1,
			Row:        pair.row,
			Column:     cfg.Columns[pair.col],
			ColIdx:     pair.col,
			WalkSpeed:  Pick(seq, walkSpeedWeights),
			CarryOn:    Pick(seq, carryOnWeights),
			Compliance: Pick(seq, complianceWeights),
		})
	}
	return passengers, nil
}
