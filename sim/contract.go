package sim

import (
	"fmt"
	"sort"
)

// PassengerView is the read-only projection a priority function sees.
// It carries the immutable attributes plus the derived seat class and the
// number of seats between the aisle and the target seat.
type PassengerView struct {
	ID          int
	Row         int
	Column      string
	SeatClass   SeatClass
	WalkSpeed   WalkSpeed
	CarryOn     CarryOn
	Compliance  Compliance
	GroupID     int
	SeatsToPass int
}

// ContractContext exposes the cabin-wide facts a priority function may use.
type ContractContext struct {
	Rows           int
	PassengerCount int
	Columns        []string
}

// PriorityFunc is the scheduling contract: a pure, deterministic function
// from passenger and context to a finite numeric priority. Higher priority
// boards earlier. Implementations MUST NOT retain or mutate the inputs.
type PriorityFunc func(p PassengerView, ctx ContractContext) float64

// Param declares one numeric knob of a contract, with the bounds the
// evolutionary search is allowed to explore.
type Param struct {
	Label   string
	Default float64
	Min     float64
	Max     float64
}

// Contract is a named scheduling strategy: display metadata, declared
// parameters, and a factory producing the pure priority function. The
// sequence handle is consumed only by randomness-driven contracts and may
// be nil for the rest.
type Contract struct {
	Name        string
	Description string
	Source      string // display source for the editing surface
	Params      map[string]Param
	factory     func(params map[string]float64, seq *Sequence) PriorityFunc
}

// Build produces the priority function for the given parameter values.
// Missing parameters fall back to their declared defaults; unknown names
// are rejected so genome/contract mismatches surface early.
func (c *Contract) Build(params map[string]float64, seq *Sequence) (PriorityFunc, error) {
	resolved := make(map[string]float64, len(c.Params))
	for name, p := range c.Params {
		resolved[name] = p.Default
	}
	for name, v := range params {
		if _, ok := c.Params[name]; !ok {
			return nil, fmt.Errorf("contract %q has no parameter %q", c.Name, name)
		}
		resolved[name] = v
	}
	return c.factory(resolved, seq), nil
}

// ValidContracts is the set of recognized preset contract names.
var ValidContracts = map[string]bool{
	"back-to-front":       true,
	"front-to-back":       true,
	"window-middle-aisle": true,
	"steffen":             true,
	"random":              true,
}

// LookupContract returns the preset with the given name.
func LookupContract(name string) (*Contract, error) {
	if !ValidContracts[name] {
		return nil, fmt.Errorf("unknown contract %q", name)
	}
	return presetContracts[name], nil
}

// ContractNames lists the presets in a stable order.
func ContractNames() []string {
	names := make([]string, 0, len(presetContracts))
	for name := range presetContracts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewUserContract wraps a user-edited variant behind the same Contract
// shape. The source string is checked by the static prefilter; the function
// itself still goes through ValidateContract before any simulation run.
func NewUserContract(name, description, source string, params map[string]Param, fn PriorityFunc) (*Contract, *ValidationReport) {
	report := PrefilterSource(source)
	if !report.Valid {
		return nil, report
	}
	return &Contract{
		Name:        name,
		Description: description,
		Source:      source,
		Params:      params,
		factory: func(_ map[string]float64, _ *Sequence) PriorityFunc {
			return fn
		},
	}, report
}

var presetContracts = map[string]*Contract{
	"back-to-front": {
		Name:        "back-to-front",
		Description: "Board in row blocks from the rear of the aircraft forward.",
		Source:      "priority = blockOf(row)  // rear blocks first",
		Params: map[string]Param{
			"blocks": {Label: "Number of boarding blocks", Default: 4, Min: 1, Max: 10},
		},
		factory: func(params map[string]float64, _ *Sequence) PriorityFunc {
			blocks := params["blocks"]
			return func(p PassengerView, ctx ContractContext) float64 {
				return blockOf(p.Row, ctx.Rows, blocks)
			}
		},
	},
	"front-to-back": {
		Name:        "front-to-back",
		Description: "Board in row blocks from the front backward (the congested baseline).",
		Source:      "priority = blocks - blockOf(row)  // front blocks first",
		Params: map[string]Param{
			"blocks": {Label: "Number of boarding blocks", Default: 4, Min: 1, Max: 10},
		},
		factory: func(params map[string]float64, _ *Sequence) PriorityFunc {
			blocks := params["blocks"]
			return func(p PassengerView, ctx ContractContext) float64 {
				return blocks - blockOf(p.Row, ctx.Rows, blocks)
			}
		},
	},
	"window-middle-aisle": {
		Name:        "window-middle-aisle",
		Description: "Window seats board first, then middles, then aisles, rear-weighted within each wave.",
		Source:      "priority = classWeight(seatClass) + row / rows",
		Params: map[string]Param{
			"window": {Label: "Window wave weight", Default: 30, Min: 0, Max: 100},
			"middle": {Label: "Middle wave weight", Default: 20, Min: 0, Max: 100},
			"aisle":  {Label: "Aisle wave weight", Default: 10, Min: 0, Max: 100},
		},
		factory: func(params map[string]float64, _ *Sequence) PriorityFunc {
			return func(p PassengerView, ctx ContractContext) float64 {
				var wave float64
				switch p.SeatClass {
				case SeatWindow:
					wave = params["window"]
				case SeatMiddle:
					wave = params["middle"]
				default:
					wave = params["aisle"]
				}
				return wave + float64(p.Row)/float64(ctx.Rows)
			}
		},
	},
	"steffen": {
		Name:        "steffen",
		Description: "Steffen-style order: outer seats rear-first, alternating rows so adjacent boarders never queue behind each other.",
		Source:      "priority = seatsToPass*classWeight + 2*row + rowParity(row, side)",
		Params: map[string]Param{
			"classWeight": {Label: "Outer-seat wave separation", Default: 100, Min: 10, Max: 500},
		},
		factory: func(params map[string]float64, _ *Sequence) PriorityFunc {
			classWeight := params["classWeight"]
			return func(p PassengerView, ctx ContractContext) float64 {
				// right-side seats take the odd parity slot
				side := 0
				for i, c := range ctx.Columns {
					if c == p.Column && i >= len(ctx.Columns)/2 {
						side = 1
					}
				}
				parity := float64((p.Row + side) % 2)
				return float64(p.SeatsToPass)*classWeight + 2*float64(p.Row) + parity
			}
		},
	},
	"random": {
		Name:        "random",
		Description: "Uniformly random order drawn from the deterministic sequence.",
		Source:      "priority = next()  // seeded stream, reproducible",
		Params:      map[string]Param{},
		factory: func(_ map[string]float64, seq *Sequence) PriorityFunc {
			// Draws are memoized per passenger id so re-invoking on the same
			// passenger yields the same value, as the validation contract
			// requires of every priority function.
			draws := map[int]float64{}
			return func(p PassengerView, _ ContractContext) float64 {
				if seq == nil {
					return 0
				}
				if v, ok := draws[p.ID]; ok {
					return v
				}
				v := seq.Next()
				draws[p.ID] = v
				return v
			}
		},
	},
}

// blockOf maps a row to its boarding-block index counted from the front,
// in [0, blocks). Rear rows land in higher blocks.
func blockOf(row, rows int, blocks float64) float64 {
	if blocks < 1 {
		blocks = 1
	}
	return float64(int(float64(row-1) / float64(rows) * blocks))
}

// ViewOf builds the contract-facing projection of a passenger.
func ViewOf(p Passenger, cfg LayoutConfig) PassengerView {
	return PassengerView{
		ID:          p.ID,
		Row:         p.Row,
		Column:      p.Column,
		SeatClass:   cfg.SeatClassOf(p.ColIdx),
		WalkSpeed:   p.WalkSpeed,
		CarryOn:     p.CarryOn,
		Compliance:  p.Compliance,
		GroupID:     p.GroupID,
		SeatsToPass: cfg.SeatsToPassOf(p.ColIdx),
	}
}

// BoardingOrder evaluates the priority function once per passenger and
// returns the admission sequence: descending priority, ties broken by
// ascending passenger id. The explicit tie break keeps the whole pipeline
// reproducible even for constant priority functions.
func BoardingOrder(passengers []Passenger, cfg LayoutConfig, fn PriorityFunc) []int {
	ctx := ContractContext{
		Rows:           cfg.Rows,
		PassengerCount: len(passengers),
		Columns:        cfg.Columns,
	}
	type scored struct {
		id       int
		priority float64
	}
	scores := make([]scored, len(passengers))
	for i, p := range passengers {
		scores[i] = scored{id: p.ID, priority: fn(ViewOf(p, cfg), ctx)}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].priority != scores[j].priority {
			return scores[i].priority > scores[j].priority
		}
		return scores[i].id < scores[j].id
	})
	order := make([]int, len(scores))
	for i, s := range scores {
		order[i] = s.id
	}
	return order
}
