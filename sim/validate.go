package sim

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// ContractEvalBudget is the wall-clock allowance for evaluating the full
// validation sample. Exceeding it is a validation failure, not a crash.
const ContractEvalBudget = 100 * time.Millisecond

// determinismRecheckCount is how many sampled passengers get re-invoked to
// confirm the function returns identical values on identical inputs.
const determinismRecheckCount = 5

// ValidationReport is the structured result of contract validation. It is
// returned, never thrown: the editing surface renders Errors and Warnings
// directly, and a contract with Valid=false must never reach the simulator.
type ValidationReport struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

func (r *ValidationReport) addError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationReport) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateContract checks a priority function against the scheduling
// contract before any simulation run:
//
//   - callable (non-nil)
//   - finite numeric result for every sampled passenger (NaN/±Inf rejected)
//   - deterministic: re-invoking the first few samples yields identical values
//   - the whole sample completes within ContractEvalBudget
//   - panics during evaluation are recovered and reported, never propagated
//
// The sample should be the actual passenger manifest the simulation would
// use, so validation exercises exactly the inputs the run will see.
func ValidateContract(fn PriorityFunc, sample []Passenger, cfg LayoutConfig) *ValidationReport {
	report := &ValidationReport{Valid: true}
	if fn == nil {
		report.addError("priority function is not callable")
		return report
	}
	if len(sample) == 0 {
		report.addWarning("validation sample is empty; contract accepted without evaluation")
		return report
	}

	ctx := ContractContext{Rows: cfg.Rows, PassengerCount: len(sample), Columns: cfg.Columns}

	type outcome struct {
		values []float64
		report *ValidationReport
	}
	done := make(chan outcome, 1)
	go func() {
		r := &ValidationReport{Valid: true}
		values := make([]float64, len(sample))
		for i, p := range sample {
			v, err := safeEval(fn, ViewOf(p, cfg), ctx)
			if err != nil {
				r.addError("passenger %d: %v", p.ID, err)
				done <- outcome{report: r}
				return
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				r.addError("passenger %d: priority must be finite, got %v", p.ID, v)
				done <- outcome{report: r}
				return
			}
			values[i] = v
		}
		// determinism re-check on the first few samples
		recheck := determinismRecheckCount
		if len(sample) < recheck {
			recheck = len(sample)
		}
		for i := 0; i < recheck; i++ {
			v, err := safeEval(fn, ViewOf(sample[i], cfg), ctx)
			if err != nil {
				r.addError("passenger %d (re-invocation): %v", sample[i].ID, err)
				done <- outcome{report: r}
				return
			}
			if v != values[i] {
				r.addError("non-deterministic: passenger %d returned %v then %v", sample[i].ID, values[i], v)
				done <- outcome{report: r}
				return
			}
		}
		done <- outcome{values: values, report: r}
	}()

	select {
	case out := <-done:
		report.Errors = append(report.Errors, out.report.Errors...)
		report.Warnings = append(report.Warnings, out.report.Warnings...)
		report.Valid = out.report.Valid
		if report.Valid && allEqual(out.values) && len(out.values) > 1 {
			report.addWarning("priority is constant across the sample; boarding order falls back to passenger id")
		}
	case <-time.After(ContractEvalBudget):
		report.addError("evaluation exceeded the %v budget", ContractEvalBudget)
	}
	return report
}

// safeEval invokes the priority function with panic recovery. A runtime
// fault becomes an error at this boundary and never reaches the simulator.
func safeEval(fn PriorityFunc, view PassengerView, ctx ContractContext) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("runtime fault during evaluation: %v", r)
		}
	}()
	return fn(view, ctx), nil
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// forbiddenConstructs are the textual rules applied to user-edited contract
// source. This is a prefilter, not a sandbox proof: it rejects constructs
// that could introduce IO, non-determinism, or unbounded execution before
// the code is ever compiled.
var forbiddenConstructs = []struct {
	pattern *regexp.Regexp
	reason  string
}{
	{regexp.MustCompile(`\beval\s*\(`), "dynamic code evaluation"},
	{regexp.MustCompile(`\bnew\s+Function\b|\bFunction\s*\(`), "dynamic function construction"},
	{regexp.MustCompile(`\bimport\b|\brequire\s*\(`), "module imports"},
	{regexp.MustCompile(`\bfetch\s*\(|\bXMLHttpRequest\b|\bWebSocket\b`), "network access"},
	{regexp.MustCompile(`\blocalStorage\b|\bsessionStorage\b|\bindexedDB\b`), "storage access"},
	{regexp.MustCompile(`\bsetTimeout\b|\bsetInterval\b`), "timers"},
	{regexp.MustCompile(`\basync\b|\bawait\b|\bPromise\b`), "asynchronous constructs"},
	{regexp.MustCompile(`\bMath\.random\b|\bDate\.now\b|\bnew\s+Date\b`), "non-deterministic sources"},
	{regexp.MustCompile(`while\s*\(\s*(true|1)\s*\)|for\s*\(\s*;\s*;\s*\)`), "unbounded loops"},
}

// PrefilterSource applies the static rules to a user-edited contract source
// string. Accepted source still runs under ValidateContract; the prefilter
// only blocks the obviously unsafe shapes up front.
func PrefilterSource(src string) *ValidationReport {
	report := &ValidationReport{Valid: true}
	if src == "" {
		report.addError("contract source is empty")
		return report
	}
	for _, rule := range forbiddenConstructs {
		if rule.pattern.MatchString(src) {
			report.addError("forbidden construct (%s): %s", rule.reason, rule.pattern.FindString(src))
		}
	}
	return report
}
