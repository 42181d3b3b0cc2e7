package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario fixtures mirror a red/yellow/green LED task set running at a
// 1ms tick, the kind of small task set a preemptive demo typically uses.

func lowUtilizationSet() []TaskParams {
	return []TaskParams{
		{C: 100, D: 250, T: 500},
		{C: 150, D: 500, T: 1000},
		{C: 200, D: 1000, T: 2000},
	}
}

func preemptionSet() []TaskParams {
	return []TaskParams{
		{C: 80, D: 200, T: 400},
		{C: 150, D: 400, T: 800},
		{C: 400, D: 1000, T: 1600},
	}
}

func TestS1LowUtilizationAccepted(t *testing.T) {
	a := NewAdmission()
	set := lowUtilizationSet()

	accepted := []TaskParams{}
	for _, p := range set {
		report := a.TestAdmission(accepted, p)
		require.Equal(t, MethodPDA, report.Selected, "D < T for every task, selector must choose PDA")
		require.True(t, report.PDA.Accepted, "task %+v should be admitted in the low-utilization set", p)
		accepted = append(accepted, p)
	}
}

func TestS2PreemptionSetAccepted(t *testing.T) {
	a := NewAdmission()
	set := preemptionSet()

	accepted := []TaskParams{}
	for _, p := range set {
		report := a.TestAdmission(accepted, p)
		assert.True(t, report.PDA.Accepted, "task %+v should be admitted", p)
		accepted = append(accepted, p)
	}
}

func TestS3AdmissionRejectsOverload(t *testing.T) {
	a := NewAdmission()
	existing := preemptionSet()
	candidate := TaskParams{C: 150, D: 200, T: 200}

	report := a.TestAdmission(existing, candidate)
	assert.False(t, report.PDA.Accepted, "utilization exceeds 1 with this candidate, PDA must reject")
	assert.False(t, a.Accepts(existing, candidate))
}

func TestS4SelectorSwitchesOnConstrainedDeadlines(t *testing.T) {
	a := NewAdmission()

	implicitOnly := []TaskParams{{C: 100, D: 500, T: 500}}
	candidateImplicit := TaskParams{C: 200, D: 1000, T: 1000}
	report := a.TestAdmission(implicitOnly, candidateImplicit)
	assert.Equal(t, MethodLL, report.Selected, "every task has D==T, selector must choose LL")
	assert.True(t, report.LL.Accepted)

	constrained := []TaskParams{{C: 100, D: 500, T: 500}}
	candidateConstrained := TaskParams{C: 200, D: 800, T: 1000}
	report2 := a.TestAdmission(constrained, candidateConstrained)
	assert.Equal(t, MethodPDA, report2.Selected, "candidate has D<T, selector must choose PDA")
}

func TestS5PDAAcceptsMoreThanLL(t *testing.T) {
	a := NewAdmission()

	var accepted []TaskParams
	llAccepted, pdaAccepted := 0, 0
	for i := 0; i < 100; i++ {
		candidate := TaskParams{
			C: 5,
			T: 250,
			D: uint32(30 + i*5),
		}
		report := a.TestAdmission(accepted, candidate)
		if report.LL.Accepted {
			llAccepted = i + 1
		}
		if report.PDA.Accepted {
			pdaAccepted = i + 1
		}
		accepted = append(accepted, candidate)
	}

	assert.Greater(t, pdaAccepted, llAccepted,
		"PDA must accept strictly more of the staggered-deadline task set than the LL bound")
}

func TestLLBoundFixedPointIsConservativePerTerm(t *testing.T) {
	// Three tasks whose true utilization sums to exactly 1 but whose
	// per-term floor rounding must not be allowed to push the sum over
	// FixedPointScale.
	set := []TaskParams{
		{C: 1, D: 3, T: 3},
		{C: 1, D: 3, T: 3},
		{C: 1, D: 3, T: 3},
	}
	var sum uint64
	for _, p := range set {
		sum += p.Utilization(FixedPointScale)
	}
	assert.LessOrEqual(t, sum, FixedPointScale)
}

func TestAdmissionRejectsZeroPeriodWithoutPanicking(t *testing.T) {
	a := NewAdmission()
	candidate := TaskParams{C: 5, D: 10, T: 0}

	report := a.TestAdmission(nil, candidate)
	assert.False(t, report.LL.Accepted, "zero period has no finite utilization, LL must reject")
	assert.False(t, report.PDA.Accepted, "zero period has no finite horizon, PDA must reject")
	assert.False(t, a.Accepts(nil, candidate))
}

func TestFloorDivMatchesMathematicalFloor(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{7, 2, 3},
		{-7, 2, -4},
		{-1, 3, -1},
		{0, 5, 0},
		{6, 3, 2},
	}
	for _, c := range cases {
		got := floorDiv(c.a, c.b)
		assert.Equal(t, c.want, got, "floorDiv(%d,%d)", c.a, c.b)
	}
}
