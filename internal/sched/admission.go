package sched

// FixedPointScale is the integer-only fixed-point scale used by the LL
// bound. 10000 gives 0.01% precision without floating point; a target
// with cheap 64-bit multiplication could raise it, but this core assumes
// neither an FPU nor cheap wide multiplication.
const FixedPointScale uint64 = 10000

// horizonMultiplier bounds the PDA testing horizon: H = min(k*max(Ti),
// 60*tickRate), k=4.
const horizonMultiplier = 4

// Method names which feasibility test a Decision came from.
type Method int

const (
	MethodLL Method = iota
	MethodPDA
)

func (m Method) String() string {
	if m == MethodPDA {
		return "PDA"
	}
	return "LL"
}

// Decision is the verdict of one feasibility test.
type Decision struct {
	Accepted bool
	Method   Method
}

// AdmissionReport is what TestAdmission returns: the LL-bound and PDA
// decisions computed independently, plus which one the controller would
// actually have selected for this candidate set.
type AdmissionReport struct {
	LL       Decision
	PDA      Decision
	Selected Method
}

// Admission is the feasibility-test controller: stateless apart from the
// TickRate it needs to size the PDA horizon. It never mutates a
// registry, and rejecting a candidate costs nothing observable beyond
// the CPU time of the check.
type Admission struct {
	// TickRate is ticks per second, used only to cap the PDA horizon.
	// 1000 matches a 1ms tick convention.
	TickRate uint32
}

// NewAdmission builds a controller with a 1ms tick rate.
func NewAdmission() *Admission {
	return &Admission{TickRate: 1000}
}

// selectMethod picks LL if every task (existing plus candidate) is
// implicit-deadline, otherwise PDA.
func selectMethod(all []TaskParams) Method {
	for _, p := range all {
		if !p.Implicit() {
			return MethodPDA
		}
	}
	return MethodLL
}

// llAccept runs the Liu & Layland utilization bound: sum(floor(Ci*S/Ti)) <=
// S. Each term is floored, never rounded up, so the sum can only
// under-report utilization: a set whose true utilization exceeds 1 by
// less than one LSB of S per task can still be accepted.
func llAccept(all []TaskParams) bool {
	var sum uint64
	for _, p := range all {
		if p.T == 0 {
			return false
		}
		sum += p.Utilization(FixedPointScale)
	}
	return sum <= FixedPointScale
}

// horizon computes H = min(4*max(Ti), 60*tickRate).
func (a *Admission) horizon(all []TaskParams) int64 {
	var maxT uint32
	for _, p := range all {
		if p.T > maxT {
			maxT = p.T
		}
	}
	byPeriod := int64(horizonMultiplier) * int64(maxT)
	byWallClock := int64(60) * int64(a.TickRate)
	if byPeriod < byWallClock {
		return byPeriod
	}
	return byWallClock
}

// floorDiv computes floor(a/b) for b > 0, unlike Go's native truncating
// division.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// demand computes h(L) = sum max(0, floor((L-Di)/Ti)+1) * Ci for the
// given set: the total CPU time demanded by jobs with deadline <= L.
func demand(all []TaskParams, l int64) uint64 {
	var sum uint64
	for _, p := range all {
		if p.T == 0 {
			continue
		}
		term := floorDiv(l-int64(p.D), int64(p.T)) + 1
		if term <= 0 {
			continue
		}
		sum += uint64(term) * uint64(p.C)
	}
	return sum
}

// pdaAccept runs Processor Demand Analysis over every testing point up to
// the horizon: a set is schedulable iff demand(L) <= L at every point L
// where demand can jump (each task's deadline and every deadline plus a
// whole number of its own periods).
func (a *Admission) pdaAccept(all []TaskParams) bool {
	for _, p := range all {
		if p.T == 0 {
			return false
		}
	}

	h := a.horizon(all)
	if h <= 0 {
		return true
	}

	points := newTestingPoints()
	for _, p := range all {
		for l := int64(p.D); l <= h; l += int64(p.T) {
			points.add(l)
		}
	}

	for _, l := range points.ascending() {
		if demand(all, l) > uint64(l) {
			return false
		}
	}
	return true
}

// TestAdmission runs both feasibility tests independently against
// existing joined with candidate and reports which one the controller
// would have selected. It never mutates state.
func (a *Admission) TestAdmission(existing []TaskParams, candidate TaskParams) AdmissionReport {
	all := make([]TaskParams, 0, len(existing)+1)
	all = append(all, existing...)
	all = append(all, candidate)

	return AdmissionReport{
		LL:       Decision{Accepted: llAccept(all), Method: MethodLL},
		PDA:      Decision{Accepted: a.pdaAccept(all), Method: MethodPDA},
		Selected: selectMethod(all),
	}
}

// Accepts runs the selector and returns the single verdict the
// controller actually uses for admission.
func (a *Admission) Accepts(existing []TaskParams, candidate TaskParams) bool {
	report := a.TestAdmission(existing, candidate)
	if report.Selected == MethodLL {
		return report.LL.Accepted
	}
	return report.PDA.Accepted
}
