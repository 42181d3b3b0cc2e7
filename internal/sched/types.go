// Package sched implements the core of an Earliest Deadline First real-time
// scheduler: a deadline-ordered ready set, an admission controller running
// the Liu & Layland bound and Processor Demand Analysis, a tick-driven
// release engine, a dispatcher, and a deadline-miss monitor.
//
// The package is deliberately narrow: it owns no goroutines, no timers, and
// no task-control-block storage. It is driven by a surrounding kernel (see
// internal/rtos for a demonstration one) through OnTick, CreateEDFTask,
// Suspend and the trace hooks.
package sched

// TaskHandle identifies an admitted task. Handles are issued from 0
// upward in creation order, so the zero value is a valid handle;
// NoTaskHandle is used as an explicit "no task" sentinel.
type TaskHandle uint32

// NoTaskHandle is returned where no task occupies a slot (e.g. an idle
// priority band with nothing ready).
const NoTaskHandle TaskHandle = ^TaskHandle(0)

// PriorityBand distinguishes the single EDF band from the legacy
// round-robin bands the stock kernel already schedules.
type PriorityBand uint8

const (
	// BandIdle is reserved for the idle task; never EDF-managed.
	BandIdle PriorityBand = 0
	// BandEDF is the single priority band EDF jobs occupy.
	BandEDF PriorityBand = 1
)

// TaskParams are the immutable timing parameters of an admitted task, all
// in ticks.
type TaskParams struct {
	C uint32 // worst-case execution time, C >= 1
	T uint32 // period, T >= C
	D uint32 // relative deadline, C <= D <= T
}

// Implicit reports whether this task uses the implicit-deadline model
// (D == T).
func (p TaskParams) Implicit() bool { return p.D == p.T }

// Valid checks the invariant 1 <= C <= D <= T.
func (p TaskParams) Valid() bool {
	return p.C >= 1 && p.C <= p.D && p.D <= p.T
}

// Utilization returns C/T scaled by S, floored, for the LL bound. A zero
// period has no finite utilization; Valid() already excludes it from any
// admitted task, but the pure feasibility-test entry points call this
// before Valid() ever runs, so it reports the worst case (fully loaded)
// rather than dividing by zero.
func (p TaskParams) Utilization(scale uint64) uint64 {
	if p.T == 0 {
		return scale
	}
	return uint64(p.C) * scale / uint64(p.T)
}

// JobState is the mutable per-job state of the one logical job currently
// live for a task.
type JobState struct {
	Task        TaskHandle
	Params      TaskParams
	ReleaseTime int64  // tick at which this job became ready
	AbsDeadline int64  // ReleaseTime + D
	NextRelease int64  // ReleaseTime + T
	MissCount   uint32 // monotonically non-decreasing
	IsEDF       bool
	// LegacyPriority is consulted only when IsEDF is false; higher value
	// wins, matching the stock kernel's priority discipline.
	LegacyPriority int32
	missFlagged    bool // already counted a miss for this job instance
	seq            uint64
}

// Refresh advances the job to its next period. The deadline is refreshed
// at the wake point, not at the prior sleep call, so a job that finished
// early never re-enters ready with a stale deadline.
func (j *JobState) Refresh(now int64) {
	j.ReleaseTime = j.NextRelease
	j.AbsDeadline = j.NextRelease + int64(j.Params.D)
	j.NextRelease = j.NextRelease + int64(j.Params.T)
	j.missFlagged = false
}

// HasMissed reports whether the job's absolute deadline has strictly
// passed as of now. Equality is not a miss: the deadline is the instant
// work must be complete by, not the last instant it may run.
func (j *JobState) HasMissed(now int64) bool {
	return now > j.AbsDeadline
}
