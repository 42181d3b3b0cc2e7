package sched

// DelayedQueue is a delayed-list data structure keyed by wake time,
// supplied by the surrounding kernel. The core only ever asks it one
// question per tick: which tasks are due to wake now. See internal/rtos
// for a delta-list implementation.
type DelayedQueue interface {
	// DueAt removes and returns, in deterministic order, every task
	// handle whose wake tick is now due. Ties (multiple tasks waking on
	// the same tick) must come back in a stable order.
	DueAt(now int64) []TaskHandle
}

// ReleaseEvent records one task's release during a tick, for telemetry
// and for the kernel to act on the preemption verdict.
type ReleaseEvent struct {
	Task     TaskHandle
	Preempt  bool
	Deadline int64
}

// ReleaseEngine moves delayed jobs whose wake time arrived into the
// ready set on every tick, refreshing EDF deadlines at the wake point
// rather than at the prior suspend call, then runs the preemption check
// for each.
type ReleaseEngine struct {
	sched *Scheduler
}

// OnTick drains every task due at now from delayed, releases it into the
// appropriate ready set, and returns one ReleaseEvent per released task
// plus the miss-monitor's verdicts for this tick.
func (re *ReleaseEngine) OnTick(now int64, delayed DelayedQueue) (events []ReleaseEvent, missed []*JobState) {
	s := re.sched
	for _, h := range delayed.DueAt(now) {
		job, ok := s.jobs[h]
		if !ok {
			continue
		}

		if job.IsEDF {
			job.Refresh(now)
		} else {
			job.ReleaseTime = now
		}

		s.readySetFor(job).Insert(job)

		preempt := s.dispatcher.ShouldPreempt(job, s.running)
		events = append(events, ReleaseEvent{Task: h, Preempt: preempt, Deadline: job.AbsDeadline})
	}

	missed = s.monitor.Scan(now, s.edfReady, s.running)
	return events, missed
}
