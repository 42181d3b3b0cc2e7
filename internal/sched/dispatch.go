package sched

// Dispatcher selects the next task to run at a given priority band, and
// makes the edge-triggered preemption decision whenever a task becomes
// ready.
type Dispatcher struct{}

// SelectNext returns the task that should run at the given band. For the
// EDF band this is the minimum-deadline ready job; for any other band it
// falls back to the stock round-robin policy (head of the legacy ready
// set, rotated to the back so the next call advances).
func (d *Dispatcher) SelectNext(band PriorityBand, edfReady, legacyReady *ReadySet) TaskHandle {
	if band == BandEDF {
		if j := edfReady.PeekMin(); j != nil {
			return j.Task
		}
		return NoTaskHandle
	}

	j := legacyReady.PeekMin()
	if j == nil {
		return NoTaskHandle
	}
	legacyReady.RotateToBack()
	return j.Task
}

// ShouldPreempt runs the four-way preemption matrix: EDF always beats
// legacy, legacy never beats EDF, and same-class comparisons fall back
// to deadline or static priority. running may be nil (nothing currently
// running), in which case waking always takes the CPU.
func (d *Dispatcher) ShouldPreempt(waking, running *JobState) bool {
	if running == nil {
		return true
	}

	switch {
	case !running.IsEDF && waking.IsEDF:
		// Legacy task running, EDF task at the higher priority band
		// wakes: request switch.
		return true
	case running.IsEDF && waking.IsEDF:
		// Both EDF: strictly earlier deadline preempts. Equal deadlines
		// favor the progress of the running job.
		return waking.AbsDeadline < running.AbsDeadline
	case running.IsEDF && !waking.IsEDF:
		// EDF task running, legacy task at a lower band wakes: no
		// switch.
		return false
	default:
		// Both non-EDF: legacy priority comparison, higher value wins.
		return waking.LegacyPriority > running.LegacyPriority
	}
}
