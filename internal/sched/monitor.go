package sched

// MissMonitor scans the ready set (and the currently running job, which
// may not be in the ready set) on every tick and counts each job
// instance's deadline miss exactly once.
type MissMonitor struct{}

// Scan walks every job in ready and, if running is non-nil, the running
// job, flagging a miss for any job whose absolute deadline has strictly
// passed and has not already been counted for this job instance. Policy
// is log-and-continue: the job keeps running, miss_count simply
// increments.
func (m *MissMonitor) Scan(now int64, ready *ReadySet, running *JobState) (missed []*JobState) {
	check := func(j *JobState) {
		if j.HasMissed(now) && !j.missFlagged {
			j.MissCount++
			j.missFlagged = true
			missed = append(missed, j)
		}
	}

	ready.Each(check)
	if running != nil && !ready.Contains(running.Task) {
		check(running)
	}
	return missed
}
