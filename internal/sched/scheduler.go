package sched

import "sync"

// Scheduler is the single process-wide EDF core: registry, ready sets,
// admission controller, dispatcher, release engine and miss monitor,
// serialized by one mutex. A single mutex-equivalent primitive is
// sufficient on uniprocessor with no lock hierarchy to manage, so every
// public method that touches scheduler state takes mu for its duration.
type Scheduler struct {
	mu sync.Mutex

	Registry   *Registry
	admission  *Admission
	dispatcher *Dispatcher
	monitor    *MissMonitor
	release    *ReleaseEngine

	// UseEDF is a runtime switch for whether the EDF band is active at
	// all. false reverts ready-list insertion to unsorted tail append
	// and selection to round-robin, with no admission control.
	UseEDF bool

	edfReady    *ReadySet
	legacyReady *ReadySet
	jobs        map[TaskHandle]*JobState
	running     *JobState

	// OnSwitchIn/OnSwitchOut are pure trace-hook callbacks. Absence means
	// no-op; they must never call back into the scheduler.
	OnSwitchIn  func(TaskHandle)
	OnSwitchOut func(TaskHandle)
}

// NewScheduler builds a Scheduler with EDF enabled and the default
// registry capacity.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		Registry:    NewRegistry(DefaultRegistryCapacity),
		admission:   NewAdmission(),
		dispatcher:  &Dispatcher{},
		monitor:     &MissMonitor{},
		UseEDF:      true,
		edfReady:    NewReadySet(true),
		legacyReady: NewReadySet(false),
		jobs:        make(map[TaskHandle]*JobState),
	}
	s.release = &ReleaseEngine{sched: s}
	return s
}

func (s *Scheduler) readySetFor(job *JobState) *ReadySet {
	if job.IsEDF && s.UseEDF {
		return s.edfReady
	}
	return s.legacyReady
}

// CreateEDFTask validates and admits a new EDF task. Admission runs
// before any state mutation: a rejected create leaves the registry and
// ready sets bit-identical to their pre-call state.
func (s *Scheduler) CreateEDFTask(now int64, params TaskParams) (TaskHandle, bool, error) {
	if !params.Valid() {
		return NoTaskHandle, false, ErrInvalidParameters
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UseEDF {
		if !s.admission.Accepts(s.Registry.Params(), params) {
			return NoTaskHandle, false, ErrNotSchedulable
		}
	}

	handle, err := s.Registry.Add(params)
	if err != nil {
		return NoTaskHandle, false, err
	}

	job := &JobState{
		Task:        handle,
		Params:      params,
		ReleaseTime: now,
		AbsDeadline: now + int64(params.D),
		NextRelease: now + int64(params.T),
		IsEDF:       s.UseEDF,
	}
	s.jobs[handle] = job
	s.readySetFor(job).Insert(job)

	preempt := s.dispatcher.ShouldPreempt(job, s.running)
	return handle, preempt, nil
}

// CreateLegacyTask registers a non-EDF task (idle task, timer task, or
// any other priority-scheduled task) with the given static priority. It
// never runs admission control: EDF and non-EDF tasks are never compared
// by deadline.
func (s *Scheduler) CreateLegacyTask(now int64, priority int32) (TaskHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, err := s.Registry.Add(TaskParams{})
	if err != nil {
		return NoTaskHandle, err
	}
	job := &JobState{Task: handle, ReleaseTime: now, IsEDF: false, LegacyPriority: priority}
	s.jobs[handle] = job
	s.legacyReady.Insert(job)
	return handle, nil
}

// OnTick drives the release engine and miss monitor for the given tick.
func (s *Scheduler) OnTick(now int64, delayed DelayedQueue) ([]ReleaseEvent, []*JobState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.release.OnTick(now, delayed)
}

// SelectNext returns the task that should run at the given priority
// band.
func (s *Scheduler) SelectNext(band PriorityBand) TaskHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatcher.SelectNext(band, s.edfReady, s.legacyReady)
}

// SetRunning tells the core which job the kernel actually switched into.
// The core does not perform the context switch itself; it only needs to
// know the running job's identity to make future preemption comparisons,
// and fires the trace hooks around the transition.
func (s *Scheduler) SetRunning(h TaskHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running != nil && s.OnSwitchOut != nil {
		s.OnSwitchOut(s.running.Task)
	}
	if h == NoTaskHandle {
		s.running = nil
		return
	}
	s.running = s.jobs[h]
	if s.OnSwitchIn != nil {
		s.OnSwitchIn(h)
	}
}

// Suspend removes a job from its ready set because it is voluntarily
// sleeping until its next period. The caller is responsible for handing
// the handle to a delayed structure keyed by job.NextRelease.
func (s *Scheduler) Suspend(h TaskHandle) *JobState {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[h]
	if !ok {
		return nil
	}
	s.readySetFor(job).Remove(h)
	return job
}

// DeleteTask removes a task from the registry and, if present, its ready
// set. It does not re-run admission on the remaining set, and any
// in-flight deadline-miss bookkeeping for the task is discarded.
func (s *Scheduler) DeleteTask(h TaskHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Registry.Remove(h); err != nil {
		return err
	}
	if job, ok := s.jobs[h]; ok {
		s.readySetFor(job).Remove(h)
	}
	delete(s.jobs, h)
	if s.running != nil && s.running.Task == h {
		s.running = nil
	}
	return nil
}

// TestAdmission returns the LL and PDA decisions for a candidate
// separately, without mutating the registry.
func (s *Scheduler) TestAdmission(candidate TaskParams) AdmissionReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admission.TestAdmission(s.Registry.Params(), candidate)
}

// Job returns the current job state for a task handle, mainly for tests
// and telemetry.
func (s *Scheduler) Job(h TaskHandle) (JobState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[h]
	if !ok {
		return JobState{}, false
	}
	return *j, true
}

// ReadyLen reports how many jobs are runnable in the EDF band, mainly for
// tests.
func (s *Scheduler) ReadyLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edfReady.Len()
}
