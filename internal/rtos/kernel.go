package rtos

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/edfcore/ticksched/internal/sched"
	"github.com/edfcore/ticksched/internal/telemetry"
)

// RunHook is invoked once per tick for whichever task is currently
// executing. GPIO trace toggling, the kind of thing a busy-wait demo
// task does to make its execution visible on a logic analyzer, is
// exactly the kind of thing a RunHook would do; none is attached by
// default.
type RunHook func(tick int64, task *Task)

// Kernel is the demonstration kernel that drives the EDF core: a tick
// clock, a delta-encoded delayed list, and a single simulated CPU that
// consumes each running task's WCET one tick at a time, the way a
// busy-wait demo task burns CPU cycles on real hardware.
type Kernel struct {
	mu sync.Mutex

	Scheduler *sched.Scheduler
	clock     *TickClock
	delayed   *DeltaList
	tasks     map[sched.TaskHandle]*Task
	running   sched.TaskHandle

	lastSwitchOut sched.TaskHandle

	log      *telemetry.Logger
	RunHook  RunHook
	TickRate int

	csvFile   *os.File
	csvWriter *csv.Writer
}

// NewKernel builds a kernel around the given config and logger.
func NewKernel(cfg Config, log *telemetry.Logger) *Kernel {
	s := sched.NewScheduler()
	s.UseEDF = true

	k := &Kernel{
		Scheduler:     s,
		clock:         NewTickClock(256),
		delayed:       NewDeltaList(),
		tasks:         make(map[sched.TaskHandle]*Task),
		running:       sched.NoTaskHandle,
		lastSwitchOut: sched.NoTaskHandle,
		log:           log,
		TickRate:      cfg.TickRate,
	}
	s.OnSwitchIn = func(h sched.TaskHandle) {
		k.log.LogSwitch(k.clock.Count(), uint32(k.lastSwitchOut), uint32(h))
	}
	s.OnSwitchOut = func(h sched.TaskHandle) {
		k.lastSwitchOut = h
	}
	return k
}

// EnableCSVLogging opens path for a CSV trace of every tick event. Must
// be called before Run.
func (k *Kernel) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Write([]string{"tick", "event", "task", "deadline", "miss_count"})
	w.Flush()
	k.csvFile = f
	k.csvWriter = w
	return nil
}

func (k *Kernel) writeCSV(tick int64, event, task string, deadline int64, missCount uint32) {
	if k.csvWriter == nil {
		return
	}
	k.csvWriter.Write([]string{
		strconv.FormatInt(tick, 10),
		event,
		task,
		strconv.FormatInt(deadline, 10),
		strconv.FormatUint(uint64(missCount), 10),
	})
	k.csvWriter.Flush()
}

// CreateEDFTask wraps sched.Scheduler.CreateEDFTask with kernel-level
// task bookkeeping (name, trace ID, WCET counter).
func (k *Kernel) CreateEDFTask(name string, params sched.TaskParams) (*Task, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.clock.Count()
	report := k.Scheduler.TestAdmission(params)
	method := report.Selected.String()

	handle, _, err := k.Scheduler.CreateEDFTask(now, params)
	if err != nil {
		k.writeCSV(now, "reject", name, 0, 0)
		k.log.LogAdmission(name, false, method, err)
		return nil, err
	}

	t := NewTask(name, params)
	t.Handle = handle
	t.LastWake = now
	k.tasks[handle] = t
	k.writeCSV(now, "admit", name, now+int64(params.D), 0)
	k.log.LogAdmission(name, true, method, nil)
	return t, nil
}

// Step advances the simulation by exactly one tick: it runs the release
// engine and miss monitor, re-selects the EDF head, and lets whichever
// task is selected consume one tick of its WCET.
func (k *Kernel) Step(now int64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	events, missed := k.Scheduler.OnTick(now, k.delayed)
	for _, ev := range events {
		name := k.taskName(ev.Task)
		k.writeCSV(now, "release", name, ev.Deadline, 0)
		k.log.LogRelease(now, uint32(ev.Task), ev.Deadline, ev.Preempt)
	}
	for _, j := range missed {
		name := k.taskName(j.Task)
		k.writeCSV(now, "miss", name, j.AbsDeadline, j.MissCount)
		k.log.LogMiss(now, uint32(j.Task), j.AbsDeadline, j.MissCount)
	}

	next := k.Scheduler.SelectNext(sched.BandEDF)
	if next != k.running {
		k.Scheduler.SetRunning(next)
		k.running = next
		if next != sched.NoTaskHandle {
			k.writeCSV(now, "dispatch", k.taskName(next), 0, 0)
		}
	}

	if next == sched.NoTaskHandle {
		return
	}

	t := k.tasks[next]
	if t != nil && k.RunHook != nil {
		k.RunHook(now, t)
	}
	if t != nil {
		t.RanTicks++
	}

	if t != nil && t.RanTicks >= t.Params.C {
		t.RanTicks = 0
		k.delayUntilNextPeriod(next, &t.LastWake, t.Params.T)
		k.writeCSV(now, "finish", t.Name, 0, 0)
	}
}

// delayUntilNextPeriod suspends h until *lastWake+period and advances
// *lastWake by period, the way a periodic task's own sleep call would.
// Callers must already hold k.mu.
func (k *Kernel) delayUntilNextPeriod(h sched.TaskHandle, lastWake *int64, period uint32) {
	wake := *lastWake + int64(period)
	*lastWake = wake

	if job := k.Scheduler.Suspend(h); job != nil {
		k.delayed.Schedule(wake, h)
	}
	if k.running == h {
		k.Scheduler.SetRunning(sched.NoTaskHandle)
		k.running = sched.NoTaskHandle
	}
}

// DelayUntilNextPeriod is the periodic sleep entry point a task body calls
// in place of a plain busy-wait finish: it suspends the calling task until
// *lastWake+period, then advances *lastWake by period. The demo kernel
// dispatches one task context at a time, so "the caller" is whichever task
// is currently running.
func (k *Kernel) DelayUntilNextPeriod(lastWake *int64, period uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.delayUntilNextPeriod(k.running, lastWake, period)
}

func (k *Kernel) taskName(h sched.TaskHandle) string {
	if t, ok := k.tasks[h]; ok {
		return t.Name
	}
	return ""
}

// Run drives the tick clock and Step until ctx is cancelled.
func (k *Kernel) Run(ctx context.Context) {
	rate := k.TickRate
	if rate <= 0 {
		rate = 1000
	}
	k.clock.Start(time.Second / time.Duration(rate))
	defer func() {
		k.clock.Stop()
		if k.csvFile != nil {
			k.csvWriter.Flush()
			k.csvFile.Close()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-k.clock.Ch:
			k.Step(k.clock.Count())
		}
	}
}
