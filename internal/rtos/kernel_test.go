package rtos

import (
	"io"
	"testing"

	"github.com/edfcore/ticksched/internal/sched"
	"github.com/edfcore/ticksched/internal/telemetry"
)

func newTestKernel(t *testing.T) *Kernel {
	t.Helper()
	cfg := Load("")
	return NewKernel(cfg, telemetry.New(io.Discard))
}

// TestKernelRunsLowUtilizationSetWithoutMisses is scenario S1: three
// tasks well under U=1 should complete every job without a single
// deadline miss over one full hyperperiod.
func TestKernelRunsLowUtilizationSetWithoutMisses(t *testing.T) {
	k := newTestKernel(t)

	specs := []struct {
		name    string
		c, d, t uint32
	}{
		{"Red", 100, 250, 500},
		{"Yellow", 150, 500, 1000},
		{"Green", 200, 1000, 2000},
	}

	for _, s := range specs {
		if _, err := k.CreateEDFTask(s.name, sched.TaskParams{C: s.c, D: s.d, T: s.t}); err != nil {
			t.Fatalf("create %s: %v", s.name, err)
		}
	}

	for tick := int64(1); tick <= 2000; tick++ {
		k.Step(tick)
	}

	for h, task := range k.tasks {
		job, _ := k.Scheduler.Job(h)
		if job.MissCount != 0 {
			t.Fatalf("task %s missed %d deadlines, want 0", task.Name, job.MissCount)
		}
	}
}

// TestKernelPreemptsLongTaskInPreemptionSet is scenario S2: the
// long-WCET task must not monopolize the CPU once a shorter-deadline
// task is released.
func TestKernelPreemptsLongTaskInPreemptionSet(t *testing.T) {
	k := newTestKernel(t)

	red, err := k.CreateEDFTask("Red", sched.TaskParams{C: 80, D: 200, T: 400})
	if err != nil {
		t.Fatalf("create Red: %v", err)
	}
	_, err = k.CreateEDFTask("Yellow", sched.TaskParams{C: 150, D: 400, T: 800})
	if err != nil {
		t.Fatalf("create Yellow: %v", err)
	}
	green, err := k.CreateEDFTask("Green", sched.TaskParams{C: 400, D: 1000, T: 1600})
	if err != nil {
		t.Fatalf("create Green: %v", err)
	}

	sawGreenRunning := false
	sawSwitchAwayFromGreen := false
	for tick := int64(1); tick <= 400; tick++ {
		k.Step(tick)
		if k.running == green.Handle {
			sawGreenRunning = true
		} else if sawGreenRunning && k.running == red.Handle {
			sawSwitchAwayFromGreen = true
		}
	}

	if !sawSwitchAwayFromGreen {
		t.Fatalf("expected Red to preempt Green within Green's first job")
	}
}

// TestKernelPreemptedTaskKeepsProgress covers the other half of S2: a
// task repeatedly preempted before it finishes its WCET must still
// complete every job with zero misses, because the WCET it already ran
// before being preempted must not be discarded on resumption.
func TestKernelPreemptedTaskKeepsProgress(t *testing.T) {
	k := newTestKernel(t)

	_, err := k.CreateEDFTask("Red", sched.TaskParams{C: 80, D: 200, T: 400})
	if err != nil {
		t.Fatalf("create Red: %v", err)
	}
	_, err = k.CreateEDFTask("Yellow", sched.TaskParams{C: 150, D: 400, T: 800})
	if err != nil {
		t.Fatalf("create Yellow: %v", err)
	}
	green, err := k.CreateEDFTask("Green", sched.TaskParams{C: 400, D: 1000, T: 1600})
	if err != nil {
		t.Fatalf("create Green: %v", err)
	}

	for tick := int64(1); tick <= 1600; tick++ {
		k.Step(tick)
	}

	job, _ := k.Scheduler.Job(green.Handle)
	if job.MissCount != 0 {
		t.Fatalf("Green missed %d deadlines under sustained preemption, want 0", job.MissCount)
	}
}

// TestKernelCountsOverrunExactlyOnce is scenario S6: a task that runs
// far beyond the WCET it was admitted with, past its deadline, must
// accrue exactly one miss per job instance.
func TestKernelCountsOverrunExactlyOnce(t *testing.T) {
	k := newTestKernel(t)

	offender, err := k.CreateEDFTask("Offender", sched.TaskParams{C: 10, D: 20, T: 200})
	if err != nil {
		t.Fatalf("create Offender: %v", err)
	}
	// The kernel burns Params.C ticks per job; raising it after admission
	// makes every job overrun its declared WCET and its deadline.
	offender.Params.C = 100

	for tick := int64(1); tick <= 200; tick++ {
		k.Step(tick)
	}

	job, _ := k.Scheduler.Job(offender.Handle)
	if job.MissCount != 1 {
		t.Fatalf("MissCount = %d, want exactly 1 for the single overrun job instance", job.MissCount)
	}
}

// TestDelayUntilNextPeriodAdvancesLastWakeAndSuspends checks the
// periodic sleep entry point directly: it must suspend the running
// task and advance lastWake by exactly period, independent of Step's
// own WCET-exhaustion path.
func TestDelayUntilNextPeriodAdvancesLastWakeAndSuspends(t *testing.T) {
	k := newTestKernel(t)

	task, err := k.CreateEDFTask("Solo", sched.TaskParams{C: 50, D: 100, T: 200})
	if err != nil {
		t.Fatalf("create Solo: %v", err)
	}
	k.running = task.Handle
	k.Scheduler.SetRunning(task.Handle)

	lastWake := task.LastWake
	k.DelayUntilNextPeriod(&lastWake, task.Params.T)

	if lastWake != task.LastWake+int64(task.Params.T) {
		t.Fatalf("lastWake = %d, want %d", lastWake, task.LastWake+int64(task.Params.T))
	}
	if k.running != sched.NoTaskHandle {
		t.Fatalf("running = %v, want NoTaskHandle after DelayUntilNextPeriod", k.running)
	}
	if k.delayed.Len() != 1 {
		t.Fatalf("delayed.Len() = %d, want 1 task scheduled to wake", k.delayed.Len())
	}
}
