package rtos

import (
	"github.com/google/uuid"

	"github.com/edfcore/ticksched/internal/sched"
)

// Task is the kernel-side record for one created task: its EDF core
// handle, a human-readable name, a stable trace ID, and its timing
// parameters. The core's TaskHandle stays the numeric identity used for
// admission and dispatch; the UUID only exists for logs and the CSV
// trace, the way a real kernel's task name exists purely for debugging.
type Task struct {
	Handle   sched.TaskHandle
	Name     string
	TraceID  uuid.UUID
	Params   sched.TaskParams
	LastWake int64
	// RanTicks is WCET consumed by the job's current instance. It lives on
	// the task, not the kernel, so a task preempted mid-job resumes at the
	// tick it left off instead of losing its progress to whoever ran while
	// it was off-CPU.
	RanTicks uint32
}

// NewTask wraps a task's timing parameters with a generated trace ID.
func NewTask(name string, params sched.TaskParams) *Task {
	return &Task{
		Name:    name,
		TraceID: uuid.New(),
		Params:  params,
	}
}
