package rtos

import (
	"testing"

	"github.com/edfcore/ticksched/internal/sched"
)

func TestDeltaListOrdersByWakeTick(t *testing.T) {
	d := NewDeltaList()
	d.Schedule(30, 1)
	d.Schedule(10, 2)
	d.Schedule(20, 3)

	due := d.DueAt(10)
	if len(due) != 1 || due[0] != 2 {
		t.Fatalf("DueAt(10) = %v, want [2]", due)
	}

	due = d.DueAt(20)
	if len(due) != 1 || due[0] != 3 {
		t.Fatalf("DueAt(20) = %v, want [3]", due)
	}

	due = d.DueAt(30)
	if len(due) != 1 || due[0] != 1 {
		t.Fatalf("DueAt(30) = %v, want [1]", due)
	}
}

func TestDeltaListTiesPreserveInsertionOrder(t *testing.T) {
	d := NewDeltaList()
	d.Schedule(100, sched.TaskHandle(1))
	d.Schedule(100, sched.TaskHandle(2))
	d.Schedule(100, sched.TaskHandle(3))

	due := d.DueAt(100)
	want := []sched.TaskHandle{1, 2, 3}
	if len(due) != len(want) {
		t.Fatalf("DueAt(100) = %v, want %v", due, want)
	}
	for i := range want {
		if due[i] != want[i] {
			t.Fatalf("DueAt(100)[%d] = %d, want %d", i, due[i], want[i])
		}
	}
}

func TestDeltaListNothingDueEarly(t *testing.T) {
	d := NewDeltaList()
	d.Schedule(50, sched.TaskHandle(1))

	if due := d.DueAt(10); len(due) != 0 {
		t.Fatalf("DueAt(10) = %v, want none due yet", due)
	}
	if due := d.DueAt(50); len(due) != 1 {
		t.Fatalf("DueAt(50) = %v, want task 1 due", due)
	}
}
