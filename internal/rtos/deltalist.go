package rtos

import "github.com/edfcore/ticksched/internal/sched"

// deltaNode is one entry in the delayed list. Key is the delay, in
// ticks, beyond the node in front of it -- the classic Xinu-style
// delta-list encoding:
//
//	input delay(ms): 1, 2, 3
//	output delta list: 1 -> 1 -> 1
//
// The sum of keys from the head to a node is that node's absolute wake
// tick, so advancing the clock by one tick is a single decrement of the
// head's key, not a walk of the whole list.
type deltaNode struct {
	handle sched.TaskHandle
	key    int64
	next   *deltaNode
}

// DeltaList is the surrounding kernel's delayed-list collaborator: a
// structure keyed by wake time that the release engine drains one tick
// at a time. It implements sched.DelayedQueue.
type DeltaList struct {
	head *deltaNode
	last int64 // absolute tick the list was last advanced to
}

// NewDeltaList creates an empty delayed list anchored at tick 0.
func NewDeltaList() *DeltaList {
	return &DeltaList{}
}

// Schedule inserts handle to wake at the given absolute tick using the
// classic delta-list search-and-subtract insertion: walk the list
// consuming delay from each node's key until a node's key would exceed
// the remaining delay, insert before it, and charge that node's key for
// the delay it no longer has to cover on its own.
func (d *DeltaList) Schedule(wakeTick int64, handle sched.TaskHandle) {
	delay := wakeTick - d.last
	if delay < 0 {
		delay = 0
	}

	node := &deltaNode{handle: handle}
	var prev *deltaNode
	cur := d.head
	for cur != nil && cur.key <= delay {
		delay -= cur.key
		prev = cur
		cur = cur.next
	}

	node.key = delay
	node.next = cur
	if cur != nil {
		cur.key -= delay
	}
	if prev == nil {
		d.head = node
	} else {
		prev.next = node
	}
}

// DueAt advances the list to the given absolute tick and returns every
// handle whose wake tick is now due, in the order they were inserted
// among ties: the delta list already preserves insertion order for
// equal keys.
func (d *DeltaList) DueAt(now int64) []sched.TaskHandle {
	elapsed := now - d.last
	d.last = now
	if elapsed <= 0 {
		return nil
	}

	var due []sched.TaskHandle
	for d.head != nil && d.head.key <= elapsed {
		elapsed -= d.head.key
		due = append(due, d.head.handle)
		d.head = d.head.next
	}
	if d.head != nil {
		d.head.key -= elapsed
	}
	return due
}

// Len reports how many tasks are currently delayed.
func (d *DeltaList) Len() int {
	n := 0
	for cur := d.head; cur != nil; cur = cur.next {
		n++
	}
	return n
}
