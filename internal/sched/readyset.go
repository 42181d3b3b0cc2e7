package sched

// readyNode is one link in the ready set's doubly linked list. EDF jobs
// are inserted sorted by AbsDeadline; legacy jobs are appended unsorted
// at the tail.
type readyNode struct {
	job        *JobState
	prev, next *readyNode
}

// ReadySet is a deadline-ordered (or, in legacy/round-robin mode,
// insertion-ordered) collection of runnable jobs for one priority band.
// Insert is O(n); PeekMin and Remove are O(1) given a handle.
type ReadySet struct {
	head, tail *readyNode
	index      map[TaskHandle]*readyNode
	seq        uint64
	sorted     bool
}

// NewReadySet creates a ready set. sorted selects EDF (deadline-ordered)
// behavior; false selects legacy tail-append behavior for non-EDF bands.
func NewReadySet(sorted bool) *ReadySet {
	return &ReadySet{index: make(map[TaskHandle]*readyNode), sorted: sorted}
}

// Len reports the number of jobs currently ready.
func (rs *ReadySet) Len() int { return len(rs.index) }

// Contains reports whether a task already has a live job in this ready
// set. A task never has more than one live job in a given ready set.
func (rs *ReadySet) Contains(h TaskHandle) bool {
	_, ok := rs.index[h]
	return ok
}

// Insert places job into the ready set. For a sorted set, insertion is
// ordered by AbsDeadline with ties broken by arrival order (FIFO): the
// sequence number is baked into the sort key. For an unsorted set, job
// is appended at the tail.
func (rs *ReadySet) Insert(job *JobState) {
	// A task never has two live entries in the same ready set.
	if old, ok := rs.index[job.Task]; ok {
		rs.unlink(old)
		delete(rs.index, job.Task)
	}

	job.seq = rs.seq
	rs.seq++
	n := &readyNode{job: job}

	if !rs.sorted || rs.head == nil {
		rs.appendTail(n)
		rs.index[job.Task] = n
		return
	}

	cur := rs.head
	for cur != nil && less(cur.job, job) {
		cur = cur.next
	}
	if cur == nil {
		rs.appendTail(n)
	} else {
		rs.insertBefore(n, cur)
	}
	rs.index[job.Task] = n
}

// less reports whether a sorts strictly before b: earlier deadline first,
// ties broken by earlier sequence number (FIFO).
func less(a, b *JobState) bool {
	if a.AbsDeadline != b.AbsDeadline {
		return a.AbsDeadline < b.AbsDeadline
	}
	return a.seq < b.seq
}

func (rs *ReadySet) appendTail(n *readyNode) {
	n.prev = rs.tail
	n.next = nil
	if rs.tail != nil {
		rs.tail.next = n
	} else {
		rs.head = n
	}
	rs.tail = n
}

func (rs *ReadySet) insertBefore(n, mark *readyNode) {
	n.prev = mark.prev
	n.next = mark
	if mark.prev != nil {
		mark.prev.next = n
	} else {
		rs.head = n
	}
	mark.prev = n
}

// PeekMin returns the job with the minimum AbsDeadline (the head of a
// sorted set) or, for an unsorted set, the job at the front of the
// round-robin order. It returns nil if the set is empty.
func (rs *ReadySet) PeekMin() *JobState {
	if rs.head == nil {
		return nil
	}
	return rs.head.job
}

// Remove detaches the job for handle h from the ready set in O(1). It is
// a no-op if h is not present.
func (rs *ReadySet) Remove(h TaskHandle) *JobState {
	n, ok := rs.index[h]
	if !ok {
		return nil
	}
	rs.unlink(n)
	delete(rs.index, h)
	return n.job
}

func (rs *ReadySet) unlink(n *readyNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		rs.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		rs.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// RotateToBack moves the current head to the tail without removing it
// from the set. It is the round-robin primitive the legacy (non-EDF)
// dispatch path uses in place of deadline ordering.
func (rs *ReadySet) RotateToBack() {
	if rs.head == nil || rs.head == rs.tail {
		return
	}
	n := rs.head
	rs.unlink(n)
	rs.appendTail(n)
	rs.index[n.job.Task] = n
}

// Each calls fn for every job currently in the ready set, head to tail.
// Used by the deadline-miss monitor's per-tick scan.
func (rs *ReadySet) Each(fn func(*JobState)) {
	for n := rs.head; n != nil; n = n.next {
		fn(n.job)
	}
}
