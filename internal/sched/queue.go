package sched

import (
	"errors"

	"github.com/emirpasic/gods/trees/redblacktree"
)

var (
	// ErrEmpty is returned when removing from an empty queue.
	ErrEmpty = errors.New("queue is empty")
	// ErrNotFound is returned when a process is not in the queue.
	ErrNotFound = errors.New("process not in queue")
)

// Queue is an ordered collection of process IDs backed by a red-black tree.
// A process may appear in a queue at most once.
type Queue struct {
	rbt  *redblacktree.Tree     // ordered by the queue's comparator
	keys map[ProcessID]queueKey // lookup for RemoveByID
	seq  uint64                 // insertion counter, breaks priority ties
}

// NewPriorityQueue orders by descending priority; equal priorities keep insertion order.
func NewPriorityQueue() *Queue {
	return newQueue(byPriority)
}

// NewFIFOQueue orders by insertion alone.
func NewFIFOQueue() *Queue {
	return newQueue(bySequence)
}

func newQueue(cmp func(a, b any) int) *Queue {
	return &Queue{
		rbt:  redblacktree.NewWith(cmp),
		keys: make(map[ProcessID]queueKey),
	}
}

// Insert places id after every element of equal or higher priority.
// Inserting an ID that is already queued moves it to its new position.
func (q *Queue) Insert(id ProcessID, priority int) {
	if old, ok := q.keys[id]; ok {
		q.rbt.Remove(old)
	}
	q.seq++
	k := queueKey{priority: priority, seq: q.seq, id: id}
	q.rbt.Put(k, id)
	q.keys[id] = k
}

// PeekFront returns the first element without removing it.
func (q *Queue) PeekFront() (ProcessID, bool) {
	node := q.rbt.Left()
	if node == nil {
		return 0, false
	}
	return node.Value.(ProcessID), true
}

// RemoveFront detaches and returns the first element.
func (q *Queue) RemoveFront() (ProcessID, error) {
	node := q.rbt.Left()
	if node == nil {
		return 0, ErrEmpty
	}
	k := node.Key.(queueKey)
	q.rbt.Remove(k)
	delete(q.keys, k.id)
	return k.id, nil
}

// RemoveByID detaches the named element.
func (q *Queue) RemoveByID(id ProcessID) (ProcessID, error) {
	k, ok := q.keys[id]
	if !ok {
		return 0, ErrNotFound
	}
	q.rbt.Remove(k)
	delete(q.keys, id)
	return id, nil
}

// Contains reports whether id is queued.
func (q *Queue) Contains(id ProcessID) bool {
	_, ok := q.keys[id]
	return ok
}

// Len returns the number of queued elements.
func (q *Queue) Len() int {
	return q.rbt.Size()
}

// IDs returns the queued IDs in queue order. The slice is a copy.
func (q *Queue) IDs() []ProcessID {
	ids := make([]ProcessID, 0, q.rbt.Size())
	it := q.rbt.Iterator()
	for it.Next() {
		ids = append(ids, it.Value().(ProcessID))
	}
	return ids
}

// queueKey is used as a key in the red-black tree.
type queueKey struct {
	priority int
	seq      uint64
	id       ProcessID
}

// byPriority sorts higher priority first, then earlier insertion first.
func byPriority(a, b any) int {
	ka, kb := a.(queueKey), b.(queueKey)
	switch {
	case ka.priority > kb.priority:
		return -1
	case ka.priority < kb.priority:
		return 1
	}
	return bySequence(a, b)
}

func bySequence(a, b any) int {
	ka, kb := a.(queueKey), b.(queueKey)
	switch {
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}
