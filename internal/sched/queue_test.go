package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue_DescendingPriority_StableTies(t *testing.T) {
	// GIVEN processes 1..5 inserted with priorities [3,1,4,1,5]
	q := NewPriorityQueue()
	for i, prio := range []int{3, 1, 4, 1, 5} {
		q.Insert(ProcessID(i+1), prio)
	}

	// WHEN the queue is drained from the front
	var got []ProcessID
	for q.Len() > 0 {
		id, err := q.RemoveFront()
		require.NoError(t, err)
		got = append(got, id)
	}

	// THEN priorities come out as [5,4,3,1,1] with the two 1s in insertion order
	assert.Equal(t, []ProcessID{5, 3, 1, 2, 4}, got)
}

func TestPriorityQueue_InsertAfterEqualPriority(t *testing.T) {
	// GIVEN A(2), B(2)
	q := NewPriorityQueue()
	q.Insert(1, 2)
	q.Insert(2, 2)

	// WHEN C(2) and D(7) are inserted
	q.Insert(3, 2)
	q.Insert(4, 7)

	// THEN D leads and C follows every earlier equal
	assert.Equal(t, []ProcessID{4, 1, 2, 3}, q.IDs())
}

func TestPriorityQueue_ReinsertMovesBehindEquals(t *testing.T) {
	// GIVEN A(1) running out of the queue and B(1) waiting
	q := NewPriorityQueue()
	q.Insert(1, 1)
	q.Insert(2, 1)
	id, err := q.RemoveFront()
	require.NoError(t, err)
	require.Equal(t, ProcessID(1), id)

	// WHEN A is returned to the queue
	q.Insert(1, 1)

	// THEN it queues behind B
	assert.Equal(t, []ProcessID{2, 1}, q.IDs())
}

func TestPriorityQueue_Empty(t *testing.T) {
	q := NewPriorityQueue()

	_, ok := q.PeekFront()
	assert.False(t, ok)
	_, err := q.RemoveFront()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.IDs())
}

func TestPriorityQueue_RemoveByID(t *testing.T) {
	q := NewPriorityQueue()
	q.Insert(1, 5)
	q.Insert(2, 3)
	q.Insert(3, 5)

	id, err := q.RemoveByID(3)
	require.NoError(t, err)
	assert.Equal(t, ProcessID(3), id)
	assert.False(t, q.Contains(3))
	assert.Equal(t, []ProcessID{1, 2}, q.IDs())

	_, err = q.RemoveByID(3)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, q.Len())
}

func TestPriorityQueue_InterleavedInsertRemove(t *testing.T) {
	q := NewPriorityQueue()
	q.Insert(1, 1)
	q.Insert(2, 9)
	front, ok := q.PeekFront()
	require.True(t, ok)
	assert.Equal(t, ProcessID(2), front)

	_, err := q.RemoveFront()
	require.NoError(t, err)
	q.Insert(3, 1)
	q.Insert(4, 4)
	_, err = q.RemoveByID(1)
	require.NoError(t, err)
	q.Insert(5, 4)

	assert.Equal(t, []ProcessID{4, 5, 3}, q.IDs())
}

func TestFIFOQueue_IgnoresPriority(t *testing.T) {
	q := NewFIFOQueue()
	q.Insert(1, 1)
	q.Insert(2, 9)
	q.Insert(3, 5)

	assert.Equal(t, []ProcessID{1, 2, 3}, q.IDs())
	id, err := q.RemoveFront()
	require.NoError(t, err)
	assert.Equal(t, ProcessID(1), id)
}
