package sim

import (
	"container/heap"
	"time"
)

// Event is a unit of work run on the network's dispatch loop at a point on the logical clock
type Event struct {
	At  time.Duration
	Fun func(n *Network) error
	seq uint64
}

// eventQueue is a min-heap ordered by time, then by insertion order
type eventQueue []*Event

func (q eventQueue) Len() int {
	return len(q)
}

func (q eventQueue) Less(i, j int) bool {
	if q[i].At != q[j].At {
		return q[i].At < q[j].At
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(*Event))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}

// Dispatch schedules fun to run at an absolute clock time. Events scheduled in the past run next.
func (n *Network) Dispatch(at time.Duration, fun func(n *Network) error) {
	n.seq++
	heap.Push(&n.queue, &Event{At: max(at, n.Now), Fun: fun, seq: n.seq})
}

// After schedules fun to run delay after the current clock time
func (n *Network) After(delay time.Duration, fun func(n *Network) error) {
	n.Dispatch(n.Now+delay, fun)
}

// RepeatedTask runs fun every interval, starting at start, until the network stops
func (n *Network) RepeatedTask(start, interval time.Duration, fun func(n *Network) error) {
	var run func(n *Network) error
	run = func(n *Network) error {
		n.After(interval, run)
		return fun(n)
	}
	n.Dispatch(start, run)
}

func (n *Network) next() *Event {
	if n.queue.Len() == 0 {
		return nil
	}
	return heap.Pop(&n.queue).(*Event)
}

func (n *Network) peek() *Event {
	if n.queue.Len() == 0 {
		return nil
	}
	return n.queue[0]
}
