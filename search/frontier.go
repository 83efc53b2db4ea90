package search

import "container/heap"

type frontierEntry struct {
	id       NodeID
	priority float64
	seq      uint64
}

// entryHeap orders by priority, then by insertion sequence so that equal
// priorities pop first-in first-out.
type entryHeap []frontierEntry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(frontierEntry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// frontier is the open list of one search call. It may hold several
// entries for the same state; stale ones are dropped at pop time.
type frontier struct {
	entries entryHeap
	nextSeq uint64
	peak    int
}

func newFrontier() *frontier {
	return &frontier{}
}

func (f *frontier) push(id NodeID, priority float64) {
	heap.Push(&f.entries, frontierEntry{id: id, priority: priority, seq: f.nextSeq})
	f.nextSeq++
	if n := len(f.entries); n > f.peak {
		f.peak = n
	}
}

// pop removes the lowest-priority entry. ok is false when empty.
func (f *frontier) pop() (entry frontierEntry, ok bool) {
	if len(f.entries) == 0 {
		return frontierEntry{}, false
	}
	return heap.Pop(&f.entries).(frontierEntry), true
}

func (f *frontier) len() int {
	return len(f.entries)
}
