package search

// exploredSet records the canonical keys already expanded in one call.
// It only grows.
type exploredSet[K comparable] struct {
	keys map[K]struct{}
}

func newExploredSet[K comparable]() *exploredSet[K] {
	return &exploredSet[K]{keys: make(map[K]struct{})}
}

func (e *exploredSet[K]) contains(key K) bool {
	_, ok := e.keys[key]
	return ok
}

func (e *exploredSet[K]) add(key K) {
	e.keys[key] = struct{}{}
}

func (e *exploredSet[K]) len() int {
	return len(e.keys)
}
