package worklist

// Worklist is a FIFO queue which admits every element at most once over
// its lifetime. Elements that have already been processed are not queued
// again, which makes it suitable for graph traversals.
type Worklist[T comparable] struct {
	list []T
	seen map[T]struct{}
}

// Start worklist execution with a preloaded queue and an iteration
// function. The iteration function exposes the next element and a function with
// which to add more elements to the worklist.
func StartV[T comparable](start []T, do func(next T, add func(el T))) {
	W := Empty[T]()
	for _, e := range start {
		W.Add(e)
	}

	W.Process(do)
}

func Empty[T comparable]() Worklist[T] {
	return Worklist[T]{seen: make(map[T]struct{})}
}

func (w *Worklist[T]) GetNext() (ret T) {
	if len(w.list) == 0 {
		return
	}
	next := w.list[0]
	w.list = w.list[1:]
	return next
}

func (w *Worklist[T]) IsEmpty() bool {
	return len(w.list) == 0
}

func (w *Worklist[T]) Process(
	do func(
		next T,
		add func(element T))) {
	for !w.IsEmpty() {
		do(w.GetNext(), w.Add)
	}
}

// Add queues el unless it has been queued before.
func (w *Worklist[T]) Add(el T) {
	if w.seen == nil {
		w.seen = make(map[T]struct{})
	}
	if _, found := w.seen[el]; found {
		return
	}

	w.seen[el] = struct{}{}
	w.list = append(w.list, el)
}
