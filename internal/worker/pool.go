// worker/pool.go
package worker

// Task computes one value for the pool.
type Task[T any] func() T

// Result pairs a task's output with the key it was submitted under.
type Result[T any] struct {
	Key   string
	Value T
}

// Pool fans tasks out over a fixed number of goroutines and delivers
// results as they complete. Used for per-learner report aggregation,
// where each learner's stats can be computed independently.
type Pool[T any] struct {
	tasks   chan taskEnvelope[T]
	results chan Result[T]
}

type taskEnvelope[T any] struct {
	key string
	run Task[T]
}

func NewPool[T any](workers, buffer int) *Pool[T] {
	p := &Pool[T]{
		tasks:   make(chan taskEnvelope[T], buffer),
		results: make(chan Result[T], buffer),
	}

	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	for t := range p.tasks {
		p.results <- Result[T]{Key: t.key, Value: t.run()}
	}
}

func (p *Pool[T]) Submit(key string, run Task[T]) {
	p.tasks <- taskEnvelope[T]{key: key, run: run}
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops accepting tasks. Workers exit after draining the queue.
func (p *Pool[T]) Close() {
	close(p.tasks)
}
