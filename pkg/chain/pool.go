package chain

import (
	"errors"
	"runtime"
	"sync"
)

// ErrPoolClosed is returned by [Pool.Solve] after [Pool.Close].
var ErrPoolClosed = errors.New("pool closed")

// Pool is a fixed set of search workers started once and reused across
// solves.
//
// Each worker has its own inbound job channel; all workers report on a shared
// result channel. A job carries the read-only graph and a start range, and the
// worker builds a private [Searcher] for it, so no mutable state is shared
// between workers.
//
// Solve calls are serialized; Close is safe to call more than once.
type Pool struct {
	jobs    []chan job
	results chan result
	wg      sync.WaitGroup

	mu     sync.Mutex // serializes Solve and guards closed
	closed bool
}

// job is one chunk of start nodes for one worker.
type job struct {
	worker int
	g      *Graph
	starts Range
}

// result is the outcome of a job.
type result struct {
	worker int
	path   Path
	stats  SearchStats
}

// NewPool starts workers goroutines. A workers value below 1 selects
// runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	p := &Pool{
		jobs:    make([]chan job, workers),
		results: make(chan result, workers),
	}
	for i := range p.jobs {
		p.jobs[i] = make(chan job, 1)
		p.wg.Add(1)
		go p.worker(p.jobs[i])
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return len(p.jobs) }

// Solve searches g from every node, spreading the start nodes over the
// workers with [Partition]. It blocks until every dispatched chunk is done and
// returns the longest path, preferring the lowest worker index on ties,
// together with the summed search counters.
func (p *Pool) Solve(g *Graph) (Path, SearchStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, SearchStats{}, ErrPoolClosed
	}

	pending := 0
	for i, r := range Partition(g.NodeCount(), len(p.jobs)) {
		if r.Empty() {
			continue
		}
		p.jobs[i] <- job{worker: i, g: g, starts: r}
		pending++
	}

	paths := make([]Path, len(p.jobs))
	var stats SearchStats
	for range pending {
		r := <-p.results
		paths[r.worker] = r.path
		stats = stats.Add(r.stats)
	}

	return Longest(paths), stats, nil
}

// Close stops all workers and waits for them to exit.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	for _, ch := range p.jobs {
		close(ch)
	}
	p.wg.Wait()
	return nil
}

// worker runs jobs from its channel until the channel is closed.
func (p *Pool) worker(jobs <-chan job) {
	defer p.wg.Done()
	for j := range jobs {
		s := NewSearcher(j.g)
		path := s.Run(j.starts.Nodes())
		p.results <- result{worker: j.worker, path: path, stats: s.Stats()}
	}
}
