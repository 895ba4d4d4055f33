package types

// Semaphore implements a counting semaphore using a buffered channel. It
// bounds how many chunk-worker or root-level-expansion goroutines run
// concurrently during phase 3, the same backpressure pattern the teacher
// codebase uses to bound concurrent directory reads.
type Semaphore chan struct{}

// NewSemaphore creates a semaphore that allows up to n concurrent
// acquisitions. n must be at least 1: with n == 0 every Acquire waits for a
// Release from another goroutine, and a negative n panics. The callers'
// workerLimit helpers always pass at least 1.
func NewSemaphore(n int) Semaphore { return make(chan struct{}, n) }

// Acquire blocks until a slot is available, then claims it.
func (s Semaphore) Acquire() { s <- struct{}{} }

// Release frees a slot, unblocking one waiting Acquire call.
func (s Semaphore) Release() { <-s }
