package textures

import (
	"context"
	"image"
	"sync"
)

// Job asks for the image at Path to be decoded for a texture unit.
type Job struct {
	Unit int
	Path string
}

// Result carries a decoded image or the error that prevented it.
type Result struct {
	Unit  int
	Path  string
	Image *image.RGBA
	Err   error
}

// Loader decodes images on background goroutines. Results are collected on
// the render thread with Drain; nothing here touches GL.
type Loader struct {
	jobs    chan Job
	results chan Result
	decode  func(path string) (*image.RGBA, error)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoader starts workers goroutines sharing a queue of queueSize jobs.
func NewLoader(workers, queueSize int) *Loader {
	return newLoader(workers, queueSize, DecodeFile)
}

func newLoader(workers, queueSize int, decode func(string) (*image.RGBA, error)) *Loader {
	workers = max(workers, 1)
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader{
		jobs:    make(chan Job, queueSize),
		results: make(chan Result, queueSize),
		decode:  decode,
		ctx:     ctx,
		cancel:  cancel,
	}
	for range workers {
		l.wg.Add(1)
		go l.worker()
	}
	return l
}

// Submit queues a job. It returns false if the queue is full or the loader
// has been shut down.
func (l *Loader) Submit(job Job) bool {
	if l.ctx.Err() != nil {
		return false
	}
	select {
	case l.jobs <- job:
		return true
	default:
		return false
	}
}

// SubmitBlocking waits for room in the queue or for shutdown.
func (l *Loader) SubmitBlocking(job Job) bool {
	if l.ctx.Err() != nil {
		return false
	}
	select {
	case l.jobs <- job:
		return true
	case <-l.ctx.Done():
		return false
	}
}

func (l *Loader) worker() {
	defer l.wg.Done()

	for {
		select {
		case job := <-l.jobs:
			img, err := l.decode(job.Path)
			res := Result{Unit: job.Unit, Path: job.Path, Image: img, Err: err}
			select {
			case l.results <- res:
			case <-l.ctx.Done():
				return
			}
		case <-l.ctx.Done():
			return
		}
	}
}

// Drain hands every result that is ready to fn without blocking and returns
// how many were processed. Call once per frame on the render thread.
func (l *Loader) Drain(fn func(Result)) int {
	n := 0
	for {
		select {
		case res := <-l.results:
			fn(res)
			n++
		default:
			return n
		}
	}
}

// Pending returns the number of queued jobs not yet picked up by a worker.
func (l *Loader) Pending() int {
	return len(l.jobs)
}

// Shutdown stops the workers and waits for them to exit. Undelivered
// results are dropped.
func (l *Loader) Shutdown() {
	l.cancel()
	l.wg.Wait()
}
