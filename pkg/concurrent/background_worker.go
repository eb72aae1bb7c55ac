package concurrent

import (
	"errors"
	"sync"
)

type JobFunc[T any] func(job T) error

// BackgroundWorker. fixed pool of goroutines draining a buffered job channel.
// job errors are collected and returned by Close.
type BackgroundWorker[T any] struct {
	workers   int
	msgC      chan T
	waitGroup sync.WaitGroup
	jobFunc   JobFunc[T]

	errMu sync.Mutex
	errs  []error
}

func NewBackgroundWorker[T any](workers, buffer int, jobFunc JobFunc[T]) *BackgroundWorker[T] {
	if workers <= 0 {
		workers = 1
	}
	return &BackgroundWorker[T]{
		workers: workers,
		msgC:    make(chan T, buffer),
		jobFunc: jobFunc,
	}
}

// TriggerProcessing queues a job. blocks while the buffer is full. must not be called after Close.
func (bw *BackgroundWorker[T]) TriggerProcessing(jobData T) {
	bw.msgC <- jobData
}

func (bw *BackgroundWorker[T]) Start() {
	bw.waitGroup.Add(bw.workers)
	for i := 0; i < bw.workers; i++ {
		go func() {
			defer bw.waitGroup.Done()
			for jobData := range bw.msgC {
				if err := bw.jobFunc(jobData); err != nil {
					bw.errMu.Lock()
					bw.errs = append(bw.errs, err)
					bw.errMu.Unlock()
				}
			}
		}()
	}
}

// Close stops accepting jobs, waits for the queued ones and returns their joined errors.
func (bw *BackgroundWorker[T]) Close() error {
	close(bw.msgC)
	bw.waitGroup.Wait()

	bw.errMu.Lock()
	defer bw.errMu.Unlock()
	return errors.Join(bw.errs...)
}
