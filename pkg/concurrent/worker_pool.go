package concurrent

import (
	"sync"
)

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		res := jobFunc(job)
		wp.results <- res
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

/*
RunJobs jalanin semua jobs di pool numWorkers worker, hasil dikembalikan sesuai urutan Job.ID.
job ID harus 0..len(jobs)-1.
*/
func RunJobs[T any, G any](numWorkers int, jobs []Job[T], fn func(item T) (G, error)) ([]G, error) {
	wp := NewWorkerPool[Job[T], Result[G]](numWorkers, len(jobs))
	wp.Start(func(job Job[T]) Result[G] {
		val, err := fn(job.JobItem)
		return Result[G]{ID: job.ID, Val: val, Err: err}
	})

	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()
	wp.Wait()

	out := make([]G, len(jobs))
	var firstErr error
	for res := range wp.CollectResults() {
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
		out[res.ID] = res.Val
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
