package eval

import (
	"sort"
	"sync"
)

// JobTable tracks pipelines running in the background.
type JobTable struct {
	mu   sync.Mutex
	next int
	jobs map[int]*Job
}

// Job is one background pipeline.
type Job struct {
	ID   int
	Text string

	mu     sync.Mutex
	done   chan struct{}
	status int
}

func newJobTable() *JobTable {
	return &JobTable{next: 1, jobs: make(map[int]*Job)}
}

func (jt *JobTable) add(text string) *Job {
	jt.mu.Lock()
	defer jt.mu.Unlock()
	job := &Job{ID: jt.next, Text: text, done: make(chan struct{})}
	jt.jobs[job.ID] = job
	jt.next++
	return job
}

func (j *Job) finish(status int) {
	j.mu.Lock()
	j.status = status
	j.mu.Unlock()
	close(j.done)
}

// Done reports whether the job has finished, without blocking.
func (j *Job) Done() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

// Status returns the exit status of a finished job.
func (j *Job) Status() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// List returns the current jobs, ordered by ID.
func (jt *JobTable) List() []*Job {
	jt.mu.Lock()
	defer jt.mu.Unlock()
	jobs := make([]*Job, 0, len(jt.jobs))
	for _, job := range jt.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs
}

// Wait blocks until all current jobs have finished and removes them from the
// table. It returns the status of the job that finished last, or 0 if there
// was none.
func (jt *JobTable) Wait() int {
	status := 0
	for _, job := range jt.List() {
		<-job.done
		status = job.Status()
		jt.remove(job.ID)
	}
	return status
}

func (jt *JobTable) remove(id int) {
	jt.mu.Lock()
	defer jt.mu.Unlock()
	delete(jt.jobs, id)
}
