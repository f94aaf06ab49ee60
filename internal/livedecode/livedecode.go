// Package livedecode runs a G-code program through the geometry builder
// incrementally, emitting progress snapshots as it goes, and keeps
// completed jobs available for later retrieval. It backs cmd/toolpathd's
// websocket progress stream and JWT-gated result endpoint.
package livedecode

import (
	"fmt"
	"sync"

	"github.com/printforge/toolpath/internal/gcode"
	"github.com/printforge/toolpath/internal/motion"
)

// Progress is one snapshot emitted while a job decodes.
type Progress struct {
	JobID          string `json:"job_id"`
	LinesProcessed int    `json:"lines_processed"`
	LinesTotal     int    `json:"lines_total"`
	VerticesSoFar  int    `json:"vertices_so_far"`
	Done           bool   `json:"done"`
	Error          string `json:"error,omitempty"`
}

// Job is a completed decode's retained result.
type Job struct {
	ID    string
	Model *motion.Model
	Err   error
}

// Store keeps completed jobs available for retrieval by id, mirroring
// the teacher's pattern of guarding shared state with a RWMutex.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewStore returns an empty job store.
func NewStore() *Store {
	return &Store{jobs: make(map[string]*Job)}
}

func (s *Store) put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

// Get returns the job for id, if it has completed.
func (s *Store) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

// Run decodes text line-by-line, feeding the geometry builder as it goes
// and calling onProgress after every batch of lines, then stores the
// final result under jobID. Errors abort the traversal, matching spec.md
// §7's "a line that fails to tokenise aborts the whole traversal".
func (s *Store) Run(jobID string, lines []string, onProgress func(Progress)) {
	builder := motion.NewBuilder()
	total := len(lines)

	const batchSize = 200
	for i, line := range lines {
		cmd, err := gcode.ParseLine(line)
		if err != nil {
			s.finish(jobID, nil, err, onProgress, i, total)
			return
		}
		if err := builder.Feed(cmd); err != nil {
			s.finish(jobID, nil, err, onProgress, i, total)
			return
		}
		if i%batchSize == 0 {
			onProgress(Progress{JobID: jobID, LinesProcessed: i + 1, LinesTotal: total})
		}
	}

	model, err := builder.Finish()
	if err != nil {
		s.finish(jobID, nil, err, onProgress, total, total)
		return
	}
	s.finish(jobID, model, nil, onProgress, total, total)
}

func (s *Store) finish(jobID string, model *motion.Model, err error, onProgress func(Progress), processed, total int) {
	s.put(&Job{ID: jobID, Model: model, Err: err})
	p := Progress{JobID: jobID, LinesProcessed: processed, LinesTotal: total, Done: true}
	if model != nil {
		p.VerticesSoFar = len(model.Vertices)
	}
	if err != nil {
		p.Error = fmt.Sprintf("%v", err)
	}
	onProgress(p)
}
