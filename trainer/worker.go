package trainer

import (
	"fmt"

	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/fighter"
	"github.com/pthm-cable/neuroarena/match"
	"github.com/pthm-cable/neuroarena/policy"
)

// WorkerFault reports that a worker terminated abnormally while
// processing a chunk of jobs.
type WorkerFault struct {
	WorkerID int
	Reason   any
}

func (e *WorkerFault) Error() string {
	return fmt.Sprintf("trainer: worker %d faulted: %v", e.WorkerID, e.Reason)
}

// runJob runs one headless match at unbounded simulation speed (no
// frame pacing, no rendering, no human input) and returns its result.
func runJob(cfg *config.Config, job Job) *match.Result {
	p1 := fighter.New(cfg, job.Spawn1X, 0, true)
	p2 := fighter.New(cfg, job.Spawn2X, 0, false)

	p1.Policy = policy.NewNeural(job.Genome1.Network)
	p2.Policy = policy.NewNeural(job.Genome2.Network)

	result := match.Run(cfg, job.ID, p1, p2, nil)
	result.Genome1ID = job.Genome1.ID
	result.Genome2ID = job.Genome2.ID
	return result
}

// runChunk runs every job in chunk sequentially on one worker,
// recovering a panic in any single match into a WorkerFault that
// aborts the remainder of the chunk (the caller is responsible for
// re-queuing jobs that never completed).
func runChunk(cfg *config.Config, workerID int, chunk []Job) (results []*match.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerFault{WorkerID: workerID, Reason: r}
		}
	}()

	results = make([]*match.Result, 0, len(chunk))
	for _, job := range chunk {
		results = append(results, runJob(cfg, job))
	}
	return results, nil
}
