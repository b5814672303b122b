package workers

import (
	"database/sql"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/zoec98/imageedit/database"
)

const (
	defaultPruneWorkers = 10
	defaultProbeTimeout = 2 * time.Second
)

// Pruner sweeps the upload history for dead external URLs and removes
// them. One sweep runs to completion before the next begins; within a
// sweep, probes fan out over a bounded worker pool.
type Pruner struct {
	DB       *sql.DB
	Prober   HeadProber
	Workers  int
	Interval time.Duration // 0 means a single sweep at startup

	StopChan chan struct{}
	Wg       sync.WaitGroup
}

// NewPruner builds a pruner over the given database handle. When prober is
// nil an HTTP client with the default probe timeout is used.
func NewPruner(db *sql.DB, prober HeadProber, numWorkers int, interval time.Duration) *Pruner {
	if numWorkers <= 0 {
		numWorkers = defaultPruneWorkers
	}
	if prober == nil {
		prober = &http.Client{Timeout: defaultProbeTimeout}
	}
	return &Pruner{
		DB:       db,
		Prober:   prober,
		Workers:  numWorkers,
		Interval: interval,
		StopChan: make(chan struct{}),
	}
}

// Start launches the background sweep loop. A sweep failure is logged and
// otherwise swallowed: losing a cycle is non-fatal, the stale rows are
// picked up by the next one. Startup is never blocked or aborted by it.
func (p *Pruner) Start() {
	p.Wg.Add(1)
	go func() {
		defer p.Wg.Done()

		if err := p.RunOnce(); err != nil {
			log.Printf("upload history prune failed: %v", err)
		}

		if p.Interval <= 0 {
			return
		}
		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := p.RunOnce(); err != nil {
					log.Printf("upload history prune failed: %v", err)
				}
			case <-p.StopChan:
				return
			}
		}
	}()
}

// Stop signals the sweep loop and waits for any in-flight sweep to finish.
func (p *Pruner) Stop() {
	close(p.StopChan)
	p.Wg.Wait()
}

// RunOnce performs one full sweep: snapshot every (id, url) pair in a
// single read, probe them all through the worker pool, then delete the
// dead ones in one batch. An empty history is a no-op that issues no
// probes and no writes.
func (p *Pruner) RunOnce() error {
	refs, err := database.GetUploadRefs(p.DB)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	// each worker indexes into refs/results directly, so every probe
	// result stays paired with the id it was taken for no matter how
	// the pool interleaves
	results := make([]bool, len(refs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	numWorkers := p.Workers
	if numWorkers > len(refs) {
		numWorkers = len(refs)
	}
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = IsURLAlive(refs[i].URL, p.Prober)
			}
		}()
	}
	for i := range refs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var deadIDs []uint
	for i, ref := range refs {
		if !results[i] {
			deadIDs = append(deadIDs, ref.UploadID)
		}
	}
	if len(deadIDs) == 0 {
		return nil
	}

	if err := database.DeleteUploadsByID(p.DB, deadIDs); err != nil {
		return err
	}
	log.Printf("pruned %d dead upload(s) from history", len(deadIDs))
	return nil
}
