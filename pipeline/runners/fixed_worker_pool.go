package runners

import (
	"context"
	"sync"

	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
)

type fixedWorkerPool struct {
	fifos []pipeline.StageRunner
}

// FixedWorkerPool returns a StageRunner that spins up numWorkers FIFO
// runners sharing the same input and output channels. Payloads may leave the
// stage in a different order than they entered it.
func FixedWorkerPool(proc pipeline.Processor, numWorkers int) pipeline.StageRunner {
	if numWorkers <= 0 {
		panic("FixedWorkerPool: numWorkers must be greater than 0")
	}

	fifos := make([]pipeline.StageRunner, numWorkers)
	for i := range fifos {
		fifos[i] = FIFO(proc)
	}
	return &fixedWorkerPool{fifos: fifos}
}

func (p *fixedWorkerPool) Run(ctx context.Context, params pipeline.StageParams) {
	var wg sync.WaitGroup
	wg.Add(len(p.fifos))
	for i := range p.fifos {
		go func(idx int) {
			defer wg.Done()
			p.fifos[idx].Run(ctx, params)
		}(i)
	}
	wg.Wait()
}
