package runners

import (
	"context"

	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
)

type fifo struct {
	proc pipeline.Processor
}

// FIFO returns a StageRunner that hands payloads to proc one at a time, in
// the order they arrive, and forwards the results to the next stage.
func FIFO(proc pipeline.Processor) pipeline.StageRunner {
	return fifo{proc: proc}
}

func (r fifo) Run(ctx context.Context, params pipeline.StageParams) {
	for {
		select {
		case <-ctx.Done():
			return
		case payloadIn, open := <-params.Input():
			if !open {
				return
			}

			payloadOut, err := r.proc.Process(ctx, payloadIn)
			if err != nil {
				emitError(stageError(params.StageIndex(), err), params.Error())
			}

			// Nothing left to do for dropped payloads.
			if payloadOut == nil {
				payloadIn.MarkAsProcessed()
				continue
			}

			select {
			case params.Output() <- payloadOut:
			case <-ctx.Done():
				return
			}
		}
	}
}
