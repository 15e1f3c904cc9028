/*
   Generic multi-stage processing pipeline. Payloads are read from a Source,
   travel through each stage in order and end up in a Sink.
*/
package pipeline

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Payload is implemented by values that travel through the pipeline.
type Payload interface {
	// Clone returns a deep-copy of the payload.
	Clone() Payload

	// MarkAsProcessed is invoked by the pipeline once the payload reaches
	// the sink or gets dropped by a stage.
	MarkAsProcessed()
}

// Processor is implemented by types that process payloads as part of a
// pipeline stage. Returning a nil Payload drops it from the pipeline.
type Processor interface {
	Process(context.Context, Payload) (Payload, error)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(context.Context, Payload) (Payload, error)

func (f ProcessorFunc) Process(ctx context.Context, p Payload) (Payload, error) {
	return f(ctx, p)
}

// StageParams holds the channels a stage reads from and writes to.
type StageParams interface {
	// StageIndex returns the position of the stage in the pipeline.
	StageIndex() int
	Input() <-chan Payload
	Output() chan<- Payload
	Error() chan<- error
}

// StageRunner is implemented by types that can be chained together to form a
// multi-stage pipeline.
//
// Run reads payloads from the input channel and writes the processed ones to
// the output channel. It blocks until the input channel is closed or the
// context is cancelled.
type StageRunner interface {
	Run(context.Context, StageParams)
}

// Source produces the payloads fed into the pipeline.
type Source interface {
	// Next advances the source. It returns false once the source is
	// exhausted or an error occurred.
	Next(context.Context) bool
	Payload() Payload
	Error() error
}

// Sink consumes the payloads that made it through every stage.
type Sink interface {
	Consume(context.Context, Payload) error
}

// Pipeline is a sequence of stages.
type Pipeline struct {
	stages []StageRunner
}

// New returns a Pipeline whose payloads traverse the given stages in order.
func New(stages ...StageRunner) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process feeds every payload of source through the pipeline stages and hands
// the results to sink. It blocks until the source is exhausted and all
// payloads are consumed, an error occurs or ctx is cancelled. All errors
// reported by the source, the stages or the sink are returned.
//
// Process may be called concurrently with different sources and sinks.
func (p *Pipeline) Process(ctx context.Context, source Source, sink Sink) error {
	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Stage i reads from stageCh[i] and writes to stageCh[i+1]; the source
	// writes to the first channel and the sink reads from the last one.
	stageCh := make([]chan Payload, len(p.stages)+1)
	for i := range stageCh {
		stageCh[i] = make(chan Payload)
	}
	errCh := make(chan error, len(p.stages)+2)

	wg.Add(len(p.stages))
	for i := range p.stages {
		go func(idx int) {
			defer wg.Done()
			p.stages[idx].Run(ctx, &WorkerParams{
				Stage: idx,
				InCh:  stageCh[idx],
				OutCh: stageCh[idx+1],
				ErrCh: errCh,
			})
			close(stageCh[idx+1])
		}(i)
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		sourceWorker(ctx, source, stageCh[0], errCh)
		close(stageCh[0])
	}()
	go func() {
		defer wg.Done()
		sinkWorker(ctx, sink, stageCh[len(stageCh)-1], errCh)
	}()

	go func() {
		wg.Wait()
		close(errCh)
		cancel()
	}()

	var err error
	for pErr := range errCh {
		err = multierror.Append(err, pErr)
		cancel()
	}
	return err
}

func emitError(err error, errCh chan<- error) {
	select {
	case errCh <- err:
	default: // an error is already pending
	}
}
