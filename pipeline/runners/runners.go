/*
   Built-in StageRunner implementations
*/
package runners

import "golang.org/x/xerrors"

func emitError(err error, errCh chan<- error) {
	select {
	case errCh <- err:
	default: // an error is already pending
	}
}

func stageError(stage int, err error) error {
	return xerrors.Errorf("pipeline stage %d: %w", stage, err)
}
