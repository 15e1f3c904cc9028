/*
   Long-running components of the application
*/
package service

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// Service is implemented by components that run until their work is done or
// they get cancelled.
type Service interface {
	Name() string

	// Run executes the service and blocks until its work is complete, the
	// context gets cancelled or an error occurs.
	Run(context.Context) error
}

// ServiceGroup is a set of services that run together.
type ServiceGroup []Service

// Run executes all services of the group with the provided context and
// blocks until every one of them has returned. The first failing service
// cancels the others; all reported errors are returned together.
func (g ServiceGroup) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(g))
	wg.Add(len(g))
	for _, s := range g {
		go func(s Service) {
			defer wg.Done()
			if err := s.Run(runCtx); err != nil {
				errCh <- xerrors.Errorf("%s: %w", s.Name(), err)
				cancel()
			}
		}(s)
	}
	wg.Wait()
	close(errCh)

	var err error
	for svcErr := range errCh {
		err = multierror.Append(err, svcErr)
	}
	return err
}
