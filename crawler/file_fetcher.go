package crawler

import (
	"context"
	"io"
	"io/fs"

	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
	"golang.org/x/xerrors"
)

var _ pipeline.Processor = (*fileFetcher)(nil)

type fileFetcher struct {
	fsys fs.FS
}

func newFileFetcher(fsys fs.FS) *fileFetcher {
	return &fileFetcher{fsys: fsys}
}

func (ff *fileFetcher) Process(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*crawlerPayload)

	f, err := ff.fsys.Open(payload.PageID)
	if err != nil {
		return nil, xerrors.Errorf("open document %q: %w", payload.PageID, err)
	}
	defer func() { _ = f.Close() }()

	if _, err = io.Copy(&payload.RawContent, f); err != nil {
		return nil, xerrors.Errorf("read document %q: %w", payload.PageID, err)
	}
	return payload, nil
}
