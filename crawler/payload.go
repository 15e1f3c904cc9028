package crawler

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
)

var (
	_ pipeline.Payload = (*crawlerPayload)(nil)

	// Payloads are recycled to keep allocations down while documents flow
	// through the pipeline.
	payloadPool = sync.Pool{
		New: func() any { return new(crawlerPayload) },
	}
)

type crawlerPayload struct {
	PageID string

	RawContent bytes.Buffer

	Links []string
	Title string
}

func (p *crawlerPayload) Clone() pipeline.Payload {
	newp := payloadPool.Get().(*crawlerPayload)
	newp.PageID = p.PageID
	newp.Links = append([]string(nil), p.Links...)
	newp.Title = p.Title

	_, err := io.Copy(&newp.RawContent, bytes.NewReader(p.RawContent.Bytes()))
	if err != nil {
		panic(fmt.Sprintf("error while cloning payload RawContent: %v", err))
	}
	return newp
}

// MarkAsProcessed resets the payload and returns it to the pool. Slices and
// the content buffer keep their capacity so the next document can reuse it.
func (p *crawlerPayload) MarkAsProcessed() {
	p.PageID = ""
	p.RawContent.Reset()
	p.Links = p.Links[:0]
	p.Title = ""
	payloadPool.Put(p)
}

func isHTML(name string) bool {
	return strings.HasSuffix(name, ".html")
}
