package crawler

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
	"golang.org/x/net/html"
	"golang.org/x/xerrors"
)

var _ pipeline.Processor = (*linkExtractor)(nil)

// linkExtractor collects the href targets of the anchor tags of a document.
// Each target is kept once; a link back to the document itself is dropped.
type linkExtractor struct{}

func newLinkExtractor() *linkExtractor {
	return &linkExtractor{}
}

func (le *linkExtractor) Process(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*crawlerPayload)

	seen := make(map[string]struct{})
	z := html.NewTokenizer(bytes.NewReader(payload.RawContent.Bytes()))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, xerrors.Errorf("parse document %q: %w", payload.PageID, err)
			}
			return payload, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" {
				continue
			}

			href, ok := hrefAttr(z, hasAttr)
			if !ok || href == payload.PageID {
				continue
			}
			if _, dup := seen[href]; dup {
				continue
			}
			seen[href] = struct{}{}
			payload.Links = append(payload.Links, href)
		}
	}
}

// hrefAttr returns the first non-empty href attribute of the current tag.
func hrefAttr(z *html.Tokenizer, hasAttr bool) (string, bool) {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) != "href" {
			continue
		}
		if href := strings.TrimSpace(string(val)); href != "" {
			return href, true
		}
	}
	return "", false
}
