package crawler

import (
	"bytes"
	"context"
	"strings"

	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var _ pipeline.Processor = (*titleExtractor)(nil)

// titleExtractor fills in the plain-text title of a document. Only the first
// title element counts.
type titleExtractor struct {
	policy *bluemonday.Policy
}

func newTitleExtractor() *titleExtractor {
	return &titleExtractor{
		policy: bluemonday.StrictPolicy(),
	}
}

func (te *titleExtractor) Process(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*crawlerPayload)

	if title, found := titleText(payload.RawContent.Bytes()); found {
		// Title contents are not parsed as markup so any tags in there are
		// still part of the text.
		title = html.UnescapeString(te.policy.Sanitize(title))
		payload.Title = strings.Join(strings.Fields(title), " ")
	}
	return payload, nil
}

// titleText returns the entity-decoded text of the first title element.
// Malformed documents yield whatever was read up to the error.
func titleText(doc []byte) (string, bool) {
	var (
		z       = html.NewTokenizer(bytes.NewReader(doc))
		inTitle bool
		text    strings.Builder
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return text.String(), inTitle
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "title" {
				inTitle = true
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); inTitle && string(name) == "title" {
				return text.String(), true
			}
		case html.TextToken:
			if inTitle {
				_, _ = text.Write(z.Text())
			}
		}
	}
}
