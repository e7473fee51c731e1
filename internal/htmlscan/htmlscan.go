// Package htmlscan extracts a structural inventory from HTML markup:
// the CSS classes, element ids, and tag names a document uses, plus a
// per-element breakdown in document order. It runs a lenient streaming
// tokenizer over the raw text rather than building a DOM, so malformed
// or unclosed markup degrades to partial extraction instead of failing.
package htmlscan

import (
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/avelis/repoview/internal/errors"
)

// Element records one opening tag with its raw class and id attribute
// values. Class holds the unsplit attribute string.
type Element struct {
	Tag   string  `json:"tag"`
	Class *string `json:"class,omitempty"`
	ID    *string `json:"id,omitempty"`
}

// Analysis is the structural inventory of one document. Classes, IDs,
// and Tags are deduplicated and sorted ascending; Elements preserves
// document order and is neither deduplicated nor sorted.
type Analysis struct {
	Classes  []string  `json:"classes"`
	IDs      []string  `json:"ids"`
	Tags     []string  `json:"tags"`
	Elements []Element `json:"elements"`
}

// Scan tokenizes src and collects the inventory. Only opening and
// self-closing tags contribute; tag names are normalized to lower case,
// class attributes are split on whitespace into individual tokens, and
// id values are taken verbatim.
func Scan(src string) (*Analysis, error) {
	z := html.NewTokenizer(strings.NewReader(src))

	classSet := make(map[string]bool)
	idSet := make(map[string]bool)
	tagSet := make(map[string]bool)
	elements := make([]Element, 0)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			err := z.Err()
			if err == io.EOF {
				return &Analysis{
					Classes:  sortedKeys(classSet),
					IDs:      sortedKeys(idSet),
					Tags:     sortedKeys(tagSet),
					Elements: elements,
				}, nil
			}
			return nil, errors.NewParseFailed(err)

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			tag := strings.ToLower(tok.Data)
			tagSet[tag] = true

			el := Element{Tag: tag}
			for _, attr := range tok.Attr {
				switch strings.ToLower(attr.Key) {
				case "class":
					val := attr.Val
					el.Class = &val
					for _, c := range strings.Fields(val) {
						classSet[c] = true
					}
				case "id":
					val := attr.Val
					el.ID = &val
					idSet[val] = true
				}
			}
			elements = append(elements, el)
		}
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
