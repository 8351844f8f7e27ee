package news

import "strings"

// URITable maps canonical labels to provider URIs and back.
type URITable struct {
	byLabel map[string]entry
	byURI   map[string]string
}

type entry struct {
	label string
	uri   string
}

// NewURITable builds a table from label -> URI pairs. Labels are matched
// case-insensitively, URIs exactly.
func NewURITable(pairs map[string]string) *URITable {
	t := &URITable{
		byLabel: make(map[string]entry, len(pairs)),
		byURI:   make(map[string]string, len(pairs)),
	}
	for label, uri := range pairs {
		t.byLabel[strings.ToLower(label)] = entry{label: label, uri: uri}
		t.byURI[uri] = label
	}
	return t
}

// URI returns the provider URI for label.
func (t *URITable) URI(label string) (string, bool) {
	e, ok := t.byLabel[strings.ToLower(strings.TrimSpace(label))]
	return e.uri, ok
}

// Label returns the canonical label for a provider URI.
func (t *URITable) Label(uri string) (string, bool) {
	label, ok := t.byURI[strings.TrimSpace(uri)]
	return label, ok
}

// Canonical returns the table's spelling of label.
func (t *URITable) Canonical(label string) (string, bool) {
	e, ok := t.byLabel[strings.ToLower(strings.TrimSpace(label))]
	return e.label, ok
}

var Countries = NewURITable(map[string]string{
	"USA":       "http://en.wikipedia.org/wiki/United_States",
	"UK":        "http://en.wikipedia.org/wiki/United_Kingdom",
	"Canada":    "http://en.wikipedia.org/wiki/Canada",
	"Australia": "http://en.wikipedia.org/wiki/Australia",
	"India":     "http://en.wikipedia.org/wiki/India",
	"Germany":   "http://en.wikipedia.org/wiki/Germany",
	"France":    "http://en.wikipedia.org/wiki/France",
	"Japan":     "http://en.wikipedia.org/wiki/Japan",
	"China":     "http://en.wikipedia.org/wiki/China",
	"Brazil":    "http://en.wikipedia.org/wiki/Brazil",
})

var Categories = NewURITable(map[string]string{
	"Business":      "news/Business",
	"Technology":    "news/Technology",
	"Science":       "news/Science",
	"Health":        "news/Health",
	"Sports":        "news/Sports",
	"Entertainment": "news/Arts_and_Entertainment",
	"Politics":      "news/Politics",
	"Environment":   "news/Environment",
})
