package matching

import (
	"errors"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/beevik/etree"
	"github.com/simwire/simwire/pkg/simulation"
)

// matchXML compares candidate and pattern as parsed XML documents,
// requiring full structural equality: element names, attributes, text
// content, and child order all significant; insignificant whitespace is
// trimmed.
func matchXML(pattern, candidate string) (bool, error) {
	want := etree.NewDocument()
	if err := want.ReadFromString(pattern); err != nil || want.Root() == nil {
		if err == nil {
			return false, &ParseError{Kind: simulation.MatcherXML, Value: pattern, Err: errNoRootElement}
		}
		return false, &ParseError{Kind: simulation.MatcherXML, Value: pattern, Err: err}
	}
	got := etree.NewDocument()
	if err := got.ReadFromString(candidate); err != nil || got.Root() == nil {
		return false, nil
	}
	return elementsEqual(want.Root(), got.Root()), nil
}

var errNoRootElement = errors.New("document has no root element")

func elementsEqual(a, b *etree.Element) bool {
	if a.FullTag() != b.FullTag() {
		return false
	}
	if !attrsEqual(a.Attr, b.Attr) {
		return false
	}
	if strings.TrimSpace(a.Text()) != strings.TrimSpace(b.Text()) {
		return false
	}
	ac, bc := a.ChildElements(), b.ChildElements()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !elementsEqual(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func attrsEqual(a, b []etree.Attr) bool {
	a, b = filterNamespaceDecls(a), filterNamespaceDecls(b)
	if len(a) != len(b) {
		return false
	}
	sortAttrs(a)
	sortAttrs(b)
	for i := range a {
		if a[i].FullKey() != b[i].FullKey() || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

func filterNamespaceDecls(attrs []etree.Attr) []etree.Attr {
	out := make([]etree.Attr, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns") {
			continue
		}
		out = append(out, attr)
	}
	return out
}

func sortAttrs(attrs []etree.Attr) {
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].FullKey() < attrs[j].FullKey()
	})
}

// matchXPath evaluates an XPath expression against the candidate parsed as
// XML; the field matches when the expression selects at least one node.
func matchXPath(pattern, candidate string) (bool, error) {
	expr, err := xpath.Compile(pattern)
	if err != nil {
		return false, &ParseError{Kind: simulation.MatcherXPath, Value: pattern, Err: err}
	}
	doc, err := xmlquery.Parse(strings.NewReader(candidate))
	if err != nil {
		return false, nil
	}
	return xmlquery.QuerySelector(doc, expr) != nil, nil
}
