package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// strippedText concatenates every descendant text node of sel, each trimmed, without separators.
// Script and style contents are skipped.
func strippedText(sel *goquery.Selection) string {
	var buf strings.Builder
	for _, node := range sel.Nodes {
		writeStripped(&buf, node)
	}
	return buf.String()
}

func writeStripped(buf *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		buf.WriteString(strings.TrimSpace(node.Data))
		return
	case html.ElementNode:
		if node.Data == "script" || node.Data == "style" {
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeStripped(buf, child)
	}
}

// nodeText is strippedText for a single, possibly nil, node.
func nodeText(node *html.Node) string {
	if node == nil {
		return ""
	}
	var buf strings.Builder
	writeStripped(&buf, node)
	return buf.String()
}

// findNext returns the first element named tag after sel's first node in document order,
// descendants included, or nil.
func findNext(sel *goquery.Selection, tag string) *html.Node {
	if sel.Length() == 0 {
		return nil
	}
	for node := nextInDocument(sel.Get(0)); node != nil; node = nextInDocument(node) {
		if node.Type == html.ElementNode && node.Data == tag {
			return node
		}
	}
	return nil
}

func nextInDocument(node *html.Node) *html.Node {
	if node.FirstChild != nil {
		return node.FirstChild
	}
	for ; node != nil; node = node.Parent {
		if node.NextSibling != nil {
			return node.NextSibling
		}
	}
	return nil
}
