package web

import (
	"net/url"

	"golang.org/x/net/html"
)

// imageSrcFromNode returns the src attribute of the given html node. It
// returns the empty string if the node is not an img element or has no src.
func imageSrcFromNode(n *html.Node) string {
	if n.Type != html.ElementNode || n.Data != "img" {
		return ""
	}

	for _, a := range n.Attr {
		if a.Key == "src" {
			return a.Val
		}
	}

	return ""
}

// ForEachNode applies a function to the given node and each of its
// descendants.
func ForEachNode(node *html.Node, fn func(n *html.Node) error) error {
	var iter func(n *html.Node) error
	iter = func(n *html.Node) error {
		err := fn(n)
		if err != nil {
			return err
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			err := iter(c)
			if err != nil {
				return err
			}
		}

		return nil
	}

	return iter(node)
}

// EmbeddedImageURLs returns the urls of all images embedded in the given
// html document, in document order. Relative references are resolved against
// base. Repeated references to the same image are reported once.
func EmbeddedImageURLs(doc *html.Node, base *url.URL) []string {
	seen := map[string]struct{}{}

	var urls []string
	ForEachNode(doc, func(n *html.Node) error {
		src := imageSrcFromNode(n)
		if src == "" {
			return nil
		}

		ref, err := url.Parse(src)
		if err != nil {
			return nil
		}
		if base != nil {
			ref = base.ResolveReference(ref)
		}

		u := ref.String()
		if _, ok := seen[u]; !ok {
			seen[u] = struct{}{}
			urls = append(urls, u)
		}

		return nil
	})

	return urls
}
