package markdown

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// IsExternalURL reports whether url points off-site: protocol-relative
// ("//host/x") or an absolute URL whose scheme separator comes before the
// first dot of the host.
func IsExternalURL(url string) bool {
	if strings.HasPrefix(url, "//") {
		return true
	}
	scheme := strings.Index(url, "://")
	if scheme < 0 {
		return false
	}
	dot := strings.Index(url, ".")
	slash := strings.Index(url, "/")
	if dot < 0 || slash < 0 {
		return false
	}
	if strings.Index(url, ":") > slash {
		return false
	}
	return scheme < dot
}

// linkRewriter applies per-render link and image rewrites. External links
// are left as-is and opened in a new tab.
type linkRewriter struct {
	link  func(string) string
	image func(string) string
}

func (l *linkRewriter) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Link:
			dest := string(node.Destination)
			switch {
			case IsExternalURL(dest):
				node.SetAttributeString("target", []byte("_blank"))
				node.SetAttributeString("rel", []byte("noopener"))
			case l.link != nil:
				node.Destination = []byte(l.link(dest))
			}
		case *gmast.Image:
			dest := string(node.Destination)
			if l.image != nil && !IsExternalURL(dest) {
				node.Destination = []byte(l.image(dest))
			}
		}
		return gmast.WalkContinue, nil
	})
}
