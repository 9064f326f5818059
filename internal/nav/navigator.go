// Package nav holds the route table and turns scanned tags into navigation
// targets under the deployment base path.
package nav

import (
	"strings"

	"github.com/harrylevesque/nfcnav/internal/tagref"
)

// Navigator builds absolute application paths from a Routes table.
type Navigator struct {
	routes Routes
}

// NewNavigator returns a navigator bound to routes.
func NewNavigator(routes Routes) *Navigator {
	return &Navigator{routes: routes}
}

// Routes returns the route table the navigator was built with.
func (n *Navigator) Routes() Routes { return n.routes }

// HomeURL is the absolute path of the scan screen.
func (n *Navigator) HomeURL() string {
	return n.routes.basePath + n.routes.homePath
}

// DetailURL encodes tag and returns the absolute path of its detail screen.
func (n *Navigator) DetailURL(tag tagref.ScannedTag) (string, error) {
	ref, err := tagref.Encode(tag)
	if err != nil {
		return "", err
	}
	return n.routes.basePath + ref.Path(), nil
}

// ResolveDetail decodes an absolute, still escaped, detail path.
func (n *Navigator) ResolveDetail(escapedPath string) (tagref.ScannedTag, error) {
	return tagref.DecodePath(n.Strip(escapedPath))
}

// Strip removes the base path from p. Paths outside the base path are
// returned unchanged.
func (n *Navigator) Strip(p string) string {
	base := n.routes.basePath
	if base == "" {
		return p
	}
	if p == base {
		return "/"
	}
	if rest, ok := strings.CutPrefix(p, base+"/"); ok {
		return "/" + rest
	}
	return p
}
