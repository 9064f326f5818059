package nav

import (
	"strings"

	"github.com/harrylevesque/nfcnav/internal/tagref"
)

// Route names, usable with mux.Router.Get.
const (
	RouteRoot   = "root"
	RouteHome   = "Home"
	RouteDetail = "nfc-detail"
)

// Routes is the application route table. It is built once at startup and
// never changes afterwards.
type Routes struct {
	basePath     string
	homePath     string
	detailPrefix string
}

// NewRoutes builds the route table mounted under basePath. An empty base
// path and "/" both mean the application root.
func NewRoutes(basePath string) Routes {
	return Routes{
		basePath:     normalizeBase(basePath),
		homePath:     "/home",
		detailPrefix: tagref.Contract().Prefix,
	}
}

// BasePath returns the normalized base path: empty, or a path starting with
// '/' and without a trailing slash.
func (r Routes) BasePath() string { return r.basePath }

// HomePath is the scan screen path relative to the base path.
func (r Routes) HomePath() string { return r.homePath }

// DetailPrefix is the detail screen prefix relative to the base path.
func (r Routes) DetailPrefix() string { return r.detailPrefix }

// DetailTemplate returns the mux path template of the detail route. The
// tech types variable also matches an empty segment.
func (r Routes) DetailTemplate() string {
	var b strings.Builder
	b.WriteString(r.detailPrefix)
	for _, f := range tagref.Contract().Fields {
		b.WriteString("/{")
		b.WriteString(f)
		if f == tagref.FieldTechTypes {
			b.WriteString(":[^/]*")
		}
		b.WriteString("}")
	}
	return b.String()
}

// Template renders the detail template in the ":name" form used by
// client-side routers.
func (r Routes) Template() string {
	var b strings.Builder
	b.WriteString(r.detailPrefix)
	for _, f := range tagref.Contract().Fields {
		b.WriteString("/:")
		b.WriteString(f)
	}
	return b.String()
}

func normalizeBase(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
