package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrylevesque/nfcnav/internal/tagref"
)

func TestNewRoutesNormalizesBase(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"/":          "",
		"app":        "/app",
		"/app/":      "/app",
		" /a/b/ ":    "/a/b",
		"//nested//": "/nested",
	}
	for in, want := range tests {
		assert.Equal(t, want, NewRoutes(in).BasePath(), "input %q", in)
	}
}

func TestTemplates(t *testing.T) {
	r := NewRoutes("")
	assert.Equal(t, "/nfc-detail/:id/:payload/:isWritable/:idBytes/:payloadBytes/:techTypes/:maxSize/:type", r.Template())
	assert.Equal(t,
		"/nfc-detail/{id}/{payload}/{isWritable}/{idBytes}/{payloadBytes}/{techTypes:[^/]*}/{maxSize}/{type}",
		r.DetailTemplate())
}

func TestNavigatorDetailURL(t *testing.T) {
	tag := tagref.ScannedTag{
		ID:           "04A2B3",
		Payload:      "hello",
		IsWritable:   true,
		IDBytes:      4,
		PayloadBytes: 5,
		TechTypes:    []string{"NfcA", "MifareClassic"},
		MaxSize:      144,
		Type:         "NDEF",
	}

	n := NewNavigator(NewRoutes("/app/"))
	assert.Equal(t, "/app/home", n.HomeURL())

	u, err := n.DetailURL(tag)
	require.NoError(t, err)
	assert.Equal(t, "/app/nfc-detail/04A2B3/hello/true/4/5/NfcA%2BMifareClassic/144/NDEF", u)

	got, err := n.ResolveDetail(u)
	require.NoError(t, err)
	assert.Equal(t, tag, got)

	tag.TechTypes = []string{"A+B"}
	_, err = n.DetailURL(tag)
	assert.ErrorIs(t, err, tagref.ErrEncoding)
}

func TestNavigatorStrip(t *testing.T) {
	n := NewNavigator(NewRoutes("/app"))
	assert.Equal(t, "/", n.Strip("/app"))
	assert.Equal(t, "/home", n.Strip("/app/home"))
	assert.Equal(t, "/application", n.Strip("/application"))

	root := NewNavigator(NewRoutes(""))
	assert.Equal(t, "/home", root.Strip("/home"))
	assert.Equal(t, "/home", root.HomeURL())
}
