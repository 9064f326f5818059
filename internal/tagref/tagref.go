// Package tagref carries a scanned NFC tag from the scan screen to the detail
// screen as eight path segments under /nfc-detail.
//
// Both navigation sites share the layout returned by [Contract]: the ordered
// field list, the tech type separator and the route prefix. Every segment is
// percent-encoded on its own, so payloads may contain '/', '?', '%' or '+'
// without moving segment boundaries.
package tagref

import (
	"net/url"
	"strconv"
	"strings"
)

// SegmentCount is the number of path segments in a reference.
const SegmentCount = 8

// Field names, in route order.
const (
	FieldID           = "id"
	FieldPayload      = "payload"
	FieldIsWritable   = "isWritable"
	FieldIDBytes      = "idBytes"
	FieldPayloadBytes = "payloadBytes"
	FieldTechTypes    = "techTypes"
	FieldMaxSize      = "maxSize"
	FieldType         = "type"
)

const (
	literalTrue  = "true"
	literalFalse = "false"
)

// Schema describes the versioned layout of a reference.
type Schema struct {
	Version       int
	Prefix        string
	Fields        [SegmentCount]string
	TechSeparator string
}

var contract = Schema{
	Version: 1,
	Prefix:  "/nfc-detail",
	Fields: [SegmentCount]string{
		FieldID,
		FieldPayload,
		FieldIsWritable,
		FieldIDBytes,
		FieldPayloadBytes,
		FieldTechTypes,
		FieldMaxSize,
		FieldType,
	},
	TechSeparator: "+",
}

// ScannedTag is the record produced by a tag scan.
type ScannedTag struct {
	ID           string   `json:"id"`
	Payload      string   `json:"payload"`
	IsWritable   bool     `json:"isWritable"`
	IDBytes      int      `json:"idBytes"`
	PayloadBytes int      `json:"payloadBytes"`
	TechTypes    []string `json:"techTypes"`
	MaxSize      int      `json:"maxSize"`
	Type         string   `json:"type"`
}

// Contract returns the layout used by Encode and Decode.
func Contract() Schema { return contract }

// RouteReference holds the eight escaped segments of a detail route.
type RouteReference [SegmentCount]string

// Segments returns the escaped segments in route order.
func (r RouteReference) Segments() []string {
	return append([]string(nil), r[:]...)
}

// Path joins the segments under the route prefix.
func (r RouteReference) Path() string {
	return contract.Prefix + "/" + strings.Join(r[:], "/")
}

func (r RouteReference) String() string { return r.Path() }

// Encode flattens tag into a route reference.
func Encode(tag ScannedTag) (RouteReference, error) {
	var ref RouteReference

	for _, f := range []struct {
		name  string
		value string
	}{
		{FieldID, tag.ID},
		{FieldPayload, tag.Payload},
		{FieldType, tag.Type},
	} {
		if f.value == "" {
			return ref, &EncodingError{Field: f.name, Reason: "must not be empty"}
		}
	}

	for _, f := range []struct {
		name  string
		value int
	}{
		{FieldIDBytes, tag.IDBytes},
		{FieldPayloadBytes, tag.PayloadBytes},
		{FieldMaxSize, tag.MaxSize},
	} {
		if f.value < 0 {
			return ref, &EncodingError{Field: f.name, Value: strconv.Itoa(f.value), Reason: "must not be negative"}
		}
	}

	techs, err := joinTechTypes(tag.TechTypes)
	if err != nil {
		return ref, err
	}

	writable := literalFalse
	if tag.IsWritable {
		writable = literalTrue
	}

	ref = RouteReference{
		escapeSegment(tag.ID),
		escapeSegment(tag.Payload),
		writable,
		strconv.Itoa(tag.IDBytes),
		strconv.Itoa(tag.PayloadBytes),
		escapeSegment(techs),
		strconv.Itoa(tag.MaxSize),
		escapeSegment(tag.Type),
	}
	return ref, nil
}

// Decode rebuilds a tag from eight escaped segments in route order. A failed
// decode never returns a partially filled tag.
func Decode(segments []string) (ScannedTag, error) {
	if len(segments) != SegmentCount {
		return ScannedTag{}, &MissingSegmentError{Got: len(segments)}
	}

	var raw [SegmentCount]string
	for i, s := range segments {
		v, err := url.PathUnescape(s)
		if err != nil {
			return ScannedTag{}, &MalformedFieldError{Field: contract.Fields[i], Value: s, Reason: "bad percent-encoding"}
		}
		raw[i] = v
	}

	for _, i := range []int{0, 1, 7} {
		if raw[i] == "" {
			return ScannedTag{}, &MalformedFieldError{Field: contract.Fields[i], Reason: "must not be empty"}
		}
	}

	writable, err := parseWritable(raw[2])
	if err != nil {
		return ScannedTag{}, err
	}
	idBytes, err := parseSize(FieldIDBytes, raw[3])
	if err != nil {
		return ScannedTag{}, err
	}
	payloadBytes, err := parseSize(FieldPayloadBytes, raw[4])
	if err != nil {
		return ScannedTag{}, err
	}
	maxSize, err := parseSize(FieldMaxSize, raw[6])
	if err != nil {
		return ScannedTag{}, err
	}

	return ScannedTag{
		ID:           raw[0],
		Payload:      raw[1],
		IsWritable:   writable,
		IDBytes:      idBytes,
		PayloadBytes: payloadBytes,
		TechTypes:    splitTechTypes(raw[5]),
		MaxSize:      maxSize,
		Type:         raw[7],
	}, nil
}

// DecodePath decodes an escaped path of the form
// /nfc-detail/<eight segments>. The path must still be in its escaped form;
// an already unescaped path may carry extra '/' characters.
func DecodePath(path string) (ScannedTag, error) {
	rest, ok := strings.CutPrefix(path, contract.Prefix+"/")
	if !ok {
		return ScannedTag{}, &MissingSegmentError{Got: 0}
	}
	return Decode(strings.Split(rest, "/"))
}

func joinTechTypes(techs []string) (string, error) {
	for _, t := range techs {
		if t == "" {
			return "", &EncodingError{Field: FieldTechTypes, Reason: "empty technology identifier"}
		}
		if strings.Contains(t, contract.TechSeparator) {
			return "", &EncodingError{Field: FieldTechTypes, Value: t, Reason: "contains separator " + strconv.Quote(contract.TechSeparator)}
		}
	}
	return strings.Join(techs, contract.TechSeparator), nil
}

// splitTechTypes never returns nil; an empty segment is the empty set.
func splitTechTypes(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, contract.TechSeparator)
}

func parseWritable(s string) (bool, error) {
	switch s {
	case literalTrue:
		return true, nil
	case literalFalse:
		return false, nil
	}
	return false, &MalformedFieldError{Field: FieldIsWritable, Value: s, Reason: `want "true" or "false"`}
}

func parseSize(field, s string) (int, error) {
	if s == "" {
		return 0, &MalformedFieldError{Field: field, Reason: "must not be empty"}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, &MalformedFieldError{Field: field, Value: s, Reason: "not a non-negative integer"}
		}
	}
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0, &MalformedFieldError{Field: field, Value: s, Reason: "out of range"}
	}
	return int(n), nil
}

// escapeSegment is url.PathEscape plus '+', which routers and proxies may
// read as a space, and the dot segments "." and "..", which URL resolvers
// remove.
func escapeSegment(s string) string {
	switch s {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return strings.ReplaceAll(url.PathEscape(s), "+", "%2B")
}
