package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/harrylevesque/nfcnav/internal/nav"
	"github.com/harrylevesque/nfcnav/internal/scanlog"
	"github.com/harrylevesque/nfcnav/internal/tagref"
)

// msgUnavailable is shown by the detail screen for any decode failure.
const msgUnavailable = "tag data unavailable"

type handlers struct {
	nav   *nav.Navigator
	scans *scanlog.Store
	log   *slog.Logger
}

// ScanView is one row of the home screen.
type ScanView struct {
	ID        string            `json:"id"`
	Tag       tagref.ScannedTag `json:"tag"`
	DetailURL string            `json:"detail_url"`
	Count     int               `json:"count"`
	LastSeen  time.Time         `json:"last_seen"`
}

// HomeResponse is the body of GET /home.
type HomeResponse struct {
	Scans          []ScanView `json:"scans"`
	DetailTemplate string     `json:"detail_template"`
}

// DetailResponse is the body of a detail screen.
type DetailResponse struct {
	Tag     tagref.ScannedTag `json:"tag"`
	Version int               `json:"version"`
}

func (h *handlers) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.nav.HomeURL(), http.StatusFound)
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	resp := HomeResponse{
		Scans:          []ScanView{},
		DetailTemplate: h.nav.Routes().BasePath() + h.nav.Routes().Template(),
	}
	for _, e := range h.scans.List() {
		u, err := h.nav.DetailURL(e.Tag)
		if err != nil {
			h.log.Warn("skipping scan without a detail route", "scan", e.ID, "error", err)
			continue
		}
		resp.Scans = append(resp.Scans, ScanView{
			ID:        e.ID,
			Tag:       e.Tag,
			DetailURL: u,
			Count:     e.Count,
			LastSeen:  e.LastSeen,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	segments := make([]string, 0, tagref.SegmentCount)
	for _, f := range tagref.Contract().Fields {
		segments = append(segments, vars[f])
	}
	tag, err := tagref.Decode(segments)
	if err != nil {
		h.unavailable(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DetailResponse{Tag: tag, Version: tagref.Contract().Version})
}

func (h *handlers) detailFallback(w http.ResponseWriter, r *http.Request) {
	_, err := h.nav.ResolveDetail(r.URL.EscapedPath())
	if err == nil {
		// Only reachable when the detail route itself failed to match.
		err = &tagref.MissingSegmentError{}
	}
	h.unavailable(w, r, err)
}

// unavailable renders the "tag data unavailable" state. Every codec error
// gets the same status so the detail screen never shows partial data.
func (h *handlers) unavailable(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Warn("detail decode failed", "path", r.URL.EscapedPath(), "error", err)
	writeError(w, NewError(http.StatusUnprocessableEntity, msgUnavailable, err))
}

func (h *handlers) createScan(w http.ResponseWriter, r *http.Request) {
	var tag tagref.ScannedTag
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tag); err != nil {
		writeError(w, NewError(http.StatusBadRequest, "invalid request body", err))
		return
	}

	u, err := h.nav.DetailURL(tag)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tagref.ErrEncoding) {
			status = http.StatusBadRequest
		}
		writeError(w, NewError(status, "tag cannot be routed", err))
		return
	}

	e, err := h.scans.Add(tag)
	if err != nil {
		h.log.Error("scan log write failed", "error", err)
		writeError(w, NewError(http.StatusInternalServerError, "failed to save scan", nil))
		return
	}
	h.log.Info("tag scanned", "scan", e.ID, "uid", tag.ID, "count", e.Count)

	w.Header().Set("Location", u)
	writeJSON(w, http.StatusSeeOther, ScanView{
		ID:        e.ID,
		Tag:       e.Tag,
		DetailURL: u,
		Count:     e.Count,
		LastSeen:  e.LastSeen,
	})
}

func (h *handlers) openScan(w http.ResponseWriter, r *http.Request) {
	e, err := h.scans.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, NewError(http.StatusNotFound, "scan not found", nil))
		return
	}
	u, err := h.nav.DetailURL(e.Tag)
	if err != nil {
		writeError(w, NewError(http.StatusInternalServerError, "tag cannot be routed", err))
		return
	}
	// http.Redirect would clean u and drop the empty tech types segment.
	w.Header().Set("Location", u)
	w.WriteHeader(http.StatusFound)
}

func (h *handlers) clearScans(w http.ResponseWriter, r *http.Request) {
	if err := h.scans.Clear(); err != nil {
		h.log.Error("scan log clear failed", "error", err)
		writeError(w, NewError(http.StatusInternalServerError, "failed to clear scans", nil))
		return
	}
	h.log.Info("scan log cleared")
	w.WriteHeader(http.StatusNoContent)
}
