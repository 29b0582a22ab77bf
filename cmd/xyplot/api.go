package main

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"strconv"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/mastercactapus/xyplot/coord"
	"github.com/mastercactapus/xyplot/machine/grbl"
	"github.com/mastercactapus/xyplot/pattern"
)

// api is a read-only monitor: pattern previews over the configured work
// area and a live stream of controller status while a run is active.
type api struct {
	http.Handler
	area coord.Area
	sse  *sse.Server
}

func newAPI(area coord.Area, webDir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		area:    area,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	r.HandleFunc("/api/patterns", a.listPatterns).Methods("GET")
	r.HandleFunc("/api/patterns/{name}", a.patternPoints).Methods("GET")
	r.HandleFunc("/api/patterns/{name}/coverage", a.patternCoverage).Methods("GET")
	r.PathPrefix("/events/").Handler(a.sse)
	if webDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(webDir)))
	}

	return a
}

// broadcastStatus publishes a status snapshot to /events/status.
func (a *api) broadcastStatus(st grbl.Status) {
	data, err := json.Marshal(st)
	if err != nil {
		log.Printf("ERROR: marshal status: %+v", err)
		return
	}
	a.sse.SendMessage("/events/status", sse.SimpleMessage(string(data)))
}

func (a *api) listPatterns(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, pattern.Names())
}

func (a *api) resolve(w http.ResponseWriter, req *http.Request) (pattern.Variant, bool) {
	v, err := pattern.Resolve(mux.Vars(req)["name"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return pattern.Variant{}, false
	}
	return v, true
}

func (a *api) collect(w http.ResponseWriter, v pattern.Variant) ([]coord.Point, bool) {
	seq, err := v.Sequence(a.area)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	pts, err := pattern.Collect(seq)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return pts, true
}

func (a *api) patternPoints(w http.ResponseWriter, req *http.Request) {
	v, ok := a.resolve(w, req)
	if !ok {
		return
	}
	pts, ok := a.collect(w, v)
	if !ok {
		return
	}

	// stride-based sub-sampling for large sequences
	if s := req.FormValue("stride"); s != "" {
		stride, err := strconv.Atoi(s)
		if err != nil || stride < 1 {
			http.Error(w, "invalid stride", http.StatusBadRequest)
			return
		}
		sampled := pts[:0]
		for i := 0; i < len(pts); i += stride {
			sampled = append(sampled, pts[i])
		}
		pts = sampled
	}

	writeJSON(w, pts)
}

func (a *api) patternCoverage(w http.ResponseWriter, req *http.Request) {
	v, ok := a.resolve(w, req)
	if !ok {
		return
	}
	pts, ok := a.collect(w, v)
	if !ok {
		return
	}
	stats, err := pattern.Coverage(pts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: write response: %+v", err)
	}
}
