package relay

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/remotelab/stationhub/pkg/api"
)

type stationsResponse struct {
	Stations []api.StationRecord `json:"stations"`
}

type healthResponse struct {
	Status         string `json:"status"`
	StationsOnline int    `json:"stationsOnline"`
}

// handleApiStations returns the same directory snapshot the admins
// get pushed over the socket.
func (h *Hub) handleApiStations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, stationsResponse{Stations: h.registry.Snapshot()})
}

func (h *Hub) handleApiHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, healthResponse{Status: "ok", StationsOnline: h.registry.Count()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// dashboard serves the admin dashboard build directory with an SPA
// fallback: any path without a matching file gets the entry point.
func dashboard(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})
}
