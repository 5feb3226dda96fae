package api

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/remotelab/stationhub/pkg/com"
)

// UnknownField substitutes handshake metadata a station didn't supply.
const UnknownField = "Unknown"

// StationRecord describes one currently-connected station.
// The field names are the wire contract of the admin dashboard.
type StationRecord struct {
	SocketId    com.Uid         `json:"socketId"`
	StationId   string          `json:"stationId"`
	StationIp   string          `json:"stationIp"`
	Hostname    string          `json:"hostname"`
	Platform    string          `json:"platform"`
	CpuModel    string          `json:"cpuModel"`
	TotalMemory uint64          `json:"totalMemory"`
	Status      string          `json:"status"`
	ConnectedAt time.Time       `json:"connectedAt"`
	ScreenInfo  json.RawMessage `json:"screenInfo"`
}

// Clone returns a deep copy, so snapshot holders can't touch registry state.
func (r StationRecord) Clone() StationRecord {
	if r.ScreenInfo != nil {
		info := make(json.RawMessage, len(r.ScreenInfo))
		copy(info, r.ScreenInfo)
		r.ScreenInfo = info
	}
	return r
}

// StatusPatch carries the fields a status-update message may merge
// into the station's own record. Absent fields stay untouched.
type StatusPatch struct {
	StationId   *string `json:"stationId"`
	StationIp   *string `json:"stationIp"`
	Hostname    *string `json:"hostname"`
	Platform    *string `json:"platform"`
	CpuModel    *string `json:"cpuModel"`
	TotalMemory *uint64 `json:"totalMemory"`
	Status      *string `json:"status"`
}
