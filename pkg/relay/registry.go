package relay

import (
	"sync"

	"github.com/goccy/go-json"

	"github.com/remotelab/stationhub/pkg/api"
	"github.com/remotelab/stationhub/pkg/com"
)

// Registry is the single source of truth for which stations are online.
// One record per live connection: created on connect, mutated only by
// messages of the owning connection, removed on disconnect. All access
// goes through one mutex, so readers never observe a half-written record.
type Registry struct {
	mu       sync.Mutex
	stations map[com.Uid]*api.StationRecord
}

func NewRegistry() *Registry {
	return &Registry{stations: make(map[com.Uid]*api.StationRecord, 10)}
}

// Register inserts a record under its socket id.
// An existing record is overwritten: ids are transport-issued and
// unique per live connection, so last-write-wins is fine.
func (r *Registry) Register(rec api.StationRecord) {
	clone := rec.Clone()
	r.mu.Lock()
	r.stations[rec.SocketId] = &clone
	r.mu.Unlock()
}

// Update merges the patch into the station's record. Reports false when
// the record is already gone (a disconnect raced the update), which is
// a normal no-op, not an error.
func (r *Registry) Update(id com.Uid, patch api.StatusPatch) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.stations[id]
	if !ok {
		return false
	}
	if patch.StationId != nil {
		rec.StationId = *patch.StationId
	}
	if patch.StationIp != nil {
		rec.StationIp = *patch.StationIp
	}
	if patch.Hostname != nil {
		rec.Hostname = *patch.Hostname
	}
	if patch.Platform != nil {
		rec.Platform = *patch.Platform
	}
	if patch.CpuModel != nil {
		rec.CpuModel = *patch.CpuModel
	}
	if patch.TotalMemory != nil {
		rec.TotalMemory = *patch.TotalMemory
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	return true
}

// SetScreenInfo stores the last-known screen geometry of the station.
// Same race contract as Update.
func (r *Registry) SetScreenInfo(id com.Uid, info json.RawMessage) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.stations[id]
	if !ok {
		return false
	}
	rec.ScreenInfo = make(json.RawMessage, len(info))
	copy(rec.ScreenInfo, info)
	return true
}

// Remove deletes the record, no-op if absent.
func (r *Registry) Remove(id com.Uid) {
	r.mu.Lock()
	delete(r.stations, id)
	r.mu.Unlock()
}

// Snapshot returns deep read-only copies of all current records.
// Order is arbitrary but stable within a single call.
func (r *Registry) Snapshot() []api.StationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]api.StationRecord, 0, len(r.stations))
	for _, rec := range r.stations {
		list = append(list, rec.Clone())
	}
	return list
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stations)
}
