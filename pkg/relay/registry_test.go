package relay

import (
	"net/url"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/remotelab/stationhub/pkg/api"
	"github.com/remotelab/stationhub/pkg/com"
)

func strPtr(s string) *string { return &s }

func TestRegisterSnapshot(t *testing.T) {
	r := NewRegistry()
	id := com.NewUid()
	r.Register(newStationRecord(id, url.Values{}, "10.1.2.3:5555"))

	list := r.Snapshot()
	if len(list) != 1 {
		t.Fatalf("unexpected snapshot size: %v", len(list))
	}
	rec := list[0]
	if rec.SocketId != id {
		t.Errorf("unexpected socket id: %v (want %v)", rec.SocketId, id)
	}
	// absent handshake metadata defaults to safe placeholders
	if rec.StationId != api.UnknownField || rec.Hostname != api.UnknownField || rec.Platform != api.UnknownField {
		t.Errorf("unexpected defaults: %+v", rec)
	}
	if rec.CpuModel != "" || rec.TotalMemory != 0 {
		t.Errorf("unexpected defaults: %+v", rec)
	}
	if rec.StationIp != "10.1.2.3" {
		t.Errorf("station ip should fall back to the remote address, got %q", rec.StationIp)
	}
	if rec.Status != "online" {
		t.Errorf("unexpected initial status: %q", rec.Status)
	}
	if rec.ConnectedAt.IsZero() {
		t.Error("connect timestamp not captured")
	}
}

func TestRegisterHandshakeMetadata(t *testing.T) {
	r := NewRegistry()
	id := com.NewUid()
	q := url.Values{}
	q.Set("stationId", "ST-1")
	q.Set("hostname", "lab-07")
	q.Set("platform", "win32")
	q.Set("cpuModel", "i7-9700")
	q.Set("totalMemory", "8192")
	r.Register(newStationRecord(id, q, "10.1.2.3:5555"))

	rec := r.Snapshot()[0]
	if rec.StationId != "ST-1" || rec.Hostname != "lab-07" || rec.Platform != "win32" ||
		rec.CpuModel != "i7-9700" || rec.TotalMemory != 8192 {
		t.Errorf("handshake metadata lost: %+v", rec)
	}
}

func TestRegisterLastWriteWins(t *testing.T) {
	r := NewRegistry()
	id := com.NewUid()
	r.Register(api.StationRecord{SocketId: id, StationId: "first"})
	r.Register(api.StationRecord{SocketId: id, StationId: "second"})

	if r.Count() != 1 {
		t.Fatalf("unexpected registry size: %v", r.Count())
	}
	if got := r.Snapshot()[0].StationId; got != "second" {
		t.Errorf("unexpected station id: %q", got)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	r := NewRegistry()
	id := com.NewUid()
	r.Register(api.StationRecord{SocketId: id, StationId: "ST-1", Status: "online"})

	if !r.Update(id, api.StatusPatch{Status: strPtr("busy")}) {
		t.Fatal("update of a live record should succeed")
	}
	rec := r.Snapshot()[0]
	if rec.Status != "busy" {
		t.Errorf("status not merged: %q", rec.Status)
	}
	if rec.StationId != "ST-1" {
		t.Errorf("untouched field changed: %q", rec.StationId)
	}
}

func TestRemoveThenUpdateIsNoop(t *testing.T) {
	r := NewRegistry()
	id := com.NewUid()
	r.Register(api.StationRecord{SocketId: id})
	r.Remove(id)

	for _, rec := range r.Snapshot() {
		if rec.SocketId == id {
			t.Fatal("removed record still present in the snapshot")
		}
	}
	// a status-update racing a disconnect is a normal silent no-op
	if r.Update(id, api.StatusPatch{Status: strPtr("late")}) {
		t.Error("update of a removed record should report a miss")
	}
	if r.SetScreenInfo(id, json.RawMessage(`{}`)) {
		t.Error("screen-info for a removed record should report a miss")
	}
	if r.Count() != 0 {
		t.Errorf("stale mutation changed the registry size: %v", r.Count())
	}

	// removing twice is fine too
	r.Remove(id)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	r := NewRegistry()
	id := com.NewUid()
	r.Register(api.StationRecord{SocketId: id})
	if !r.SetScreenInfo(id, json.RawMessage(`{"w":1920,"h":1080}`)) {
		t.Fatal("screen info not stored")
	}

	list := r.Snapshot()
	list[0].Status = "mutated"
	list[0].ScreenInfo[1] = 'x'

	rec := r.Snapshot()[0]
	if rec.Status == "mutated" {
		t.Error("snapshot shares record state with the registry")
	}
	if string(rec.ScreenInfo) != `{"w":1920,"h":1080}` {
		t.Errorf("snapshot shares screen info with the registry: %s", rec.ScreenInfo)
	}
}

func TestRegistryConcurrentChurn(t *testing.T) {
	r := NewRegistry()
	const n = 50
	ids := make([]com.Uid, n)
	for i := range ids {
		ids[i] = com.NewUid()
	}

	var wg sync.WaitGroup
	wg.Add(n * 3)
	for _, id := range ids {
		id := id
		go func() {
			defer wg.Done()
			r.Register(api.StationRecord{SocketId: id, Status: "online"})
		}()
		go func() {
			defer wg.Done()
			r.Update(id, api.StatusPatch{Status: strPtr("busy")})
		}()
		go func() {
			defer wg.Done()
			for _, rec := range r.Snapshot() {
				// a record is either fully registered or absent
				if rec.Status != "online" && rec.Status != "busy" {
					t.Errorf("half-written record observed: %+v", rec)
				}
			}
		}()
	}
	wg.Wait()

	if r.Count() != n {
		t.Errorf("unexpected final registry size: %v (want %v)", r.Count(), n)
	}
	for _, id := range ids {
		r.Remove(id)
	}
	if r.Count() != 0 {
		t.Errorf("registry not empty after removing everything: %v", r.Count())
	}
}
