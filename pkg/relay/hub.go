package relay

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/remotelab/stationhub/pkg/api"
	"github.com/remotelab/stationhub/pkg/com"
	"github.com/remotelab/stationhub/pkg/config"
	"github.com/remotelab/stationhub/pkg/logger"
)

// Hub routes everything: it owns the registry and the live connection
// maps, binds new connections to their packet handlers, and unwinds
// state when they go away.
type Hub struct {
	conf     config.Hub
	log      *logger.Logger
	registry *Registry
	stations com.NetMap[*Station]
	admins   com.NetMap[*Admin]
}

func NewHub(conf config.Hub, log *logger.Logger) *Hub {
	return &Hub{
		conf:     conf,
		log:      log,
		registry: NewRegistry(),
		stations: com.NewNetMap[*Station](),
		admins:   com.NewNetMap[*Admin](),
	}
}

func (h *Hub) heartbeat() com.Heartbeat {
	return com.Heartbeat{Interval: h.conf.Heartbeat.Interval, Timeout: h.conf.Heartbeat.Timeout}
}

// handleStationConnection handles a new agent connection for its whole
// lifetime: register, relay, clean up. Blocks until disconnect.
func (h *Hub) handleStationConnection(w http.ResponseWriter, r *http.Request) {
	ws, err := com.NewServerWS(w, r, h.heartbeat(), h.log)
	if err != nil {
		h.log.Error().Err(err).Msg("station socket upgrade fail")
		return
	}
	client := com.NewClient(ws, "agt", h.log)
	rec := newStationRecord(client.Id(), r.URL.Query(), client.RemoteAddr())
	station := &Station{Client: client, StationId: rec.StationId}
	station.HandleRequests(h)

	h.registry.Register(rec)
	h.stations.Add(station)
	stationsOnline.Inc()
	station.Log.Info().Msgf("station %q (%v) connected", rec.StationId, rec.StationIp)
	h.NotifyAdmins(api.StationOnline, rec)
	h.PublishList()

	station.Listen()
	station.Wait()

	h.stations.Remove(station)
	h.registry.Remove(station.Id())
	stationsOnline.Dec()
	station.Log.Info().Msgf("station %q disconnected", station.StationId)
	h.NotifyAdmins(api.StationOffline, api.OfflineNotice{SocketId: station.Id(), StationId: station.StationId})
	h.PublishList()
}

// handleAdminConnection handles a new controller connection.
// A fresh admin gets the current directory right away, no need to wait
// for the next station event. Blocks until disconnect.
func (h *Hub) handleAdminConnection(w http.ResponseWriter, r *http.Request) {
	ws, err := com.NewServerWS(w, r, h.heartbeat(), h.log)
	if err != nil {
		h.log.Error().Err(err).Msg("admin socket upgrade fail")
		return
	}
	admin := &Admin{Client: com.NewClient(ws, "adm", h.log)}
	admin.HandleRequests(h)

	h.admins.Add(admin)
	adminsOnline.Inc()
	admin.Log.Info().Msg("admin connected")

	admin.Listen()
	admin.Notify(uint8(api.StationList), h.registry.Snapshot())
	admin.Wait()

	h.admins.Remove(admin)
	adminsOnline.Dec()
	admin.Log.Info().Msg("admin disconnected")
}

// HandleScreenInfo stores the station's screen geometry in its own record.
func (h *Hub) HandleScreenInfo(s *Station, info json.RawMessage) {
	if h.registry.SetScreenInfo(s.Id(), info) {
		h.PublishList()
	}
}

// HandleStatusUpdate merges reported fields into the station's own record.
func (h *Hub) HandleStatusUpdate(s *Station, raw json.RawMessage) {
	patch := api.Unwrap[api.StatusPatch](raw)
	if patch == nil {
		s.Log.Warn().Msg("malformed status-update")
		return
	}
	if h.registry.Update(s.Id(), *patch) {
		h.PublishList()
	}
}

// ToAdmin delivers a message to the exactly one addressed admin.
// Messages to admins that are gone are silently dropped.
func (h *Hub) ToAdmin(id com.Uid, t api.PT, payload any) {
	admin, err := h.admins.Find(id)
	if err != nil {
		h.log.Debug().Msgf("%v dropped, no admin %v", t, id)
		return
	}
	relayedMessages.Inc()
	admin.Notify(uint8(t), payload)
}

// ToStation delivers a message to the exactly one addressed station.
// Messages to stations that are gone are silently dropped.
func (h *Hub) ToStation(id com.Uid, t api.PT, payload any) {
	station, err := h.stations.Find(id)
	if err != nil {
		h.log.Debug().Msgf("%v dropped, no station %v", t, id)
		return
	}
	relayedMessages.Inc()
	station.Notify(uint8(t), payload)
}

// RelayToStation forwards an already-encoded payload verbatim.
func (h *Hub) RelayToStation(id com.Uid, t api.PT, payload json.RawMessage) {
	station, err := h.stations.Find(id)
	if err != nil {
		return
	}
	relayedMessages.Inc()
	station.Forward(uint8(t), payload)
}

// Broadcast fans one command out to every listed station independently.
// Dead targets don't abort delivery to the rest. The command code is
// forwarded as-is, no vocabulary check.
func (h *Hub) Broadcast(rq api.BroadcastRequest) {
	for _, id := range rq.StationSocketIds {
		station, err := h.stations.Find(id)
		if err != nil {
			continue
		}
		relayedMessages.Inc()
		station.Forward(rq.Command, rq.Payload)
	}
}

// NotifyAdmins pushes one message to every connected admin. Encoded
// once; each delivery is independent and non-blocking, a slow admin
// can't delay the others.
func (h *Hub) NotifyAdmins(t api.PT, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Msgf("%v encode fail", t)
		return
	}
	h.admins.ForEach(func(a *Admin) { a.Forward(uint8(t), data) })
}

// PublishList pushes a fresh directory snapshot to all admins.
func (h *Hub) PublishList() { h.NotifyAdmins(api.StationList, h.registry.Snapshot()) }

// Close drops every live connection.
func (h *Hub) Close() {
	h.stations.ForEach(func(s *Station) { s.Disconnect() })
	h.admins.ForEach(func(a *Admin) { a.Disconnect() })
}
