package relay

import (
	"context"
	"net/http"

	"github.com/remotelab/stationhub/pkg/config"
	"github.com/remotelab/stationhub/pkg/logger"
	"github.com/remotelab/stationhub/pkg/monitoring"
	"github.com/remotelab/stationhub/pkg/network/httpx"
	"github.com/remotelab/stationhub/pkg/service"
)

// Relay wires the hub into HTTP/websocket routes and runs it as a
// service, together with the optional monitoring side server.
type Relay struct {
	conf     config.Config
	log      *logger.Logger
	hub      *Hub
	services service.Group
}

func New(conf config.Config, log *logger.Logger) (*Relay, error) {
	r := &Relay{conf: conf, log: log, hub: NewHub(conf.Hub, log)}

	server, err := httpx.NewServer(
		conf.Hub.Server.Address,
		func(*httpx.Server) http.Handler {
			h := http.NewServeMux()
			h.HandleFunc("/api/stations", r.hub.handleApiStations)
			h.HandleFunc("/api/health", r.hub.handleApiHealth)
			h.HandleFunc("/agents", r.hub.handleStationConnection)
			h.HandleFunc("/admins", r.hub.handleAdminConnection)
			h.Handle("/", dashboard(conf.Hub.Dashboard))
			return h
		},
		httpx.WithServerConfig(conf.Hub.Server),
		httpx.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	r.services.Add(server)

	if conf.Monitoring.IsEnabled() {
		m, err := monitoring.New(conf.Monitoring, log)
		if err != nil {
			return nil, err
		}
		r.services.Add(m)
	}
	return r, nil
}

func (r *Relay) Start() { r.services.Start() }

func (r *Relay) Shutdown(ctx context.Context) error {
	r.hub.Close()
	return r.services.Shutdown(ctx)
}
