package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stationsOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stationhub",
		Name:      "stations_online",
		Help:      "Number of currently connected stations.",
	})
	adminsOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stationhub",
		Name:      "admins_online",
		Help:      "Number of currently connected admins.",
	})
	relayedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stationhub",
		Name:      "relayed_messages_total",
		Help:      "Messages forwarded to an addressed peer.",
	})
)
