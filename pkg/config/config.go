package config

import (
	"time"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"
)

type (
	Config struct {
		Hub        Hub
		Monitoring Monitoring
	}
	Hub struct {
		Debug     bool   `fig:"debug"`
		Dashboard string `fig:"dashboard" default:"./web"`
		Server    Server
		Heartbeat Heartbeat
	}
	Server struct {
		Address   string `fig:"address" default:":4000"`
		Https     bool   `fig:"https"`
		HttpsCert string `fig:"httpsCert"`
		HttpsKey  string `fig:"httpsKey"`
		Domain    string `fig:"domain"`
	}
	// Heartbeat mirrors the transport liveness knobs: the hub pings every
	// Interval and considers a peer dead Timeout after a missed pong.
	Heartbeat struct {
		Interval time.Duration `fig:"interval" default:"10s"`
		Timeout  time.Duration `fig:"timeout" default:"5s"`
	}
	Monitoring struct {
		Port             int    `fig:"port" default:"6601"`
		URLPrefix        string `fig:"urlPrefix" default:"/hub"`
		MetricEnabled    bool   `fig:"metric"`
		ProfilingEnabled bool   `fig:"pprof"`
	}
)

func (m Monitoring) IsEnabled() bool { return m.MetricEnabled || m.ProfilingEnabled }

const EnvPrefix = "STATIONHUB"

// allows custom config path
var configPath string

// NewConfig loads the configuration file with STATIONHUB_* env overrides.
func NewConfig() (conf Config, err error) {
	dirs := []string{".", "configs", "../../configs", "../../../configs"}
	if configPath != "" {
		dirs = []string{configPath}
	}
	err = fig.Load(&conf, fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	return
}

func (c *Config) ParseFlags() {
	pflag.StringVarP(&configPath, "conf", "c", configPath, "Set custom configuration directory path")
	pflag.StringVarP(&c.Hub.Server.Address, "address", "a", c.Hub.Server.Address, "HTTP server address")
	pflag.BoolVarP(&c.Hub.Debug, "debug", "d", c.Hub.Debug, "Enable debug logging")
	pflag.BoolVarP(&c.Monitoring.MetricEnabled, "monitoring.metric", "m", c.Monitoring.MetricEnabled, "Enable prometheus metrics for the server")
	pflag.BoolVarP(&c.Monitoring.ProfilingEnabled, "monitoring.pprof", "p", c.Monitoring.ProfilingEnabled, "Enable golang pprof for the server")
	pflag.IntVarP(&c.Monitoring.Port, "monitoring.port", "", c.Monitoring.Port, "Monitoring server port")
	pflag.Parse()
}
