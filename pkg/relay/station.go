package relay

import (
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/remotelab/stationhub/pkg/api"
	"github.com/remotelab/stationhub/pkg/com"
)

// Station is one connected agent. It only ever touches its own
// registry record; everything else it sends is relayed to an admin.
type Station struct {
	*com.Client

	// logical station identity captured at connect time
	StationId string
}

// newStationRecord captures handshake-supplied identity metadata from
// the upgrade request query. Missing fields are defaulted, never rejected.
func newStationRecord(id com.Uid, q url.Values, remoteAddr string) api.StationRecord {
	get := func(key, def string) string {
		if v := q.Get(key); v != "" {
			return v
		}
		return def
	}
	ip := q.Get("stationIp")
	if ip == "" {
		if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
			ip = host
		} else {
			ip = remoteAddr
		}
	}
	mem, _ := strconv.ParseUint(q.Get("totalMemory"), 10, 64)
	return api.StationRecord{
		SocketId:    id,
		StationId:   get("stationId", api.UnknownField),
		StationIp:   ip,
		Hostname:    get("hostname", api.UnknownField),
		Platform:    get("platform", api.UnknownField),
		CpuModel:    q.Get("cpuModel"),
		TotalMemory: mem,
		Status:      "online",
		ConnectedAt: time.Now().UTC(),
	}
}

func (s *Station) HandleRequests(h *Hub) {
	s.OnPacket(func(p com.In) {
		t := api.PT(p.T)
		switch t {
		case api.ScreenInfo:
			rq := api.Unwrap[api.ScreenInfoRequest](p.Payload)
			if rq == nil {
				s.Log.Warn().Msgf("malformed %v", t)
				return
			}
			h.HandleScreenInfo(s, rq.Info)
		case api.StatusUpdate:
			h.HandleStatusUpdate(s, p.Payload)
		case api.Offer:
			rq := api.Unwrap[api.StationOfferRequest](p.Payload)
			if rq == nil {
				s.Log.Warn().Msgf("malformed %v", t)
				return
			}
			s.Log.Debug().Msgf("offer -> admin %v", rq.TargetAdminId)
			h.ToAdmin(rq.TargetAdminId, t, api.OfferNotice{
				FromStation: api.FromStation{StationSocketId: s.Id()},
				StationId:   s.StationId,
				Sdp:         rq.Sdp,
			})
		case api.Answer:
			rq := api.Unwrap[api.StationAnswerRequest](p.Payload)
			if rq == nil {
				s.Log.Warn().Msgf("malformed %v", t)
				return
			}
			s.Log.Debug().Msgf("answer -> admin %v", rq.TargetAdminId)
			h.ToAdmin(rq.TargetAdminId, t, api.AnswerNotice{
				FromStation: api.FromStation{StationSocketId: s.Id()},
				Sdp:         rq.Sdp,
			})
		case api.IceCandidate:
			rq := api.Unwrap[api.StationIceCandidateRequest](p.Payload)
			if rq == nil {
				s.Log.Warn().Msgf("malformed %v", t)
				return
			}
			h.ToAdmin(rq.TargetAdminId, t, api.IceCandidateNotice{
				FromStation: api.FromStation{StationSocketId: s.Id()},
				Candidate:   rq.Candidate,
			})
		case api.Screenshot:
			rq := api.Unwrap[api.ScreenshotRequest](p.Payload)
			if rq == nil {
				s.Log.Warn().Msgf("malformed %v", t)
				return
			}
			h.ToAdmin(rq.TargetAdminId, t, api.ScreenshotNotice{
				FromStation: api.FromStation{StationSocketId: s.Id()},
				Image:       rq.Image,
			})
		default:
			s.Log.Warn().Msgf("unhandled packet %v", t)
		}
	})
}
