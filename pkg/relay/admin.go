package relay

import (
	"github.com/remotelab/stationhub/pkg/api"
	"github.com/remotelab/stationhub/pkg/com"
)

// Admin is one connected controller. Admins are ephemeral: no registry
// entry, tracked only by connection id for reply addressing.
type Admin struct {
	*com.Client
}

func (a *Admin) HandleRequests(h *Hub) {
	a.OnPacket(func(p com.In) {
		t := api.PT(p.T)
		switch {
		case t == api.Offer:
			rq := api.Unwrap[api.OfferRequest](p.Payload)
			if rq == nil {
				a.Log.Warn().Msgf("malformed %v", t)
				return
			}
			a.Log.Debug().Msgf("offer -> station %v", rq.StationSocketId)
			h.ToStation(rq.StationSocketId, t, api.OfferForward{
				AdminBound: api.AdminBound{TargetAdminId: a.Id()},
				Sdp:        rq.Sdp,
			})
		case t == api.Answer:
			rq := api.Unwrap[api.AnswerRequest](p.Payload)
			if rq == nil {
				a.Log.Warn().Msgf("malformed %v", t)
				return
			}
			a.Log.Debug().Msgf("answer -> station %v", rq.StationSocketId)
			h.ToStation(rq.StationSocketId, t, api.AnswerForward{
				FromAdmin: api.FromAdmin{AdminSocketId: a.Id()},
				Sdp:       rq.Sdp,
			})
		case t == api.IceCandidate:
			rq := api.Unwrap[api.IceCandidateRequest](p.Payload)
			if rq == nil {
				a.Log.Warn().Msgf("malformed %v", t)
				return
			}
			h.ToStation(rq.StationSocketId, t, api.IceCandidateForward{
				FromAdmin: api.FromAdmin{AdminSocketId: a.Id()},
				Candidate: rq.Candidate,
			})
		case t == api.RequestScreen || t == api.StopScreen:
			rq := api.Unwrap[api.ScreenControlRequest](p.Payload)
			if rq == nil {
				a.Log.Warn().Msgf("malformed %v", t)
				return
			}
			a.Log.Info().Msgf("%v station %v", t, rq.StationSocketId)
			h.ToStation(rq.StationSocketId, t, api.ScreenControlForward{
				FromAdmin: api.FromAdmin{AdminSocketId: a.Id()},
			})
		case t == api.RequestScreenshot:
			rq := api.Unwrap[api.ScreenControlRequest](p.Payload)
			if rq == nil {
				a.Log.Warn().Msgf("malformed %v", t)
				return
			}
			h.ToStation(rq.StationSocketId, t, api.ScreenshotPullForward{
				AdminBound: api.AdminBound{TargetAdminId: a.Id()},
			})
		case t.IsInput():
			// hottest path: no logging, payload relayed untouched
			rq := api.Unwrap[api.StationBound](p.Payload)
			if rq == nil {
				return
			}
			h.RelayToStation(rq.StationSocketId, t, p.Payload)
		case t == api.MessageStation:
			rq := api.Unwrap[api.MessageStationRequest](p.Payload)
			if rq == nil {
				a.Log.Warn().Msgf("malformed %v", t)
				return
			}
			a.Log.Info().Msgf("message-station %v", rq.StationSocketId)
			h.RelayToStation(rq.StationSocketId, api.ShowMessage, p.Payload)
		case t.IsManagement():
			rq := api.Unwrap[api.StationBound](p.Payload)
			if rq == nil {
				a.Log.Warn().Msgf("malformed %v", t)
				return
			}
			a.Log.Info().Msgf("%v -> %v", t, rq.StationSocketId)
			h.RelayToStation(rq.StationSocketId, t, p.Payload)
		case t == api.BroadcastCommand:
			rq := api.Unwrap[api.BroadcastRequest](p.Payload)
			if rq == nil {
				a.Log.Warn().Msgf("malformed %v", t)
				return
			}
			a.Log.Info().Msgf("broadcast %v to %v stations", api.PT(rq.Command), len(rq.StationSocketIds))
			h.Broadcast(*rq)
		default:
			a.Log.Warn().Msgf("unhandled packet %v", t)
		}
	})
}
