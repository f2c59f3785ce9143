package motion

import (
	"time"

	"github.com/paulmach/orb/geo"
)

// guard short-circuits fixes that need no track matching.
//
// A displacement beyond AnomalyDistance from the last track-space position
// means the feed reused the id for another vehicle: the motion is reset to a
// single sample at the raw position. A stopped vehicle gets the raw position
// appended as-is. Both return handled=true.
func (e *Engine) guard(st *VehicleState, fix Fix, now time.Time) (Outcome, bool) {
	if st == nil || st.TrackSpace == nil {
		return 0, false
	}
	raw := fix.Point()
	displacement := geo.Distance(*st.TrackSpace, raw)

	if displacement > e.cfg.AnomalyDistance {
		e.log.Debug("Vehicle identity discontinuity",
			"id", fix.ID, "route", fix.Route, "displacement", displacement)
		st.Motion = NewMotionProperty(now, raw)
		st.TrackSpace = &raw
		return OutcomeReset, true
	}
	if fix.Status == StatusStoppedAt {
		st.Motion.AddSample(now, raw)
		st.TrackSpace = &raw
		return OutcomeStopped, true
	}
	return 0, false
}
