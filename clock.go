package astrosim

import (
	"time"

	"github.com/soniakeys/meeus/julian"
)

const secondsPerDay = 86400.0

// TimeManager owns the simulated Julian date and the playback rate. It has no
// timer of its own: an external driver calls Tick at its chosen cadence and
// then advances the SolarSystem to JD().
type TimeManager struct {
	jd     float64
	scale  float64 // simulated seconds per wall-clock second
	paused bool

	callbacks []func(jd float64)
}

// NewTimeManager starts the clock at the given instant, real time rate.
func NewTimeManager(start time.Time) *TimeManager {
	return &TimeManager{jd: julian.TimeToJD(start.UTC()), scale: 1}
}

// NewTimeManagerJD starts the clock at the given Julian date.
func NewTimeManagerJD(jd float64) (*TimeManager, error) {
	if !isFinite(jd) {
		return nil, &InvalidTimeError{jd}
	}
	return &TimeManager{jd: jd, scale: 1}, nil
}

// JD returns the current simulated Julian date.
func (tm *TimeManager) JD() float64 { return tm.jd }

// Date returns the current simulated date as UTC wall-clock time.
func (tm *TimeManager) Date() time.Time { return julian.JDToTime(tm.jd) }

// SetJD jumps the simulation to the given Julian date.
func (tm *TimeManager) SetJD(jd float64) error {
	if !isFinite(jd) {
		return &InvalidTimeError{jd}
	}
	tm.jd = jd
	tm.notify()
	return nil
}

// SetDate jumps the simulation to the given instant.
func (tm *TimeManager) SetDate(date time.Time) {
	tm.jd = julian.TimeToJD(date.UTC())
	tm.notify()
}

// Scale returns the playback rate in simulated seconds per real second.
func (tm *TimeManager) Scale() float64 { return tm.scale }

// SetScale sets the playback rate. Negative rates run the simulation backwards.
func (tm *TimeManager) SetScale(scale float64) { tm.scale = scale }

// Pause stops Tick from advancing the date.
func (tm *TimeManager) Pause() { tm.paused = true }

// Resume reverts Pause.
func (tm *TimeManager) Resume() { tm.paused = false }

// Paused reports whether the clock is paused.
func (tm *TimeManager) Paused() bool { return tm.paused }

// Tick advances the simulated date by the elapsed real time scaled by the
// playback rate, and returns the new Julian date.
func (tm *TimeManager) Tick(realDt time.Duration) float64 {
	if tm.paused {
		return tm.jd
	}
	tm.jd += realDt.Seconds() * tm.scale / secondsPerDay
	tm.notify()
	return tm.jd
}

// AdvanceByDays advances the simulated date by the given number of days,
// regardless of pause state.
func (tm *TimeManager) AdvanceByDays(days float64) float64 {
	tm.jd += days
	tm.notify()
	return tm.jd
}

// OnChange registers a callback invoked after every date change.
func (tm *TimeManager) OnChange(f func(jd float64)) {
	tm.callbacks = append(tm.callbacks, f)
}

func (tm *TimeManager) notify() {
	for _, f := range tm.callbacks {
		f(tm.jd)
	}
}
