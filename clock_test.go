package astrosim

import (
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func TestTimeManagerEpoch(t *testing.T) {
	noon := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTimeManager(noon)
	if tm.JD() != J2000 {
		t.Fatalf("JD %f, expected %f", tm.JD(), J2000)
	}
	if got := tm.Date(); !got.Equal(noon) {
		t.Fatalf("round trip date %s", got)
	}
}

func TestTimeManagerTick(t *testing.T) {
	tm, err := NewTimeManagerJD(J2000)
	if err != nil {
		t.Fatal(err)
	}
	tm.SetScale(secondsPerDay) // one simulated day per real second
	jd := tm.Tick(time.Second)
	if !floats.EqualWithinAbs(jd, J2000+1, 1e-9) {
		t.Fatalf("JD %f after one tick, expected %f", jd, J2000+1)
	}
	tm.SetScale(-secondsPerDay)
	jd = tm.Tick(time.Second)
	if !floats.EqualWithinAbs(jd, J2000, 1e-9) {
		t.Fatalf("JD %f after backwards tick, expected %f", jd, J2000)
	}
}

func TestTimeManagerTickElapsed(t *testing.T) {
	// Frames arrive unevenly under load; the advance must scale with each
	// measured delta so the total course only depends on elapsed wall time.
	tm, err := NewTimeManagerJD(J2000)
	if err != nil {
		t.Fatal(err)
	}
	tm.SetScale(secondsPerDay)
	tm.Tick(16 * time.Millisecond)
	tm.Tick(48 * time.Millisecond) // a delayed frame
	tm.Tick(16 * time.Millisecond)
	if !floats.EqualWithinAbs(tm.JD(), J2000+0.080, 1e-9) {
		t.Fatalf("JD %f after 80ms of scaled ticks, expected %f", tm.JD(), J2000+0.080)
	}
}

func TestTimeManagerPause(t *testing.T) {
	tm, err := NewTimeManagerJD(J2000)
	if err != nil {
		t.Fatal(err)
	}
	tm.SetScale(secondsPerDay)
	tm.Pause()
	if !tm.Paused() {
		t.Fatal("not paused")
	}
	if jd := tm.Tick(time.Second); jd != J2000 {
		t.Fatalf("paused clock advanced to %f", jd)
	}
	// AdvanceByDays ignores pause: explicit jumps always apply.
	if jd := tm.AdvanceByDays(10); jd != J2000+10 {
		t.Fatalf("AdvanceByDays yielded %f", jd)
	}
	tm.Resume()
	if jd := tm.Tick(time.Second); !floats.EqualWithinAbs(jd, J2000+11, 1e-9) {
		t.Fatalf("JD %f after resume, expected %f", jd, J2000+11)
	}
}

func TestTimeManagerCallbacks(t *testing.T) {
	tm, err := NewTimeManagerJD(J2000)
	if err != nil {
		t.Fatal(err)
	}
	var seen []float64
	tm.OnChange(func(jd float64) { seen = append(seen, jd) })
	tm.AdvanceByDays(1)
	if err := tm.SetJD(J2000 + 5); err != nil {
		t.Fatal(err)
	}
	tm.Pause()
	tm.Tick(time.Second) // paused, no notification
	if len(seen) != 2 || seen[0] != J2000+1 || seen[1] != J2000+5 {
		t.Fatalf("callback log %+v", seen)
	}
}

func TestTimeManagerInvalid(t *testing.T) {
	if _, err := NewTimeManagerJD(math.NaN()); err == nil {
		t.Fatal("NaN start accepted")
	}
	tm, err := NewTimeManagerJD(J2000)
	if err != nil {
		t.Fatal(err)
	}
	if err := tm.SetJD(math.Inf(1)); err == nil {
		t.Fatal("infinite jump accepted")
	}
	if tm.JD() != J2000 {
		t.Fatal("rejected jump moved the clock")
	}
}
