package timeline

import "github.com/pthm-cable/orbit/model"

// Chart time is milliseconds. Earlier chart versions expressed the same scale
// as 31.25*32, which is also 1000, so no per-version conversion is needed.
const (
	MillisPerSecond = 1000.0
	MillisPerMinute = 60 * MillisPerSecond
)

// ChartTime converts playback seconds to chart milliseconds.
func ChartTime(realSeconds float64) float64 { return realSeconds * MillisPerSecond }

// RealTime converts chart milliseconds to playback seconds.
func RealTime(chartTime float64) float64 { return chartTime / MillisPerSecond }

// TempoMap is a time-sorted, piecewise-constant tempo timeline. Beat 0 is at
// time 0 and the first tempo applies before the first keyframe.
type TempoMap []model.TempoPoint

// BPMAt returns the tempo in effect at t.
func (m TempoMap) BPMAt(t float64) (float64, bool) {
	if len(m) == 0 {
		return 0, false
	}
	return m[Floor(m, ByTime[model.TempoPoint], t)].BPM, true
}

// BeatAt returns the number of beats elapsed at chart time t.
func (m TempoMap) BeatAt(t float64) float64 {
	if len(m) == 0 {
		return 0
	}
	var beat, lastTime float64
	lastBPM := m[0].BPM
	for _, p := range m {
		if t < p.Time {
			break
		}
		beat += (p.Time - lastTime) / MillisPerMinute * lastBPM
		lastTime, lastBPM = p.Time, p.BPM
	}
	return beat + (t-lastTime)/MillisPerMinute*lastBPM
}

// TimeAt returns the chart time at which beat is reached. It is the inverse
// of BeatAt.
func (m TempoMap) TimeAt(beat float64) float64 {
	if len(m) == 0 {
		return 0
	}
	var acc, lastTime float64
	lastBPM := m[0].BPM
	for _, p := range m {
		seg := (p.Time - lastTime) / MillisPerMinute * lastBPM
		if acc+seg > beat {
			break
		}
		acc += seg
		lastTime, lastBPM = p.Time, p.BPM
	}
	if lastBPM == 0 {
		return lastTime
	}
	return lastTime + (beat-acc)*MillisPerMinute/lastBPM
}
