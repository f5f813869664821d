package trail

import "math"

// Radius falloff coefficients of the play-field projection. Distance near the
// judgement ring compresses less than distance near the centre.
const (
	falloffA = 1.4354973119363346
	falloffB = 1.7027444700980798
	falloffC = 1.154638454723781
	falloffD = -0.11566204049406854
)

// View is the visible scroll window and the play-field geometry it is
// projected onto. Screen y grows downward.
type View struct {
	StartDistance float64
	EndDistance   float64
	CenterX       float64
	CenterY       float64
	MaxRadius     float64
}

// Vertex is a projected point of the play field. Rotation is the screen angle
// of the radial direction, in degrees.
type Vertex struct {
	Distance float64 `csv:"distance"`
	Degree   float64 `csv:"degree"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Rotation float64 `csv:"rotation"`
}

// Visible reports whether d lies inside the window.
func (v View) Visible(d float64) bool {
	return d >= v.StartDistance && d <= v.EndDistance
}

// Radius maps a scroll distance onto the play-field radius. Objects at the
// window end sit near the centre and objects at the window start sit on the
// judgement ring.
func (v View) Radius(d float64) float64 {
	var x float64
	if span := v.EndDistance - v.StartDistance; span > 0 {
		x = (d - v.StartDistance) / span
	}
	return v.MaxRadius * (falloffA*math.Exp(falloffB*(1-x-falloffC)) + falloffD)
}

// Project places a trail angle at scroll distance d. Trail degree 0 points up
// and grows clockwise.
func (v View) Project(degree, d float64) Vertex {
	r := v.Radius(d)
	screen := wrap360(450 - degree)
	rad := screen * math.Pi / 180
	return Vertex{
		Distance: d,
		Degree:   degree,
		X:        v.CenterX + r*math.Cos(rad),
		Y:        v.CenterY - r*math.Sin(rad),
		Rotation: screen,
	}
}

// Mirror returns the vertex on the opposite arm of the trail.
func (v View) Mirror(p Vertex) Vertex {
	return Vertex{
		Distance: p.Distance,
		Degree:   wrap360(p.Degree + 180),
		X:        2*v.CenterX - p.X,
		Y:        2*v.CenterY - p.Y,
		Rotation: wrap360(p.Rotation + 180),
	}
}

// Path samples the visible part of the track. Every keyframe segment that
// intersects the window is clipped to it and sampled at steps+1 points.
// Vertex degrees are not folded: each is the equivalent angle (mod 180)
// nearest the previous vertex, so the polyline never jumps between arms.
func (tr *Track) Path(v View, steps int) []Vertex {
	if steps <= 0 {
		steps = 1
	}
	var out []Vertex
	for i := 0; i+1 < len(tr.samples); i++ {
		start, end := tr.samples[i], tr.samples[i+1]
		if end.Distance < v.StartDistance || start.Distance > v.EndDistance {
			continue
		}
		span := end.Distance - start.Distance
		if span <= 0 {
			continue
		}
		lo := math.Max(start.Distance, v.StartDistance)
		hi := math.Min(end.Distance, v.EndDistance)
		for j := 0; j <= steps; j++ {
			d := lo + (hi-lo)*float64(j)/float64(steps)
			if j == 0 && len(out) > 0 && out[len(out)-1].Distance == d {
				continue
			}
			deg := between(start, end, (d-start.Distance)/span, tr.iterations)
			if len(out) > 0 {
				prev := out[len(out)-1].Degree
				deg += 180 * math.Round((prev-deg)/180)
			}
			out = append(out, v.Project(deg, d))
		}
	}
	return out
}
