package chart

import (
	"github.com/pthm-cable/orbit/model"
	"github.com/pthm-cable/orbit/trail"
)

// NoteVertex is a visible note projected onto the play field.
type NoteVertex struct {
	Note model.Note
	trail.Vertex
}

// ViewAt returns the visible scroll window starting at chart time t, using
// the configured play-field geometry.
func (s *Snapshot) ViewAt(t float64) trail.View {
	start := s.Distance(t)
	v := s.cfg.View
	return trail.View{
		StartDistance: start,
		EndDistance:   start + v.ShowDistance,
		CenterX:       s.cfg.Derived.CenterX,
		CenterY:       s.cfg.Derived.CenterY,
		MaxRadius:     v.MaxRadius,
	}
}

// TrailPath samples both arms of the trail inside the view. The second
// return value is the arm opposite the first, vertex for vertex.
func (s *Snapshot) TrailPath(v trail.View, steps int) (arm, mirror []trail.Vertex) {
	arm = s.trail.Path(v, steps)
	mirror = make([]trail.Vertex, len(arm))
	for i, p := range arm {
		mirror[i] = v.Mirror(p)
	}
	return arm, mirror
}

// NoteVertices projects the notes whose scroll distance lies inside the view.
// Catch and Bomb notes sit on the trail; trail keyframes are never drawn.
func (s *Snapshot) NoteVertices(v trail.View) []NoteVertex {
	var out []NoteVertex
	for _, n := range s.notes {
		deg := n.NoteDegree()
		switch n.(type) {
		case model.Trail:
			continue
		case model.Catch, model.Bomb:
			deg = s.Angle(n.TimeKey())
		}
		d := s.Distance(n.TimeKey())
		if !v.Visible(d) {
			continue
		}
		out = append(out, NoteVertex{Note: n, Vertex: v.Project(deg, d)})
	}
	return out
}
