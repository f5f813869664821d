package chartfile

import (
	"fmt"

	"github.com/pthm-cable/orbit/model"
)

// wireNote is the field set shared by the JSON and CBOR note encodings.
// Absent fields decode as zero.
type wireNote struct {
	Type       int      `json:"type" cbor:"1,keyasint"`
	TypeName   string   `json:"typename,omitempty" cbor:"-"`
	Time       float64  `json:"time" cbor:"2,keyasint"`
	Degree     float64  `json:"degree" cbor:"3,keyasint"`
	SlideType  *float64 `json:"slidetype,omitempty" cbor:"4,keyasint,omitempty"`
	EndDegree  *float64 `json:"end_degree,omitempty" cbor:"5,keyasint,omitempty"`
	Snap       *float64 `json:"snap,omitempty" cbor:"6,keyasint,omitempty"`
	Amount     *float64 `json:"amount,omitempty" cbor:"7,keyasint,omitempty"`
	Delta      *float64 `json:"delta,omitempty" cbor:"8,keyasint,omitempty"`
	PrevCurve  *float64 `json:"prev_curv,omitempty" cbor:"9,keyasint,omitempty"`
	NextCurve  *float64 `json:"next_curv,omitempty" cbor:"10,keyasint,omitempty"`
	TrueDegree *float64 `json:"truedegree,omitempty" cbor:"-"`
}

func ptr(v float64) *float64 { return &v }

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func toWire(n model.Note) wireNote {
	w := wireNote{
		Type:     int(n.Kind()),
		TypeName: n.Kind().String(),
		Time:     n.TimeKey(),
		Degree:   n.NoteDegree(),
	}
	switch n := n.(type) {
	case model.Slide:
		w.SlideType = ptr(float64(n.SlideKind))
		w.EndDegree = ptr(n.EndDegree)
		w.Snap = ptr(float64(n.Snap))
		w.Amount = ptr(float64(n.Amount))
		w.PrevCurve = ptr(n.PrevCurve)
		w.NextCurve = ptr(n.NextCurve)
	case model.Rotate:
		w.Delta = ptr(n.Delta)
		w.PrevCurve = ptr(n.PrevCurve)
		w.NextCurve = ptr(n.NextCurve)
	case model.Trail:
		w.Delta = ptr(n.Delta)
		w.PrevCurve = ptr(n.PrevCurve)
		w.NextCurve = ptr(n.NextCurve)
	}
	return w
}

func (w wireNote) note() (model.Note, error) {
	kind, ok := model.ParseKind(w.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNoteType, w.Type)
	}
	switch kind {
	case model.KindTap:
		return model.Tap{Time: w.Time, Degree: w.Degree}, nil
	case model.KindFlick:
		return model.Flick{Time: w.Time, Degree: w.Degree}, nil
	case model.KindCatch:
		return model.Catch{Time: w.Time, Degree: w.Degree}, nil
	case model.KindBomb:
		return model.Bomb{Time: w.Time, Degree: w.Degree}, nil
	case model.KindSlide:
		return model.Slide{
			Time:      w.Time,
			Degree:    w.Degree,
			SlideKind: int(val(w.SlideType)),
			EndDegree: val(w.EndDegree),
			Snap:      int(val(w.Snap)),
			Amount:    int(val(w.Amount)),
			PrevCurve: val(w.PrevCurve),
			NextCurve: val(w.NextCurve),
		}, nil
	case model.KindRotate:
		return model.Rotate{Time: w.Time, Degree: w.Degree, Delta: val(w.Delta), PrevCurve: val(w.PrevCurve), NextCurve: val(w.NextCurve)}, nil
	case model.KindTrail:
		return model.Trail{Time: w.Time, Degree: w.Degree, Delta: val(w.Delta), PrevCurve: val(w.PrevCurve), NextCurve: val(w.NextCurve)}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownNoteType, w.Type)
}
