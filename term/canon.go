package term

import (
	"strings"

	"github.com/thoschr/quantwo/factor"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/sqop"
)

// epsPrefacOne is the tolerance below which a prefactor is considered
// exactly one and its leading fraction is omitted from canonical output
// (spec.md §6 "Output").
const epsPrefacOne = 1e-12

// String renders the term's canonical textual form: an optional leading
// fraction, the summation, the matrix product in insertion order and the
// surviving operator string in normal order (spec.md §6, §8 property 5:
// "Two Terms that are equal under equal produce identical canonical output
// strings").
func (t Term) String() string {
	var sb strings.Builder
	if !t.Prefac.Sub(factor.One()).LessThanAbs(epsPrefacOne) {
		sb.WriteString(t.Prefac.String())
		sb.WriteByte(' ')
	}
	if real := t.RealSumIndx.Slice(); len(real) > 0 {
		sb.WriteString("\\sum_{")
		for i, o := range real {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(o.String())
		}
		sb.WriteString("} ")
	}
	t.Mat.ForEach(func(i int, m matrices.Matrices) {
		if m.Type == matrices.None {
			return
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	})
	if t.OpProd.Len() > 0 {
		sb.WriteByte(' ')
		t.OpProd.ForEach(func(i int, op sqop.SQOp) {
			sb.WriteString(op.String())
		})
	}
	return sb.String()
}
