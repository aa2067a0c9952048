package dirvmp

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Array is a plate-aware numerical array. Data is stored contiguously in
//row-major order. The trailing axis is the event axis of a statistic; all
//leading axes are independent plates that broadcast through every formula.
type Array struct {
	Shape []int
	Data  []float64
}

//NewArray will build an array with the given shape around data. A nil data
//slice allocates a zeroed one. Panics if the data length does not match the
//shape, following the gonum/mat convention for dimension mismatches.
func NewArray(shape []int, data []float64) *Array {
	n := prod(shape)
	if data == nil {
		data = make([]float64, n)
	}
	if len(data) != n {
		panic(fmt.Sprintf("dirvmp: shape %v needs %d elements, got %d", shape, n, len(data)))
	}
	a := new(Array)
	a.Shape = append([]int{}, shape...)
	a.Data = data
	return a
}

//NewVector will build a 1-dimensional array holding a copy of v
func NewVector(v []float64) *Array {
	return NewArray([]int{len(v)}, append([]float64{}, v...))
}

//NewScalar will build a 0-dimensional array holding x
func NewScalar(x float64) *Array {
	return NewArray([]int{}, []float64{x})
}

//NDim returns the number of axes
func (a *Array) NDim() int {
	return len(a.Shape)
}

//Size returns the total number of elements
func (a *Array) Size() int {
	return len(a.Data)
}

//LastDim returns the length of the trailing (event) axis
func (a *Array) LastDim() int {
	return a.Shape[len(a.Shape)-1]
}

//Clone returns a deep copy
func (a *Array) Clone() *Array {
	return NewArray(a.Shape, append([]float64{}, a.Data...))
}

//SumTrailing will reduce the trailing axis, preserving all plate axes
func (a *Array) SumTrailing() *Array {
	k := a.LastDim()
	out := NewArray(a.Shape[:a.NDim()-1], nil)
	for i := range out.Data {
		out.Data[i] = floats.Sum(a.Data[i*k : (i+1)*k])
	}
	return out
}

//Map applies f elementwise and returns a new array
func (a *Array) Map(f func(float64) float64) *Array {
	out := NewArray(a.Shape, nil)
	for i, v := range a.Data {
		out.Data[i] = f(v)
	}
	return out
}

//Mul multiplies elementwise with an array of identical shape
func (a *Array) Mul(b *Array) *Array {
	if !shapeEq(a.Shape, b.Shape) {
		panic(fmt.Sprintf("dirvmp: elementwise product needs equal shapes, got %v and %v", a.Shape, b.Shape))
	}
	out := a.Clone()
	floats.Mul(out.Data, b.Data)
	return out
}

//SubTrailing subtracts a trailing-reduced array, broadcasting it back across
//the event axis: out[..., k] = a[..., k] - r[...]
func (a *Array) SubTrailing(r *Array) *Array {
	if !shapeEq(a.Shape[:a.NDim()-1], r.Shape) {
		panic(fmt.Sprintf("dirvmp: reduced shape %v does not match plates of %v", r.Shape, a.Shape))
	}
	k := a.LastDim()
	out := a.Clone()
	for i, v := range r.Data {
		floats.AddConst(-v, out.Data[i*k:(i+1)*k])
	}
	return out
}

//DivTrailing divides by a trailing-reduced array, broadcasting it back
//across the event axis
func (a *Array) DivTrailing(r *Array) *Array {
	if !shapeEq(a.Shape[:a.NDim()-1], r.Shape) {
		panic(fmt.Sprintf("dirvmp: reduced shape %v does not match plates of %v", r.Shape, a.Shape))
	}
	k := a.LastDim()
	out := a.Clone()
	for i, v := range r.Data {
		floats.Scale(1./v, out.Data[i*k:(i+1)*k])
	}
	return out
}

//AsDense will flatten the plate axes and return a (plates x K) matrix view,
//mostly so natural parameters can be pretty-printed with mat.Formatted
func (a *Array) AsDense() *mat.Dense {
	k := a.LastDim()
	return mat.NewDense(len(a.Data)/k, k, a.Data)
}

func prod(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

func shapeEq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

//BroadcastShapes combines two shapes under the usual broadcasting rules:
//axes are aligned on the right, and each pair must be equal or contain a 1.
//Used to merge an explicit plates override with a parent's plates.
func BroadcastShapes(a, b []int) ([]int, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int, n)
	for i := 1; i <= n; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db || db == 1:
			out[n-i] = da
		case da == 1:
			out[n-i] = db
		default:
			return nil, fmt.Errorf("%w: plate shapes %v and %v do not broadcast", ErrInvalidArgument, a, b)
		}
	}
	return out, nil
}

//broadcastStrides returns, for each axis of the target shape, the flat
//stride into an array of the given shape, with 0 for broadcast (missing or
//size-1) axes. Shapes must already be broadcast-compatible.
func broadcastStrides(shape, to []int) []int {
	strides := make([]int, len(to))
	step := 1
	for i := 1; i <= len(shape); i++ {
		j := len(to) - i
		if shape[len(shape)-i] != 1 {
			strides[j] = step
		}
		step *= shape[len(shape)-i]
	}
	return strides
}

//flatIndex maps a multi-index to a flat offset under the given strides
func flatIndex(idx, strides []int) int {
	off := 0
	for i, v := range idx {
		off += v * strides[i]
	}
	return off
}

//nextIndex advances a multi-index through the given shape, returning false
//after the last cell
func nextIndex(idx, shape []int) bool {
	for i := len(shape) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return true
		}
		idx[i] = 0
	}
	return false
}
