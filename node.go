package dirvmp

import (
	"fmt"
)

//VMPNode is the surface a node exposes to message passing: its current
//moments, its plate shape, and the declared shape of each statistic
type VMPNode interface {
	Moments() []*Array
	Plates() []int
	Dims() [][]int
}

//Constant wraps a fixed value under a moments descriptor so that literal
//hyperparameters can stand in for parent nodes. Its moments never change.
type Constant struct {
	Name    string
	moments Moments
	u       []*Array
	plates  []int
}

//InitConstant will build a constant node by converting x into the
//sufficient statistics of the given moments descriptor. The trailing axis
//of x is the event axis; any leading axes become the node's plates.
func InitConstant(m Moments, x *Array) (*Constant, error) {
	u, err := m.ComputeFixedMoments(x)
	if err != nil {
		return nil, err
	}
	c := new(Constant)
	c.moments = m
	c.u = u
	c.plates = append([]int{}, x.Shape[:x.NDim()-1]...)
	return c, nil
}

//Moments returns the fixed statistics
func (c *Constant) Moments() []*Array {
	return c.u
}

//Plates returns the node's plate shape
func (c *Constant) Plates() []int {
	return c.plates
}

//Dims returns the declared statistic shapes
func (c *Constant) Dims() [][]int {
	return c.moments.Dims()
}

//ensureDirichletPrior coerces alpha into a node carrying Dirichlet prior
//moments: an existing node passes through after a shape check, a concrete
//value is wrapped as a constant node. Accepted concrete forms are *Array
//and []float64. A 0-dimensional value fails because the category count
//cannot be determined from it.
func ensureDirichletPrior(alpha interface{}) (VMPNode, *DirichletPriorMoments, error) {
	switch a := alpha.(type) {
	case VMPNode:
		dims := a.Dims()
		if len(dims) != 2 || len(dims[0]) != 1 {
			return nil, nil, fmt.Errorf("%w: parent node does not carry Dirichlet prior moments", ErrInvalidArgument)
		}
		return a, InitDirichletPriorMoments(dims[0][0]), nil
	case *Array:
		m, err := DirichletPriorMomentsFromValues(a)
		if err != nil {
			return nil, nil, err
		}
		c, err := InitConstant(m, a)
		if err != nil {
			return nil, nil, err
		}
		return c, m, nil
	case []float64:
		return ensureDirichletPrior(NewVector(a))
	default:
		return nil, nil, fmt.Errorf("%w: cannot use %T as a Dirichlet prior", ErrInvalidArgument, alpha)
	}
}

//totalPlates merges an explicit plates override with the parent's plates
func totalPlates(override, parent []int) ([]int, error) {
	return BroadcastShapes(override, parent)
}
