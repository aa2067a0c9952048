package dirvmp

import (
	"fmt"
	"math"
)

//Moments is the contract for any statistic representation a node can expose
//to message passing: it declares the shape of each statistic it carries and
//converts a fixed (non-random) value into those statistics.
type Moments interface {
	Dims() [][]int
	ComputeFixedMoments(x *Array) ([]*Array, error)
}

//absolute and relative tolerance used when checking that probabilities sum
//to one, matching the usual allclose defaults
const (
	sumAtol = 1e-8
	sumRtol = 1e-5
)

//DirichletPriorMoments represents the moments of a Dirichlet conjugate
//prior: the concentration vector itself and its log-normalizer
type DirichletPriorMoments struct {
	Categories int
}

//InitDirichletPriorMoments will build the prior moments descriptor for a
//given number of categories
func InitDirichletPriorMoments(categories int) *DirichletPriorMoments {
	m := new(DirichletPriorMoments)
	m.Categories = categories
	return m
}

//DirichletPriorMomentsFromValues infers the category count from the
//trailing axis of a fixed concentration value
func DirichletPriorMomentsFromValues(alpha *Array) (*DirichletPriorMoments, error) {
	if alpha.NDim() < 1 {
		return nil, fmt.Errorf("%w: the prior sample sizes must be a vector", ErrInvalidArgument)
	}
	return InitDirichletPriorMoments(alpha.LastDim()), nil
}

//Dims declares one K-vector and one scalar per plate cell
func (m *DirichletPriorMoments) Dims() [][]int {
	return [][]int{{m.Categories}, {}}
}

//ComputeFixedMoments will compute [alpha, z] for a fixed concentration
//vector, where z = lgamma(sum(alpha)) - sum(lgamma(alpha)) reduced along the
//trailing axis with plate axes preserved
func (m *DirichletPriorMoments) ComputeFixedMoments(alpha *Array) ([]*Array, error) {
	if alpha.NDim() < 1 {
		return nil, fmt.Errorf("%w: the prior sample sizes must be a vector", ErrInvalidArgument)
	}
	for _, a := range alpha.Data {
		if a < 0 {
			return nil, fmt.Errorf("%w: the prior sample sizes must be non-negative", ErrInvalidArgument)
		}
	}
	z := alpha.SumTrailing().Map(lgamma)
	sumLgamma := alpha.Map(lgamma).SumTrailing()
	for i := range z.Data {
		z.Data[i] -= sumLgamma.Data[i]
	}
	return []*Array{alpha.Clone(), z}, nil
}

//DirichletMoments represents the moments of a Dirichlet-distributed
//probability vector: the expected log-probabilities
type DirichletMoments struct {
	Categories int
}

//InitDirichletMoments will build the moments descriptor for a given number
//of categories
func InitDirichletMoments(categories int) *DirichletMoments {
	m := new(DirichletMoments)
	m.Categories = categories
	return m
}

//DirichletMomentsFromValues infers the category count from the trailing
//axis of a fixed probability value
func DirichletMomentsFromValues(p *Array) (*DirichletMoments, error) {
	if p.NDim() < 1 {
		return nil, fmt.Errorf("%w: probabilities must be given as a vector", ErrInvalidArgument)
	}
	return InitDirichletMoments(p.LastDim()), nil
}

//Dims declares one K-vector per plate cell
func (m *DirichletMoments) Dims() [][]int {
	return [][]int{{m.Categories}}
}

//ComputeFixedMoments will compute [log(p)] for a fixed probability vector.
//Each trailing-axis slice must sum to one within tolerance; it is then
//renormalized exactly before the logarithm to absorb floating-point drift.
//Exact-zero entries map to -Inf log-moments, which callers must tolerate.
func (m *DirichletMoments) ComputeFixedMoments(p *Array) ([]*Array, error) {
	if err := checkProbabilities(p); err != nil {
		return nil, err
	}
	logp := p.DivTrailing(p.SumTrailing()).Map(math.Log)
	return []*Array{logp}, nil
}

func checkProbabilities(p *Array) error {
	if p.NDim() < 1 {
		return fmt.Errorf("%w: probabilities must be given as a vector", ErrInvalidArgument)
	}
	for _, v := range p.Data {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: probabilities must be in range [0,1]", ErrInvalidArgument)
		}
	}
	for _, s := range p.SumTrailing().Data {
		if math.Abs(s-1.) > sumAtol+sumRtol {
			return fmt.Errorf("%w: probabilities must sum to one", ErrInvalidArgument)
		}
	}
	return nil
}
