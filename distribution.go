package dirvmp

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

//DirichletDistribution holds the variational message-passing formulas of
//Dirichlet variables. It carries no state; the single package-level
//instance is shared by every Dirichlet node.
type DirichletDistribution struct{}

var dirichletDistribution = DirichletDistribution{}

//ComputePhiFromParents will derive the natural parameter vector from the
//parent moments. The Dirichlet natural parameter space coincides with its
//own concentration-vector space, so the parent's first moment passes
//through unchanged. The mask is a plate-selection hint and is not required
//for correctness.
func (DirichletDistribution) ComputePhiFromParents(uAlpha []*Array, mask []bool) []*Array {
	return []*Array{uAlpha[0].Clone()}
}

//ComputeMomentsAndCGF will compute the expected log-probabilities and the
//log-partition g from the natural parameters:
//
//	u0 = psi(phi0) - psi(sum(phi0))
//	g  = lgamma(sum(phi0)) - sum(lgamma(phi0))
//
//with the sums reduced on the trailing axis and broadcast back over it.
//Every entry of phi[0] must be strictly positive.
func (DirichletDistribution) ComputeMomentsAndCGF(phi []*Array, mask []bool) ([]*Array, *Array, error) {
	if err := checkPhi(phi); err != nil {
		return nil, nil, err
	}
	sum := phi[0].SumTrailing()
	u0 := phi[0].Map(digamma).SubTrailing(sum.Map(digamma))
	g := sum.Map(lgamma)
	sumLgamma := phi[0].Map(lgamma).SumTrailing()
	for i := range g.Data {
		g.Data[i] -= sumLgamma.Data[i]
	}
	return []*Array{u0}, g, nil
}

//ComputeCGFFromParents will compute the prior-side expectation of the
//log-partition. The parent's second moment already is the log-normalizer,
//so it is reused without recomputation.
func (DirichletDistribution) ComputeCGFFromParents(uAlpha []*Array) *Array {
	return uAlpha[1].Clone()
}

//ComputeMessageToParent is undefined for a Dirichlet-distributed
//concentration hyperparameter and always fails. This is a known functional
//gap, not something to work around silently.
func (DirichletDistribution) ComputeMessageToParent(parent VMPNode, index int, uSelf, uAlpha []*Array) ([]*Array, error) {
	return nil, fmt.Errorf("%w: message to the parent of a Dirichlet node", ErrNotImplemented)
}

//ComputeFixedMomentsAndF will compute the moments [log(p)] and the base
//measure f = -sum(log(p)) for a fixed, observed probability vector, with
//the same validation and defensive renormalization as the moments class
func (DirichletDistribution) ComputeFixedMomentsAndF(p *Array, mask []bool) ([]*Array, *Array, error) {
	if err := checkProbabilities(p); err != nil {
		return nil, nil, err
	}
	logp := p.DivTrailing(p.SumTrailing()).Map(math.Log)
	f := logp.SumTrailing().Map(func(x float64) float64 { return -x })
	return []*Array{logp}, f, nil
}

//Random will draw one sample per plate cell from Dirichlet(phi[0]). The
//plates shape must broadcast against the leading axes of phi[0]; the result
//has the broadcast plate shape plus the trailing category axis.
func (DirichletDistribution) Random(phi []*Array, plates []int, src rand.Source) (*Array, error) {
	if err := checkPhi(phi); err != nil {
		return nil, err
	}
	k := phi[0].LastDim()
	phiPlates := phi[0].Shape[:phi[0].NDim()-1]
	outPlates, err := BroadcastShapes(plates, phiPlates)
	if err != nil {
		return nil, err
	}
	out := NewArray(append(append([]int{}, outPlates...), k), nil)
	strides := broadcastStrides(phiPlates, outPlates)
	idx := make([]int, len(outPlates))
	for cell := 0; cell < prod(outPlates); cell++ {
		row := flatIndex(idx, strides)
		randDirichlet(out.Data[cell*k:(cell+1)*k], phi[0].Data[row*k:(row+1)*k], src)
		nextIndex(idx, outPlates)
	}
	return out, nil
}

//ComputeGradient converts a Riemannian gradient with respect to the moments
//into an ordinary gradient with respect to phi, through the Fisher
//information of the family:
//
//	d0 = g0 * (trigamma(phi0) - trigamma(sum(phi0)))
func (DirichletDistribution) ComputeGradient(g, u, phi []*Array) ([]*Array, error) {
	if err := checkPhi(phi); err != nil {
		return nil, err
	}
	curv := phi[0].Map(trigamma).SubTrailing(phi[0].SumTrailing().Map(trigamma))
	return []*Array{g[0].Mul(curv)}, nil
}

func checkPhi(phi []*Array) error {
	if len(phi) != 1 || phi[0].NDim() < 1 {
		return fmt.Errorf("%w: natural parameters must hold one vector statistic", ErrInvalidArgument)
	}
	for _, v := range phi[0].Data {
		if v <= 0 {
			return fmt.Errorf("%w: natural parameters should be positive", ErrInvalidArgument)
		}
	}
	return nil
}
