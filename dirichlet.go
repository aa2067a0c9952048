package dirvmp

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

//Dirichlet is a node for Dirichlet random variables: a set of K
//probabilities that sum to one, with a concentration-vector prior. The
//posterior approximation has the same functional form with different
//concentrations, held in Phi. Phi is owned by the node and overwritten in
//place by the inference engine between iterations; the moments and
//log-partition are pure functions of the current Phi.
type Dirichlet struct {
	Name       string
	Phi        []*Array
	U          []*Array
	G          *Array
	Categories int

	dist    DirichletDistribution
	moments *DirichletMoments
	parents []VMPNode
	plates  []int
}

//InitDirichlet will construct a Dirichlet node from a prior concentration
//given as a concrete vector ([]float64 or *Array) or as another node
//carrying Dirichlet prior moments. Concrete values are wrapped as constant
//nodes. plates may be nil; otherwise it broadcasts against the parent's
//plates to give the node's total plate shape. Phi is initialized from the
//parent's prior moments and the initial moments are computed from it.
func InitDirichlet(alpha interface{}, plates []int, name string) (*Dirichlet, error) {
	parent, pm, err := ensureDirichletPrior(alpha)
	if err != nil {
		return nil, err
	}
	total, err := totalPlates(plates, parent.Plates())
	if err != nil {
		return nil, err
	}
	d := new(Dirichlet)
	d.Name = name
	d.Categories = pm.Categories
	d.dist = dirichletDistribution
	d.moments = InitDirichletMoments(pm.Categories)
	d.parents = []VMPNode{parent}
	d.plates = total
	d.Phi = d.dist.ComputePhiFromParents(parent.Moments(), nil)
	if err := d.UpdateMoments(); err != nil {
		return nil, err
	}
	return d, nil
}

//UpdateMoments will recompute the node's moments and log-partition from the
//current natural parameters. The inference engine calls this after each
//in-place update of Phi.
func (d *Dirichlet) UpdateMoments() error {
	u, g, err := d.dist.ComputeMomentsAndCGF(d.Phi, nil)
	if err != nil {
		return err
	}
	d.U = u
	d.G = g
	return nil
}

//Moments returns the current expected log-probabilities
func (d *Dirichlet) Moments() []*Array {
	return d.U
}

//Plates returns the node's total plate shape
func (d *Dirichlet) Plates() []int {
	return d.plates
}

//Parents returns the node's parent nodes; the single parent carries the
//prior concentration moments
func (d *Dirichlet) Parents() []VMPNode {
	return d.parents
}

//Dims returns the declared statistic shapes
func (d *Dirichlet) Dims() [][]int {
	return d.moments.Dims()
}

//Random will draw one sample per plate cell from the current posterior
//approximation
func (d *Dirichlet) Random(src rand.Source) (*Array, error) {
	return d.dist.Random(d.Phi, d.plates, src)
}

//String renders the node and its current natural parameters, as a
//debugging aid
func (d *Dirichlet) String() string {
	fa := mat.Formatted(d.Phi[0].AsDense(), mat.Prefix("  "), mat.Squeeze())
	return fmt.Sprintf("%s ~ Dirichlet(alpha)\n  alpha =\n  %v", d.Name, fa)
}
