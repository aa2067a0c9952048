package dirvmp

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

func digamma(x float64) float64 {
	return mathext.Digamma(x)
}

//trigamma is the first polygamma function, psi^(1)(x) = zeta(2, x)
func trigamma(x float64) float64 {
	return mathext.Zeta(2, x)
}

//randDirichlet will fill p with one draw from Dirichlet(alpha) by
//normalizing independent Gamma(alpha_k, 1) variates
func randDirichlet(p, alpha []float64, src rand.Source) {
	for k, a := range alpha {
		g := distuv.Gamma{Alpha: a, Beta: 1, Src: src}
		p[k] = g.Rand()
	}
	floats.Scale(1./floats.Sum(p), p)
}
