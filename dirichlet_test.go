package dirvmp

import (
	"errors"
	"math"
	"strings"
	"testing"

	"golang.org/x/exp/rand"
)

func TestInitDirichletFromConstantPrior(t *testing.T) {
	d, err := InitDirichlet([]float64{1, 1, 1}, nil, "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Categories != 3 {
		t.Fatalf("categories: got %d want 3", d.Categories)
	}
	floatsNear(t, d.Phi[0].Data, []float64{1, 1, 1}, 0)
	if len(d.Plates()) != 0 {
		t.Fatalf("plates: got %v want none", d.Plates())
	}
	// psi(1) - psi(3) = -3/2
	floatsNear(t, d.U[0].Data, []float64{-1.5, -1.5, -1.5}, 1e-12)
}

func TestInitDirichletFromParentNode(t *testing.T) {
	m := InitDirichletPriorMoments(2)
	parent, err := InitConstant(m, NewVector([]float64{3, 4}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := InitDirichlet(parent, nil, "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Categories != 2 {
		t.Fatalf("categories: got %d want 2", d.Categories)
	}
	floatsNear(t, d.Phi[0].Data, []float64{3, 4}, 0)
	if len(d.Parents()) != 1 || d.Parents()[0] != parent {
		t.Fatalf("the constructed node should keep its parent reachable")
	}
}

func TestInitDirichletRejectsScalar(t *testing.T) {
	if _, err := InitDirichlet(NewScalar(1.5), nil, "p"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid-argument for 0-dimensional alpha, got %v", err)
	}
	if _, err := InitDirichlet(2.0, nil, "p"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid-argument for a bare float, got %v", err)
	}
}

func TestInitDirichletPlates(t *testing.T) {
	alpha := NewArray([]int{2, 3}, []float64{1, 1, 1, 2, 2, 2})
	d, err := InitDirichlet(alpha, nil, "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shapeEq(d.Plates(), []int{2}) {
		t.Fatalf("plates: got %v want [2]", d.Plates())
	}

	d, err = InitDirichlet(alpha, []int{4, 2}, "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shapeEq(d.Plates(), []int{4, 2}) {
		t.Fatalf("plates: got %v want [4 2]", d.Plates())
	}
}

func TestUpdateMomentsAfterPhiOverwrite(t *testing.T) {
	d, err := InitDirichlet([]float64{1, 1}, nil, "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the inference engine overwrites phi in place between iterations
	copy(d.Phi[0].Data, []float64{2, 2})
	if err := d.UpdateMoments(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// psi(2) - psi(4) = -5/6
	floatsNear(t, d.U[0].Data, []float64{-5.0 / 6, -5.0 / 6}, 1e-12)
	floatsNear(t, d.G.Data, []float64{math.Log(6)}, 1e-12)
}

func TestDirichletRandom(t *testing.T) {
	d, err := InitDirichlet([]float64{2, 3, 4}, nil, "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := d.Random(rand.NewSource(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shapeEq(s.Shape, []int{3}) {
		t.Fatalf("sample shape: got %v want [3]", s.Shape)
	}
	sum := 0.
	for _, v := range s.Data {
		if v < 0 || v > 1 {
			t.Fatalf("sample entry out of range: %v", s.Data)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("sample sums to %v", sum)
	}
}

func TestDirichletString(t *testing.T) {
	d, err := InitDirichlet([]float64{1, 2}, nil, "weights")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := d.String()
	if !strings.Contains(s, "weights ~ Dirichlet(alpha)") {
		t.Fatalf("unexpected rendering:\n%s", s)
	}
	if !strings.Contains(s, "1") || !strings.Contains(s, "2") {
		t.Fatalf("rendering should include the natural parameters:\n%s", s)
	}
}
