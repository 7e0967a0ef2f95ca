// SPDX-License-Identifier: MIT

package dense

import (
	"gonum.org/v1/gonum/mat"
)

// ToMat converts m into a gonum *mat.Dense (row-major float64).
// Complexity: O(r*c).
func (m *Dense[T]) ToMat() *mat.Dense {
	if m.IsEmpty() {
		// gonum forbids zero-sized NewDense; hand back the zero value.
		return &mat.Dense{}
	}
	out := mat.NewDense(m.r, m.c, nil)
	var i, j int
	for j = 0; j < m.c; j++ {
		for i = 0; i < m.r; i++ {
			out.Set(i, j, float64(m.data[i+j*m.r]))
		}
	}

	return out
}

// FromMat copies any gonum mat.Matrix into a new column-major Dense.
// float32 destinations round each element.
func FromMat[T Float](src mat.Matrix) (*Dense[T], error) {
	if src == nil {
		return nil, ErrNilMatrix
	}
	r, c := src.Dims()
	m, err := New[T](r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			m.data[i+j*r] = T(src.At(i, j))
		}
	}

	return m, nil
}
