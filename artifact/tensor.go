package artifact

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ndgpemu/ndgpemu/errs"
)

// Tensor is a named row-major float64 matrix. Vectors are stored as 1×n.
type Tensor struct {
	Name string
	Rows int
	Cols int
	Data []float64
}

// NewTensor creates a tensor after checking that data holds rows*cols values.
func NewTensor(name string, rows, cols int, data []float64) (Tensor, error) {
	if name == "" {
		return Tensor{}, fmt.Errorf("%w: empty tensor name", errs.ErrShapeMismatch)
	}
	if rows <= 0 || cols <= 0 {
		return Tensor{}, fmt.Errorf("%w: tensor %q has shape %dx%d", errs.ErrShapeMismatch, name, rows, cols)
	}
	if len(data) != rows*cols {
		return Tensor{}, fmt.Errorf("%w: tensor %q is %dx%d but holds %d values",
			errs.ErrShapeMismatch, name, rows, cols, len(data))
	}

	return Tensor{Name: name, Rows: rows, Cols: cols, Data: data}, nil
}

// Vector creates a 1×n tensor.
func Vector(name string, data []float64) (Tensor, error) {
	return NewTensor(name, 1, len(data), data)
}

// Len returns the number of values.
func (t Tensor) Len() int {
	return t.Rows * t.Cols
}

// IsVector reports whether the tensor has a single row or a single column.
func (t Tensor) IsVector() bool {
	return t.Rows == 1 || t.Cols == 1
}

// Shape returns the shape as "rows x cols".
func (t Tensor) Shape() string {
	return fmt.Sprintf("%dx%d", t.Rows, t.Cols)
}

// Dense returns a matrix view sharing the tensor data.
func (t Tensor) Dense() *mat.Dense {
	return mat.NewDense(t.Rows, t.Cols, t.Data)
}
