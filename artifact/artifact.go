package artifact

import (
	"fmt"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
)

// Artifact is one decoded artifact file: its kind, model type and tensors.
type Artifact struct {
	kind        format.ArtifactKind
	model       format.ModelType
	compression format.CompressionType
	bigEndian   bool
	tensors     []Tensor
	index       map[string]int
}

// New creates an in-memory artifact. Tensor names must be unique.
func New(kind format.ArtifactKind, model format.ModelType, tensors ...Tensor) (*Artifact, error) {
	a := &Artifact{
		kind:        kind,
		model:       model,
		compression: format.CompressionZstd,
		tensors:     make([]Tensor, 0, len(tensors)),
		index:       make(map[string]int, len(tensors)),
	}

	for _, t := range tensors {
		if err := a.add(t); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *Artifact) add(t Tensor) error {
	if _, ok := a.index[t.Name]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateTensor, t.Name)
	}
	a.index[t.Name] = len(a.tensors)
	a.tensors = append(a.tensors, t)

	return nil
}

// Kind returns the artifact kind.
func (a *Artifact) Kind() format.ArtifactKind {
	return a.kind
}

// Model returns the model type.
func (a *Artifact) Model() format.ModelType {
	return a.model
}

// Compression returns the payload compression the artifact was read with.
func (a *Artifact) Compression() format.CompressionType {
	return a.compression
}

// IsBigEndian reports whether the artifact was stored big-endian.
func (a *Artifact) IsBigEndian() bool {
	return a.bigEndian
}

// Names returns the tensor names in storage order.
func (a *Artifact) Names() []string {
	names := make([]string, len(a.tensors))
	for i, t := range a.tensors {
		names[i] = t.Name
	}

	return names
}

// Tensors returns the tensors in storage order.
func (a *Artifact) Tensors() []Tensor {
	return a.tensors
}

// Has reports whether the artifact holds a tensor called name.
func (a *Artifact) Has(name string) bool {
	_, ok := a.index[name]
	return ok
}

// Tensor returns the tensor called name.
func (a *Artifact) Tensor(name string) (Tensor, error) {
	i, ok := a.index[name]
	if !ok {
		return Tensor{}, fmt.Errorf("%w: %q in %s artifact", errs.ErrTensorNotFound, name, a.kind)
	}

	return a.tensors[i], nil
}

// Vector returns the tensor called name flattened, requiring a single row or column.
func (a *Artifact) Vector(name string) ([]float64, error) {
	t, err := a.Tensor(name)
	if err != nil {
		return nil, err
	}
	if !t.IsVector() {
		return nil, fmt.Errorf("%w: %q is %s, want a vector", errs.ErrShapeMismatch, name, t.Shape())
	}

	return t.Data, nil
}

// Scalar returns the single value of a 1×1 tensor.
func (a *Artifact) Scalar(name string) (float64, error) {
	t, err := a.Tensor(name)
	if err != nil {
		return 0, err
	}
	if t.Len() != 1 {
		return 0, fmt.Errorf("%w: %q is %s, want 1x1", errs.ErrShapeMismatch, name, t.Shape())
	}

	return t.Data[0], nil
}
