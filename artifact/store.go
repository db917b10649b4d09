package artifact

import (
	"fmt"
	"path/filepath"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
	"github.com/ndgpemu/ndgpemu/internal/options"
	"github.com/ndgpemu/ndgpemu/params"
	"github.com/ndgpemu/ndgpemu/reduction"
	"github.com/ndgpemu/ndgpemu/regression"
	"github.com/ndgpemu/ndgpemu/spline"
)

// FeatureDim is the regressor input length: Wrc, the required cosmological
// parameters and the scale factor.
var FeatureDim = len(params.Required()) + 2

// Artifact roles, as reported in *errs.ArtifactLoadError.
const (
	RoleRegressor = "regressor"
	RoleBasisMean = "basis_mean"
	RoleGrid      = "grid"
	RoleBasis     = "basis"
	RoleSet       = "artifact set"
)

// Files names the four artifact files inside an artifact directory.
type Files struct {
	Regressor string `yaml:"regressor" json:"regressor"`
	BasisMean string `yaml:"basis_mean" json:"basis_mean"`
	Grid      string `yaml:"grid" json:"grid"`
	Basis     string `yaml:"basis" json:"basis"`
}

// DefaultFiles returns the standard artifact file names.
func DefaultFiles() Files {
	return Files{
		Regressor: "regressor.art",
		BasisMean: "basis_mean.art",
		Grid:      "grid.art",
		Basis:     "basis.art",
	}
}

// Store holds the four trained artifacts. It is immutable and safe for concurrent use.
type Store struct {
	regressor regression.Regressor
	basisMean []float64
	grid      []float64
	basis     reduction.InverseTransformer
}

// NewStore assembles a store from in-memory components and checks that they fit together.
func NewStore(regressor regression.Regressor, basisMean, grid []float64, basis reduction.InverseTransformer) (*Store, error) {
	if regressor == nil || basis == nil {
		return nil, fmt.Errorf("%w: store needs a regressor and a basis", errs.ErrShapeMismatch)
	}
	if err := spline.ValidateGrid(grid); err != nil {
		return nil, err
	}
	if regressor.InputDim() != FeatureDim {
		return nil, fmt.Errorf("%w: regressor takes %d features, want %d",
			errs.ErrDimensionMismatch, regressor.InputDim(), FeatureDim)
	}
	if regressor.OutputDim() != basis.Components() {
		return nil, fmt.Errorf("%w: regressor predicts %d coefficients, basis has %d components",
			errs.ErrDimensionMismatch, regressor.OutputDim(), basis.Components())
	}
	if basis.OutputDim() != len(grid) || len(basisMean) != len(grid) {
		return nil, fmt.Errorf("%w: grid has %d points, basis %d, basis mean %d",
			errs.ErrDimensionMismatch, len(grid), basis.OutputDim(), len(basisMean))
	}

	return &Store{
		regressor: regressor,
		basisMean: basisMean,
		grid:      grid,
		basis:     basis,
	}, nil
}

// Regressor returns the trained regressor.
func (s *Store) Regressor() regression.Regressor {
	return s.regressor
}

// BasisMean returns the basis-mean vector. The slice must not be modified.
func (s *Store) BasisMean() []float64 {
	return s.basisMean
}

// Grid returns the native wavenumber grid. The slice must not be modified.
func (s *Store) Grid() []float64 {
	return s.grid
}

// Basis returns the inverse reduction transform.
func (s *Store) Basis() reduction.InverseTransformer {
	return s.basis
}

type loadConfig struct {
	files Files
}

// LoadOption configures Load.
type LoadOption = options.Option[*loadConfig]

// WithFiles overrides the artifact file names. Empty names keep the default.
func WithFiles(files Files) LoadOption {
	return options.NoError(func(c *loadConfig) {
		if files.Regressor != "" {
			c.files.Regressor = files.Regressor
		}
		if files.BasisMean != "" {
			c.files.BasisMean = files.BasisMean
		}
		if files.Grid != "" {
			c.files.Grid = files.Grid
		}
		if files.Basis != "" {
			c.files.Basis = files.Basis
		}
	})
}

// Load reads the four artifacts from dir. Any failure is returned as a
// *errs.ArtifactLoadError and no store is returned.
func Load(dir string, opts ...LoadOption) (*Store, error) {
	cfg := &loadConfig{files: DefaultFiles()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, &errs.ArtifactLoadError{Artifact: RoleSet, Path: dir, Err: err}
	}

	path := func(name string) string {
		return filepath.Join(dir, name)
	}

	regressorPath := path(cfg.files.Regressor)
	regressor, err := loadPart(RoleRegressor, regressorPath, format.KindRegressor, BuildRegressor)
	if err != nil {
		return nil, err
	}

	meanPath := path(cfg.files.BasisMean)
	basisMean, err := loadPart(RoleBasisMean, meanPath, format.KindBasisMean, func(a *Artifact) ([]float64, error) {
		return BuildVector(a, format.KindBasisMean)
	})
	if err != nil {
		return nil, err
	}

	gridPath := path(cfg.files.Grid)
	grid, err := loadPart(RoleGrid, gridPath, format.KindGrid, func(a *Artifact) ([]float64, error) {
		grid, err := BuildVector(a, format.KindGrid)
		if err != nil {
			return nil, err
		}
		return grid, spline.ValidateGrid(grid)
	})
	if err != nil {
		return nil, err
	}

	basisPath := path(cfg.files.Basis)
	basis, err := loadPart(RoleBasis, basisPath, format.KindBasis, BuildBasis)
	if err != nil {
		return nil, err
	}

	store, err := NewStore(regressor, basisMean, grid, basis)
	if err != nil {
		return nil, &errs.ArtifactLoadError{Artifact: RoleSet, Path: dir, Err: err}
	}

	return store, nil
}

func loadPart[T any](role, path string, kind format.ArtifactKind, build func(*Artifact) (T, error)) (T, error) {
	var zero T

	a, err := ReadKind(path, kind)
	if err != nil {
		return zero, &errs.ArtifactLoadError{Artifact: role, Path: path, Err: err}
	}

	v, err := build(a)
	if err != nil {
		return zero, &errs.ArtifactLoadError{Artifact: role, Path: path, Err: err}
	}

	return v, nil
}
