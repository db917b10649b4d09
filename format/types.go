package format

import "strings"

type (
	CompressionType uint8
	ArtifactKind    uint8
	ModelType       uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	KindRegressor ArtifactKind = 0x1 // KindRegressor holds the trained regression model.
	KindBasisMean ArtifactKind = 0x2 // KindBasisMean holds the mean vector re-added after inverse reduction.
	KindGrid      ArtifactKind = 0x3 // KindGrid holds the native wavenumber grid.
	KindBasis     ArtifactKind = 0x4 // KindBasis holds the reduction basis transform.
)

const (
	ModelNone            ModelType = 0x0 // ModelNone is used by plain vector artifacts.
	ModelLinear          ModelType = 0x1 // ModelLinear is a multi-output linear regressor.
	ModelGaussianProcess ModelType = 0x2 // ModelGaussianProcess is a Gaussian process regressor.
	ModelPCA             ModelType = 0x3 // ModelPCA is a principal component basis.
	ModelPCAWhitened     ModelType = 0x4 // ModelPCAWhitened is a whitened principal component basis.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-insensitive name to a CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (k ArtifactKind) String() string {
	switch k {
	case KindRegressor:
		return "Regressor"
	case KindBasisMean:
		return "BasisMean"
	case KindGrid:
		return "Grid"
	case KindBasis:
		return "Basis"
	default:
		return "Unknown"
	}
}

// ParseArtifactKind maps a manifest name such as "basis_mean" to an ArtifactKind.
func ParseArtifactKind(name string) (ArtifactKind, bool) {
	switch strings.ToLower(name) {
	case "regressor":
		return KindRegressor, true
	case "basis_mean", "basismean", "mean":
		return KindBasisMean, true
	case "grid", "k_vals":
		return KindGrid, true
	case "basis", "pca":
		return KindBasis, true
	default:
		return 0, false
	}
}

func (m ModelType) String() string {
	switch m {
	case ModelNone:
		return "None"
	case ModelLinear:
		return "Linear"
	case ModelGaussianProcess:
		return "GaussianProcess"
	case ModelPCA:
		return "PCA"
	case ModelPCAWhitened:
		return "PCAWhitened"
	default:
		return "Unknown"
	}
}

// ParseModelType maps a manifest name such as "gaussian_process" to a ModelType.
func ParseModelType(name string) (ModelType, bool) {
	switch strings.ToLower(name) {
	case "", "none":
		return ModelNone, true
	case "linear":
		return ModelLinear, true
	case "gaussian_process", "gp":
		return ModelGaussianProcess, true
	case "pca":
		return ModelPCA, true
	case "pca_whitened":
		return ModelPCAWhitened, true
	default:
		return 0, false
	}
}
