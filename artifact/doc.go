// Package artifact stores and loads the trained artifacts of the emulator.
//
// Four artifacts make up an emulator: the regressor, the basis-mean vector,
// the native wavenumber grid and the inverse reduction basis. Each lives in
// its own file in a small binary container (see package section):
//
//	header | tensor index | tensor names | compressed float64 payload
//
// Files are written with Encoder or WriteFile and read with Decode or
// ReadFile. Load reads a whole artifact directory into a Store:
//
//	store, err := artifact.Load("testdata/emulator")
//	if err != nil {
//	    var loadErr *errs.ArtifactLoadError
//	    errors.As(err, &loadErr) // loadErr.Artifact names the failing file
//	}
//
// A Store is immutable. Use a Loader to share one lazily loaded store
// between goroutines.
package artifact
