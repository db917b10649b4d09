package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/params"
	"github.com/ndgpemu/ndgpemu/predictor"
	"github.com/ndgpemu/ndgpemu/spline"
)

// cosmoFlags maps flag names to cosmological parameter names.
var cosmoFlags = []struct {
	flag, param, usage string
}{
	{"om", params.Om, "Total matter density Om"},
	{"ns", params.Ns, "Spectral index ns"},
	{"as", params.As, "Primordial amplitude As"},
	{"h", params.H, "Dimensionless Hubble parameter h"},
	{"ob", params.Ob, "Baryon density Ob"},
}

func NewPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the boost factor",
		Long: `Predict the nDGP boost factor for one screening parameter, redshift and cosmology.

Without --k or --k-file the curve is printed on the native wavenumber grid.`,
		Args: cobra.NoArgs,
		RunE: runPredict,
	}

	cmd.Flags().Float64("h0rc", 0, "Screening parameter H0rc")
	cmd.Flags().Float64("z", 0, "Redshift")
	for _, f := range cosmoFlags {
		cmd.Flags().Float64(f.flag, 0, f.usage)
	}
	cmd.Flags().Float64Slice("k", nil, "Output wavenumbers (comma separated)")
	cmd.Flags().String("k-file", "", "File with output wavenumbers, whitespace or comma separated")
	cmd.Flags().String("ext", "", "Extrapolation policy ("+extrapolationUsage()+")")
	cmd.Flags().String("policy", "", "Range policy (strict|warn)")
	_ = cmd.MarkFlagRequired("h0rc")
	_ = cmd.MarkFlagRequired("z")
	cmd.MarkFlagsMutuallyExclusive("k", "k-file")

	return cmd
}

func runPredict(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("policy"); v != "" {
		e.cfg.Predict.RangePolicy = v
	}
	if v, _ := cmd.Flags().GetString("ext"); v != "" {
		e.cfg.Predict.Extrapolation = v
	}
	policy, err := e.cfg.RangePolicy()
	if err != nil {
		return err
	}
	ext, err := e.cfg.Extrapolation()
	if err != nil {
		return err
	}

	kOut, err := wavenumbers(cmd)
	if err != nil {
		return err
	}

	store, err := artifact.Load(e.cfg.Artifacts.Dir, e.cfg.LoadOptions()...)
	if err != nil {
		return err
	}

	var warnings []string
	p, err := predictor.New(store,
		predictor.WithRangePolicy(policy),
		predictor.WithWarningHandler(func(err error) {
			e.logger.Warn("input outside the training range", slog.Any("error", err))
			warnings = append(warnings, err.Error())
		}),
	)
	if err != nil {
		return err
	}

	h0rc, _ := cmd.Flags().GetFloat64("h0rc")
	z, _ := cmd.Flags().GetFloat64("z")

	boost, err := p.PredictAt(h0rc, z, cosmology(cmd), kOut, ext)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	if kOut == nil {
		kOut = p.Grid()
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return outputJSON(cmd, map[string]any{
			"h0rc":     h0rc,
			"z":        z,
			"k":        kOut,
			"boost":    boost,
			"warnings": warnings,
		})
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "k\tboost")
	for i, k := range kOut {
		fmt.Fprintf(w, "%g\t%.8g\n", k, boost[i])
	}

	return w.Flush()
}

// cosmology collects the cosmological parameters set on the command line.
// Unset flags are left out so the predictor reports them as missing.
func cosmology(cmd *cobra.Command) params.Cosmology {
	cosmo := params.Cosmology{}
	for _, f := range cosmoFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, _ := cmd.Flags().GetFloat64(f.flag)
		cosmo[f.param] = v
	}

	return cosmo
}

func wavenumbers(cmd *cobra.Command) ([]float64, error) {
	if cmd.Flags().Changed("k") {
		return cmd.Flags().GetFloat64Slice("k")
	}

	path, _ := cmd.Flags().GetString("k-file")
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open k file: %w", err)
	}
	defer f.Close()

	return readWavenumbers(f, path)
}

func readWavenumbers(r io.Reader, path string) ([]float64, error) {
	var ks []float64

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		for _, field := range fields {
			k, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			ks = append(ks, k)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read k file: %w", err)
	}
	if len(ks) == 0 {
		return nil, fmt.Errorf("%s: no wavenumbers", path)
	}

	return ks, nil
}

// extrapolationUsage lists the accepted policies for help output.
func extrapolationUsage() string {
	names := make([]string, 0, 4)
	for _, e := range []spline.Extrapolation{spline.Extrapolate, spline.Zeros, spline.Raise, spline.Const} {
		names = append(names, fmt.Sprintf("%s=%d", e, uint8(e)))
	}

	return strings.Join(names, ", ")
}
