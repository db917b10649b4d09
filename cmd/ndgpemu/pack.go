package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/format"
)

// manifest describes one artifact file in YAML or JSON.
type manifest struct {
	Kind        string           `yaml:"kind"`
	Model       string           `yaml:"model"`
	Compression string           `yaml:"compression"`
	BigEndian   bool             `yaml:"big_endian"`
	Tensors     []manifestTensor `yaml:"tensors"`
}

// manifestTensor is a row-major tensor. Zero rows and cols mean a 1×n vector.
type manifestTensor struct {
	Name string    `yaml:"name"`
	Rows int       `yaml:"rows"`
	Cols int       `yaml:"cols"`
	Data []float64 `yaml:"data"`
}

func NewPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Encode a tensor manifest into an artifact file",
		Long: `Encode a YAML or JSON manifest of named tensors into a binary artifact file.

Example manifest:

  kind: grid
  compression: zstd
  tensors:
    - name: values
      data: [0.01, 0.1, 1.0]`,
		Args: cobra.NoArgs,
		RunE: runPack,
	}

	cmd.Flags().StringP("manifest", "m", "", "Manifest file (YAML or JSON)")
	cmd.Flags().StringP("out", "o", "", "Output artifact file")
	cmd.Flags().String("compression", "", "Override the manifest compression (none|zstd|s2|lz4)")
	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runPack(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("manifest")
	out, _ := cmd.Flags().GetString("out")

	m, err := readManifest(path)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("compression"); v != "" {
		m.Compression = v
	}

	enc, err := m.encoder()
	if err != nil {
		return err
	}
	for _, t := range m.Tensors {
		rows, cols := t.Rows, t.Cols
		if rows == 0 && cols == 0 {
			rows, cols = 1, len(t.Data)
		}
		if err := enc.AddTensor(t.Name, rows, cols, t.Data); err != nil {
			return fmt.Errorf("tensor %q: %w", t.Name, err)
		}
	}

	data, err := enc.Finish()
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("write artifact: %w", err)
	}

	stats := enc.Stats()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return outputJSON(cmd, map[string]any{
			"file":          out,
			"bytes":         len(data),
			"tensors":       len(m.Tensors),
			"compression":   stats.Algorithm.String(),
			"payload_bytes": stats.OriginalSize,
			"stored_bytes":  stats.CompressedSize,
			"space_savings": stats.SpaceSavings(),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d tensors, %d bytes\n", out, len(m.Tensors), len(data))
	fmt.Fprintf(cmd.OutOrStdout(), "payload %s: %d -> %d bytes (%.1f%% saved)\n",
		stats.Algorithm, stats.OriginalSize, stats.CompressedSize, stats.SpaceSavings())

	return nil
}

// readManifest parses a manifest. JSON is accepted as a subset of YAML.
func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Tensors) == 0 {
		return nil, fmt.Errorf("manifest %s has no tensors", path)
	}

	return &m, nil
}

func (m *manifest) encoder() (*artifact.Encoder, error) {
	kind, ok := format.ParseArtifactKind(m.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown artifact kind %q", m.Kind)
	}
	model, ok := format.ParseModelType(m.Model)
	if !ok {
		return nil, fmt.Errorf("unknown model type %q", m.Model)
	}

	opts := []artifact.EncoderOption{artifact.WithModel(model)}
	if m.Compression != "" {
		comp, ok := format.ParseCompression(m.Compression)
		if !ok {
			return nil, fmt.Errorf("unknown compression %q", m.Compression)
		}
		opts = append(opts, artifact.WithCompression(comp))
	}
	if m.BigEndian {
		opts = append(opts, artifact.WithBigEndian())
	}

	return artifact.NewEncoder(kind, opts...)
}
