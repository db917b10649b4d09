package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/internal/hash"
	"github.com/ndgpemu/ndgpemu/section"
)

type tensorInfo struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
	ID   string `json:"id"`
}

type artifactInfo struct {
	File        string       `json:"file"`
	Size        int          `json:"size"`
	Kind        string       `json:"kind"`
	Model       string       `json:"model"`
	Compression string       `json:"compression"`
	ByteOrder   string       `json:"byte_order"`
	PayloadSize uint32       `json:"payload_size"`
	Checksum    string       `json:"checksum"`
	Tensors     []tensorInfo `json:"tensors"`
}

func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Show the header and tensors of artifact files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]artifactInfo, 0, len(args))
			for _, path := range args {
				info, err := inspectFile(path)
				if err != nil {
					return err
				}
				infos = append(infos, info)
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return outputJSON(cmd, infos)
			}
			for i, info := range infos {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := printInfo(cmd, info); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func inspectFile(path string) (artifactInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return artifactInfo{}, err
	}
	if len(data) < section.HeaderSize {
		return artifactInfo{}, fmt.Errorf("%s: %d bytes is shorter than an artifact header", path, len(data))
	}

	header, err := section.ParseArtifactHeader(data[:section.HeaderSize])
	if err != nil {
		return artifactInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	a, err := artifact.Decode(data)
	if err != nil {
		return artifactInfo{}, fmt.Errorf("%s: %w", path, err)
	}

	order := "little"
	if header.Flag.IsBigEndian() {
		order = "big"
	}

	info := artifactInfo{
		File:        path,
		Size:        len(data),
		Kind:        header.Flag.ArtifactKind().String(),
		Model:       header.Flag.ModelType().String(),
		Compression: header.Flag.CompressionType().String(),
		ByteOrder:   order,
		PayloadSize: header.PayloadSize,
		Checksum:    fmt.Sprintf("%016x", header.Checksum),
	}
	for _, t := range a.Tensors() {
		info.Tensors = append(info.Tensors, tensorInfo{
			Name: t.Name,
			Rows: t.Rows,
			Cols: t.Cols,
			ID:   fmt.Sprintf("%016x", hash.ID(t.Name)),
		})
	}

	return info, nil
}

func printInfo(cmd *cobra.Command, info artifactInfo) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:        %s (%d bytes)\n", info.File, info.Size)
	fmt.Fprintf(out, "kind:        %s\n", info.Kind)
	fmt.Fprintf(out, "model:       %s\n", info.Model)
	fmt.Fprintf(out, "compression: %s\n", info.Compression)
	fmt.Fprintf(out, "byte order:  %s\n", info.ByteOrder)
	fmt.Fprintf(out, "payload:     %d bytes, checksum %s\n", info.PayloadSize, info.Checksum)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "tensor\tshape\tid")
	for _, t := range info.Tensors {
		fmt.Fprintf(w, "%s\t%dx%d\t%s\n", t.Name, t.Rows, t.Cols, t.ID)
	}

	return w.Flush()
}
