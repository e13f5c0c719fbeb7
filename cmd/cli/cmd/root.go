package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keurnel/aus/architecture/x86"
	"github.com/keurnel/aus/internal/assembler_context"
)

var rootCmd = &cobra.Command{
	Use:   "aus <input> <output>",
	Short: "A single-pass x86 (16/32-bit) assembler",
	Long: `aus translates a file of mnemonic x86 assembly text into raw
machine-code bytes. It recognises no labels, symbols or macros: every
line stands on its own, and BITS 16/BITS 32 directives select the
operand and address widths used from that point on.`,
	Args: cobra.ExactArgs(2),
	RunE: runAssemble,
}

func runAssemble(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", inputPath, err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", outputPath, err)
	}
	defer out.Close()

	ctx := assembler_context.New()
	if err := x86.AssembleReader(ctx, in, out); err != nil {
		return err
	}

	if diags := x86.FormatDiagnostics(ctx.Log); diags != "" {
		fmt.Fprint(cmd.ErrOrStderr(), diags)
	}

	if ctx.OnError() {
		return fmt.Errorf("generation failed, output file may contain invalid data")
	}

	return nil
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
