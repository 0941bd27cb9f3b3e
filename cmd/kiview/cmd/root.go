package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kiview",
	Short: "kiview - KiCad PCB file inspection and tessellation",
	Long: `kiview reads KiCad PCB board files (.kicad_pcb) and exposes their
geometry: layer stackup, nets, footprints, copper tracks and vias, and
filled zones.

Examples:
  kiview pcb show board.kicad_pcb          # Summarize a board
  kiview pcb show board.kicad_pcb --layers F.Cu,B.Cu
  kiview pcb nets board.kicad_pcb          # List all nets
  kiview pcb nets board.kicad_pcb GND      # Show one net's connections`,
	Version: "0.9.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
