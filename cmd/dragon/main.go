// Command dragon exposes the shortest round-trip floating point converter
// as a CLI and a small HTTP service.
package main

import (
	"flag"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var rootCmd = &cobra.Command{
	Use:   "dragon",
	Short: "Shortest round-trip double-to-string conversion in any radix 2-36",
}

func init() {
	klog.InitFlags(nil)
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func main() {
	defer klog.Flush()
	if err := rootCmd.Execute(); err != nil {
		klog.Exit(err)
	}
}

// checkRadix validates the one precondition the core leaves to callers.
func checkRadix(radix int) error {
	if radix < 2 || radix > 36 {
		return errRadix
	}
	return nil
}
