package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"go.radixpoint.io/dragon/pkg/dragon4"
)

var errRadix = errors.New("radix must be in [2, 36]")

var (
	flagRadix      int
	flagAllRadices bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [values...]",
	Short: "Convert doubles given as arguments or on stdin",
	Run:   runConvert,
}

func init() {
	convertCmd.Flags().IntVarP(&flagRadix, "radix", "r", 10, "output radix")
	convertCmd.Flags().BoolVar(&flagAllRadices, "all-radices", false, "print every radix from 2 to 36")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(c *cobra.Command, args []string) {
	if err := checkRadix(flagRadix); err != nil {
		klog.Exit(err)
	}

	inputs := args
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			klog.Exit(err)
		}
	}

	// Decorate output only when a human is watching.
	decorate := isatty.IsTerminal(os.Stdout.Fd()) && (flagAllRadices || len(inputs) > 1)

	for _, in := range inputs {
		x, err := strconv.ParseFloat(in, 64)
		if err != nil {
			klog.Exitf("bad value %q: %v", in, err)
		}
		if flagAllRadices {
			if decorate {
				fmt.Printf("%s:\n", in)
			}
			for radix := 2; radix <= 36; radix++ {
				if decorate {
					fmt.Printf("  base %2d: %s\n", radix, dragon4.Format(x, radix))
				} else {
					fmt.Println(dragon4.Format(x, radix))
				}
			}
			continue
		}
		if decorate {
			fmt.Printf("%s = %s\n", in, dragon4.Format(x, flagRadix))
		} else {
			fmt.Println(dragon4.Format(x, flagRadix))
		}
	}
}
