package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"go.radixpoint.io/dragon/pkg/dragon4"
)

var flagBatchFile string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a YAML-described list of conversion jobs concurrently",
	Run:   runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&flagBatchFile, "file", "f", "", "YAML job file")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

type batchJob struct {
	Value string `yaml:"value"`
	Radix int    `yaml:"radix"`
}

type batchFile struct {
	Jobs []batchJob `yaml:"jobs"`
}

// parseBatch decodes and validates a job file. Radix defaults to 10.
func parseBatch(data []byte) ([]batchJob, error) {
	var f batchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	for i := range f.Jobs {
		job := &f.Jobs[i]
		if job.Radix == 0 {
			job.Radix = 10
		}
		if err := checkRadix(job.Radix); err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		if _, err := strconv.ParseFloat(job.Value, 64); err != nil {
			return nil, fmt.Errorf("job %d: bad value %q: %w", i, job.Value, err)
		}
	}
	return f.Jobs, nil
}

func runBatch(c *cobra.Command, args []string) {
	data, err := os.ReadFile(flagBatchFile)
	if err != nil {
		klog.Exit(err)
	}
	jobs, err := parseBatch(data)
	if err != nil {
		klog.Exit(err)
	}

	// Conversions are independent and each worker owns its own state, so
	// they parallelize freely.
	results := make([]string, len(jobs))
	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		i, job := i, job
		group.Go(func() error {
			x, err := strconv.ParseFloat(job.Value, 64)
			if err != nil {
				return err
			}
			results[i] = dragon4.Format(x, job.Radix)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		klog.Exit(err)
	}

	for i, job := range jobs {
		fmt.Printf("%s@%d = %s\n", job.Value, job.Radix, results[i])
	}
	klog.V(1).Infof("converted %d values", len(jobs))
}
