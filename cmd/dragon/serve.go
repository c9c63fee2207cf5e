package main

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/VividCortex/ewma"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"go.radixpoint.io/dragon/pkg/dragon4"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conversions over HTTP with Prometheus metrics",
	Run:   runServe,
}

var (
	conversionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dragon_conversions_total",
		Help: "Conversions served, by output radix.",
	}, []string{"radix"})
	conversionErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dragon_conversion_errors_total",
		Help: "Requests rejected for a bad value or radix.",
	})

	latencyMu  sync.Mutex
	latencyAvg = ewma.NewMovingAverage()
)

func init() {
	serveCmd.Flags().StringVarP(&flagListen, "listen", "l", ":8585", "listen address")
	rootCmd.AddCommand(serveCmd)

	prometheus.MustRegister(conversionsTotal, conversionErrors,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "dragon_conversion_latency_seconds_avg",
			Help: "Exponentially weighted moving average of conversion latency.",
		}, func() float64 {
			latencyMu.Lock()
			defer latencyMu.Unlock()
			return latencyAvg.Value()
		}))
}

func handleConvert(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	x, err := strconv.ParseFloat(q.Get("x"), 64)
	if err != nil {
		conversionErrors.Inc()
		http.Error(w, fmt.Sprintf("bad value: %v", err), http.StatusBadRequest)
		return
	}
	radix := 10
	if rs := q.Get("radix"); rs != "" {
		radix, err = strconv.Atoi(rs)
		if err != nil || checkRadix(radix) != nil {
			conversionErrors.Inc()
			http.Error(w, "bad radix", http.StatusBadRequest)
			return
		}
	}

	start := time.Now()
	s := dragon4.Format(x, radix)
	elapsed := time.Since(start)

	latencyMu.Lock()
	latencyAvg.Add(elapsed.Seconds())
	latencyMu.Unlock()
	conversionsTotal.WithLabelValues(strconv.Itoa(radix)).Inc()

	klog.V(1).Infof("convert x=%v radix=%d -> %s (%s)", x, radix, s, elapsed)
	fmt.Fprintln(w, s)
}

func runServe(c *cobra.Command, args []string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/convert", handleConvert)
	mux.Handle("/metrics", promhttp.Handler())

	klog.Infof("listening on %s", flagListen)
	if err := http.ListenAndServe(flagListen, mux); err != nil {
		klog.Exit(err)
	}
}
