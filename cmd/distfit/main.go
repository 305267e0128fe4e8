// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// distfit reads whitespace-separated numbers from stdin (or the named
// files), summarizes them and fits a distribution family to them.
//
// Defaults for -dist, -method and -alpha are read from the environment
// variables DISTFIT_DIST, DISTFIT_METHOD and DISTFIT_ALPHA.
package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-distfit/stats"
	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
	mstats "github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// config holds the defaults that may be set from the environment.
type config struct {
	Dist   string  `envconfig:"DIST" default:"norm"`
	Method string  `envconfig:"METHOD" default:"ml"`
	Alpha  float64 `envconfig:"ALPHA" default:"0.05"`
}

type options struct {
	config
	fix      []float64
	start    []float64
	profile  int
	quantile float64
	logSF    float64
	verbose  bool
}

func main() {
	cmd, err := newRootCmd()
	if err == nil {
		err = cmd.Execute()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "distfit:", err)
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, error) {
	var opts options
	if err := envconfig.Process("distfit", &opts.config); err != nil {
		return nil, errors.Wrap(err, "reading environment")
	}

	cmd := &cobra.Command{
		Use:           "distfit [flags] [file...]",
		Short:         "Fit a probability distribution to a sample",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return run(cmd, &opts, xs)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&opts.Dist, "dist", opts.Dist, "continuous distribution family to fit")
	fl.StringVar(&opts.Method, "method", opts.Method, "estimation method: ml or mps")
	fl.Float64Var(&opts.Alpha, "alpha", opts.Alpha, "significance level of confidence intervals")
	fl.Float64SliceVar(&opts.fix, "fix", nil, "fixed parameter values (shapes, loc, scale); nan to estimate")
	fl.Float64SliceVar(&opts.start, "start", nil, "starting values of the search")
	fl.IntVar(&opts.profile, "profile", -1, "index of the parameter to compute a profile interval for")
	fl.Float64Var(&opts.quantile, "x", math.NaN(), "with -profile, profile the quantile x instead of the parameter")
	fl.Float64Var(&opts.logSF, "logsf", math.NaN(), "with -profile, profile the log survival probability at this level")
	fl.BoolVarP(&opts.verbose, "verbose", "v", false, "log the search")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the built-in distribution families",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cont, disc := stats.Names()
			fmt.Fprintf(cmd.OutOrStdout(), "continuous: %s\n", strings.Join(cont, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "discrete:   %s\n", strings.Join(disc, " "))
		},
	})
	return cmd, nil
}

func run(cmd *cobra.Command, opts *options, xs []float64) error {
	logger := zap.NewNop()
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return errors.Wrap(err, "creating logger")
		}
		defer l.Sync()
		logger = l
	}

	dist, err := stats.ContinuousByName(opts.Dist)
	if err != nil {
		return err
	}
	method, err := stats.ParseMethod(opts.Method)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if err := summarize(w, xs); err != nil {
		return err
	}
	fmt.Fprintln(w)

	logger.Debug("fitting", zap.String("dist", dist.Name()), zap.Int("n", len(xs)))
	f, err := dist.Fit(xs, stats.FitOptions{
		Method: method,
		Alpha:  opts.Alpha,
		ParFix: opts.fix,
		Start:  opts.start,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	printFit(w, f)

	if opts.profile < 0 {
		return nil
	}
	popts := stats.ProfileOptions{
		Index:  opts.profile,
		Alpha:  f.Alpha,
		Logger: logger,
	}
	what := "par[" + paramName(dist, opts.profile) + "]"
	if !math.IsNaN(opts.quantile) {
		popts.X = &opts.quantile
		what = fmt.Sprintf("x=%.6g", opts.quantile)
	} else if !math.IsNaN(opts.logSF) {
		popts.LogSF = &opts.logSF
		what = fmt.Sprintf("logSF=%.6g", opts.logSF)
	}
	pr, err := f.Profile(popts)
	if err != nil {
		return err
	}
	lo, hi, err := pr.CI(f.Alpha)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nprofile %s: %.6g  %g%% CI [%.6g, %.6g]\n", what, pr.Opt, 100*(1-f.Alpha), lo, hi)
	if pr.Target == stats.ProfileParam {
		return nil
	}
	lo, hi, err = f.OrderCI(math.Exp(pr.LogSF))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "order statistics, quantile at SF %.4g: %g%% CI [%.6g, %.6g]\n", math.Exp(pr.LogSF), 100*(1-f.Alpha), lo, hi)
	return nil
}

// summarize prints descriptive statistics of xs.
func summarize(w io.Writer, xs []float64) error {
	data := mstats.Float64Data(xs)
	mean, err := mstats.Mean(data)
	if err != nil {
		return errors.Wrap(err, "summarizing data")
	}
	sd, err := mstats.StandardDeviationSample(data)
	if err != nil {
		return errors.Wrap(err, "summarizing data")
	}
	fmt.Fprintf(w, "N %d  mean %.6g  std dev %.6g\n", len(xs), mean, sd)

	labels := map[float64]string{0: "min", 50: "median", 100: "max"}
	for _, p := range []float64{0, 5, 25, 50, 75, 95, 100} {
		var v float64
		switch p {
		case 0:
			v, err = mstats.Min(data)
		case 50:
			v, err = mstats.Median(data)
		case 100:
			v, err = mstats.Max(data)
		default:
			v, err = mstats.PercentileNearestRank(data, p)
		}
		if err != nil {
			return errors.Wrapf(err, "computing %g percentile", p)
		}
		label, ok := labels[p]
		if !ok {
			label = fmt.Sprintf("%g%%ile", p)
		}
		fmt.Fprintf(w, "%8s %.6g\n", label, v)
	}
	return nil
}

func printFit(w io.Writer, f *stats.Fitted) {
	dist := f.Dist()
	fmt.Fprintf(w, "%s fit (%v), %g%% confidence bounds\n", dist.Name(), f.Method, 100*(1-f.Alpha))
	fixed := make([]bool, len(f.Par))
	for i := range fixed {
		fixed[i] = true
	}
	for _, i := range f.Free() {
		fixed[i] = false
	}
	for i, p := range f.Par {
		if fixed[i] {
			fmt.Fprintf(w, "%8s %-12.6g (fixed)\n", paramName(dist, i), p)
			continue
		}
		fmt.Fprintf(w, "%8s %-12.6g [%.6g, %.6g]\n", paramName(dist, i), p, f.ParLower[i], f.ParUpper[i])
	}
	fmt.Fprintf(w, "log-likelihood %.6g  log spacings %.6g  p-value %.4g\n", f.LLMax, f.LPSMax, f.PValue)
}

func paramName(dist *stats.Continuous, i int) string {
	k := dist.NumShapes()
	switch {
	case i < k:
		return fmt.Sprintf("shape%d", i)
	case i == k:
		return "loc"
	case i == k+1:
		return "scale"
	}
	return strconv.Itoa(i)
}

// readInputs reads numbers from the named files, or from stdin if
// there are none.
func readInputs(stdin io.Reader, paths []string) ([]float64, error) {
	if len(paths) == 0 {
		return readInput(stdin, "stdin")
	}
	var xs []float64
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		ys, err := readInput(f, path)
		f.Close()
		if err != nil {
			return nil, err
		}
		xs = append(xs, ys...)
	}
	return xs, nil
}

func readInput(r io.Reader, name string) ([]float64, error) {
	var xs []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		for _, field := range strings.Fields(scanner.Text()) {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d", name, line)
			}
			xs = append(xs, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	if len(xs) == 0 {
		return nil, errors.Newf("%s: no data", name)
	}
	return xs, nil
}
