// Command iirdesign converts analog Butterworth prototypes to digital IIR
// filters via the impulse-invariance method and reports the results.
//
// Usage:
//
//	iirdesign [flags]
//
// By default it runs the two project tasks: a bandpass filter for the
// 2-4 kHz band and a 3 kHz lowpass filter, both from second-order
// prototypes at a 20 kHz sampling rate.
//
// Examples:
//
//	iirdesign
//	iirdesign -fs 44100 -points 8192
//	iirdesign -csv-dir ./out
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/design/analog"
	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/iim"
	"github.com/nrshousha/digital-signal-processing-project/measure/freqz"
	"github.com/nrshousha/digital-signal-processing-project/measure/impulse"
	"github.com/nrshousha/digital-signal-processing-project/measure/stability"
)

type task struct {
	name  string
	band  analog.Band
	order int
	freqs []float64 // Hz
}

func main() {
	fs := flag.Float64("fs", 20000, "sampling rate in Hz")
	points := flag.Int("points", 4096, "frequency response points")
	impulseLen := flag.Int("impulse-len", 100, "impulse response length in samples")
	csvDir := flag.String("csv-dir", "", "write response CSV files into this directory")
	flag.Parse()

	tasks := []task{
		{name: "BPF 2-4kHz", band: analog.Bandpass, order: 2, freqs: []float64{2000, 4000}},
		{name: "LPF 3kHz", band: analog.Lowpass, order: 2, freqs: []float64{3000}},
	}

	fmt.Println("Digital Filter Design Project")
	fmt.Printf("Sampling Frequency: %g Hz\n", *fs)
	fmt.Println(strings.Repeat("-", 30))

	for _, tk := range tasks {
		if err := run(tk, *fs, *points, *impulseLen, *csvDir); err != nil {
			fmt.Fprintf(os.Stderr, "iirdesign: %s: %v\n", tk.name, err)
			os.Exit(1)
		}
	}
}

func run(tk task, fs float64, points, impulseLen int, csvDir string) error {
	rad := make([]float64, len(tk.freqs))
	for i, f := range tk.freqs {
		rad[i] = 2 * math.Pi * f
	}

	num, den, err := analog.Butterworth(tk.order, tk.band, rad...)
	if err != nil {
		return fmt.Errorf("analog prototype: %w", err)
	}

	coeffs, err := iim.Transform(num, den, fs)
	if err != nil {
		return fmt.Errorf("impulse-invariance transform: %w", err)
	}

	report, err := stability.Analyze(coeffs)
	if err != nil {
		return fmt.Errorf("stability: %w", err)
	}

	printReport(tk.name, coeffs, report)

	if csvDir == "" {
		return nil
	}

	resp, err := freqz.Evaluate(coeffs, points)
	if err != nil {
		return fmt.Errorf("frequency response: %w", err)
	}

	ir, err := impulse.Response(coeffs, impulseLen)
	if err != nil {
		return fmt.Errorf("impulse response: %w", err)
	}

	base := strings.ReplaceAll(tk.name, " ", "_")
	if err := writeFreqCSV(filepath.Join(csvDir, base+"_freq.csv"), resp); err != nil {
		return err
	}

	return writeImpulseCSV(filepath.Join(csvDir, base+"_impulse.csv"), impulse.TimeAxis(coeffs, impulseLen), ir)
}

func printReport(name string, c iim.Coefficients, report stability.Report) {
	fmt.Printf("Filter: %s\n", name)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  b:\t%s\n", formatCoeffs(c.B))
	fmt.Fprintf(w, "  a:\t%s\n", formatCoeffs(c.A))

	for i, r := range report.Roots {
		fmt.Fprintf(w, "  pole %d:\t%.6f%+.6fi\t|z|=%.4f\n", i, real(r), imag(r), report.Magnitudes[i])
	}

	w.Flush()

	fmt.Printf("  Max Pole Magnitude: %.4f\n", report.MaxMagnitude)
	if report.Stable {
		fmt.Println("  Stability: STABLE (All poles inside unit circle)")
	} else {
		fmt.Println("  Stability: UNSTABLE")
	}

	fmt.Println(strings.Repeat("-", 30))
}

func formatCoeffs(c []float64) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%.6f", v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func writeFreqCSV(path string, resp freqz.Response) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "frequency_hz,magnitude_db,phase_rad")
	for i := range resp.Frequencies {
		fmt.Fprintf(f, "%g,%g,%g\n", resp.Frequencies[i], resp.MagnitudeDB[i], resp.PhaseRad[i])
	}

	return nil
}

func writeImpulseCSV(path string, t, h []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "time_s,amplitude")
	for i := range h {
		fmt.Fprintf(f, "%g,%g\n", t[i], h[i])
	}

	return nil
}
