package harness

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
)

// GiverSpread summarises how evenly one giver's draws landed across the
// receivers they are allowed to draw.
type GiverSpread struct {
	Giver  string
	Mean   float64
	StdDev float64
	// CV is StdDev/Mean; 0 means perfectly even.
	CV float64
}

type DispersionReport struct {
	Samples      int
	MeanAttempts float64
	MaxAttempts  float64
	Givers       []GiverSpread
	Worst        GiverSpread
}

// Dispersion counts receivers per giver over the successful entries.
func Dispersion(r *Report) (DispersionReport, error) {
	var out DispersionReport
	counts := make(map[string]map[string]int, len(r.Names))
	var attempts []float64
	for _, e := range r.Entries {
		if e.Failed() {
			continue
		}
		out.Samples++
		attempts = append(attempts, float64(e.Assignment.Attempts))
		for _, p := range e.Assignment.Pairs {
			if counts[p.Giver] == nil {
				counts[p.Giver] = make(map[string]int)
			}
			counts[p.Giver][p.Receiver]++
		}
	}
	if out.Samples == 0 {
		return out, fmt.Errorf("no successful seeds to measure")
	}

	var err error
	if out.MeanAttempts, err = stats.Mean(attempts); err != nil {
		return out, err
	}
	if out.MaxAttempts, err = stats.Max(attempts); err != nil {
		return out, err
	}

	for _, giver := range r.Names {
		var data []float64
		for _, receiver := range r.Names {
			if receiver == giver || r.Exclusions.Excludes(giver, receiver) {
				continue
			}
			data = append(data, float64(counts[giver][receiver]))
		}
		if len(data) == 0 {
			continue
		}
		spread := GiverSpread{Giver: giver}
		if spread.Mean, err = stats.Mean(data); err != nil {
			return out, err
		}
		if spread.StdDev, err = stats.StandardDeviation(data); err != nil {
			return out, err
		}
		if spread.Mean > 0 {
			spread.CV = spread.StdDev / spread.Mean
		}
		out.Givers = append(out.Givers, spread)
		if len(out.Givers) == 1 || spread.CV > out.Worst.CV {
			out.Worst = spread
		}
	}
	return out, nil
}

func (d DispersionReport) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Dispersion over %d seeds: attempts mean %.2f max %.0f, worst giver %s (cv %.3f)\n",
		d.Samples, d.MeanAttempts, d.MaxAttempts, d.Worst.Giver, d.Worst.CV)
	return err
}
