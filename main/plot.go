package main

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/spf13/cobra"

	"github.com/phil-mansfield/windprof/profile"
)

func newPlotCmd() *cobra.Command {
	var out string
	var show bool

	cmd := &cobra.Command{
		Use:   "plot CONFIG",
		Short: "Plot a line profile",
		Long: `Computes the line profile described by a [Model] config file and
plots it with matplotlib. python and matplotlib must be installed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrap, m, err := readModel(args[0])
			if err != nil {
				return err
			}
			energy, s, err := spectrum(wrap, m)
			if err != nil {
				return err
			}

			plotProfile(m.Parameters(), energy, s.Flux)
			if out != "" {
				plt.SaveFig(out)
			}
			if show {
				plt.Show()
			} else {
				plt.Execute()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "profile.png", "Output image file.")
	cmd.Flags().BoolVar(&show, "show", false, "Show the plot in a window.")
	return cmd
}

// plotProfile draws flux against the center of each energy bin as a step
// plot.
func plotProfile(p profile.Parameters, energy, flux []float64) {
	es, fs := steps(energy, flux)

	plt.Reset()
	plt.Figure()
	plt.Plot(es, fs, "k", plt.LW(2))
	plt.Title(fmt.Sprintf(
		`%s: $\tau_* = %.3g$, $q = %.3g$, $h = %.3g$`,
		p.Type, p.TauStar, p.Q, p.H,
	))
	plt.XLabel(`$E$ [keV]`, plt.FontSize(16))
	plt.YLabel(`Flux`, plt.FontSize(16))
	plt.XLim(energy[0], energy[len(energy)-1])
	plt.Grid(plt.Axis("y"))
}

// steps converts a binned flux into the vertices of a step plot.
func steps(edges, flux []float64) (xs, ys []float64) {
	xs = make([]float64, 2*len(flux))
	ys = make([]float64, 2*len(flux))
	for i, f := range flux {
		xs[2*i], xs[2*i+1] = edges[i], edges[i+1]
		ys[2*i], ys[2*i+1] = f, f
	}
	return xs, ys
}
