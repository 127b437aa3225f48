package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteColumns writes equal length columns as whitespace separated text. The
// column names are written first as a comment.
func WriteColumns(wr io.Writer, names []string, cols ...[]float64) error {
	if len(names) != len(cols) {
		return fmt.Errorf(
			"Given %d column names for %d columns.", len(names), len(cols),
		)
	}
	for i := range cols {
		if len(cols[i]) != len(cols[0]) {
			return fmt.Errorf(
				"Column '%s' has %d rows, but column '%s' has %d.",
				names[i], len(cols[i]), names[0], len(cols[0]),
			)
		}
	}

	buf := bufio.NewWriter(wr)
	fmt.Fprintf(buf, "# %s\n", strings.Join(names, " "))
	if len(cols) > 0 {
		row := make([]string, len(cols))
		for i := range cols[0] {
			for j := range cols {
				row[j] = fmt.Sprintf("%.8g", cols[j][i])
			}
			fmt.Fprintln(buf, strings.Join(row, " "))
		}
	}
	return buf.Flush()
}

// WriteColumnsFile is WriteColumns to the named file. An empty file name
// writes to stdout.
func WriteColumnsFile(fname string, names []string, cols ...[]float64) error {
	if fname == "" {
		return WriteColumns(os.Stdout, names, cols...)
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err = WriteColumns(f, names, cols...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Bins splits grid edges into the lower and upper edges of each bin.
func Bins(edges []float64) (lo, hi []float64) {
	if len(edges) < 2 {
		return []float64{}, []float64{}
	}
	return edges[:len(edges)-1], edges[1:]
}

// Flatten2D expands the axes of a 2D table into the first two columns of
// the format read by ReadTransmission2D.
func Flatten2D(xAxis, yAxis []float64) (xs, ys []float64) {
	xs = make([]float64, len(xAxis)*len(yAxis))
	ys = make([]float64, len(xs))
	for i := range xAxis {
		for j := range yAxis {
			xs[i*len(yAxis)+j], ys[i*len(yAxis)+j] = xAxis[i], yAxis[j]
		}
	}
	return xs, ys
}
