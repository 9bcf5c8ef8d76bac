// Package msdio reads TRAVIS-style semicolon-separated time series files and
// writes msdiff result tables. It is the I/O boundary around the pure
// analysis core: parsing produces domain.Table values, writing consumes
// finished result records.
package msdio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kirchner-lab/msdiff/internal/domain"
)

// ReadTable parses an MSD input file: semicolon-separated columns, one header
// line skipped. The column layout decides the molecule count:
//
//   - 2 columns: time;msd — a single molecule.
//   - 3 columns: time;msd;derivative — TRAVIS standard output. The third
//     column is the discrete derivative and is dropped, unless avg is set, in
//     which case it holds per-point standard errors of an averaged MSD.
//   - more than 3 columns: time;msd_total;msd_1;...;msd_n — per-molecule
//     MSDs sharing one time axis and one aggregate total, n = ncols-2.
//
// The returned molecule count is 1 for the first two shapes and ncols-2
// otherwise.
func ReadTable(path string, avg bool) (domain.Table, int, error) {
	rows, err := readRows(path)
	if err != nil {
		return domain.Table{}, 0, err
	}
	if len(rows) == 0 {
		return domain.Table{}, 0, fmt.Errorf("%w: %s is empty", domain.ErrBadInputShape, path)
	}

	ncols := len(rows[0])
	nrows := len(rows)

	time := make([]float64, nrows)
	for i, r := range rows {
		time[i] = r[0]
	}

	switch {
	case ncols == 2:
		return domain.Table{
			Time:    time,
			Columns: []domain.Column{{Name: "msd_1", Value: column(rows, 1)}},
		}, 1, nil

	case ncols == 3:
		col := domain.Column{Name: "msd_1", Value: column(rows, 1)}
		if avg {
			col.Stderr = column(rows, 2)
		}
		return domain.Table{Time: time, Columns: []domain.Column{col}}, 1, nil

	case ncols > 3:
		nmols := ncols - 2
		cols := make([]domain.Column, 0, nmols+1)
		cols = append(cols, domain.Column{Name: "msd_total", Value: column(rows, 1)})
		for m := 0; m < nmols; m++ {
			cols = append(cols, domain.Column{
				Name:  fmt.Sprintf("msd_%d", m+1),
				Value: column(rows, m+2),
			})
		}
		return domain.Table{Time: time, Columns: cols}, nmols, nil

	default:
		return domain.Table{}, 0, fmt.Errorf("%w: %s has %d column(s)", domain.ErrBadInputShape, path, ncols)
	}
}

// ConductivityColumns is the fixed contribution layout of a conductivity
// input file: time followed by the five raw Einstein-Helfand contributions.
var ConductivityColumns = []string{
	"cation_self",
	"cation_cross",
	"anion_self",
	"anion_cross",
	"anion_cation",
}

// ReadConductivityTable parses a conductivity input file: semicolon-separated,
// one header line skipped, columns time plus the five contributions listed in
// ConductivityColumns.
func ReadConductivityTable(path string) (domain.Table, error) {
	rows, err := readRows(path)
	if err != nil {
		return domain.Table{}, err
	}
	if len(rows) == 0 || len(rows[0]) != len(ConductivityColumns)+1 {
		got := 0
		if len(rows) > 0 {
			got = len(rows[0])
		}
		return domain.Table{}, fmt.Errorf("%w: %s has %d column(s), want %d",
			domain.ErrBadInputShape, path, got, len(ConductivityColumns)+1)
	}

	time := make([]float64, len(rows))
	for i, r := range rows {
		time[i] = r[0]
	}
	cols := make([]domain.Column, len(ConductivityColumns))
	for i, name := range ConductivityColumns {
		cols[i] = domain.Column{Name: name, Value: column(rows, i+1)}
	}
	return domain.Table{Time: time, Columns: cols}, nil
}

// readRows reads all data rows of a semicolon-separated file, skipping the
// header line. Every row must have the same field count as the first data
// row.
func readRows(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	first := true
	line := 0
	for sc.Scan() {
		line++
		if first {
			first = false // header
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ";")
		row := make([]float64, len(fields))
		for i, fld := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(fld), 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: parse field %d: %w", path, line, i+1, err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: %s:%d has %d field(s), want %d",
				domain.ErrBadInputShape, path, line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func column(rows [][]float64, i int) []float64 {
	out := make([]float64, len(rows))
	for j, r := range rows {
		out[j] = r[i]
	}
	return out
}
