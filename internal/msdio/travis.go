package msdio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kirchner-lab/msdiff/internal/domain"
)

// ReadTravisBoxLengths extracts the cell edge lengths, in pm, from a TRAVIS
// log file. TRAVIS prints the geometry two lines below the marker line; the
// lengths sit at fields 3, 7 and 11 of that line.
func ReadTravisBoxLengths(path string) ([3]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return [3]float64{}, fmt.Errorf("%w: %s", domain.ErrMissingAuxiliaryFile, path)
		}
		return [3]float64{}, err
	}
	defer f.Close()

	// TRAVIS logs can carry several geometry blocks (e.g. restarted runs);
	// the last one wins.
	var out [3]float64
	found := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if !strings.Contains(sc.Text(), "Found cell geometry data in trajectory file") {
			continue
		}
		if !sc.Scan() || !sc.Scan() {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 11 {
			break
		}
		for i, idx := range []int{2, 6, 10} {
			v, err := strconv.ParseFloat(fields[idx], 64)
			if err != nil {
				return [3]float64{}, fmt.Errorf("parse box length from %s: %w", path, err)
			}
			out[i] = v
		}
		found = true
	}
	if err := sc.Err(); err != nil {
		return [3]float64{}, err
	}
	if !found {
		return [3]float64{}, fmt.Errorf("no cell geometry data in %s", path)
	}
	return out, nil
}
