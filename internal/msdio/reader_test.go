package msdio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirchner-lab/msdiff/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTableShapes(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		avg       bool
		wantMols  int
		wantCols  []string
		wantErr   error
		hasStderr bool
	}{
		{
			name:     "two columns",
			content:  "t; msd\n1.0; 2.0\n2.0; 4.0\n",
			wantMols: 1,
			wantCols: []string{"msd_1"},
		},
		{
			name:     "three columns drops derivative",
			content:  "t; msd; deriv\n1.0; 2.0; 0.1\n2.0; 4.0; 0.1\n",
			wantMols: 1,
			wantCols: []string{"msd_1"},
		},
		{
			name:      "three columns with avg keeps stderr",
			content:   "t; msd; std\n1.0; 2.0; 0.1\n2.0; 4.0; 0.2\n",
			avg:       true,
			wantMols:  1,
			wantCols:  []string{"msd_1"},
			hasStderr: true,
		},
		{
			name:     "multi molecule",
			content:  "t; tot; m1; m2; m3\n1;10;2;3;5\n2;20;4;6;10\n",
			wantMols: 3,
			wantCols: []string{"msd_total", "msd_1", "msd_2", "msd_3"},
		},
		{
			name:    "one column rejected",
			content: "t\n1.0\n2.0\n",
			wantErr: domain.ErrBadInputShape,
		},
		{
			name:    "empty file rejected",
			content: "t; msd\n",
			wantErr: domain.ErrBadInputShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "msd.csv", tt.content)

			table, nmols, err := ReadTable(path, tt.avg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadTable err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if nmols != tt.wantMols {
				t.Errorf("nmols = %d, want %d", nmols, tt.wantMols)
			}
			if len(table.Columns) != len(tt.wantCols) {
				t.Fatalf("got %d columns, want %d", len(table.Columns), len(tt.wantCols))
			}
			for i, name := range tt.wantCols {
				if table.Columns[i].Name != name {
					t.Errorf("column %d = %q, want %q", i, table.Columns[i].Name, name)
				}
			}
			if tt.hasStderr && table.Columns[0].Stderr == nil {
				t.Error("expected stderr column")
			}
			if !tt.hasStderr && table.Columns[0].Stderr != nil {
				t.Error("unexpected stderr column")
			}
		})
	}
}

func TestReadTableValues(t *testing.T) {
	path := writeFile(t, "msd.csv", "t; msd; std\n0.5; 2.25; 0.1\n1.5; 4.75; 0.2\n")

	table, _, err := ReadTable(path, true)
	if err != nil {
		t.Fatal(err)
	}

	s := table.Series(0)
	if s.Time[0] != 0.5 || s.Time[1] != 1.5 {
		t.Errorf("time = %v", s.Time)
	}
	if s.Value[0] != 2.25 || s.Value[1] != 4.75 {
		t.Errorf("value = %v", s.Value)
	}
	if s.Stderr[0] != 0.1 || s.Stderr[1] != 0.2 {
		t.Errorf("stderr = %v", s.Stderr)
	}
}

func TestReadTableRaggedRows(t *testing.T) {
	path := writeFile(t, "msd.csv", "t; msd\n1; 2\n2; 4; 6\n")

	if _, _, err := ReadTable(path, false); !errors.Is(err, domain.ErrBadInputShape) {
		t.Fatalf("err = %v, want %v", err, domain.ErrBadInputShape)
	}
}

func TestReadConductivityTable(t *testing.T) {
	path := writeFile(t, "cond.csv",
		"t; cs; cc; as; ac; x\n1; 1; 2; 3; 4; 5\n2; 2; 4; 6; 8; 10\n")

	table, err := ReadConductivityTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Columns) != len(ConductivityColumns) {
		t.Fatalf("got %d columns, want %d", len(table.Columns), len(ConductivityColumns))
	}
	for i, name := range ConductivityColumns {
		if table.Columns[i].Name != name {
			t.Errorf("column %d = %q, want %q", i, table.Columns[i].Name, name)
		}
	}
	if table.Columns[4].Value[1] != 10 {
		t.Errorf("anion_cation[1] = %v, want 10", table.Columns[4].Value[1])
	}
}

func TestReadConductivityTableWrongShape(t *testing.T) {
	path := writeFile(t, "cond.csv", "t; a; b\n1; 2; 3\n")

	if _, err := ReadConductivityTable(path); !errors.Is(err, domain.ErrBadInputShape) {
		t.Fatalf("err = %v, want %v", err, domain.ErrBadInputShape)
	}
}

func TestReadTravisBoxLengths(t *testing.T) {
	path := writeFile(t, "travis.log",
		"Opening trajectory...\n"+
			"Found cell geometry data in trajectory file\n"+
			"(comment line)\n"+
			"Cell size: 1234.5 pm x L 2345.6 pm x L 3456.7 pm\n")

	box, err := ReadTravisBoxLengths(path)
	if err != nil {
		t.Fatal(err)
	}
	want := [3]float64{1234.5, 2345.6, 3456.7}
	if box != want {
		t.Errorf("box = %v, want %v", box, want)
	}
}

func TestReadTravisBoxLengthsKeepsLastBlock(t *testing.T) {
	// Restarted runs log the geometry more than once; the last block is the
	// one that matches the trajectory actually analyzed.
	path := writeFile(t, "travis.log",
		"Found cell geometry data in trajectory file\n"+
			"(comment line)\n"+
			"Cell size: 1000.0 pm x L 1000.0 pm x L 1000.0 pm\n"+
			"...\n"+
			"Found cell geometry data in trajectory file\n"+
			"(comment line)\n"+
			"Cell size: 1234.5 pm x L 2345.6 pm x L 3456.7 pm\n")

	box, err := ReadTravisBoxLengths(path)
	if err != nil {
		t.Fatal(err)
	}
	want := [3]float64{1234.5, 2345.6, 3456.7}
	if box != want {
		t.Errorf("box = %v, want %v", box, want)
	}
}

func TestReadTravisBoxLengthsMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "travis.log")

	if _, err := ReadTravisBoxLengths(missing); !errors.Is(err, domain.ErrMissingAuxiliaryFile) {
		t.Fatalf("err = %v, want %v", err, domain.ErrMissingAuxiliaryFile)
	}
}
