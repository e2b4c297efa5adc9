package build

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"time"
)

// WriteFactorsCSV writes the per-technology bound factors: one row per
// technology. This is the primary artifact for "which statistic did this run
// actually use".
func WriteFactorsCSV(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"technology",
		"source_year",
		"used_fallback",
		"kind",
		"value",
		"profile_points",
		"provenance",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, tech := range sortedTechs(ds) {
		bf := ds.Factors[tech]
		kind := "scalar"
		value := fmtFloat(bf.Scalar)
		points := "0"
		if bf.IsProfile {
			kind = "profile"
			value = ""
			points = strconv.Itoa(len(bf.Profile))
		}
		row := []string{
			bf.Technology,
			strconv.Itoa(int(bf.SourceYear)),
			strconv.FormatBool(bf.UsedFallback),
			kind,
			value,
			points,
			bf.Provenance,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteSeriesCSV writes the window-aligned series as a wide table: one row
// per timestamp, one column per technology. Scalar factors repeat their
// value on every row so the output is directly consumable as model input.
func WriteSeriesCSV(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	techs := sortedTechs(ds)
	header := append([]string{"timestamp"}, techs...)
	if err := w.Write(header); err != nil {
		return err
	}

	// Per-technology profile lookup keyed by timestamp.
	profiles := make(map[string]map[time.Time]float64, len(techs))
	for _, tech := range techs {
		bf := ds.Factors[tech]
		if !bf.IsProfile {
			continue
		}
		m := make(map[time.Time]float64, len(bf.Profile))
		for _, row := range bf.Profile {
			m[row.Timestamp] = row.Value
		}
		profiles[tech] = m
	}

	for _, t := range ds.Window.Timestamps {
		row := make([]string, 0, len(techs)+1)
		row = append(row, fmtTime(t))
		for _, tech := range techs {
			bf := ds.Factors[tech]
			if bf.IsProfile {
				row = append(row, fmtFloat(profiles[tech][t]))
			} else {
				row = append(row, fmtFloat(bf.Scalar))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func sortedTechs(ds *Dataset) []string {
	techs := make([]string, 0, len(ds.Factors))
	for tech := range ds.Factors {
		techs = append(techs, tech)
	}
	sort.Strings(techs)
	return techs
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
