package handlers

import (
	"sort"

	"github.com/sentinel-energy/uncertainty-cascade/internal/build"
)

func sortedFactorTechs(ds *build.Dataset) []string {
	techs := make([]string, 0, len(ds.Factors))
	for tech := range ds.Factors {
		techs = append(techs, tech)
	}
	sort.Strings(techs)
	return techs
}
