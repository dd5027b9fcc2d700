package main

import (
	"fmt"

	multigrid "github.com/ess-dg/multigrid_go/pkg"
)

type Summary struct {
	RawEvents            int
	Clusters             int
	WireOnly             int
	GridOnly             int
	Coincidences         int
	MeanWireMultiplicity float64
	MeanGridMultiplicity float64
}

func Summarize(result multigrid.Result) Summary {
	summary := Summary{
		RawEvents: len(result.Events),
		Clusters:  len(result.Clusters),
	}
	var wires, grids int64
	for _, cluster := range result.Clusters {
		wires += cluster.WireMultiplicity
		grids += cluster.GridMultiplicity
		switch {
		case cluster.WireMultiplicity > 0 && cluster.GridMultiplicity > 0:
			summary.Coincidences++
		case cluster.WireMultiplicity > 0:
			summary.WireOnly++
		case cluster.GridMultiplicity > 0:
			summary.GridOnly++
		}
	}
	if summary.Clusters > 0 {
		summary.MeanWireMultiplicity = float64(wires) / float64(summary.Clusters)
		summary.MeanGridMultiplicity = float64(grids) / float64(summary.Clusters)
	}
	return summary
}

func (s Summary) String() string {
	return fmt.Sprintf("%d raw events, %d clusters (%d coincidences, %d wire only, %d grid only), mean multiplicity w %.2f g %.2f",
		s.RawEvents, s.Clusters, s.Coincidences, s.WireOnly, s.GridOnly,
		s.MeanWireMultiplicity, s.MeanGridMultiplicity)
}
