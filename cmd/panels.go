package cmd

import (
	"fmt"

	"gonum.org/v1/plot"

	"github.com/myoung-space-science/emmrem-analysis/eprem"
	"github.com/myoung-space-science/emmrem-analysis/render"
	"github.com/myoung-space-science/emmrem-analysis/units"
)

// fluxPanel plots flux against time at one shell, one curve per energy
// bin. The y axis is logarithmic and spans the six decades below the
// largest plotted value.
func fluxPanel(
	obs *eprem.Observer, flux *eprem.Array4,
	shell, species int, eIdxs []int, cat units.Catalog,
) (*plot.Plot, error) {
	times, err := scaledTimes(obs, cat)
	if err != nil { return nil, err }
	escale, err := units.EnergyScale(cat.Energy)
	if err != nil { return nil, err }

	p := render.NewPlot(
		fmt.Sprintf("Time [%s]", cat.Time),
		fmt.Sprintf("Flux [%s]", cat.Flux),
	)
	colors := render.Rainbow(len(eIdxs))
	energies := obs.Energies()

	max := 0.0
	for i, e := range eIdxs {
		ys := fluxColumn(flux, shell, species, e)
		for _, y := range ys {
			if y > max { max = y }
		}
		ln, err := render.Line(times, render.Positive(ys),
			render.Solid(colors[i]))
		if err != nil { return nil, err }
		p.Add(ln)
		p.Legend.Add(fmt.Sprintf("%.3f %s", energies[e]*escale,
			cat.Energy), ln)
	}

	render.LogY(p)
	p.Y.Min, p.Y.Max = render.LogLimits(max)
	return p, nil
}

// fluencePanel plots the cumulative fluence of the whole run against
// energy at one shell, on log-log axes.
func fluencePanel(
	obs *eprem.Observer, flux *eprem.Array4,
	shell, species int, cat units.Catalog,
) (*plot.Plot, error) {
	escale, err := units.EnergyScale(cat.Energy)
	if err != nil { return nil, err }

	fluence := obs.Fluence(flux, shell, species)
	energies := obs.Energies()
	xs := make([]float64, len(energies))
	for i, e := range energies { xs[i] = e * escale }

	max := 0.0
	for _, y := range fluence {
		if y > max { max = y }
	}

	p := render.NewPlot(
		fmt.Sprintf("Energy [%s]", cat.Energy),
		fmt.Sprintf("Fluence [%s]", cat.Fluence),
	)
	ln, err := render.Line(xs, render.Positive(fluence),
		render.Solid(render.Rainbow(1)[0]))
	if err != nil { return nil, err }
	p.Add(ln)

	render.LogLog(p)
	p.Y.Min, p.Y.Max = render.LogLimits(max)
	return p, nil
}

// intfluxPanel plots integral flux against time at one shell, one curve
// per threshold energy. Thresholds are in MeV. geq adds the "≥" prefix
// the threshold labels conventionally carry.
func intfluxPanel(
	obs *eprem.Observer, flux *eprem.Array4,
	shell, species int, thresholds []float64, geq bool, cat units.Catalog,
) (*plot.Plot, error) {
	intflux, err := obs.IntegralFlux(flux, shell, species, thresholds)
	if err != nil { return nil, err }
	times, err := scaledTimes(obs, cat)
	if err != nil { return nil, err }
	escale, err := units.EnergyScale(cat.Energy)
	if err != nil { return nil, err }

	p := render.NewPlot(
		fmt.Sprintf("Time [%s]", cat.Time),
		fmt.Sprintf("Integral Flux [%s]", cat.IntFlux),
	)
	colors := render.Rainbow(len(thresholds))

	max := 0.0
	for i, e0 := range thresholds {
		ys := intflux[i]
		for _, y := range ys {
			if y > max { max = y }
		}
		ln, err := render.Line(times, render.Positive(ys),
			render.Solid(colors[i]))
		if err != nil { return nil, err }
		p.Add(ln)
		label := fmt.Sprintf("%g %s", e0*escale, cat.Energy)
		if geq { label = "≥" + label }
		p.Legend.Add(label, ln)
	}

	render.LogY(p)
	p.Y.Min, p.Y.Max = render.LogLimits(max)
	return p, nil
}
