package service

import (
	"math"
	"math/rand/v2"
	"sort"
)

// Simulation defaults mirror a broad equity/bond mix: 7.5% annual return,
// 15% annual volatility, 252 trading days per year.
const (
	defaultAnnualReturn = 0.075
	defaultAnnualVol    = 0.15
	tradingDaysPerYear  = 252

	maxSimulationYears = 50
	maxSimulationPaths = 100000
)

// SimulationParams configures a Monte Carlo projection.
type SimulationParams struct {
	InitialAmount float64
	Years         int
	Paths         int
	AnnualReturn  float64 // 0 means default
	AnnualVol     float64 // 0 means default
	Seed          uint64  // 0 means random
}

// SimulationResult summarizes the distribution of final portfolio values.
type SimulationResult struct {
	InitialAmount float64            `json:"initialAmount"`
	Years         int                `json:"years"`
	Paths         int                `json:"paths"`
	MeanFinal     float64            `json:"meanFinal"`
	P10           float64            `json:"p10"`
	P50           float64            `json:"p50"`
	P90           float64            `json:"p90"`
	// Probabilities groups total return outcomes into labelled buckets;
	// the values sum to 1.
	Probabilities map[string]float64 `json:"probabilities"`
}

var returnBuckets = []struct {
	label string
	low   float64
	high  float64
}{
	{"loss", math.Inf(-1), 0},
	{"0-10%", 0, 0.10},
	{"10-30%", 0.10, 0.30},
	{"30-50%", 0.30, 0.50},
	{"50-100%", 0.50, 1.00},
	{">100%", 1.00, math.Inf(1)},
}

func runSimulation(params SimulationParams) (SimulationResult, error) {
	if params.InitialAmount <= 0 {
		return SimulationResult{}, ErrInvalid
	}
	if params.Years <= 0 || params.Years > maxSimulationYears {
		return SimulationResult{}, ErrInvalid
	}
	if params.Paths <= 0 {
		params.Paths = 1000
	}
	if params.Paths > maxSimulationPaths {
		return SimulationResult{}, ErrInvalid
	}
	if params.AnnualReturn == 0 {
		params.AnnualReturn = defaultAnnualReturn
	}
	if params.AnnualVol == 0 {
		params.AnnualVol = defaultAnnualVol
	}

	var rng *rand.Rand
	if params.Seed != 0 {
		rng = rand.New(rand.NewPCG(params.Seed, params.Seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	dailyMean := params.AnnualReturn / tradingDaysPerYear
	dailyVol := params.AnnualVol / math.Sqrt(tradingDaysPerYear)
	days := params.Years * tradingDaysPerYear

	finals := make([]float64, params.Paths)
	var sum float64
	for i := 0; i < params.Paths; i++ {
		value := params.InitialAmount
		for d := 0; d < days; d++ {
			value *= 1 + dailyMean + dailyVol*rng.NormFloat64()
			if value <= 0 {
				value = 0
				break
			}
		}
		finals[i] = value
		sum += value
	}
	sort.Float64s(finals)

	probabilities := make(map[string]float64, len(returnBuckets))
	for _, b := range returnBuckets {
		probabilities[b.label] = 0
	}
	for _, v := range finals {
		ret := v/params.InitialAmount - 1
		for _, b := range returnBuckets {
			if ret >= b.low && ret < b.high {
				probabilities[b.label] += 1 / float64(params.Paths)
				break
			}
		}
	}

	return SimulationResult{
		InitialAmount: params.InitialAmount,
		Years:         params.Years,
		Paths:         params.Paths,
		MeanFinal:     sum / float64(params.Paths),
		P10:           percentile(finals, 0.10),
		P50:           percentile(finals, 0.50),
		P90:           percentile(finals, 0.90),
		Probabilities: probabilities,
	}, nil
}

// percentile reads from a sorted slice using nearest-rank interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
