package native

import (
	"context"
	"fmt"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"tfsp/bound"
	"tfsp/dataset"
	"tfsp/kernel"
	U "tfsp/util"
)

// Above this many terms a binomial coefficient C(n, i) is replaced by the
// bound (n e / i)^i.
const binomialBoundCutoff = 500000

// Starting point of the minimisation over s, and the grid used to find a
// better one.
const (
	initialS     = 1000.0
	gridMaxPower = 24
)

// RadeBound computes the analytic upper bound to the maximum deviation
// in-process. Infinite bounds are reported as kernel.InfToken.
type RadeBound struct {
	Cache *DatasetCache
}

var _ kernel.AnalyticKernel = (*RadeBound)(nil)

func (r *RadeBound) UpperBound(ctx context.Context, datasetPath string, delta float64, eta int) (string, error) {
	ds, err := r.Cache.Load(datasetPath)
	if err != nil {
		return "", err
	}
	value, err := UpperBound(ds, delta, eta)
	if err != nil {
		return "", err
	}
	return U.FormatFloat(value), nil
}

// expTerm is one summand (weight) * exp(s^2 * coef) of the objective, kept
// as log(weight) to avoid overflow.
type expTerm struct {
	coef      float64
	logWeight float64
}

type itemCount struct {
	item         int
	multiplicity int
}

// UpperBound returns 2 R + sqrt(2 ln(2/delta) / n), where R bounds the
// Rademacher complexity of the patterns through their item-length
// threshold eta.
func UpperBound(ds *dataset.Dataset, delta float64, eta int) (float64, error) {
	n := ds.Size()
	if n == 0 {
		return 0, fmt.Errorf("dataset %s has no transactions", ds.Path)
	}
	terms := objectiveTerms(ds, eta)
	rade, err := minimiseObjective(terms)
	if err != nil {
		return 0, err
	}
	if math.IsInf(rade, 1) {
		return math.Inf(1), nil
	}
	term, err := bound.ConcentrationTerm(float64(n), delta)
	if err != nil {
		return 0, err
	}
	return 2*rade + term, nil
}

func objectiveTerms(ds *dataset.Dataset, eta int) []expTerm {
	n := float64(ds.Size())
	factor := 2.0 * n * n

	itemFreq := make(map[int]int)
	lengthHist := make(map[int]int)
	transactions := make([][]itemCount, 0, ds.Size())
	for _, seq := range ds.Sequences {
		counts := make(map[int]int)
		for _, is := range seq {
			for _, item := range is {
				counts[item]++
			}
		}
		tr := make([]itemCount, 0, len(counts))
		for item, m := range counts {
			tr = append(tr, itemCount{item: item, multiplicity: m})
			itemFreq[item]++
		}
		lengthHist[seq.ItemLength()]++
		transactions = append(transactions, tr)
	}

	// For every item a and transaction t, k is the number of items of t,
	// with multiplicity, that are at least as frequent as a.
	type km struct{ k, m int }
	quantities := make(map[int]map[km]int)
	for _, tr := range transactions {
		sort.Slice(tr, func(i, j int) bool {
			fi, fj := itemFreq[tr[i].item], itemFreq[tr[j].item]
			if fi != fj {
				return fi < fj
			}
			return tr[i].item < tr[j].item
		})
		k := 0
		for i := len(tr) - 1; i >= 0; i-- {
			k += tr[i].multiplicity
			q, ok := quantities[tr[i].item]
			if !ok {
				q = make(map[km]int)
				quantities[tr[i].item] = q
			}
			q[km{k, tr[i].multiplicity}]++
		}
	}

	items := make([]int, 0, len(itemFreq))
	for item := range itemFreq {
		items = append(items, item)
	}
	sort.Ints(items)

	binomials := make(map[int]float64)
	terms := make([]expTerm, 0, len(items)+1)
	for _, item := range items {
		logSum := math.Inf(-1)
		for key, g := range quantities[item] {
			logG := math.Log(float64(g))
			switch {
			case key.k == key.m:
				if key.m > 1 {
					logSum = logAddExp(logSum, math.Log(float64(key.m-1))+logG)
				}
			case key.k >= eta:
				lb, ok := binomials[key.k]
				if !ok {
					lb = logBinomialSum(key.k-1, eta-2)
					binomials[key.k] = lb
				}
				logSum = logAddExp(logSum, lb+logG)
			default:
				d := float64(key.k - key.m)
				m := float64(key.m)
				v := m*(math.Pow(2, d)-1) + math.Pow(2, d)*(math.Pow(2, m)-1-m)
				if v > 0 {
					logSum = logAddExp(logSum, math.Log(v)+logG)
				}
			}
		}
		terms = append(terms, expTerm{
			coef:      float64(itemFreq[item]) / factor,
			logWeight: logAddExp(0, logSum),
		})
	}

	longTransactions := 0
	for length, count := range lengthHist {
		if length >= eta {
			longTransactions += count
		}
	}
	if longTransactions > 0 {
		// weight 2^N - 1 for the N transactions at least eta items long.
		nt := float64(longTransactions)
		terms = append(terms, expTerm{
			coef:      nt / factor,
			logWeight: nt*math.Ln2 + math.Log1p(-math.Exp2(-nt)),
		})
	}
	return terms
}

// logBinomialSum returns log(sum_{i=1..upTo} C(n, i)).
func logBinomialSum(n, upTo int) float64 {
	logSum := math.Inf(-1)
	for i := 1; i <= upTo && i <= n; i++ {
		var lc float64
		if (n+1)*(i+1) >= binomialBoundCutoff {
			lc = float64(i) * math.Log(float64(n)*math.E/float64(i))
		} else {
			a, _ := math.Lgamma(float64(n + 1))
			b, _ := math.Lgamma(float64(i + 1))
			c, _ := math.Lgamma(float64(n - i + 1))
			lc = a - b - c
		}
		logSum = logAddExp(logSum, lc)
	}
	return logSum
}

func logAddExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// objective is log(1 + sum_j w_j exp(s^2 c_j)) / s.
func objective(terms []expTerm, s float64) float64 {
	logs := make([]float64, 0, len(terms)+1)
	logs = append(logs, 0)
	s2 := s * s
	for _, t := range terms {
		if math.IsInf(t.logWeight, -1) {
			continue
		}
		logs = append(logs, t.logWeight+s2*t.coef)
	}
	return floats.LogSumExp(logs) / s
}

// minimiseObjective minimises the objective over s >= 1 with Nelder-Mead on
// s = 1 + x^2, started from the best point of a coarse doubling grid.
func minimiseObjective(terms []expTerm) (float64, error) {
	best, bestS := objective(terms, initialS), initialS
	for p := 0; p <= gridMaxPower; p++ {
		s := math.Exp2(float64(p))
		if v := objective(terms, s); v < best {
			best, bestS = v, s
		}
	}
	if math.IsInf(best, 1) {
		return best, nil
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return objective(terms, 1+x[0]*x[0])
		},
	}
	settings := &optimize.Settings{
		Converger:       &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 200},
		MajorIterations: 10000,
	}
	result, err := optimize.Minimize(problem, []float64{math.Sqrt(bestS - 1)}, settings, &optimize.NelderMead{})
	if err != nil {
		if result == nil {
			return 0, fmt.Errorf("optimization failed: %v", err)
		}
		log.WithError(err).Warn("Optimization stopped early, keeping best point found.")
	}
	if result != nil && result.F < best {
		best = result.F
	}
	return best, nil
}
