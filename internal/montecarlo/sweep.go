package montecarlo

import (
	"fmt"
	"sort"
	"sync"
)

// Point captures the aggregate statistics for one sweep probability.
type Point struct {
	Probability float64
	Stats       Stats
}

// Sweep reruns the experiment across vegetation probabilities from min to
// max inclusive in step increments and returns one point per probability,
// sorted ascending. Points are evaluated by parallel goroutines; every
// point reuses the base parameters with only the probability replaced, so
// the whole sweep is reproducible from Seed0.
func Sweep(base Params, min, max, step float64, parallel int) ([]Point, error) {
	if step <= 0 {
		return nil, fmt.Errorf("sweep step %v must be positive", step)
	}
	if max < min {
		return nil, fmt.Errorf("sweep range [%v, %v] is empty", min, max)
	}
	if parallel < 1 {
		parallel = 1
	}

	var probs []float64
	for i := 0; ; i++ {
		p := min + float64(i)*step
		if p > max+step/1e6 {
			break
		}
		probs = append(probs, p)
	}

	type pointResult struct {
		point Point
		err   error
	}

	jobs := make(chan float64)
	out := make(chan pointResult)
	var wg sync.WaitGroup

	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for prob := range jobs {
				p := base
				p.Sim.Params.Probability = prob
				stats, err := Run(p, nil)
				out <- pointResult{point: Point{Probability: prob, Stats: stats}, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	go func() {
		for _, p := range probs {
			jobs <- p
		}
		close(jobs)
	}()

	points := make([]Point, 0, len(probs))
	var firstErr error
	for r := range out {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		points = append(points, r.point)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Probability < points[j].Probability })
	return points, nil
}
