package native

import (
	"context"
	"fmt"

	"tfsp/dataset"
	"tfsp/kernel"
)

// Lengths computes the item-length statistics in-process.
type Lengths struct {
	Cache *DatasetCache
}

var _ kernel.LengthStatistics = (*Lengths)(nil)

func (l *Lengths) Lengths(ctx context.Context, datasetPath string) (kernel.Lengths, error) {
	ds, err := l.Cache.Load(datasetPath)
	if err != nil {
		return kernel.Lengths{}, err
	}
	return ComputeLengths(ds)
}

// ComputeLengths returns the mean and the maximum item-length.
func ComputeLengths(ds *dataset.Dataset) (kernel.Lengths, error) {
	if ds.Size() == 0 {
		return kernel.Lengths{}, fmt.Errorf("dataset %s has no transactions", ds.Path)
	}
	total, max := 0, 0
	for _, seq := range ds.Sequences {
		l := seq.ItemLength()
		total += l
		if l > max {
			max = l
		}
	}
	return kernel.Lengths{Min: float64(total) / float64(ds.Size()), Max: float64(max)}, nil
}
