package metabin

import "github.com/pkg/errors"

// NewBasisStrategy returns the named basis-selection strategy. topSize only
// applies to "hotgroup". Unknown names are a configuration error and should
// be fatal before any scoring work begins.
func NewBasisStrategy(name string, topSize int) (BasisStrategy, error) {
	switch name {
	case "normal", "":
		return normalBasis{}, nil
	case "hotgroup":
		if topSize < 1 {
			return nil, errors.Errorf("hotgroup basis needs a positive top size, got %d", topSize)
		}
		return hotGroupBasis{topSize: topSize}, nil
	}
	return nil, errors.Errorf("unknown basis strategy %q", name)
}

// NewVectorStrategy returns the named hit-accumulation strategy. "sum" (alias
// "signal") accumulates identity-weighted alignment spans; "best" (alias
// "vector") keeps the single strongest hit's identity.
func NewVectorStrategy(name string) (VectorStrategy, error) {
	switch name {
	case "sum", "signal", "":
		return sumStrategy{}, nil
	case "best", "vector":
		return bestStrategy{}, nil
	}
	return nil, errors.Errorf("unknown vector strategy %q", name)
}

// NewCompareStrategy returns the named pairwise comparator. topSize only
// applies to "binning", where it limits how many leading sorted pairs are
// checked; zero checks them all.
func NewCompareStrategy(name string, topSize int) (CompareStrategy, error) {
	switch name {
	case "dot", "":
		return dotProduct{}, nil
	case "distance":
		return distanceCompare{}, nil
	case "best":
		return bestCompare{}, nil
	case "binning":
		return binningCompare{topSize: topSize}, nil
	case "ranking":
		return rankingCompare{}, nil
	}
	return nil, errors.Errorf("unknown compare strategy %q", name)
}
