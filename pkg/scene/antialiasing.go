package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// AntiAliasing names a per-pixel sampling strategy
type AntiAliasing string

const (
	NoAliasing              AntiAliasing = "NoAliasing"
	RandomAliasing          AntiAliasing = "RandomAliasing"
	JitteredSampling        AntiAliasing = "JitteredSamplingAliasing"
	Supersampling           AntiAliasing = "SupersamplingAliasing"
	Hammersley              AntiAliasing = "HammersleyAliasing"
	CorrelatedMultiJittered AntiAliasing = "CorrelatedMultiJitteredAliasing"
)

// AntiAliasingStrategies lists every strategy in a stable order
var AntiAliasingStrategies = []AntiAliasing{
	NoAliasing,
	RandomAliasing,
	JitteredSampling,
	Supersampling,
	Hammersley,
	CorrelatedMultiJittered,
}

var antiAliasingAliases = map[string]AntiAliasing{
	"none":          NoAliasing,
	"random":        RandomAliasing,
	"jittered":      JitteredSampling,
	"supersampling": Supersampling,
	"hammersley":    Hammersley,
	"cmj":           CorrelatedMultiJittered,
}

// ParseAntiAliasing resolves a strategy by its full name (case-insensitive) or short alias
func ParseAntiAliasing(name string) (AntiAliasing, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, strategy := range AntiAliasingStrategies {
		if strings.ToLower(string(strategy)) == key {
			return strategy, nil
		}
	}
	if strategy, ok := antiAliasingAliases[key]; ok {
		return strategy, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownAntiAliasing, name)
}
