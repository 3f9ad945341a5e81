// Named frame transforms applied by the capture loop
package algorithms

import (
	"fmt"
	"sort"

	"gocv.io/x/gocv"
)

// Registered transform names
const (
	Grayscale      = "grayscale"
	FlipHorizontal = "flip_horizontal"
	FlipVertical   = "flip_vertical"
)

// Algorithm transforms one frame into a newly allocated frame.
// The caller owns the returned Mat and must Close it.
type Algorithm interface {
	Apply(input gocv.Mat) (gocv.Mat, error)
	GetName() string
	GetDescription() string
}

var algorithms = make(map[string]Algorithm)

func Register(name string, algorithm Algorithm) {
	algorithms[name] = algorithm
}

func Get(name string) (Algorithm, bool) {
	algorithm, exists := algorithms[name]
	return algorithm, exists
}

func Apply(name string, input gocv.Mat) (gocv.Mat, error) {
	algorithm, exists := algorithms[name]
	if !exists {
		return gocv.NewMat(), fmt.Errorf("algorithm not found: %s", name)
	}

	return algorithm.Apply(input)
}

func IsValidAlgorithm(name string) bool {
	_, exists := algorithms[name]
	return exists
}

// Names lists registered transforms in sorted order
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(Grayscale, NewGrayscaleConverter())
	Register(FlipHorizontal, NewFlip(FlipAroundY))
	Register(FlipVertical, NewFlip(FlipAroundX))
}
