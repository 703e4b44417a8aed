package model

import (
	"errors"
	"fmt"
)

// Classifier es un modelo ya entrenado que predice la clase de una sola muestra.
type Classifier interface {
	Predict(features []float64) (int, error)
	NumFeatures() int
	Kind() string
}

// ProbabilityEstimator lo implementan los modelos que pueden dar P(clase positiva).
type ProbabilityEstimator interface {
	Probability(features []float64) (float64, error)
}

const (
	KindDecisionTree       = "decision_tree"
	KindRandomForest       = "random_forest"
	KindLogisticRegression = "logistic_regression"
)

var (
	ErrFeatureCount = errors.New("feature count mismatch")
	ErrInvalidModel = errors.New("invalid model")
)

type base struct {
	nFeatures int
	classes   []int
}

func newBase(nFeatures int, classes []int) (base, error) {
	if nFeatures <= 0 {
		return base{}, fmt.Errorf("%w: n_features must be positive", ErrInvalidModel)
	}
	if len(classes) == 0 {
		classes = []int{0, 1}
	}
	seen := make(map[int]struct{}, len(classes))
	for _, c := range classes {
		if _, dup := seen[c]; dup {
			return base{}, fmt.Errorf("%w: duplicate class %d", ErrInvalidModel, c)
		}
		seen[c] = struct{}{}
	}
	return base{nFeatures: nFeatures, classes: append([]int(nil), classes...)}, nil
}

func (b base) NumFeatures() int {
	return b.nFeatures
}

func (b base) checkWidth(features []float64) error {
	if len(features) != b.nFeatures {
		return fmt.Errorf("%w: expected %d, got %d", ErrFeatureCount, b.nFeatures, len(features))
	}
	return nil
}

func (b base) classIndex(class int) int {
	for i, c := range b.classes {
		if c == class {
			return i
		}
	}
	return -1
}

// argmax devuelve la clase con mayor probabilidad; empata hacia la primera, como numpy.
func (b base) argmax(proba []float64) int {
	best := 0
	for i := 1; i < len(proba); i++ {
		if proba[i] > proba[best] {
			best = i
		}
	}
	return b.classes[best]
}
