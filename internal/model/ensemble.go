package model

import (
	"fmt"
	"math"
)

// RandomForest promedia la distribucion de clases de cada arbol.
type RandomForest struct {
	base
	trees []*DecisionTree
}

func NewRandomForest(nFeatures int, classes []int, trees [][]TreeNode) (*RandomForest, error) {
	b, err := newBase(nFeatures, classes)
	if err != nil {
		return nil, err
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: forest has no trees", ErrInvalidModel)
	}
	rf := &RandomForest{base: b, trees: make([]*DecisionTree, 0, len(trees))}
	for i, nodes := range trees {
		tree, err := NewDecisionTree(nFeatures, b.classes, nodes)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		rf.trees = append(rf.trees, tree)
	}
	return rf, nil
}

func (rf *RandomForest) Kind() string {
	return KindRandomForest
}

func (rf *RandomForest) Predict(features []float64) (int, error) {
	if err := rf.checkWidth(features); err != nil {
		return 0, err
	}
	sum := make([]float64, len(rf.classes))
	for i, tree := range rf.trees {
		proba, err := tree.proba(features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		for j, p := range proba {
			sum[j] += p
		}
	}
	return rf.argmax(sum), nil
}

// LogisticRegression binaria: clase positiva si coef·x + intercept > 0.
type LogisticRegression struct {
	base
	coef      []float64
	intercept float64
}

func NewLogisticRegression(nFeatures int, classes []int, coef []float64, intercept float64) (*LogisticRegression, error) {
	b, err := newBase(nFeatures, classes)
	if err != nil {
		return nil, err
	}
	if len(b.classes) != 2 {
		return nil, fmt.Errorf("%w: logistic regression needs exactly 2 classes", ErrInvalidModel)
	}
	if len(coef) != nFeatures {
		return nil, fmt.Errorf("%w: %d coefficients for %d features", ErrInvalidModel, len(coef), nFeatures)
	}
	return &LogisticRegression{base: b, coef: append([]float64(nil), coef...), intercept: intercept}, nil
}

func (lr *LogisticRegression) Kind() string {
	return KindLogisticRegression
}

func (lr *LogisticRegression) Predict(features []float64) (int, error) {
	if err := lr.checkWidth(features); err != nil {
		return 0, err
	}
	if lr.decision(features) > 0 {
		return lr.classes[1], nil
	}
	return lr.classes[0], nil
}

// Probability devuelve P(clase positiva).
func (lr *LogisticRegression) Probability(features []float64) (float64, error) {
	if err := lr.checkWidth(features); err != nil {
		return 0, err
	}
	return 1 / (1 + math.Exp(-lr.decision(features))), nil
}

func (lr *LogisticRegression) decision(features []float64) float64 {
	z := lr.intercept
	for i, w := range lr.coef {
		z += w * features[i]
	}
	return z
}
