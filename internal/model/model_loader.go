package model

import (
	"encoding/json"
	"fmt"
	"os"
)

type artifact struct {
	Type      string       `json:"type"`
	NFeatures int          `json:"n_features"`
	Classes   []int        `json:"classes"`
	Nodes     []TreeNode   `json:"nodes"`
	Trees     [][]TreeNode `json:"trees"`
	Coef      []float64    `json:"coef"`
	Intercept float64      `json:"intercept"`
}

// LoadClassifier lee el artefacto JSON del modelo y construye el clasificador segun su tipo.
func LoadClassifier(path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return ParseClassifier(payload)
}

func ParseClassifier(payload []byte) (Classifier, error) {
	var a artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	switch a.Type {
	case KindDecisionTree:
		return NewDecisionTree(a.NFeatures, a.Classes, a.Nodes)
	case KindRandomForest:
		return NewRandomForest(a.NFeatures, a.Classes, a.Trees)
	case KindLogisticRegression:
		return NewLogisticRegression(a.NFeatures, a.Classes, a.Coef, a.Intercept)
	default:
		return nil, fmt.Errorf("%w: unsupported model type %q", ErrInvalidModel, a.Type)
	}
}
