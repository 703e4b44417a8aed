package model

import (
	"errors"
	"fmt"
)

// DecisionTree recorre nodos serializados: izquierda si x[feature] <= threshold.
type DecisionTree struct {
	base
	nodes []TreeNode
}

type TreeNode struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	ClassLabel int       `json:"class_label"`
	IsLeaf     bool      `json:"is_leaf"`
	Value      []float64 `json:"value,omitempty"`
}

func NewDecisionTree(nFeatures int, classes []int, nodes []TreeNode) (*DecisionTree, error) {
	b, err := newBase(nFeatures, classes)
	if err != nil {
		return nil, err
	}
	if err := validateNodes(nodes, b); err != nil {
		return nil, err
	}
	return &DecisionTree{base: b, nodes: nodes}, nil
}

func (dt *DecisionTree) Kind() string {
	return KindDecisionTree
}

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	if err := dt.checkWidth(features); err != nil {
		return 0, err
	}
	leaf, err := walk(dt.nodes, features)
	if err != nil {
		return 0, err
	}
	if len(leaf.Value) > 0 {
		return dt.argmax(leaf.Value), nil
	}
	return leaf.ClassLabel, nil
}

// proba devuelve la distribucion de clases de la hoja alcanzada.
func (dt *DecisionTree) proba(features []float64) ([]float64, error) {
	leaf, err := walk(dt.nodes, features)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(dt.classes))
	if len(leaf.Value) == 0 {
		idx := dt.classIndex(leaf.ClassLabel)
		if idx < 0 {
			return nil, fmt.Errorf("%w: leaf class %d not in classes", ErrInvalidModel, leaf.ClassLabel)
		}
		out[idx] = 1
		return out, nil
	}
	var total float64
	for _, v := range leaf.Value {
		total += v
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: empty leaf distribution", ErrInvalidModel)
	}
	for i, v := range leaf.Value {
		out[i] = v / total
	}
	return out, nil
}

func walk(nodes []TreeNode, features []float64) (TreeNode, error) {
	idx := 0
	// un arbol valido no puede tener un camino mas largo que su cantidad de nodos
	for steps := 0; steps <= len(nodes); steps++ {
		node := nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return TreeNode{}, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(nodes) {
			return TreeNode{}, errors.New("invalid tree state")
		}
	}
	return TreeNode{}, errors.New("tree contains a cycle")
}

func validateNodes(nodes []TreeNode, b base) error {
	if len(nodes) == 0 {
		return fmt.Errorf("%w: tree has no nodes", ErrInvalidModel)
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if len(node.Value) > 0 && len(node.Value) != len(b.classes) {
				return fmt.Errorf("%w: node %d value has %d entries, want %d", ErrInvalidModel, i, len(node.Value), len(b.classes))
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= b.nFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d", ErrInvalidModel, i, node.FeatureIdx)
		}
		if node.LeftChild <= 0 || node.LeftChild >= len(nodes) || node.RightChild <= 0 || node.RightChild >= len(nodes) {
			return fmt.Errorf("%w: node %d has out of range children", ErrInvalidModel, i)
		}
	}
	return nil
}
