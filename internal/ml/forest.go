package ml

import "fmt"

// Node is one decision-tree node in the exported artifact. Leaves carry
// Left == -1 and a Value vector: class frequencies for classifiers, a single
// element for regressors.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) leaf(features []float64) (*Node, error) {
	if len(t.Nodes) == 0 {
		return nil, fmt.Errorf("forest: empty tree")
	}
	idx := 0
	for {
		node := &t.Nodes[idx]
		if node.Left < 0 {
			return node, nil
		}
		if node.Feature < 0 || node.Feature >= len(features) {
			return nil, fmt.Errorf("forest: feature index %d out of range", node.Feature)
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return nil, fmt.Errorf("forest: node index %d out of range", idx)
		}
	}
}

// Forest evaluates an exported random forest. Importances are precomputed at
// export time; Classes is empty for regression forests.
type Forest struct {
	Trees       []Tree    `json:"trees"`
	Classes     []string  `json:"classes,omitempty"`
	Importances []float64 `json:"feature_importances,omitempty"`
}

// PredictProba averages normalized leaf class frequencies across all trees.
func (f *Forest) PredictProba(features []float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("forest: no trees")
	}
	if len(f.Classes) == 0 {
		return nil, fmt.Errorf("forest: not a classifier")
	}

	probs := make([]float64, len(f.Classes))
	for i := range f.Trees {
		leaf, err := f.Trees[i].leaf(features)
		if err != nil {
			return nil, err
		}
		if len(leaf.Value) != len(f.Classes) {
			return nil, fmt.Errorf("forest: leaf arity %d does not match %d classes", len(leaf.Value), len(f.Classes))
		}
		total := 0.0
		for _, v := range leaf.Value {
			total += v
		}
		if total == 0 {
			continue
		}
		for c, v := range leaf.Value {
			probs[c] += v / total
		}
	}
	for c := range probs {
		probs[c] /= float64(len(f.Trees))
	}
	return probs, nil
}

// PredictValue averages single-element leaves across trees (regression).
func (f *Forest) PredictValue(features []float64) (float64, error) {
	if len(f.Trees) == 0 {
		return 0, fmt.Errorf("forest: no trees")
	}
	sum := 0.0
	for i := range f.Trees {
		leaf, err := f.Trees[i].leaf(features)
		if err != nil {
			return 0, err
		}
		if len(leaf.Value) == 0 {
			return 0, fmt.Errorf("forest: empty leaf value")
		}
		sum += leaf.Value[0]
	}
	return sum / float64(len(f.Trees)), nil
}
