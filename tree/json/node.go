package json

import (
	"encoding/json"
	"fmt"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Node
	//and returns a slice of bytes with the node
	//and its subtrees encoded or an error if the
	//encoding could not be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct{}

type node struct {
	Rule       *rule           `json:"rule,omitempty"`
	Prediction *jsonPrediction `json:"pred,omitempty"`
	Weight     int             `json:"w"`
	Higher     *node           `json:"hi,omitempty"`
	Lower      *node           `json:"lo,omitempty"`
}

type rule struct {
	Dimension string  `json:"d"`
	Cutoff    float64 `json:"c"`
}

type jsonPrediction struct {
	Class      dataset.Code `json:"class"`
	Confidence float64      `json:"conf"`
	Weight     int          `json:"w"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that encodes
nodes as nested JSON objects.
*/
func NewNodeEncodeDecoder() NodeEncodeDecoder {
	return nodeEncodeDecoder{}
}

func (ned nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	return json.Marshal(toJSONNode(n))
}

func (ned nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	return fromJSONNode(jn, "root")
}

func toJSONNode(n *tree.Node) *node {
	if n == nil {
		return nil
	}
	jn := &node{Weight: n.Weight}
	if n.Rule != nil {
		jn.Rule = &rule{n.Rule.Dimension, n.Rule.Cutoff}
	}
	if n.Prediction != nil {
		jn.Prediction = &jsonPrediction{n.Prediction.Class, n.Prediction.Confidence, n.Prediction.Weight}
	}
	jn.Higher = toJSONNode(n.Higher)
	jn.Lower = toJSONNode(n.Lower)
	return jn
}

func fromJSONNode(jn *node, path string) (*tree.Node, error) {
	if jn.Rule == nil {
		if jn.Prediction == nil {
			return nil, fmt.Errorf("unmarshalling node %s: leaf without prediction", path)
		}
		if jn.Higher != nil || jn.Lower != nil {
			return nil, fmt.Errorf("unmarshalling node %s: leaf with subtrees", path)
		}
		n := tree.NewLeaf(&tree.Prediction{
			Class:      jn.Prediction.Class,
			Confidence: jn.Prediction.Confidence,
			Weight:     jn.Prediction.Weight,
		})
		n.Weight = jn.Weight
		return n, nil
	}
	if jn.Higher == nil || jn.Lower == nil {
		return nil, fmt.Errorf("unmarshalling node %s: split on %s without both subtrees", path, jn.Rule.Dimension)
	}
	higher, err := fromJSONNode(jn.Higher, path+"/higher")
	if err != nil {
		return nil, err
	}
	lower, err := fromJSONNode(jn.Lower, path+"/lower")
	if err != nil {
		return nil, err
	}
	return tree.NewInternal(feature.SplitRule{Dimension: jn.Rule.Dimension, Cutoff: jn.Rule.Cutoff}, higher, lower, jn.Weight), nil
}
