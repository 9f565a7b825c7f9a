package decision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoppers(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		stopper Stopper
		state   NodeState
		stop    bool
	}{
		{"depth within limit", MaxDepthStopper(2), NodeState{Depth: 2, Rows: 10, Impurity: 0.5}, false},
		{"depth past limit", MaxDepthStopper(2), NodeState{Depth: 3, Rows: 10, Impurity: 0.5}, true},
		{"unlimited depth", MaxDepthStopper(-1), NodeState{Depth: 1000, Rows: 10, Impurity: 0.5}, false},
		{"enough rows", MinNodeSizeStopper(5), NodeState{Rows: 5, Impurity: 0.5}, false},
		{"too few rows", MinNodeSizeStopper(5), NodeState{Rows: 4, Impurity: 0.5}, true},
		{"pure", PureNodeStopper(), NodeState{Rows: 4}, true},
		{"impure", PureNodeStopper(), NodeState{Rows: 4, Impurity: 0.1}, false},
		{"never", NoStopper(), NodeState{}, false},
		{"any of none", AnyStopper(), NodeState{}, false},
		{"any with nil", AnyStopper(nil, MinNodeSizeStopper(5)), NodeState{Rows: 1, Impurity: 0.5}, true},
		{"any none firing", AnyStopper(MaxDepthStopper(3), PureNodeStopper()), NodeState{Depth: 1, Impurity: 0.5}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.stop, c.stopper.Stop(ctx, c.state), c.name)
	}
}
