package inputsample

import (
	"errors"
	"strings"
	"testing"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/stretchr/testify/assert"
)

type recordingRequester struct {
	requested []string
	rejected  []string
	err       error
}

func (rr *recordingRequester) RequestValueFor(f feature.Feature) error {
	rr.requested = append(rr.requested, f.Name())
	return rr.err
}

func (rr *recordingRequester) RejectValueFor(f feature.Feature, v string) error {
	rr.rejected = append(rr.rejected, v)
	return nil
}

var features = []feature.Feature{
	feature.NewContinuousFeature("width"),
	feature.NewCategoricalFeature("color", []string{"red", "green"}),
	feature.NewContinuousFeature("height"),
}

func TestValueFor(t *testing.T) {
	rr := &recordingRequester{}
	s := New(strings.NewReader("wide\n2.5\npurple\ngreen\n?\n"), features, rr, "?")

	v, ok := s.ValueFor("width")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	v, ok = s.ValueFor("color")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = s.ValueFor("height")
	assert.False(t, ok)

	v, ok = s.ValueFor("width")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	_, ok = s.ValueFor("weight")
	assert.False(t, ok)

	assert.NoError(t, s.Err())
	assert.Equal(t, []string{"width", "color", "height"}, rr.requested)
	assert.Equal(t, []string{"wide", "purple"}, rr.rejected)
}

func TestValueForEOF(t *testing.T) {
	s := New(strings.NewReader(""), features, &recordingRequester{}, "?")
	_, ok := s.ValueFor("width")
	assert.False(t, ok)
	assert.Error(t, s.Err())
}

func TestValueForRequesterError(t *testing.T) {
	failure := errors.New("closed")
	s := New(strings.NewReader("1\n"), features, &recordingRequester{err: failure}, "?")
	_, ok := s.ValueFor("width")
	assert.False(t, ok)
	assert.Equal(t, failure, s.Err())
	_, ok = s.ValueFor("height")
	assert.False(t, ok)
}
