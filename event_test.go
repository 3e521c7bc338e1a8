package sift_test

import (
	"testing"

	"github.com/driftlog/sift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLookup(t *testing.T) {
	ev := sift.NewEvent(map[string]any{
		"level":   "error",
		"message": "disk full",
		"fields": map[string]any{
			"app": "ingestd",
			"k8s": map[string]any{
				"namespace": "prod",
			},
		},
	})
	cases := []struct {
		path []string
		want any
		ok   bool
	}{
		{[]string{"level"}, "error", true},
		{[]string{"fields", "app"}, "ingestd", true},
		{[]string{"fields", "k8s", "namespace"}, "prod", true},
		{[]string{"fields", "k8s"}, map[string]any{"namespace": "prod"}, true},
		{[]string{"missing"}, nil, false},
		{[]string{"fields", "missing"}, nil, false},
		// descending through a scalar is not an error, just absent
		{[]string{"level", "sub"}, nil, false},
	}
	for _, c := range cases {
		got, ok := ev.Lookup(c.path...)
		assert.Equal(t, c.ok, ok, "path %v", c.path)
		assert.Equal(t, c.want, got, "path %v", c.path)
	}
}

func TestEventHas(t *testing.T) {
	ev := sift.NewEvent(map[string]any{"a": map[string]any{"b": nil}})
	assert.True(t, ev.Has("a"))
	assert.True(t, ev.Has("a", "b"))
	assert.False(t, ev.Has("a", "b", "c"))
	assert.False(t, ev.Has("z"))
}

func TestEventNilFields(t *testing.T) {
	ev := sift.NewEvent(nil)
	require.NotNil(t, ev)
	_, ok := ev.Lookup("anything")
	assert.False(t, ok)
}
