package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlog/sift"
	"github.com/driftlog/sift/route"
)

const rulesYAML = `
routes:
  - destination: errors
    condition: level == "error"
  - destination: bigpayloads
    condition: size > parse_bytes("1MiB")
  - destination: ingestd
    condition: has("fields.app") and fields.app == "ingestd"
`

func TestParseConfig(t *testing.T) {
	c, err := route.ParseConfig([]byte(rulesYAML))
	require.NoError(t, err)
	require.Len(t, c.Routes, 3)
	assert.Equal(t, "errors", c.Routes[0].Destination)
	assert.Equal(t, `level == "error"`, c.Routes[0].Condition)
}

func TestParseConfigMalformed(t *testing.T) {
	_, err := route.ParseConfig([]byte("routes: {not: [a, list"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing routes config")
}

func TestTableDestinations(t *testing.T) {
	c, err := route.ParseConfig([]byte(rulesYAML))
	require.NoError(t, err)
	table, err := route.NewTable(c.Routes, nil)
	require.NoError(t, err)

	cases := []struct {
		fields map[string]any
		want   []string
	}{
		{
			map[string]any{"level": "error", "size": float64(10), "fields": map[string]any{"app": "ingestd"}},
			[]string{"errors", "ingestd"},
		},
		{
			map[string]any{"level": "info", "size": float64(2 << 20)},
			[]string{"bigpayloads"},
		},
		{
			map[string]any{"level": "info", "size": float64(10)},
			nil,
		},
	}
	for _, c := range cases {
		got, err := table.Destinations(sift.NewEvent(c.fields))
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestTableReportsEveryBadRule(t *testing.T) {
	rules := []route.Rule{
		{Destination: "a", Condition: `replace(message)`},
		{Destination: "ok", Condition: `true`},
		{Destination: "b", Condition: `level == `},
		{Destination: "", Condition: `true`},
	}
	_, err := route.NewTable(rules, nil)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `route "a"`)
	assert.Contains(t, msg, "requires 3 parameters, but passed 1")
	assert.Contains(t, msg, `route "b"`)
	assert.Contains(t, msg, "empty destination")
}

func TestTableNonBooleanCondition(t *testing.T) {
	table, err := route.NewTable([]route.Rule{
		{Destination: "a", Condition: `to_upper(level)`},
	}, nil)
	require.NoError(t, err)
	_, err = table.Destinations(sift.NewEvent(map[string]any{"level": "x"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not boolean")
}

func TestTableEvalErrorNamesRoute(t *testing.T) {
	table, err := route.NewTable([]route.Rule{
		{Destination: "sizes", Condition: `size < "oops"`},
	}, nil)
	require.NoError(t, err)
	_, err = table.Destinations(sift.NewEvent(map[string]any{"size": float64(1)}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `route "sizes"`)
}
