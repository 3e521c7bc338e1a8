package expr_test

import (
	"testing"
	"time"

	"github.com/driftlog/sift"
	"github.com/driftlog/sift/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *sift.Event {
	return sift.NewEvent(map[string]any{
		"level":   "error",
		"size":    float64(2048),
		"retries": float64(0),
		"fields": map[string]any{
			"app": "ingestd",
		},
	})
}

func TestLiteral(t *testing.T) {
	cases := []struct {
		val    any
		render string
	}{
		{nil, "null"},
		{"disk full", `"disk full"`},
		{true, "true"},
		{false, "false"},
		{3.5, "3.5"},
		{float64(10), "10"},
		{7, "7"},
	}
	for _, c := range cases {
		l := expr.NewLiteral(c.val)
		got, err := l.Eval(testEvent())
		require.NoError(t, err)
		assert.Equal(t, c.val, got)
		assert.Equal(t, c.render, l.Render())
	}
}

func TestField(t *testing.T) {
	f := expr.NewField("fields.app")
	got, err := f.Eval(testEvent())
	require.NoError(t, err)
	assert.Equal(t, "ingestd", got)
	assert.Equal(t, "fields.app", f.Render())

	missing := expr.NewField("fields.missing")
	got, err = missing.Eval(testEvent())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompare(t *testing.T) {
	ts := time.Date(2021, 4, 29, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		op   string
		lhs  any
		rhs  any
		want bool
	}{
		{"==", "error", "error", true},
		{"==", "error", "warn", false},
		{"!=", "error", "warn", true},
		{"==", float64(1), 1, true},
		{"==", nil, nil, true},
		{"==", nil, "x", false},
		{"!=", nil, "x", true},
		{"<", float64(1), float64(2), true},
		{"<=", float64(2), float64(2), true},
		{">", "b", "a", true},
		{">=", "a", "b", false},
		{"<", ts, ts.Add(time.Hour), true},
		{">=", ts, ts, true},
		{"==", ts, ts.In(time.FixedZone("x", 3600)), true},
	}
	for _, c := range cases {
		e := expr.NewCompare(c.op, expr.NewLiteral(c.lhs), expr.NewLiteral(c.rhs))
		got, err := e.Eval(testEvent())
		require.NoError(t, err, "%v %s %v", c.lhs, c.op, c.rhs)
		assert.Equal(t, c.want, got, "%v %s %v", c.lhs, c.op, c.rhs)
	}
}

func TestCompareIncompatible(t *testing.T) {
	e := expr.NewCompare("<", expr.NewLiteral("a"), expr.NewLiteral(float64(1)))
	_, err := e.Eval(testEvent())
	assert.ErrorIs(t, err, expr.ErrIncompatibleTypes)

	e = expr.NewCompare("<", expr.NewField("missing"), expr.NewLiteral(float64(1)))
	_, err = e.Eval(testEvent())
	assert.ErrorIs(t, err, expr.ErrIncompatibleTypes)
}

func TestLogical(t *testing.T) {
	yes := expr.NewLiteral(true)
	no := expr.NewLiteral(false)
	cases := []struct {
		e    expr.Evaluator
		want bool
	}{
		{expr.NewLogicalAnd(yes, yes), true},
		{expr.NewLogicalAnd(yes, no), false},
		{expr.NewLogicalAnd(no, yes), false},
		{expr.NewLogicalOr(no, no), false},
		{expr.NewLogicalOr(no, yes), true},
		{expr.NewLogicalNot(no), true},
		{expr.NewLogicalNot(yes), false},
	}
	for _, c := range cases {
		got, err := c.e.Eval(testEvent())
		require.NoError(t, err, c.e.Render())
		assert.Equal(t, c.want, got, c.e.Render())
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	// The rhs would fail if evaluated; short-circuiting must skip it.
	bad := expr.NewLogicalNot(expr.NewLiteral("not a bool"))
	and := expr.NewLogicalAnd(expr.NewLiteral(false), bad)
	got, err := and.Eval(testEvent())
	require.NoError(t, err)
	assert.Equal(t, false, got)

	or := expr.NewLogicalOr(expr.NewLiteral(true), bad)
	got, err = or.Eval(testEvent())
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestLogicalNonBool(t *testing.T) {
	e := expr.NewLogicalAnd(expr.NewLiteral("x"), expr.NewLiteral(true))
	_, err := e.Eval(testEvent())
	assert.ErrorIs(t, err, expr.ErrIncompatibleTypes)
}

func TestRenderComposition(t *testing.T) {
	e := expr.NewLogicalAnd(
		expr.NewCompare("==", expr.NewField("level"), expr.NewLiteral("error")),
		expr.NewLogicalNot(expr.NewCompare("<", expr.NewField("size"), expr.NewLiteral(float64(1024)))),
	)
	assert.Equal(t, `(level == "error" and not size < 1024)`, e.Render())
}
