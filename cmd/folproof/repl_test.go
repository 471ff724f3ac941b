package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folproof/internal/kb"
	"folproof/internal/rank"
	"folproof/internal/resolve"
)

func newTestStore(t *testing.T) *kb.KB {
	t.Helper()
	store, err := kb.New(kb.Config{Rank: rank.DefaultConfig(), Budget: resolve.DefaultBudget()}, nil)
	require.NoError(t, err)
	return store
}

func TestREPLAxiomTheoremFlow(t *testing.T) {
	store := newTestStore(t)
	in := strings.NewReader(
		"axiom forall x (P(x) -> Q(x))\n\n" +
			"axiom P(a)\n\n" +
			"theorem Q(a)\n\n" +
			"exit\n",
	)
	var out bytes.Buffer

	r := newREPL(store, nil, in, &out)
	require.NoError(t, r.Run())

	rendered := out.String()
	assert.Contains(t, rendered, "axiom 0 added")
	assert.Contains(t, rendered, "axiom 1 added")
	assert.Contains(t, rendered, "theorem 0 added")
	assert.Contains(t, rendered, "⊥")
}

func TestREPLShowAndDescribe(t *testing.T) {
	store := newTestStore(t)
	in := strings.NewReader(
		"axiom P(a)\nfirst fact\n" +
			"describe axiom 0 renamed fact\n" +
			"show axiom\n" +
			"exit\n",
	)
	var out bytes.Buffer

	r := newREPL(store, nil, in, &out)
	require.NoError(t, r.Run())

	rendered := out.String()
	assert.Contains(t, rendered, "description updated")
	assert.Contains(t, rendered, "renamed fact")
	assert.Contains(t, rendered, "created")
}

func TestREPLVerboseToggle(t *testing.T) {
	store := newTestStore(t)
	in := strings.NewReader("verbose\nverbose\nexit\n")
	var out bytes.Buffer

	r := newREPL(store, nil, in, &out)
	require.NoError(t, r.Run())

	rendered := out.String()
	assert.Contains(t, rendered, "verbose: true")
	assert.Contains(t, rendered, "verbose: false")
}

// TestREPLVerboseShowsPremiseSelection checks that verbose mode reports
// premise-selection diagnostics (which theorems were selected vs. omitted),
// not just engine statistics.
func TestREPLVerboseShowsPremiseSelection(t *testing.T) {
	store := newTestStore(t)
	in := strings.NewReader(
		"verbose\n" +
			"axiom forall x (P(x) -> Q(x))\n\n" +
			"axiom P(a)\n\n" +
			"theorem Q(a)\n\n" +
			"exit\n",
	)
	var out bytes.Buffer

	r := newREPL(store, nil, in, &out)
	require.NoError(t, r.Run())

	rendered := out.String()
	assert.Contains(t, rendered, "premise selection: selected theorems")
}

func TestREPLUnknownCommand(t *testing.T) {
	store := newTestStore(t)
	in := strings.NewReader("bogus\nexit\n")
	var out bytes.Buffer

	r := newREPL(store, nil, in, &out)
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "unknown command")
}
