package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

func TestInspectTable(t *testing.T) {
	testEnv(t)
	input := planetsFile(t)

	out, err := execute(t, "inspect", input)
	require.NoError(t, err)
	for _, want := range []string{"planets-row", "venus-ref → venus", "label-align", "Effective box", "8 nodes"} {
		assert.Contains(t, out, want)
	}
}

func TestInspectJSON(t *testing.T) {
	testEnv(t)
	input := planetsFile(t)

	out, err := execute(t, "inspect", input, "--json")
	require.NoError(t, err)

	var snap scenegraph.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Nodes, 8)
	assert.Equal(t, []string{"planets"}, snap.Roots)

	ref, ok := snap.Node("venus-ref")
	require.True(t, ok)
	assert.Equal(t, scenegraph.KindReference, ref.Kind)
	assert.Equal(t, "venus", ref.RefID)
}

func TestInspectNonConvergentStillShowsTree(t *testing.T) {
	testEnv(t)
	input := planetsFile(t)

	out, err := execute(t, "inspect", input, "--max-passes", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "did not settle")
	assert.Contains(t, out, "planets-row")
}

func TestInspectDOT(t *testing.T) {
	testEnv(t)
	input := planetsFile(t)
	path := filepath.Join(t.TempDir(), "planets.dot")

	out, err := execute(t, "inspect", input, "--dot", path, "--detailed")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
	assert.Contains(t, string(data), "owners")
}

func TestWriteDOTRejectsUnknownExtension(t *testing.T) {
	err := writeDOT(context.Background(), scenegraph.Snapshot{}, filepath.Join(t.TempDir(), "x.bmp"), false)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
}

func TestSnapshotRow(t *testing.T) {
	n := scenegraph.NodeRecord{
		ID:    "venus",
		Kind:  scenegraph.KindGeometry,
		Depth: 2,
		Box: scenegraph.Box{
			Left: scenegraph.Some(30), Top: scenegraph.Some(0),
			Width: scenegraph.Some(40), Height: scenegraph.Some(40),
		},
		BoxOwners:         scenegraph.BoxOwners{Left: "planets-row", Width: "venus", Height: "venus"},
		Translation:       scenegraph.Zero,
		TranslationOwners: scenegraph.TranslationOwners{Y: "planets-row"},
		Effective: scenegraph.Box{
			Left: scenegraph.Some(50), Top: scenegraph.Some(40),
			Width: scenegraph.Some(40), Height: scenegraph.Some(40),
		},
	}
	assert.Equal(t, []string{
		"    venus",
		"geometry",
		"[50 40 40×40]",
		"(0, 0)",
		"planets-row - venus venus | - planets-row",
	}, snapshotRow(n))

	ref := scenegraph.NodeRecord{ID: "r", Kind: scenegraph.KindReference, RefID: "venus", Error: "reference cycle"}
	row := snapshotRow(ref)
	assert.Equal(t, "r → venus", row[0])
	assert.Equal(t, "✗ reference cycle", row[2])
	assert.Equal(t, "(undefined, undefined)", row[3])
}
