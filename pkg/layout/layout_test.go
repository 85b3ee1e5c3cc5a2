package layout

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

var some = scenegraph.Some

func rect(id string, w, h float64) *Rect {
	return &Rect{Base: Base{ID: id}, Width: w, Height: h}
}

func run(t *testing.T, root Element) *scenegraph.Scenegraph {
	t.Helper()
	quiet := log.New(io.Discard)
	sg := scenegraph.New(scenegraph.WithLogger(quiet))
	tree, err := Mount(sg, root)
	require.NoError(t, err)
	stats, err := tree.Run(context.Background(), RunOptions{Logger: quiet})
	require.NoError(t, err)
	assert.True(t, stats.Converged)
	return sg
}

func effective(t *testing.T, sg *scenegraph.Scenegraph, id string) scenegraph.Box {
	t.Helper()
	b, err := sg.EffectiveBox(id)
	require.NoError(t, err)
	return b
}

func diagram(els ...Element) *Diagram {
	return &Diagram{Base: Base{ID: "diagram"}, Width: 400, Height: 300, Elements: els}
}

func TestRowPlacesAfterPinnedChild(t *testing.T) {
	a := rect("shapeA", 50, 50)
	a.X = some(0)
	sg := run(t, diagram(&Row{
		Base:     Base{ID: "row"},
		Spacing:  10,
		Elements: []Element{a, rect("shapeB", 50, 50)},
	}))

	assert.Equal(t, some(0), effective(t, sg, "shapeA").Left)
	assert.Equal(t, some(60), effective(t, sg, "shapeB").Left)
	assert.Equal(t, some(0), effective(t, sg, "shapeB").Top)

	_, owners, err := sg.IntrinsicBox("shapeA")
	require.NoError(t, err)
	assert.Equal(t, scenegraph.Owner("shapeA"), owners.Left)

	row := effective(t, sg, "row")
	assert.Equal(t, some(110), row.Width)
	assert.Equal(t, some(50), row.Height)
}

func TestRowAnchorsOnMiddleChild(t *testing.T) {
	b := rect("b", 20, 10)
	b.X = some(100)
	sg := run(t, diagram(&Row{
		Base:      Base{ID: "row"},
		Spacing:   5,
		Alignment: AlignBottom,
		Elements:  []Element{rect("a", 10, 30), b, rect("c", 10, 10)},
	}))

	assert.Equal(t, some(85), effective(t, sg, "a").Left)
	assert.Equal(t, some(100), effective(t, sg, "b").Left)
	assert.Equal(t, some(125), effective(t, sg, "c").Left)

	// Bottom edges line up at 0 since no child is pinned vertically.
	assert.Equal(t, some(-30), effective(t, sg, "a").Top)
	assert.Equal(t, some(-10), effective(t, sg, "c").Top)
}

func TestRowPosition(t *testing.T) {
	sg := run(t, diagram(&Row{
		Base:     Base{ID: "row"},
		X:        some(20),
		Y:        some(30),
		Spacing:  10,
		Elements: []Element{rect("a", 10, 10), rect("b", 10, 10)},
	}))
	row := effective(t, sg, "row")
	assert.Equal(t, some(20), row.Left)
	assert.Equal(t, some(30), row.Top)
	assert.Equal(t, some(30), row.Width)
}

func TestColCentered(t *testing.T) {
	sg := run(t, diagram(&Col{
		Base:      Base{ID: "col"},
		Spacing:   5,
		Alignment: AlignCenter,
		Elements:  []Element{rect("a", 10, 10), rect("b", 30, 20)},
	}))

	a, b := effective(t, sg, "a"), effective(t, sg, "b")
	assert.Equal(t, some(0), a.Top)
	assert.Equal(t, some(15), b.Top)
	assert.Equal(t, some(-5), a.Left)
	assert.Equal(t, some(-15), b.Left)
}

func TestAlignToPinnedChild(t *testing.T) {
	a := rect("a", 20, 20)
	a.X, a.Y = some(100), some(100)
	sg := run(t, diagram(&Align{
		Base:      Base{ID: "align"},
		Alignment: Center,
		Elements:  []Element{a, rect("b", 10, 10)},
	}))

	assert.Equal(t, some(100), effective(t, sg, "a").Left)
	b := effective(t, sg, "b")
	assert.Equal(t, some(105), b.Left)
	assert.Equal(t, some(105), b.Top)
}

func TestAlignThroughReference(t *testing.T) {
	a := rect("a", 40, 40)
	a.X, a.Y = some(0), some(0)
	label := &Text{Base: Base{ID: "label"}, Content: "hello"}
	sg := run(t, diagram(
		&Group{Base: Base{ID: "shapes"}, X: some(10), Y: some(10), Elements: []Element{a}},
		&Align{
			Base:      Base{ID: "align"},
			Alignment: CenterHorizontally,
			Elements:  []Element{&Ref{Base: Base{ID: "ra"}, To: "a"}, label},
		},
	))

	ra := effective(t, sg, "ra")
	assert.Equal(t, some(10), ra.Left)
	assert.Equal(t, some(40), ra.Width)

	w, _ := label.Size()
	l := effective(t, sg, "label")
	assert.InDelta(t, 30, l.Left.Or(0)+w/2, 1e-9)

	_, owners, err := sg.IntrinsicBox("a")
	require.NoError(t, err)
	assert.Equal(t, scenegraph.Owner("a"), owners.Left, "the aliased element keeps its owner")
}

func TestDistributeSpacing(t *testing.T) {
	sg := run(t, diagram(&Distribute{
		Base:      Base{ID: "dist"},
		Direction: Horizontal,
		Spacing:   some(10),
		Elements:  []Element{rect("a", 10, 5), rect("b", 20, 5), rect("c", 30, 5)},
	}))

	assert.Equal(t, some(0), effective(t, sg, "a").Left)
	assert.Equal(t, some(20), effective(t, sg, "b").Left)
	assert.Equal(t, some(50), effective(t, sg, "c").Left)
	assert.Equal(t, some(80), effective(t, sg, "dist").Width)
}

func TestDistributeTotal(t *testing.T) {
	sg := run(t, diagram(&Distribute{
		Base:      Base{ID: "dist"},
		Direction: Horizontal,
		Total:     some(100),
		Elements:  []Element{rect("a", 10, 5), rect("b", 20, 5), rect("c", 30, 5)},
	}))

	assert.Equal(t, some(0), effective(t, sg, "a").Left)
	assert.Equal(t, some(30), effective(t, sg, "b").Left)
	assert.Equal(t, some(70), effective(t, sg, "c").Left)
}

// spacer has a height but leaves its width to its container.
type spacer struct {
	Base
	h float64
}

func (s *spacer) Layout(c *Context) error {
	return c.SetOwn(scenegraph.Box{Height: some(s.h)}, scenegraph.Translation{})
}

func TestDistributeStretches(t *testing.T) {
	sg := run(t, diagram(&Distribute{
		Base:      Base{ID: "dist"},
		Direction: Horizontal,
		Spacing:   some(10),
		Total:     some(100),
		Elements:  []Element{rect("a", 20, 5), &spacer{Base: Base{ID: "s"}, h: 5}},
	}))

	s := effective(t, sg, "s")
	assert.Equal(t, some(70), s.Width)
	assert.Equal(t, some(30), s.Left)
}

func TestDistributeAroundFixed(t *testing.T) {
	b := rect("b", 10, 10)
	b.Y = some(50)
	sg := run(t, diagram(&Distribute{
		Base:      Base{ID: "dist"},
		Direction: Vertical,
		Spacing:   some(5),
		Elements:  []Element{rect("a", 10, 10), b, rect("c", 10, 10)},
	}))

	assert.Equal(t, some(35), effective(t, sg, "a").Top)
	assert.Equal(t, some(50), effective(t, sg, "b").Top)
	assert.Equal(t, some(65), effective(t, sg, "c").Top)
}

func TestDistributeNeedsOptions(t *testing.T) {
	sg := scenegraph.New(scenegraph.WithLogger(log.New(io.Discard)))
	tree, err := Mount(sg, diagram(&Distribute{
		Base:      Base{ID: "dist"},
		Direction: Vertical,
		Elements:  []Element{rect("a", 1, 1)},
	}))
	require.NoError(t, err)
	_, err = tree.Run(context.Background(), RunOptions{Logger: log.New(io.Discard)})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestMountAssignsIDs(t *testing.T) {
	r := &Rect{Width: 1, Height: 1}
	sg := scenegraph.New(scenegraph.WithLogger(log.New(io.Discard)))
	tree, err := Mount(sg, diagram(r))
	require.NoError(t, err)
	assert.NotEmpty(t, r.Key())
	el, ok := tree.Lookup(r.Key())
	require.True(t, ok)
	assert.Same(t, r, el)
	assert.Equal(t, 2, tree.Len())
	assert.Equal(t, []string{r.Key()}, sg.Children("diagram"))
}

func TestMountDuplicateID(t *testing.T) {
	sg := scenegraph.New(scenegraph.WithLogger(log.New(io.Discard)))
	_, err := Mount(sg, diagram(rect("a", 1, 1), rect("a", 2, 2)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDuplicateID))
}

// flipper never settles: it toggles its width on every pass.
type flipper struct {
	Base
	n int
}

func (f *flipper) Layout(c *Context) error {
	f.n++
	return c.SetOwn(scenegraph.Box{Width: some(float64(f.n % 2))}, scenegraph.Translation{})
}

func TestRunNonConvergent(t *testing.T) {
	sg := scenegraph.New(scenegraph.WithLogger(log.New(io.Discard)))
	tree, err := Mount(sg, &flipper{Base: Base{ID: "f"}})
	require.NoError(t, err)

	stats, err := tree.Run(context.Background(), RunOptions{MaxPasses: 4, Logger: log.New(io.Discard)})
	assert.True(t, errors.Is(err, errors.ErrCodeNonConvergent))
	assert.Equal(t, 4, stats.Passes)
	assert.False(t, stats.Converged)
}

func TestRunCancelled(t *testing.T) {
	sg := scenegraph.New(scenegraph.WithLogger(log.New(io.Discard)))
	tree, err := Mount(sg, diagram(rect("a", 1, 1)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := tree.Run(ctx, RunOptions{Logger: log.New(io.Discard)})
	assert.True(t, errors.Is(err, errors.ErrCodeTimeout))
	assert.Zero(t, stats.Passes)
}

func TestRunCountsRejections(t *testing.T) {
	a := rect("a", 10, 10)
	a.X, a.Y = some(5), some(5)
	b := rect("b", 10, 10)
	b.X, b.Y = some(50), some(5)
	sg := run(t, diagram(&Distribute{
		Base:      Base{ID: "dist"},
		Direction: Horizontal,
		Spacing:   some(10),
		Elements:  []Element{a, b},
	}))

	// b is pinned too, so Distribute's attempts to move it are rejected.
	assert.Equal(t, some(50), effective(t, sg, "b").Left)
	assert.Positive(t, sg.Rejections())
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   string
		v    VerticalAlignment
		h    HorizontalAlignment
		fail bool
	}{
		{in: "topLeft", v: AlignTop, h: AlignLeft},
		{in: "center", v: AlignMiddle, h: AlignCenter},
		{in: "bottomRight", v: AlignBottom, h: AlignRight},
		{in: "centerVertically", v: AlignMiddle},
		{in: "right", h: AlignRight},
		{in: "diagonal", fail: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := ParseAlignment(tt.in)
			if tt.fail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			v, h := a.Split()
			assert.Equal(t, tt.v, v)
			assert.Equal(t, tt.h, h)
		})
	}
}
