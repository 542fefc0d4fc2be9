package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/oort/internal/ir"
)

func mustObject(t *testing.T, src string) ir.Object {
	t.Helper()
	v, err := ir.UnmarshalValue([]byte(src))
	require.NoError(t, err)
	obj, ok := v.(ir.Object)
	require.True(t, ok, "not an object: %s", src)
	return obj
}

func TestBuild_MergesSharedURI(t *testing.T) {
	tree := mustObject(t, `{
		"person": [
			{"$uri": "http://x/1", "name": "Ann"},
			{"$uri": "http://x/2", "knows": [{"$uri": "http://x/1", "age": 30}]}
		]
	}`)

	root := BuildGraph(tree, nil)

	people := root.List("person")
	require.Len(t, people, 2)
	ann := people[0].(*Resource)
	bob := people[1].(*Resource)
	known := bob.List("knows")[0].(*Resource)

	assert.Same(t, ann, known, "both positions must resolve to one resource")
	assert.Equal(t, ir.String("Ann"), ann.Field("name"))
	assert.Equal(t, ir.Int(30), ann.Field("age"))
}

func TestBuild_ProducesCycles(t *testing.T) {
	tree := mustObject(t, `{"$uri":"A","friend":{"$uri":"B","friend":{"$uri":"A"}}}`)

	a := BuildGraph(tree, nil)

	b := a.Resource("friend")
	require.NotNil(t, b)
	assert.Equal(t, "B", mustURI(t, b))
	assert.Same(t, a, b.Resource("friend"))
}

func TestBuild_ViaReferences(t *testing.T) {
	tree := mustObject(t, `{"$uri":"A","friend":{"$uri":"B","friend":{"$uri":"A"}}}`)

	a := BuildGraph(tree, nil)
	b := a.Resource("friend")

	require.NotNil(t, b.Via(ViaKey))
	assert.Equal(t, []*Resource{a}, b.Via(ViaKey)["friend"])
	assert.Equal(t, []*Resource{b}, a.Via(ViaKey)["friend"])
}

func TestBuild_RootViaIsRecorded(t *testing.T) {
	tree := mustObject(t, `{"item":[{"$uri":"http://x/i"}]}`)

	root := BuildGraph(tree, nil)
	item := root.List("item")[0].(*Resource)

	assert.Equal(t, []*Resource{root}, item.Via(ViaKey)["item"])
	assert.Nil(t, root.Via(ViaKey))
}

func TestBuild_BlankNodesAreSeparateNamespace(t *testing.T) {
	tree := mustObject(t, `{"x":[
		{"$uri":"n1","a":1},
		{"$id":"n1","b":2},
		{"$id":"n1","c":3}
	]}`)

	b := NewBuilder(nil)
	root := b.Build(tree)

	xs := root.List("x")
	require.Len(t, xs, 3)
	assert.NotSame(t, xs[0], xs[1])
	assert.Same(t, xs[1], xs[2])
	assert.Equal(t, 2, b.Index().Len())

	blank := xs[1].(*Resource)
	assert.Equal(t, ir.Int(2), blank.Field("b"))
	assert.Equal(t, ir.Int(3), blank.Field("c"))
}

func TestBuild_BlankIDMatchesWhenURIIsNew(t *testing.T) {
	tree := mustObject(t, `{"x":[
		{"$id":"b0","a":1},
		{"$id":"b0","$uri":"http://x/1","b":2}
	]}`)

	b := NewBuilder(nil)
	root := b.Build(tree)

	xs := root.List("x")
	require.Len(t, xs, 2)
	assert.Same(t, xs[0], xs[1])
	assert.Equal(t, 1, b.Index().Len())

	res := xs[0].(*Resource)
	assert.Equal(t, ir.Int(1), res.Field("a"))
	assert.Equal(t, ir.Int(2), res.Field("b"))
	assert.Equal(t, ir.String("http://x/1"), res.Field("$uri"))
}

func TestBuild_AnonymousNodesNeverMerge(t *testing.T) {
	tree := mustObject(t, `{"x":[{"a":1},{"a":1}]}`)

	b := NewBuilder(nil)
	root := b.Build(tree)

	xs := root.List("x")
	require.Len(t, xs, 2)
	assert.NotSame(t, xs[0], xs[1])
	assert.Equal(t, 0, b.Index().Len())
}

func TestBuild_LaterFieldsWin(t *testing.T) {
	tree := mustObject(t, `{"x":[{"$uri":"u","name":"first"},{"$uri":"u","name":"second"}]}`)

	root := BuildGraph(tree, nil)
	res := root.List("x")[0].(*Resource)

	assert.Equal(t, ir.String("second"), res.Field("name"))
}

func TestBuild_LiteralMappingsStayLiterals(t *testing.T) {
	tree := mustObject(t, `{"$uri":"u",
		"label":{"@en":"Item","@sv":"Sak"},
		"date":{"$value":"2024-01-01","$datatype":"http://www.w3.org/2001/XMLSchema#date"}
	}`)

	b := NewBuilder(nil)
	res := b.Build(tree)

	assert.Equal(t, 1, b.Index().Len())
	assert.IsType(t, ir.Object{}, res.Field("label"))
	assert.IsType(t, ir.Object{}, res.Field("date"))
}

func TestBuilder_ReuseAccumulatesIndex(t *testing.T) {
	b := NewBuilder(nil)

	first := b.Build(mustObject(t, `{"x":{"$uri":"u","a":1}}`))
	second := b.Build(mustObject(t, `{"x":{"$uri":"u","b":2}}`))

	assert.Same(t, first.Resource("x"), second.Resource("x"))
	assert.Equal(t, ir.Int(1), second.Resource("x").Field("a"))

	fresh := NewBuilder(nil).Build(mustObject(t, `{"x":{"$uri":"u","b":2}}`))
	_, has := fresh.Resource("x").Get("a")
	assert.False(t, has)
}

type recordingLens struct {
	BasicLens
	completed []*Resource
}

func (l *recordingLens) Complete(resources []*Resource) {
	l.completed = append(l.completed, resources...)
}

func TestBuild_CompleteSeesEveryIndexedResource(t *testing.T) {
	lens := &recordingLens{}
	tree := mustObject(t, `{"x":[{"$uri":"a"},{"$id":"b"},{"c":1},{"$uri":"a"}]}`)

	NewBuilder(lens).Build(tree)

	require.Len(t, lens.completed, 2)
	assert.Equal(t, "a", mustURI(t, lens.completed[0]))
	id, ok := lens.completed[1].ID()
	require.True(t, ok)
	assert.Equal(t, "b", id)
}

func mustURI(t *testing.T, r *Resource) string {
	t.Helper()
	uri, ok := r.URI()
	require.True(t, ok, "resource has no URI")
	return uri
}
