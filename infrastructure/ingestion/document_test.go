package ingestion

import (
	"strings"
	"testing"

	domainservices "clusterview-backend/domain/services"
	pkgerrors "clusterview-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
	"nodes": [
		{"id": "a", "label": "Deploy checklist"},
		{"id": "b", "label": "Beta", "group": "Custom"},
		{"id": "c", "label": "Notes", "text": "database migration plan"}
	],
	"edges": [
		{"id": "e1", "source": "a", "target": "b", "weight": 0.8},
		{"source": "b", "target": "ghost", "weight": 0.2}
	]
}`

func testClassifier() domainservices.GroupClassifier {
	return domainservices.NewKeywordClassifier([]domainservices.KeywordRule{
		{Group: "Infrastructure", Keywords: []string{"deploy"}},
		{Group: "Data", Keywords: []string{"database"}},
	}, "")
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(sampleDocument))

	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 3)
	assert.Len(t, doc.Edges, 2)
}

func TestParseDocument_MalformedJSON(t *testing.T) {
	_, err := ParseDocument(strings.NewReader(`{"nodes": [`))

	require.Error(t, err)
	assert.True(t, pkgerrors.IsInternal(err))
}

func TestParseDocument_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty node list", body: `{"nodes": [], "edges": []}`},
		{name: "node without label", body: `{"nodes": [{"id": "a"}]}`},
		{name: "edge without target", body: `{"nodes": [{"id": "a", "label": "A"}], "edges": [{"source": "a", "weight": 0.5}]}`},
		{name: "edge weight above one", body: `{"nodes": [{"id": "a", "label": "A"}], "edges": [{"source": "a", "target": "a", "weight": 1.5}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}
}

func TestDocument_ToDomain(t *testing.T) {
	// Arrange
	doc, err := ParseDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	// Act
	nodes, edges, err := doc.ToDomain(testClassifier())

	// Assert: explicit group wins, otherwise the classifier decides, and
	// dangling edges survive ingestion untouched.
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "Infrastructure", nodes[0].Group())
	assert.Equal(t, "Custom", nodes[1].Group())
	assert.Equal(t, "Data", nodes[2].Group())

	require.Len(t, edges, 2)
	assert.Equal(t, "e1", edges[0].ID())
	assert.Equal(t, "ghost", edges[1].Target().String())
}

func TestDocument_ToDomain_UnmatchedLabelsFallBack(t *testing.T) {
	doc := &Document{Nodes: []DocumentNode{{ID: "x", Label: "nothing special"}}}

	nodes, _, err := doc.ToDomain(testClassifier())

	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, domainservices.DefaultGroup, nodes[0].Group())
}
