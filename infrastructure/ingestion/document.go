// Package ingestion converts input documents into domain entities. All
// shape validation happens here, at the boundary: downstream code trusts
// the typed records it receives.
package ingestion

import (
	"encoding/json"
	"io"

	"clusterview-backend/domain/core/entities"
	"clusterview-backend/domain/core/valueobjects"
	domainservices "clusterview-backend/domain/services"
	pkgerrors "clusterview-backend/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Document is the JSON wire shape of an input document.
type Document struct {
	Nodes []DocumentNode `json:"nodes" validate:"required,min=1,dive"`
	Edges []DocumentEdge `json:"edges" validate:"dive"`
}

// DocumentNode carries a node's identity and the optional free text the
// classifier derives a group from when none is given explicitly.
type DocumentNode struct {
	ID    string `json:"id" validate:"required"`
	Label string `json:"label" validate:"required"`
	Group string `json:"group"`
	Text  string `json:"text"`
}

// DocumentEdge carries one weighted connection. The id is optional.
type DocumentEdge struct {
	ID     string  `json:"id"`
	Source string  `json:"source" validate:"required"`
	Target string  `json:"target" validate:"required"`
	Weight float64 `json:"weight" validate:"gte=0,lte=1"`
}

var validate = validator.New()

// ParseDocument decodes and validates a JSON document.
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, pkgerrors.NewInternal("decode document", err)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.NewValidation(err.Error()), "invalid document")
	}

	return &doc, nil
}

// ToDomain converts a parsed document into entities, assigning each node
// its group exactly once: the explicit group when present, otherwise
// whatever the classifier derives from label and free text. Edges
// referencing unknown node ids are kept; the clusterer drops them
// silently as a filtering rule, not an error.
func (d *Document) ToDomain(classifier domainservices.GroupClassifier) ([]*entities.Node, []*entities.Edge, error) {
	nodes := make([]*entities.Node, 0, len(d.Nodes))
	for _, raw := range d.Nodes {
		id, err := valueobjects.NewNodeID(raw.ID)
		if err != nil {
			return nil, nil, err
		}

		group := raw.Group
		if group == "" {
			group = classifier.Classify(raw.Label, raw.Text)
		}

		node, err := entities.NewNode(id, raw.Label, group)
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, node)
	}

	edges := make([]*entities.Edge, 0, len(d.Edges))
	for _, raw := range d.Edges {
		source, err := valueobjects.NewNodeID(raw.Source)
		if err != nil {
			return nil, nil, err
		}
		target, err := valueobjects.NewNodeID(raw.Target)
		if err != nil {
			return nil, nil, err
		}

		edge, err := entities.NewEdge(raw.ID, source, target, raw.Weight)
		if err != nil {
			return nil, nil, err
		}
		edges = append(edges, edge)
	}

	return nodes, edges, nil
}
