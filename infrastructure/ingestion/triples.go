package ingestion

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	pkgerrors "clusterview-backend/pkg/errors"
)

// ParseTriples reads the alternative raw input shape: the first
// non-empty line is a delimited label list, every following non-empty
// line is a "label_a<delim>label_b<delim>weight" triple. Node ids are
// the labels themselves. The result goes through the same Document
// validation as JSON input.
func ParseTriples(r io.Reader, delim string) (*Document, error) {
	if delim == "" {
		delim = ";"
	}

	scanner := bufio.NewScanner(r)

	var doc Document
	seenLabels := false
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if !seenLabels {
			for _, label := range strings.Split(text, delim) {
				label = strings.TrimSpace(label)
				if label == "" {
					continue
				}
				doc.Nodes = append(doc.Nodes, DocumentNode{ID: label, Label: label})
			}
			seenLabels = true
			continue
		}

		parts := strings.Split(text, delim)
		if len(parts) != 3 {
			return nil, pkgerrors.NewValidationf("line %d: expected label_a%slabel_b%sweight", line, delim, delim)
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return nil, pkgerrors.NewValidationf("line %d: weight %q is not a number", line, parts[2])
		}

		doc.Edges = append(doc.Edges, DocumentEdge{
			Source: strings.TrimSpace(parts[0]),
			Target: strings.TrimSpace(parts[1]),
			Weight: weight,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.NewInternal("read triples", err)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.NewValidation(err.Error()), "invalid document")
	}

	return &doc, nil
}
