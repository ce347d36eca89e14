package compiler

import (
	"fmt"

	"github.com/aretw0/morph/internal/dto"
	"github.com/aretw0/morph/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*dto.Document, error) {
	var doc dto.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Encode renders doc as YAML.
func Encode(doc *dto.Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Load parses and compiles data in one step.
func Load(data []byte) (*Program, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}
