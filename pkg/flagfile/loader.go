package flagfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

// defaultFlag is the starting point every definition is decoded over, so
// a document that omits rollout_percentage rolls out to everyone.
func defaultFlag() feature.Flag {
	return feature.Flag{RolloutPercentage: 100}
}

// Load parses the flag configuration file at path into a registry. The
// document maps flag names to definitions under a top-level "features"
// key; files ending in .yaml or .yml are parsed as YAML, everything else
// as JSON. Registry order follows document order, so listings stay
// reproducible across loads.
//
// Load always returns a usable registry. On any failure the registry is
// empty and the error describes what went wrong, so a caller can install
// the result either way and have every flag read as disabled until a
// valid reload.
func Load(path string) (*feature.Registry, error) {
	reg := feature.NewRegistry()

	data, err := os.ReadFile(path)
	if err != nil {
		return reg, errors.Join(ErrReadFile, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = parseYAML(data, reg)
	default:
		err = parseJSON(data, reg)
	}
	if err != nil {
		return feature.NewRegistry(), err
	}
	return reg, nil
}

// parseJSON walks the document with a token decoder instead of
// unmarshalling into a map, because Go maps would lose the order the
// flags appear in.
func parseJSON(data []byte, reg *feature.Registry) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Join(ErrMalformedDocument, err)
		}
		key, _ := tok.(string)
		if key != "features" {
			// Skip unrelated top-level sections wholesale.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return errors.Join(ErrMalformedDocument, err)
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return errors.Join(ErrMalformedDocument, err)
			}
			name, _ := nameTok.(string)

			flag := defaultFlag()
			if err := dec.Decode(&flag); err != nil {
				return errors.Join(ErrMalformedDocument, err)
			}
			if err := reg.Set(name, flag); err != nil {
				return errors.Join(ErrMalformedDocument, err)
			}
		}
		if _, err := dec.Token(); err != nil { // closing }
			return errors.Join(ErrMalformedDocument, err)
		}
	}
	if _, err := dec.Token(); err != nil { // closing }
		return errors.Join(ErrMalformedDocument, err)
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return errors.Join(ErrMalformedDocument, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return errors.Join(ErrMalformedDocument,
			fmt.Errorf("expected %q, got %v", want, tok))
	}
	return nil
}

// parseYAML decodes through yaml.Node, whose mapping Content slice keeps
// the document's key order.
func parseYAML(data []byte, reg *feature.Registry) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Join(ErrMalformedDocument, err)
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return errors.Join(ErrMalformedDocument,
			errors.New("top-level document must be a mapping"))
	}

	features := mappingValue(root, "features")
	if features == nil {
		return nil
	}
	if features.Kind != yaml.MappingNode {
		return errors.Join(ErrMalformedDocument,
			errors.New("features section must be a mapping"))
	}

	for i := 0; i+1 < len(features.Content); i += 2 {
		name := features.Content[i].Value
		flag := defaultFlag()
		if err := features.Content[i+1].Decode(&flag); err != nil {
			return errors.Join(ErrMalformedDocument, err)
		}
		if err := reg.Set(name, flag); err != nil {
			return errors.Join(ErrMalformedDocument, err)
		}
	}
	return nil
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
