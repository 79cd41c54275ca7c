// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/z5labs/netcfg/config/key"
	"github.com/z5labs/netcfg/internal/try"

	"gopkg.in/yaml.v3"
)

// Yaml represents a Source where its underlying format is YAML.
type Yaml struct {
	r io.Reader
}

// FromYaml returns a source which will apply its config
// from YAML values parsed from the given io.Reader.
//
// Values are given the origin "<name>: <line>", where name is provided
// by the reader's Name method, e.g. [*os.File] or [*FileReader], and
// defaults to "yaml".
func FromYaml(r io.Reader) Yaml {
	return Yaml{r: r}
}

// InvalidYamlError occurs if the underlying io.Reader contains invalid YAML.
type InvalidYamlError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidYamlError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidYamlError) Unwrap() error {
	return e.cause
}

var errYamlRootNotMapping = errors.New("document root must be a mapping")

// Apply implements the Source interface.
func (src Yaml) Apply(store Store) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}

	var doc yaml.Node
	err = yaml.Unmarshal(b, &doc)
	if err != nil {
		return InvalidYamlError{cause: err}
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return InvalidYamlError{cause: errYamlRootNotMapping}
	}

	w := yamlWalker{
		store: store,
		name:  nameOf(src.r, "yaml"),
	}
	return w.walk(root, nil)
}

type yamlWalker struct {
	store Store
	name  string
}

func (w yamlWalker) walk(n *yaml.Node, chain key.Chain) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		v := resolveAlias(n.Content[i+1])

		next := append(chain[:len(chain):len(chain)], key.Name(k.Value))
		origin := Origin{Description: w.name, Line: k.Line}

		switch v.Kind {
		case yaml.MappingNode:
			err := w.store.Set(next, Value{Raw: map[string]any{}, Origin: origin})
			if err != nil {
				return err
			}
			err = w.walk(v, next)
			if err != nil {
				return err
			}
		case yaml.SequenceNode:
			var l []any
			err := v.Decode(&l)
			if err != nil {
				return InvalidYamlError{cause: err}
			}
			err = w.store.Set(next, Value{Raw: l, Origin: origin})
			if err != nil {
				return err
			}
		default:
			var x any
			err := v.Decode(&x)
			if err != nil {
				return InvalidYamlError{cause: err}
			}
			err = w.store.Set(next, Value{Raw: x, Origin: origin})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func nameOf(r io.Reader, def string) string {
	nr, ok := r.(interface{ Name() string })
	if !ok {
		return def
	}
	name := nr.Name()
	if len(name) == 0 {
		return def
	}
	return name
}
