package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// WriteSnapshot encodes a scenegraph snapshot as indented JSON.
func WriteSnapshot(snap scenegraph.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSnapshot writes a snapshot to a file.
func ExportSnapshot(snap scenegraph.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSnapshot(snap, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteDocument encodes doc in the given syntax. Reading the output back
// with [Parse] yields an equal document.
func WriteDocument(doc *Document, w io.Writer, syntax Syntax) error {
	var err error
	switch syntax {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	case TOML:
		err = toml.NewEncoder(w).Encode(doc)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown document syntax %q", syntax)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", syntax, err)
	}
	return nil
}
