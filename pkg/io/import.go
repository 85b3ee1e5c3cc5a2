package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bluefish/pkg/errors"
)

// Syntax is a document serialization.
type Syntax string

const (
	JSON Syntax = "json"
	YAML Syntax = "yaml"
	TOML Syntax = "toml"
)

// ParseSyntax accepts a syntax name ("yml" is an alias for YAML).
func ParseSyntax(s string) (Syntax, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document syntax %q (want json, yaml or toml)", s)
}

// SyntaxFromPath infers the syntax from a file extension.
func SyntaxFromPath(path string) (Syntax, error) {
	return ParseSyntax(filepath.Ext(path))
}

// SyntaxFromContentType infers the syntax from an HTTP Content-Type.
func SyntaxFromContentType(ct string) (Syntax, error) {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "content type %q", ct)
	}
	switch mt {
	case "application/json":
		return JSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return YAML, nil
	case "application/toml", "text/toml":
		return TOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}

// Parse decodes a document. The result is not validated; see [Build].
func Parse(data []byte, syntax Syntax) (*Document, error) {
	var doc Document
	var err error
	switch syntax {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case TOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &doc)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %q", undecoded[0].String())
			}
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document syntax %q", syntax)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s document", syntax)
	}
	return &doc, nil
}

// Read decodes a document from r. Read does not close r.
func Read(r io.Reader, syntax Syntax) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Parse(data, syntax)
}

// ImportFile reads the document at path, choosing the syntax by extension.
// It also returns the raw file contents, which callers use as a cache key.
func ImportFile(path string) (*Document, []byte, error) {
	syntax, err := SyntaxFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc, err := Parse(data, syntax)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, data, nil
}
