// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package mcn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// Marshaller defines the Marshal method used to serialize published
// values for MarshalEcho.
type Marshaller interface {
	Marshal(interface{}) ([]byte, error)
}

// JSONMarshaller writes values as indented JSON.
var JSONMarshaller Marshaller = &jsonMarshaller{}

type jsonMarshaller struct{}

func (*jsonMarshaller) Marshal(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// YAMLMarshaller writes values as YAML documents.
var YAMLMarshaller Marshaller = &yamlMarshaller{}

type yamlMarshaller struct{}

func (*yamlMarshaller) Marshal(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

// MarshalEcho returns an EchoFunc that serializes each value with the
// marshaller and writes it followed by a newline.
func MarshalEcho(marshaller Marshaller) EchoFunc {
	return func(w io.Writer, data interface{}) error {
		out, err := marshaller.Marshal(data)
		if err != nil {
			return errors.Annotate(err, "marshalling")
		}
		if !bytes.HasSuffix(out, []byte("\n")) {
			out = append(out, '\n')
		}
		_, err = w.Write(out)
		return errors.Trace(err)
	}
}

// TextEcho writes the value with its field names on a single line.
func TextEcho(w io.Writer, data interface{}) error {
	_, err := fmt.Fprintf(w, "%+v\n", data)
	return errors.Trace(err)
}

// EchoFormat returns the EchoFunc for a named format: "json", "yaml" or
// "text". "none" and the empty string return a nil EchoFunc.
func EchoFormat(name string) (EchoFunc, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return nil, nil
	case "json":
		return MarshalEcho(JSONMarshaller), nil
	case "yaml":
		return MarshalEcho(YAMLMarshaller), nil
	case "text":
		return TextEcho, nil
	}
	return nil, errors.NotValidf("echo format %q", name)
}
