package lig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ligature/ligature"
)

// FormatJSON writes statements as a JSON array of objects to the writer.
func FormatJSON(
	_ context.Context,
	w io.Writer,
	statements []ligature.Statement,
	indent int,
) error {
	var (
		jsonData []byte
		err      error
	)

	native := StatementsToMaps(statements)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(native, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(native)
	}

	if err != nil {
		return ligature.WrapError(err)
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes statements as a YAML sequence to the writer.
// An indent of zero selects flow style.
func FormatYAML(
	ctx context.Context,
	w io.Writer,
	statements []ligature.Statement,
	indent int,
) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(
		ctx,
		StatementsToMaps(statements),
		opts...)
	if err != nil {
		return ligature.WrapError(err)
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
