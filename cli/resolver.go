package cli

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ligature/ligature"
	"github.com/ardnew/ligature/lig"
	"github.com/ardnew/ligature/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag defaults
// from a document of ligature statements.
//
// Every statement whose entity is <name> sets the flag named by its
// attribute; the context is ignored. Identifiers cannot contain hyphens, so
// each underscore in an attribute name stands for a hyphen in the flag name:
//
//	<config> @<log_level> "debug" <cli>
//	<config> @<log_pretty> "false" <cli>
//	<config> @<max_depth> 500 <cli>
//
// A later statement for the same flag replaces an earlier one. A document
// that fails to parse yields an empty configuration, so a broken config
// file never prevents the command from running. Command-line flags override
// configured values.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		statements, err := lig.ReadReader(ctx, r)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration",
				slog.String("entity", name),
				slog.Any("error", err))

			return config{}, nil
		}

		return makeConfig(name, statements), nil
	}
}

// config implements [kong.Resolver] for ligature configuration documents.
type config map[string]any

func makeConfig(name string, statements []ligature.Statement) config {
	c := config{}

	for _, s := range statements {
		if s.Entity.Identifier().Name() != name {
			continue
		}

		key := strings.ReplaceAll(s.Attribute.Identifier().Name(), "_", "-")
		c[key] = flagValue(s.Value)
	}

	return c
}

// flagValue converts a statement value to the string form kong parses flag
// values from.
func flagValue(v ligature.Value) string {
	switch n := lig.ToNative(v).(type) {
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	case *big.Int:
		return n.String()
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return v.String()
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil //nolint:nilnil
}
