package lig

import (
	"bufio"
	"io"
	"strings"

	"github.com/ardnew/ligature/ligature"
)

// Write renders statements in the text format, one statement per line.
// The output reads back with [ReadDocument] to equal statements.
func Write(w io.Writer, statements []ligature.Statement) error {
	bw := bufio.NewWriter(w)

	for _, s := range statements {
		if _, err := bw.WriteString(s.String()); err != nil {
			return ligature.WrapError(err)
		}

		if err := bw.WriteByte('\n'); err != nil {
			return ligature.WrapError(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return ligature.WrapError(err)
	}

	return nil
}

// WriteString renders statements with [Write] and returns the result.
func WriteString(statements []ligature.Statement) string {
	var sb strings.Builder

	_ = Write(&sb, statements)

	return sb.String()
}
