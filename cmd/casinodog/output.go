package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mrfortune94/casinodog"
)

// printJSON writes body indented, or as-is if it cannot be indented.
func printJSON(w io.Writer, body []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Fprintln(w, string(body))
		return
	}
	fmt.Fprintln(w, buf.String())
}

// parseParams turns key=value arguments into query parameters.
func parseParams(args []string) (casinodog.Params, error) {
	params := make(casinodog.Params, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		params[k] = v
	}
	return params, nil
}
