// Package iojson writes JSON to the terminal for CLI consumers.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Error is the standard shape for errors emitted as JSON.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// WriteWith marshals obj as indented JSON to w. Marshal failures are
// reported to ew as a JSON error object so output stays machine-readable.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		msg, _ := json.Marshal(err.Error())
		_, werr := fmt.Fprintf(ew, `{"message":"marshal error","data":{"error":%s}}`+"\n", msg)
		return werr
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls [WriteWith] with os.Stdout and os.Stderr.
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}

// WriteError emits an Error object to os.Stderr.
func WriteError(msg string, data map[string]any) error {
	return WriteWith(os.Stderr, os.Stderr, Error{Message: msg, Data: data})
}
