package main

import (
	"testing"

	"github.com/df07/pathtracer/pkg/renderer"
)

func TestParseDebugMode(t *testing.T) {
	cases := map[string]renderer.DebugMode{
		"normal":      renderer.DebugNormal,
		"depth":       renderer.DebugDepth,
		"shading":     renderer.DebugShading,
		"unknown-tag": renderer.DebugNormal,
	}
	for input, want := range cases {
		if got := parseDebugMode(input); got != want {
			t.Errorf("parseDebugMode(%q) = %v, want %v", input, got, want)
		}
	}
}
