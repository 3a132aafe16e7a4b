package main

import (
	"fmt"
	"strings"
)

// DebugOverlay accumulates lines of debug text for the on-screen HUD.
type DebugOverlay struct {
	lines []string
}

func (do *DebugOverlay) AddLine(format string, args ...interface{}) {
	do.lines = append(do.lines, fmt.Sprintf(format, args...))
}

func (do *DebugOverlay) Clear() {
	do.lines = do.lines[:0]
}

func (do *DebugOverlay) Text() string {
	return strings.Join(do.lines, "\n")
}
