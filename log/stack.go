// stack.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// StackFrame is one entry of a captured call stack.
type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// StackFrames is a captured call stack, innermost frame first.
type StackFrames []StackFrame

// Callstack captures the current goroutine's call stack, skipping the
// frames inside this package. fr is reused if it has enough capacity.
func Callstack(fr StackFrames) StackFrames {
	var callers [16]uintptr
	n := runtime.Callers(3, callers[:]) // skip Callers, Callstack, and the logging method
	frames := runtime.CallersFrames(callers[:n])

	if cap(fr) < n {
		fr = make(StackFrames, n)
	} else {
		fr = fr[:n]
	}

	for i := 0; i < n; i++ {
		frame, more := frames.Next()
		fn := strings.TrimPrefix(frame.Function, "github.com/avsurv/astmops/")

		fr[i] = StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: fn,
		}
		if !more {
			fr = fr[:i+1]
			break
		}
	}

	return fr
}

// Strings formats the call stack as "file:line function" entries.
func (fr StackFrames) Strings() []string {
	s := make([]string, len(fr))
	for i, f := range fr {
		s[i] = fmt.Sprintf("%s:%d %s", f.File, f.Line, f.Function)
	}
	return s
}
