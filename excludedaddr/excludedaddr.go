// excludedaddr.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package excludedaddr reads the excluded mode-S address list: one
// hex-encoded address per line, blank lines and "#"-prefixed comments
// ignored.
package excludedaddr

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load reads an excluded-address set from path. An empty path is not an
// error: it returns an empty set, since the file is optional configuration.
// A path that cannot be opened returns the open error.
func Load(path string) (map[uint32]bool, error) {
	if path == "" {
		return map[uint32]bool{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses an excluded-address set from r.
func Read(r io.Reader) (map[uint32]bool, error) {
	set := map[uint32]bool{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addr, err := strconv.ParseUint(strings.TrimPrefix(line, "0x"), 16, 32)
		if err != nil {
			continue
		}
		set[uint32(addr)] = true
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
