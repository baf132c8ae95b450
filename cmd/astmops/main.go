// cmd/astmops/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/avsurv/astmops/config"
	"github.com/avsurv/astmops/excludedaddr"
	"github.com/avsurv/astmops/geosource"
	"github.com/avsurv/astmops/log"
	"github.com/avsurv/astmops/pipeline"
	"github.com/avsurv/astmops/result"
)

func main() {
	configPath := flag.String("config", "", "path to the run configuration JSON file")
	jsonOut := flag.Bool("json", false, "write the result document as JSON instead of plain text")
	outPath := flag.String("out", "", "result output file (default: standard output)")
	logLevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	logDir := flag.String("logdir", ".", "directory for the rotated astmops.log file")
	flag.Parse()

	if *configPath == "" || len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "usage: astmops -config <config.json> [-json] [-out <file>] <records-file>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	recordsPath := flag.Args()[0]

	logger := log.New(*logLevel, *logDir)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ad, err := geosource.Load(cfg.AerodromeFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cfg.AerodromeFile, err)
		os.Exit(1)
	}
	if !ad.HasAnyElements() {
		fmt.Fprintf(os.Stderr, "%s: aerodrome geometry has no polygons\n", cfg.AerodromeFile)
		os.Exit(1)
	}

	excluded, err := excludedaddr.Load(cfg.ExcludedAddressesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cfg.ExcludedAddressesFile, err)
		os.Exit(1)
	}

	doc, err := pipeline.Run(cfg, ad, excluded, recordsPath, logger)
	if err != nil {
		logger.Errorf("pipeline run failed: %v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if *jsonOut {
		err = result.WriteJSON(out, doc)
	} else {
		err = result.WriteText(out, doc)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "writing result: %v\n", err)
		os.Exit(1)
	}
}
