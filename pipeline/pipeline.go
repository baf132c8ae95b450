// pipeline.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package pipeline wires the six pipeline stages (spec.md §2) into the
// single-threaded, bounded-memory, one-pass batch run cmd/astmops
// drives: Record Interpreter -> Target-Report Extractor -> Aerodrome
// Locator -> Track Builder -> Track Associator -> Performance Evaluator.
package pipeline

import (
	"fmt"
	"io"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/associator"
	"github.com/avsurv/astmops/config"
	"github.com/avsurv/astmops/dgpsref"
	"github.com/avsurv/astmops/log"
	"github.com/avsurv/astmops/mathutil"
	"github.com/avsurv/astmops/perf"
	"github.com/avsurv/astmops/record"
	"github.com/avsurv/astmops/recordsource"
	"github.com/avsurv/astmops/result"
	"github.com/avsurv/astmops/targetreport"
	"github.com/avsurv/astmops/track"
)

// lruLocatorCacheSize bounds the aerodrome locator's recent-lookup cache;
// chosen generously relative to a session's distinct (position, altitude,
// on_ground) keys without unbounded growth (spec.md §5's "memory is
// bounded by the input size").
const lruLocatorCacheSize = 16384

// Run executes stages A-F over the decoded record stream at recordsPath,
// using cfg and ad (already loaded by the caller — see cmd/astmops),
// and returns the folded result Document.
func Run(cfg config.Config, ad *aerodrome.Aerodrome, excluded map[uint32]bool, recordsPath string, logger *log.Logger) (*result.Document, error) {
	reader, err := recordsource.Open(recordsPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: opening record source: %w", err)
	}
	defer reader.Close()

	interp := record.NewInterpreter(cfg, logger)
	extractor := targetreport.NewExtractor(ad.ARP, excluded, logger)
	locator := aerodrome.NewLocator(ad, lruLocatorCacheSize)
	builder := track.NewBuilder()

	for {
		in, err := reader.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("pipeline: reading record: %w", err)
		}

		rec, ok := interp.Interpret(in)
		if !ok {
			continue
		}

		if cfg.ProcessingMode == config.Dgps && rec.Type.System == record.Adsb {
			// Dgps mode: ADS-B never supplies the reference track (the
			// DGPS file does), so ADS-B target reports are dropped here
			// rather than threaded through stages C/D for nothing.
			continue
		}

		tr, ok := extractor.Extract(rec)
		if !ok {
			continue
		}

		tr.NamedArea = locator.Locate(mathutil.Point2{tr.X, tr.Y}, tr.Z, tr.OnGround)

		builder.Add(*tr)
	}

	assoc := associator.New(logger)
	for _, t := range builder.All() {
		assoc.AddData(t)
	}

	if cfg.ProcessingMode == config.Dgps {
		refTrack, err := dgpsref.Load(cfg.DgpsReferenceFile, ad, cfg.DgpsTargetAddress, cfg.SessionDate)
		if err != nil {
			return nil, fmt.Errorf("pipeline: loading DGPS reference: %w", err)
		}
		assoc.AddData(refTrack)
	}

	sets := assoc.Run()

	eval := perf.New(cfg.RpaPicPercentile, cfg.PDPeriods, cfg.UpdateRateTargetHz, cfg.SilencePeriodSeconds, logger)
	for _, s := range sets {
		eval.AddData(s)
	}

	return result.Build(eval.Run()), nil
}
