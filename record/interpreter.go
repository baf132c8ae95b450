// interpreter.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package record

import (
	"strconv"
	"time"

	"github.com/avsurv/astmops/config"
	"github.com/avsurv/astmops/log"
)

// Interpreter implements stage A: it classifies each Input, validates it
// against its RecordType's minimum-fields schema, and normalizes its
// timestamp (tracking midnight rollover independently per RecordType).
type Interpreter struct {
	cfg config.Config
	log *log.Logger

	smrSics, mlatSics, adsbSics map[uint8]bool

	rollover map[RecordType]*rolloverState
}

// NewInterpreter returns an Interpreter configured with cfg's sic-sets
// and processing mode.
func NewInterpreter(cfg config.Config, logger *log.Logger) *Interpreter {
	toSet := func(sics []uint8) map[uint8]bool {
		m := make(map[uint8]bool, len(sics))
		for _, s := range sics {
			m[s] = true
		}
		return m
	}
	return &Interpreter{
		cfg:       cfg,
		log:       logger,
		smrSics:   toSet(cfg.SmrSics),
		mlatSics:  toSet(cfg.MlatSics),
		adsbSics:  toSet(cfg.AdsbSics),
		rollover:  map[RecordType]*rolloverState{},
	}
}

// Interpret runs stage A on one input record. It returns (nil, false) if
// the record is dropped; every drop path is logged with the record's
// CRC/id, per spec.md's failure-mode note.
func (p *Interpreter) Interpret(in Input) (*Record, bool) {
	// 1. Category gate.
	if in.Category != 10 && in.Category != 21 {
		p.log.Debugf("dropping record %#x: unsupported category %d", in.CRC, in.Category)
		return nil, false
	}

	// 2. Classification.
	sys, msg, ok := p.classify(in)
	if !ok {
		return nil, false
	}
	rt := RecordType{System: sys, Message: msg}

	// 3. Minimum-fields schema.
	if s, hasSchema := schemaFor(rt); hasSchema && !s.satisfiedBy(in.Fields) {
		p.log.Debugf("dropping record %#x: fails %v schema", in.CRC, rt)
		return nil, false
	}

	// 4. Timestamp normalization.
	base, ok := p.baseTimestamp(in)
	if !ok {
		p.log.Debugf("dropping record %#x: invalid timestamp", in.CRC)
		return nil, false
	}
	st, ok := p.rollover[rt]
	if !ok {
		st = &rolloverState{}
		p.rollover[rt] = st
	}
	ts, outcome := st.normalize(base)
	if outcome.RolloverDetected {
		p.log.Infof("record %#x: detected midnight TOD rollover for %v", in.CRC, rt)
	}
	if outcome.BackjumpWarning {
		p.log.Warnf("record %#x: found backjump for %v", in.CRC, rt)
	}

	// 5. DGPS mode drops Adsb target reports (replaced by the DGPS
	// reference track supplied out-of-band).
	if p.cfg.ProcessingMode == config.Dgps && rt == (RecordType{System: Adsb, Message: TargetReport}) {
		p.log.Debugf("dropping record %#x: Adsb target report in Dgps mode", in.CRC)
		return nil, false
	}

	return &Record{
		Category:   in.Category,
		DataSource: in.DataSource,
		CRC:        in.CRC,
		Fields:     in.Fields,
		Type:       rt,
		Timestamp:  ts,
	}, true
}

func (p *Interpreter) systemTypeFromSic(sic uint8) SystemType {
	switch {
	case p.smrSics[sic]:
		return Smr
	case p.mlatSics[sic]:
		return Mlat
	case p.adsbSics[sic]:
		return Adsb
	default:
		return UnknownSystem
	}
}

func (p *Interpreter) classify(in Input) (SystemType, MessageType, bool) {
	if in.Category == 21 {
		if !p.adsbSics[in.DataSource.Sic] {
			p.log.Debugf("dropping record %#x: cat21 sic %d not in adsb_sics", in.CRC, in.DataSource.Sic)
			return UnknownSystem, UnknownMessage, false
		}
		return Adsb, TargetReport, true
	}

	// Category 10.
	sicSys := p.systemTypeFromSic(in.DataSource.Sic)
	if sicSys == UnknownSystem {
		p.log.Debugf("dropping record %#x: sic %d not in any configured sic-set", in.CRC, in.DataSource.Sic)
		return UnknownSystem, UnknownMessage, false
	}

	msgTyp, ok := in.Fields.Get("I000", "MsgTyp")
	if !ok {
		p.log.Debugf("dropping record %#x: missing I000/MsgTyp", in.CRC)
		return UnknownSystem, UnknownMessage, false
	}

	switch msgTyp {
	case "1":
		typ, ok := in.Fields.Get("I020", "TYP")
		if ok {
			switch {
			case sicSys == Mlat && typ != "1":
				p.log.Debugf("dropping record %#x: TYP=%s disagrees with Mlat sic", in.CRC, typ)
				return UnknownSystem, UnknownMessage, false
			case sicSys == Smr && typ != "3":
				p.log.Debugf("dropping record %#x: TYP=%s disagrees with Smr sic", in.CRC, typ)
				return UnknownSystem, UnknownMessage, false
			}
		}
		return sicSys, TargetReport, true
	case "2", "3", "4":
		return sicSys, ServiceMessage, true
	default:
		p.log.Debugf("dropping record %#x: unrecognized MsgTyp %s", in.CRC, msgTyp)
		return UnknownSystem, UnknownMessage, false
	}
}

// baseTimestamp assembles session_date + time-of-day into an absolute
// UTC datetime, before rollover compensation: CAT10 reads I140/ToD
// seconds; CAT21 cascades I071 -> I073 (+I074 high-precision correction)
// -> I077.
func (p *Interpreter) baseTimestamp(in Input) (time.Time, bool) {
	var todSeconds float64
	var ok bool

	if in.Category == 10 {
		todSeconds, ok = floatField(in.Fields, "I140", "ToD")
	} else {
		// CAT21 cascade: I071 first, then I073 (+I074 high-precision
		// correction), then I077.
		if todSeconds, ok = floatField(in.Fields, "I071", "ToD"); !ok {
			if todSeconds, ok = floatField(in.Fields, "I073", "ToD"); ok {
				if corr, hasCorr := floatField(in.Fields, "I074", "FSI"); hasCorr {
					todSeconds += corr
				}
			} else {
				todSeconds, ok = floatField(in.Fields, "I077", "ToD")
			}
		}
	}
	if !ok {
		return time.Time{}, false
	}
	if todSeconds < 0 || todSeconds >= 24*3600 {
		return time.Time{}, false
	}

	d := p.cfg.SessionDate
	base := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(todSeconds * float64(time.Second))), true
}

func floatField(f interface{ Get(string, string) (string, bool) }, item, element string) (float64, bool) {
	s, ok := f.Get(item, element)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
