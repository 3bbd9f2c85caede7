// Package asm implements the two-pass MIPS assembler. It depends only
// on internal/isa (opcode/funct/register tables) and internal/word
// (the bit-word primitive).
package asm

import (
	"fmt"
	"strings"

	"mipssim/internal/isa"
	"mipssim/internal/word"
)

// undefinedRef is the undefined-reference record: for each reference
// to a label not yet resolved, the file line, the instruction index
// that needs patching, the label name, and whether the reference is
// PC-relative (branch) or absolute (jump).
type undefinedRef struct {
	fileLine   int
	instrIndex int
	label      string
	relative   bool
}

// lineRecord tracks everything pass 1 learns about a single source
// line, before the finalization pass patches in resolved label
// references and before the listing is rendered.
type lineRecord struct {
	fileLine   int
	source     string
	hasCode    bool
	instrIndex int
	word       word.Word
	err        string
}

// ListingLine is one rendered line of the human-readable assembly
// listing.
type ListingLine struct {
	Addr    word.Word
	Code    word.Word
	HasCode bool
	Text    string
}

// Result is the assembler's output contract: the machine-code image,
// the listing, the label table, whether any line errored, and the
// instruction indices marked by `exit`.
type Result struct {
	MachineCode []word.Word
	Listing     []ListingLine
	Labels      map[string]int
	HadErrors   bool
	ExitPoints  []int
}

// Assemble runs the full two-pass pipeline over source text.
func Assemble(source string) Result {
	lines := strings.Split(source, "\n")
	records := make([]lineRecord, len(lines))
	labels := make(map[string]int)
	var undefined []undefinedRef
	var exitPoints []int

	addrIndex := 0
	for i, raw := range lines {
		rec := &records[i]
		rec.fileLine = i + 1
		rec.source = raw

		body := stripComment(raw)

		if m := labelPattern.FindStringSubmatch(strings.TrimLeft(body, " \t")); m != nil {
			label := m[1]
			if _, dup := labels[label]; dup {
				rec.err = fmt.Sprintf("duplicate label definition %q", label)
				continue
			}
			labels[label] = addrIndex
			body = strings.TrimLeft(body, " \t")
			body = body[len(m[0]):]
		}

		body = strings.TrimSpace(body)
		if body == "" {
			continue
		}

		switch {
		case patternNop.MatchString(body):
			rec.hasCode, rec.instrIndex, rec.word = true, addrIndex, word.FromUint32(0)
			addrIndex++

		case patternExit.MatchString(body):
			exitPoints = append(exitPoints, addrIndex)

		case patternR1.MatchString(body):
			m := patternR1.FindStringSubmatch(body)
			w, err := assembleR1(m)
			finishEncode(rec, &addrIndex, w, err)

		case patternR2.MatchString(body):
			m := patternR2.FindStringSubmatch(body)
			w, err := assembleR2(m)
			finishEncode(rec, &addrIndex, w, err)

		case patternI1.MatchString(body):
			m := patternI1.FindStringSubmatch(body)
			w, err := assembleI1(m)
			finishEncode(rec, &addrIndex, w, err)

		case patternI2.MatchString(body):
			m := patternI2.FindStringSubmatch(body)
			w, err := assembleBeq(m, addrIndex, &undefined, rec.fileLine)
			finishEncode(rec, &addrIndex, w, err)

		case patternI3.MatchString(body):
			m := patternI3.FindStringSubmatch(body)
			w, err := assembleI3(m)
			finishEncode(rec, &addrIndex, w, err)

		case patternJ1.MatchString(body):
			m := patternJ1.FindStringSubmatch(body)
			w := assembleJ(m, addrIndex, &undefined, rec.fileLine)
			finishEncode(rec, &addrIndex, w, nil)

		case patternJ2.MatchString(body):
			m := patternJ2.FindStringSubmatch(body)
			w, err := assembleJr(m)
			finishEncode(rec, &addrIndex, w, err)

		default:
			rec.err = fmt.Sprintf("unrecognized instruction %q", body)
		}
	}

	hadErrors := resolveReferences(records, labels, undefined)

	result := Result{
		Labels:     labels,
		ExitPoints: exitPoints,
	}
	for i := range records {
		rec := &records[i]
		if rec.err != "" {
			hadErrors = true
		}
		if rec.hasCode {
			result.MachineCode = append(result.MachineCode, rec.word)
		}
		result.Listing = append(result.Listing, renderListingLine(rec))
	}
	result.HadErrors = hadErrors

	return result
}

func finishEncode(rec *lineRecord, addrIndex *int, w word.Word, err error) {
	if err != nil {
		rec.err = err.Error()
		return
	}
	rec.hasCode = true
	rec.instrIndex = *addrIndex
	rec.word = w
	*addrIndex++
}

func assembleR1(m []string) (word.Word, error) {
	mnem, rdTok, rsTok, rtTok := m[1], m[2], m[3], m[4]
	rd, err := register(rdTok)
	if err != nil {
		return 0, err
	}
	rs, err := register(rsTok)
	if err != nil {
		return 0, err
	}
	rt, err := register(rtTok)
	if err != nil {
		return 0, err
	}
	return encodeR(rs, rt, rd, 0, isa.MnemonicFunct[mnem]), nil
}

func assembleR2(m []string) (word.Word, error) {
	mnem, rdTok, rtTok, shTok := m[1], m[2], m[3], m[4]
	rd, err := register(rdTok)
	if err != nil {
		return 0, err
	}
	rt, err := register(rtTok)
	if err != nil {
		return 0, err
	}
	sh, err := immediate(shTok)
	if err != nil {
		return 0, err
	}
	if err := checkShamt(sh); err != nil {
		return 0, err
	}
	return encodeR(0, rt, rd, int(sh), isa.MnemonicFunct[mnem]), nil
}

func assembleI1(m []string) (word.Word, error) {
	mnem, rtTok, rsTok, immTok := m[1], m[2], m[3], m[4]
	rt, err := register(rtTok)
	if err != nil {
		return 0, err
	}
	rs, err := register(rsTok)
	if err != nil {
		return 0, err
	}
	v, err := immediate(immTok)
	if err != nil {
		return 0, err
	}
	if err := checkArithImmediate(v); err != nil {
		return 0, err
	}
	return encodeI(isa.MnemonicOpcode[mnem], rs, rt, uint32(v)&0xFFFF), nil
}

func assembleI3(m []string) (word.Word, error) {
	mnem, rtTok, offTok, rsTok := m[1], m[2], m[3], m[4]
	rt, err := register(rtTok)
	if err != nil {
		return 0, err
	}
	rs, err := register(rsTok)
	if err != nil {
		return 0, err
	}
	v, err := immediate(offTok)
	if err != nil {
		return 0, err
	}
	if err := checkArithImmediate(v); err != nil {
		return 0, err
	}
	// lw/sw offset is computed as imm & 0xFFFF.
	return encodeI(isa.MnemonicOpcode[mnem], rs, rt, uint32(v)&0xFFFF), nil
}

func assembleJr(m []string) (word.Word, error) {
	rsTok := m[2]
	rs, err := register(rsTok)
	if err != nil {
		return 0, err
	}
	return encodeR(rs, 0, 0, 0, isa.FunctJr), nil
}

// assembleBeq always defers to the finalization pass (
// Open Question resolution #2: unify on the ahead-of-target offset
// form, computed once, in one place).
func assembleBeq(m []string, addrIndex int, undefined *[]undefinedRef, fileLine int) (word.Word, error) {
	rsTok, rtTok, label := m[2], m[3], m[4]
	rs, err := register(rsTok)
	if err != nil {
		return 0, err
	}
	rt, err := register(rtTok)
	if err != nil {
		return 0, err
	}
	*undefined = append(*undefined, undefinedRef{
		fileLine:   fileLine,
		instrIndex: addrIndex,
		label:      label,
		relative:   true,
	})
	return encodeI(isa.OpBeq, rs, rt, 0), nil
}

func assembleJ(m []string, addrIndex int, undefined *[]undefinedRef, fileLine int) word.Word {
	label := m[2]
	*undefined = append(*undefined, undefinedRef{
		fileLine:   fileLine,
		instrIndex: addrIndex,
		label:      label,
		relative:   false,
	})
	return encodeJ(isa.OpJ, 0)
}

// resolveReferences implements finalization pass. It
// returns true if any reference failed to resolve or exceeded its
// field's range.
func resolveReferences(records []lineRecord, labels map[string]int, undefined []undefinedRef) bool {
	hadErrors := false
	for _, ref := range undefined {
		target, ok := labels[ref.label]
		if !ok {
			setErr(records, ref.instrIndex, fmt.Sprintf("undefined label %q", ref.label))
			hadErrors = true
			continue
		}

		rec := findRecordByInstrIndex(records, ref.instrIndex)
		if rec == nil {
			continue
		}

		if ref.relative {
			offset := target - ref.instrIndex - 1
			if offset > 32767 || offset < -32767 {
				rec.err = fmt.Sprintf("branch distance %d exceeds 16-bit signed range", offset)
				hadErrors = true
				continue
			}
			rec.word = rec.word.Or(word.FromUint32(uint32(offset) & 0xFFFF))
		} else {
			rec.word = rec.word.Or(word.FromUint32(uint32(target) & 0x03FFFFFF))
		}
	}
	return hadErrors
}

func findRecordByInstrIndex(records []lineRecord, idx int) *lineRecord {
	for i := range records {
		if records[i].hasCode && records[i].instrIndex == idx {
			return &records[i]
		}
	}
	return nil
}

func setErr(records []lineRecord, instrIndex int, msg string) {
	if rec := findRecordByInstrIndex(records, instrIndex); rec != nil {
		rec.err = msg
	}
}

func renderListingLine(rec *lineRecord) ListingLine {
	text := rec.source
	if rec.err != "" {
		text = fmt.Sprintf("%s <-- Error: %s", rec.source, rec.err)
	}
	return ListingLine{
		Addr:    word.FromUint32(uint32(rec.instrIndex * 4)),
		Code:    rec.word,
		HasCode: rec.hasCode,
		Text:    text,
	}
}
