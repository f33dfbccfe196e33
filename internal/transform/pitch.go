// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package transform

import (
	"strings"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

// pitchTag is the CST tag for ast.KindPitch, cached once; transform code
// reads CST children by tag the same way internal/cst's own toAst does.
var (
	pitchTag = cst.Tag(ast.KindPitch)
	rhythmTag = cst.Tag(ast.KindRhythm)
	noteTag   = cst.Tag(ast.KindNote)
	chordTag  = cst.Tag(ast.KindChord)
)

// noteSemitone maps an uppercase natural letter to its semitone offset
// from C, the chromatic table ako-backing-tracks' theory.NoteToMidi
// encodes as a string-keyed map; this package needs the letter->offset
// direction keyed by the single ABC note-letter byte instead of a note
// name string, so the table is reshaped accordingly rather than reusing
// NoteToMidi's signature directly.
var noteSemitone = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

var letterOrder = "CDEFGAB"

func letterIndex(upper byte) int {
	return strings.IndexByte(letterOrder, upper)
}

func accidentalSemitone(acc string) int {
	switch acc {
	case "^":
		return 1
	case "^^":
		return 2
	case "_":
		return -1
	case "__":
		return -2
	default: // "" or "="
		return 0
	}
}

func isFlatAccidental(acc string) bool { return strings.HasPrefix(acc, "_") }

// pitchComponents is the decomposed form of a Pitch CST node's three
// optional/mandatory token children.
type pitchComponents struct {
	Accidental string // "", "^", "^^", "_", "__", "="
	LetterUp   byte   // always the uppercase natural letter, e.g. 'C'
	Lower      bool   // true when the source letter token was lowercase
	OctaveMark int    // net octave shift encoded by '/,' runs; +1 per '\'', -1 per ','
}

// readPitch decomposes a CST Pitch node's children. p must be tagged
// ast.KindPitch (internal/cst's FromAST shape: optional Accidental leaf,
// mandatory Letter leaf, optional Octave leaf).
func readPitch(p *cst.Node) pitchComponents {
	var out pitchComponents
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if !c.IsLeaf() || c.Token == nil {
			continue
		}
		switch c.Token.Kind {
		case token.ACCIDENTAL:
			out.Accidental = c.Token.Lexeme
		case token.NOTE_LETTER:
			l := c.Token.Lexeme
			if len(l) == 1 {
				ch := l[0]
				out.Lower = ch >= 'a' && ch <= 'z'
				if out.Lower {
					out.LetterUp = ch - ('a' - 'A')
				} else {
					out.LetterUp = ch
				}
			}
		case token.OCTAVE:
			for i := 0; i < len(c.Token.Lexeme); i++ {
				if c.Token.Lexeme[i] == '\'' {
					out.OctaveMark++
				} else if c.Token.Lexeme[i] == ',' {
					out.OctaveMark--
				}
			}
		}
	}
	return out
}

// octaveNumber returns the pitch's absolute "scientific" octave (uppercase
// letter with no marks == 4, lowercase with no marks == 5, per spec.md
// §4.2's AbsolutePitch convention carried into the tune-body Pitch rule).
func (pc pitchComponents) octaveNumber() int {
	base := 4
	if pc.Lower {
		base = 5
	}
	return base + pc.OctaveMark
}

// midi converts pc to an abstract chromatic MIDI number with C4 == 60
// (spec.md §4.5 "transpose... C4 = 60").
func (pc pitchComponents) midi() int {
	return 12*(pc.octaveNumber()+1) + noteSemitone[pc.LetterUp] + accidentalSemitone(pc.Accidental)
}

// fromOctaveNumber rebuilds the Lower/OctaveMark split from an absolute
// octave number, preferring the representation with the fewest marks:
// octave >= 5 uses the lowercase letter plus (octave-5) apostrophes,
// octave <= 4 uses the uppercase letter plus (4-octave) commas.
func fromOctaveNumber(octave int) (lower bool, mark int) {
	if octave >= 5 {
		return true, octave - 5
	}
	return false, 4 - octave
}

type pcCandidate struct {
	letter byte
	acc    string
}

// naturalsByPC maps a non-natural pitch class to its sharp-of-lower-
// natural and flat-of-upper-natural spellings.
var naturalsByPC = map[int][2]pcCandidate{
	1:  {{'C', "^"}, {'D', "_"}},
	3:  {{'D', "^"}, {'E', "_"}},
	6:  {{'F', "^"}, {'G', "_"}},
	8:  {{'G', "^"}, {'A', "_"}},
	10: {{'A', "^"}, {'B', "_"}},
}

// midiToPitch is the inverse of midi(): it picks the natural letter with
// the fewest accidentals/octave marks, preferring a flat spelling when
// preferFlat is set (spec.md §4.5 "preferring the natural letter with
// minimal octave marks, preserving an existing accidental if compatible").
func midiToPitch(midi int, preferFlat bool) pitchComponents {
	pc := ((midi % 12) + 12) % 12
	octave := midi/12 - 1

	var letter byte
	var acc string
	switch pc {
	case 0:
		letter, acc = 'C', ""
	case 2:
		letter, acc = 'D', ""
	case 4:
		letter, acc = 'E', ""
	case 5:
		letter, acc = 'F', ""
	case 7:
		letter, acc = 'G', ""
	case 9:
		letter, acc = 'A', ""
	case 11:
		letter, acc = 'B', ""
	default:
		cands := naturalsByPC[pc]
		chosen := cands[0]
		if preferFlat {
			chosen = cands[1]
		}
		letter, acc = chosen.letter, chosen.acc
	}
	lower, mark := fromOctaveNumber(octave)
	return pitchComponents{Accidental: acc, LetterUp: letter, Lower: lower, OctaveMark: mark}
}

// PitchMIDI returns note's chromatic MIDI value (C4 == 60), and whether
// note had a Pitch child to read at all — exported so internal/format can
// order a chord's notes without duplicating the pitch table.
func PitchMIDI(note *cst.Node) (midi int, ok bool) {
	pitchNode := cst.FindChildByTag(note, pitchTag)
	if pitchNode == nil {
		return 0, false
	}
	return readPitch(pitchNode).midi(), true
}

// buildPitchNode materializes pc as a fresh CST Pitch node, allocating new
// token/node ids from ctx.
func buildPitchNode(ctx *token.Context, pc pitchComponents) *cst.Node {
	out := cst.NewInterior(ctx.NewID(), ast.KindPitch)
	if pc.Accidental != "" {
		out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.ACCIDENTAL, pc.Accidental)))
	}
	letter := pc.LetterUp
	if pc.Lower {
		letter = letter + ('a' - 'A')
	}
	out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.NOTE_LETTER, string(letter))))
	if pc.OctaveMark != 0 {
		mark := byte('\'')
		n := pc.OctaveMark
		if n < 0 {
			mark = ','
			n = -n
		}
		out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.OCTAVE, strings.Repeat(string(mark), n))))
	}
	return out
}

// newTok builds a token.Token with a fresh Context-assigned id, the way
// the scanner does for tokens read from source (spec.md §3.1's id
// invariant covers tokens synthesized by an edit the same as scanned
// ones).
func newTok(ctx *token.Context, k token.Kind, lexeme string) token.Token {
	return token.Token{Kind: k, Lexeme: lexeme, ID: ctx.NewID()}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// diatonicStep shifts pc by steps letter-names (C=0...B=6 per octave),
// preserving its accidental unchanged (spec.md §4.5 "harmonize... the
// alteration is preserved") — unlike transpose, which recomputes the
// accidental from the resulting chromatic pitch class.
func diatonicStep(pc pitchComponents, steps int) pitchComponents {
	idx := letterIndex(pc.LetterUp)
	total := idx + steps
	carry := floorDiv(total, 7)
	newIdx := ((total % 7) + 7) % 7
	newLetter := letterOrder[newIdx]
	absOctave := pc.octaveNumber() + carry
	lower, mark := fromOctaveNumber(absOctave)
	return pitchComponents{Accidental: pc.Accidental, LetterUp: newLetter, Lower: lower, OctaveMark: mark}
}
