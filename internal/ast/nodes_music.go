// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ast

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// Beam is a contiguous run of Note / Chord / GraceGroup / Decoration /
// Symbol / Annotation / Rest / Tuplet with no intervening WS or BarLine
// (spec.md §4.3). Single-element runs are not wrapped; a Beam only
// appears when the run has two or more elements.
type Beam struct {
	ID       int
	Elements []Node
}

func (n *Beam) Kind() Kind  { return KindBeam }
func (n *Beam) NodeID() int { return n.ID }

// Note is Pitch, optional Rhythm, optional TIE (spec.md §3.2, §4.3).
type Note struct {
	ID     int
	Pitch  *Pitch
	Rhythm *Rhythm
	Tie    *token.Token
}

func (n *Note) Kind() Kind  { return KindNote }
func (n *Note) NodeID() int { return n.ID }

// Pitch is an optional accidental token, a mandatory note-letter token,
// and an optional octave-marks token (spec.md §3.2).
type Pitch struct {
	ID         int
	Accidental *token.Token
	Letter     token.Token
	Octave     *token.Token
}

func (n *Pitch) Kind() Kind  { return KindPitch }
func (n *Pitch) NodeID() int { return n.ID }

// Rhythm is an optional numerator, separator, denominator, and
// broken-rhythm token, in that fixed order (spec.md §3.2).
type Rhythm struct {
	ID          int
	Numerator   *token.Token
	Separator   *token.Token
	Denominator *token.Token
	Broken      *token.Token
}

func (n *Rhythm) Kind() Kind  { return KindRhythm }
func (n *Rhythm) NodeID() int { return n.ID }

// Empty reports whether r carries no rhythm tokens at all, the state
// ScaleRhythm synthesizes a rhythm into rather than leaving untouched
// (spec.md §4.5 "Notes without a Rhythm get one synthesized").
func (n *Rhythm) Empty() bool {
	return n == nil || (n.Numerator == nil && n.Separator == nil && n.Denominator == nil && n.Broken == nil)
}

// Chord is a bracketed run of notes and stray content, plus an optional
// Rhythm and TIE applying to the whole chord (spec.md §3.2, §4.3).
type Chord struct {
	ID       int
	LBracket token.Token
	Contents []Node // *Note | *Annotation | *Literal
	RBracket token.Token
	Rhythm   *Rhythm
	Tie      *token.Token
}

func (n *Chord) Kind() Kind  { return KindChord }
func (n *Chord) NodeID() int { return n.ID }

// GraceGroup is `{`, an optional acciaccatura marker, notes, `}`
// (spec.md §3.2, §4.3). The scanner tokenizes the acciaccatura `/` as an
// ordinary RHY_SEP token (it has no grace-group submode of its own); the
// parser reclassifies a leading RHY_SEP immediately after `{` as the
// acciaccatura marker rather than threading a dedicated token kind back
// through the scanner.
type GraceGroup struct {
	ID           int
	LBrace       token.Token
	Acciaccatura *token.Token
	Notes        []Node
	RBrace       token.Token
}

func (n *GraceGroup) Kind() Kind  { return KindGraceGroup }
func (n *GraceGroup) NodeID() int { return n.ID }

// BarLine is the BARLINE token and any immediately-following
// repeat-number tokens (spec.md §3.2, §4.3).
type BarLine struct {
	ID            int
	Tok           token.Token
	RepeatNumbers []token.Token
}

func (n *BarLine) Kind() Kind  { return KindBarLine }
func (n *BarLine) NodeID() int { return n.ID }

// Tuplet is `(`, p, optional `:` q, optional `:` r (spec.md §3.2, §4.3).
type Tuplet struct {
	ID     int
	LParen token.Token
	P      token.Token
	Colon1 *token.Token
	Q      *token.Token
	Colon2 *token.Token
	R      *token.Token
}

func (n *Tuplet) Kind() Kind  { return KindTuplet }
func (n *Tuplet) NodeID() int { return n.ID }

// Rest is a voiced rest (`z`/`x`) with an optional Rhythm, parsed the same
// way as Note (spec.md §4.2 "rest + optional Rhythm").
type Rest struct {
	ID     int
	Tok    token.Token
	Rhythm *Rhythm
}

func (n *Rest) Kind() Kind  { return KindRest }
func (n *Rest) NodeID() int { return n.ID }

// MultiMeasureRest is an uppercase rest (`Z`/`X`) with an optional
// bar-count length token (spec.md §4.2 "rest ... with length token for
// multi-measure").
type MultiMeasureRest struct {
	ID     int
	Tok    token.Token
	Length *token.Token
}

func (n *MultiMeasureRest) Kind() Kind  { return KindMultiMeasureRest }
func (n *MultiMeasureRest) NodeID() int { return n.ID }

// Annotation wraps a quoted-string ANNOTATION token.
type Annotation struct {
	ID  int
	Tok token.Token
}

func (n *Annotation) Kind() Kind  { return KindAnnotation }
func (n *Annotation) NodeID() int { return n.ID }

// ChordSymbol is an ANNOTATION token reclassified as a harmonic chord
// symbol (e.g. `"Gm7"`) rather than a free-text annotation, by the
// convention that chord symbols start with a note letter and carry no
// leading placement glyph (`^`, `_`, `<`, `>`, `@`); see the parser's
// isChordSymbolLexeme.
type ChordSymbol struct {
	ID  int
	Tok token.Token
}

func (n *ChordSymbol) Kind() Kind  { return KindChordSymbol }
func (n *ChordSymbol) NodeID() int { return n.ID }

// Decoration wraps a single decoration glyph token or a `!...!`/`+...+`
// delimited SYMBOL token.
type Decoration struct {
	ID  int
	Tok token.Token
}

func (n *Decoration) Kind() Kind  { return KindDecoration }
func (n *Decoration) NodeID() int { return n.ID }

// Symbol wraps a `!...!` / `+...+` delimited SYMBOL token when it is not
// classified as a Decoration by context.
type Symbol struct {
	ID  int
	Tok token.Token
}

func (n *Symbol) Kind() Kind  { return KindSymbol }
func (n *Symbol) NodeID() int { return n.ID }

// Slur wraps a SLUR token; Open distinguishes the opening `(` from the
// closing `)` (the scanner emits the same kind for both).
type Slur struct {
	ID   int
	Tok  token.Token
	Open bool
}

func (n *Slur) Kind() Kind  { return KindSlur }
func (n *Slur) NodeID() int { return n.ID }

// VoiceOverlay wraps a `&` (optionally `&\n`) VOICE_OVRLAY token.
type VoiceOverlay struct {
	ID  int
	Tok token.Token
}

func (n *VoiceOverlay) Kind() Kind  { return KindVoiceOverlay }
func (n *VoiceOverlay) NodeID() int { return n.ID }

// LineContinuation wraps a `\`+EOL LINE_CONT token.
type LineContinuation struct {
	ID  int
	Tok token.Token
}

func (n *LineContinuation) Kind() Kind  { return KindLineContinuation }
func (n *LineContinuation) NodeID() int { return n.ID }

// YSpacer wraps a `y`/backtick Y_SPC token.
type YSpacer struct {
	ID  int
	Tok token.Token
}

func (n *YSpacer) Kind() Kind  { return KindYSpacer }
func (n *YSpacer) NodeID() int { return n.ID }

// InlineField is a mid-body `[letter:value]` field switch (spec.md §3.2,
// §4.3). It carries the same dual flat/structured representation as
// InfoLine.
type InlineField struct {
	ID       int
	LBracket token.Token
	Header   token.Token
	Tokens   []token.Token
	Value    []Node
	RBracket token.Token
}

func (n *InlineField) Kind() Kind  { return KindInlineField }
func (n *InlineField) NodeID() int { return n.ID }
