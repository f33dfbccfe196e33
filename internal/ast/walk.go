// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ast

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// Tokens flattens n and its descendants back into the token sequence that
// produced them, in source order. It is the basis of a verbatim
// formatter operating directly on the AST (spec.md §8's round-trip
// property requires this to work from either the AST or the CST); the
// CST's own Verbatim formatter (internal/format) walks the CST instead,
// but both must agree with the source byte-for-byte.
func Tokens(n Node) []token.Token {
	var out []token.Token
	appendTokens(&out, n)
	return out
}

func appendTokens(out *[]token.Token, n Node) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *File:
		if v.Header != nil {
			appendTokens(out, v.Header)
		}
		for _, item := range v.Items {
			appendTokens(out, item)
		}
	case *FileHeader:
		for _, item := range v.Items {
			appendTokens(out, item)
		}
	case *TuneHeader:
		for _, item := range v.Items {
			appendTokens(out, item)
		}
	case *Tune:
		appendTokens(out, v.Header)
		if v.Body != nil {
			appendTokens(out, v.Body)
		}
	case *TuneBody:
		for _, sys := range v.Systems {
			appendTokens(out, sys)
		}
	case *System:
		for _, el := range v.Elements {
			appendTokens(out, el)
		}
	case *Trivia:
		*out = append(*out, v.Tok)
	case *SectionBreak:
		*out = append(*out, v.Tok)
	case *FreeText:
		*out = append(*out, v.Tok)
	case *Comment:
		*out = append(*out, v.Tok)
	case *Directive:
		*out = append(*out, v.Marker, v.Identifier)
		if v.FreeText != nil {
			*out = append(*out, *v.FreeText)
		}
		for _, val := range v.Values {
			appendTokens(out, val)
		}
	case *ErrorExpr:
		*out = append(*out, v.Tokens...)
	case *Beam:
		for _, el := range v.Elements {
			appendTokens(out, el)
		}
	case *Note:
		if v.Pitch != nil {
			appendTokens(out, v.Pitch)
		}
		if v.Rhythm != nil {
			appendTokens(out, v.Rhythm)
		}
		if v.Tie != nil {
			*out = append(*out, *v.Tie)
		}
	case *Pitch:
		if v.Accidental != nil {
			*out = append(*out, *v.Accidental)
		}
		*out = append(*out, v.Letter)
		if v.Octave != nil {
			*out = append(*out, *v.Octave)
		}
	case *Rhythm:
		if v.Numerator != nil {
			*out = append(*out, *v.Numerator)
		}
		if v.Separator != nil {
			*out = append(*out, *v.Separator)
		}
		if v.Denominator != nil {
			*out = append(*out, *v.Denominator)
		}
		if v.Broken != nil {
			*out = append(*out, *v.Broken)
		}
	case *Chord:
		*out = append(*out, v.LBracket)
		for _, c := range v.Contents {
			appendTokens(out, c)
		}
		*out = append(*out, v.RBracket)
		if v.Rhythm != nil {
			appendTokens(out, v.Rhythm)
		}
		if v.Tie != nil {
			*out = append(*out, *v.Tie)
		}
	case *GraceGroup:
		*out = append(*out, v.LBrace)
		if v.Acciaccatura != nil {
			*out = append(*out, *v.Acciaccatura)
		}
		for _, nt := range v.Notes {
			appendTokens(out, nt)
		}
		*out = append(*out, v.RBrace)
	case *BarLine:
		*out = append(*out, v.Tok)
		*out = append(*out, v.RepeatNumbers...)
	case *Tuplet:
		*out = append(*out, v.LParen, v.P)
		if v.Colon1 != nil {
			*out = append(*out, *v.Colon1)
		}
		if v.Q != nil {
			*out = append(*out, *v.Q)
		}
		if v.Colon2 != nil {
			*out = append(*out, *v.Colon2)
		}
		if v.R != nil {
			*out = append(*out, *v.R)
		}
	case *Rest:
		*out = append(*out, v.Tok)
		if v.Rhythm != nil {
			appendTokens(out, v.Rhythm)
		}
	case *MultiMeasureRest:
		*out = append(*out, v.Tok)
		if v.Length != nil {
			*out = append(*out, *v.Length)
		}
	case *Annotation:
		*out = append(*out, v.Tok)
	case *ChordSymbol:
		*out = append(*out, v.Tok)
	case *Decoration:
		*out = append(*out, v.Tok)
	case *Symbol:
		*out = append(*out, v.Tok)
	case *Slur:
		*out = append(*out, v.Tok)
	case *VoiceOverlay:
		*out = append(*out, v.Tok)
	case *LineContinuation:
		*out = append(*out, v.Tok)
	case *YSpacer:
		*out = append(*out, v.Tok)
	case *InlineField:
		*out = append(*out, v.LBracket, v.Header)
		*out = append(*out, v.Tokens...)
		*out = append(*out, v.RBracket)
	case *InfoLine:
		*out = append(*out, v.Header)
		*out = append(*out, v.Tokens...)
	case *MacroDecl:
		*out = append(*out, v.Header)
		*out = append(*out, v.Tokens...)
	case *UserSymbolDecl:
		*out = append(*out, v.Header)
		*out = append(*out, v.Tokens...)
	case *MacroInvocation:
		*out = append(*out, v.Tok)
	case *UserSymbolInvocation:
		*out = append(*out, v.Tok)
	case *KV:
		*out = append(*out, v.Key, v.Eql)
		appendTokens(out, v.Value)
	case *Binary:
		appendTokens(out, v.Left)
		*out = append(*out, v.Op)
		appendTokens(out, v.Right)
	case *Unary:
		*out = append(*out, v.Op)
		appendTokens(out, v.Operand)
	case *Grouping:
		*out = append(*out, v.LParen)
		appendTokens(out, v.Inner)
		*out = append(*out, v.RParen)
	case *Rational:
		*out = append(*out, v.Numerator, v.Slash, v.Denominator)
	case *Measurement:
		*out = append(*out, v.Number, v.Unit)
	case *AbsolutePitch:
		*out = append(*out, v.Tok)
	case *Literal:
		*out = append(*out, v.Tok)
	case *LyricLine:
		*out = append(*out, v.Header)
		*out = append(*out, v.Items...)
	case *SymbolLine:
		*out = append(*out, v.Header)
		*out = append(*out, v.Items...)
	}
}
