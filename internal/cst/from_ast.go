// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package cst

import (
	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

// FromAST performs a post-order walk of n, producing one CST node per AST
// node (tagged with the matching ast.Kind) and one leaf Token node per
// token.Token it carries directly, in the same traversal order as
// ast.Tokens (spec.md §4.4). ctx supplies ids; it must be the same
// Context that produced n so ids stay unique across token, AST, and CST
// nodes (spec.md §4.1, §9).
func FromAST(n ast.Node, ctx *token.Context) *Node {
	return fromASTNode(n, ctx)
}

func leaf(ctx *token.Context, t token.Token) *Node {
	return NewToken(ctx.NewID(), t)
}

func leafOpt(ctx *token.Context, t *token.Token) *Node {
	if t == nil {
		return nil
	}
	return leaf(ctx, *t)
}

func interior(ctx *token.Context, k ast.Kind) *Node {
	return NewInterior(ctx.NewID(), k)
}

func appendIf(parent *Node, child *Node) {
	if child != nil {
		parent.AppendChild(child)
	}
}

func fromASTNode(n ast.Node, ctx *token.Context) *Node {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *ast.File:
		out := interior(ctx, ast.KindFile)
		if v.Header != nil {
			appendIf(out, fromASTNode(v.Header, ctx))
		}
		for _, item := range v.Items {
			appendIf(out, fromASTNode(item, ctx))
		}
		return out
	case *ast.FileHeader:
		out := interior(ctx, ast.KindFileHeader)
		for _, item := range v.Items {
			appendIf(out, fromASTNode(item, ctx))
		}
		return out
	case *ast.TuneHeader:
		out := interior(ctx, ast.KindTuneHeader)
		for _, item := range v.Items {
			appendIf(out, fromASTNode(item, ctx))
		}
		return out
	case *ast.Tune:
		out := interior(ctx, ast.KindTune)
		appendIf(out, fromASTNode(v.Header, ctx))
		if v.Body != nil {
			appendIf(out, fromASTNode(v.Body, ctx))
		}
		return out
	case *ast.TuneBody:
		out := interior(ctx, ast.KindTuneBody)
		for _, sys := range v.Systems {
			// Tune_Body wraps each System as a CST child tagged System
			// (spec.md §4.4), which fromASTNode(*ast.System) already does.
			appendIf(out, fromASTNode(sys, ctx))
		}
		return out
	case *ast.System:
		out := interior(ctx, ast.KindSystem)
		for _, el := range v.Elements {
			appendIf(out, fromASTNode(el, ctx))
		}
		return out
	case *ast.Trivia:
		out := interior(ctx, ast.KindTrivia)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.SectionBreak:
		out := interior(ctx, ast.KindSectionBreak)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.FreeText:
		out := interior(ctx, ast.KindFreeText)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.Comment:
		out := interior(ctx, ast.KindComment)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.Directive:
		out := interior(ctx, ast.KindDirective)
		out.AppendChild(leaf(ctx, v.Marker))
		out.AppendChild(leaf(ctx, v.Identifier))
		appendIf(out, leafOpt(ctx, v.FreeText))
		for _, val := range v.Values {
			appendIf(out, fromASTNode(val, ctx))
		}
		return out
	case *ast.ErrorExpr:
		out := interior(ctx, ast.KindErrorExpr)
		for _, t := range v.Tokens {
			out.AppendChild(leaf(ctx, t))
		}
		return out
	case *ast.Beam:
		out := interior(ctx, ast.KindBeam)
		for _, el := range v.Elements {
			appendIf(out, fromASTNode(el, ctx))
		}
		return out
	case *ast.Note:
		out := interior(ctx, ast.KindNote)
		if v.Pitch != nil {
			appendIf(out, fromASTNode(v.Pitch, ctx))
		}
		if v.Rhythm != nil {
			appendIf(out, fromASTNode(v.Rhythm, ctx))
		}
		appendIf(out, leafOpt(ctx, v.Tie))
		return out
	case *ast.Pitch:
		out := interior(ctx, ast.KindPitch)
		appendIf(out, leafOpt(ctx, v.Accidental))
		out.AppendChild(leaf(ctx, v.Letter))
		appendIf(out, leafOpt(ctx, v.Octave))
		return out
	case *ast.Rhythm:
		out := interior(ctx, ast.KindRhythm)
		appendIf(out, leafOpt(ctx, v.Numerator))
		appendIf(out, leafOpt(ctx, v.Separator))
		appendIf(out, leafOpt(ctx, v.Denominator))
		appendIf(out, leafOpt(ctx, v.Broken))
		return out
	case *ast.Chord:
		out := interior(ctx, ast.KindChord)
		out.AppendChild(leaf(ctx, v.LBracket))
		for _, c := range v.Contents {
			appendIf(out, fromASTNode(c, ctx))
		}
		out.AppendChild(leaf(ctx, v.RBracket))
		if v.Rhythm != nil {
			appendIf(out, fromASTNode(v.Rhythm, ctx))
		}
		appendIf(out, leafOpt(ctx, v.Tie))
		return out
	case *ast.GraceGroup:
		out := interior(ctx, ast.KindGraceGroup)
		out.AppendChild(leaf(ctx, v.LBrace))
		appendIf(out, leafOpt(ctx, v.Acciaccatura))
		for _, nt := range v.Notes {
			appendIf(out, fromASTNode(nt, ctx))
		}
		out.AppendChild(leaf(ctx, v.RBrace))
		return out
	case *ast.BarLine:
		out := interior(ctx, ast.KindBarLine)
		out.AppendChild(leaf(ctx, v.Tok))
		for _, t := range v.RepeatNumbers {
			out.AppendChild(leaf(ctx, t))
		}
		return out
	case *ast.Tuplet:
		out := interior(ctx, ast.KindTuplet)
		out.AppendChild(leaf(ctx, v.LParen))
		out.AppendChild(leaf(ctx, v.P))
		appendIf(out, leafOpt(ctx, v.Colon1))
		appendIf(out, leafOpt(ctx, v.Q))
		appendIf(out, leafOpt(ctx, v.Colon2))
		appendIf(out, leafOpt(ctx, v.R))
		return out
	case *ast.Rest:
		out := interior(ctx, ast.KindRest)
		out.AppendChild(leaf(ctx, v.Tok))
		if v.Rhythm != nil {
			appendIf(out, fromASTNode(v.Rhythm, ctx))
		}
		return out
	case *ast.MultiMeasureRest:
		out := interior(ctx, ast.KindMultiMeasureRest)
		out.AppendChild(leaf(ctx, v.Tok))
		appendIf(out, leafOpt(ctx, v.Length))
		return out
	case *ast.Annotation:
		out := interior(ctx, ast.KindAnnotation)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.ChordSymbol:
		out := interior(ctx, ast.KindChordSymbol)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.Decoration:
		out := interior(ctx, ast.KindDecoration)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.Symbol:
		out := interior(ctx, ast.KindSymbol)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.Slur:
		out := interior(ctx, ast.KindSlur)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.VoiceOverlay:
		out := interior(ctx, ast.KindVoiceOverlay)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.LineContinuation:
		out := interior(ctx, ast.KindLineContinuation)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.YSpacer:
		out := interior(ctx, ast.KindYSpacer)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.InlineField:
		out := interior(ctx, ast.KindInlineField)
		out.AppendChild(leaf(ctx, v.LBracket))
		out.AppendChild(leaf(ctx, v.Header))
		for _, t := range v.Tokens {
			out.AppendChild(leaf(ctx, t))
		}
		out.AppendChild(leaf(ctx, v.RBracket))
		return out
	case *ast.InfoLine:
		out := interior(ctx, ast.KindInfoLine)
		out.AppendChild(leaf(ctx, v.Header))
		for _, t := range v.Tokens {
			out.AppendChild(leaf(ctx, t))
		}
		return out
	case *ast.MacroDecl:
		out := interior(ctx, ast.KindMacroDecl)
		out.AppendChild(leaf(ctx, v.Header))
		for _, t := range v.Tokens {
			out.AppendChild(leaf(ctx, t))
		}
		return out
	case *ast.UserSymbolDecl:
		out := interior(ctx, ast.KindUserSymbolDecl)
		out.AppendChild(leaf(ctx, v.Header))
		for _, t := range v.Tokens {
			out.AppendChild(leaf(ctx, t))
		}
		return out
	case *ast.MacroInvocation:
		out := interior(ctx, ast.KindMacroInvocation)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.UserSymbolInvocation:
		out := interior(ctx, ast.KindUserSymbolInvocation)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.KV:
		out := interior(ctx, ast.KindKV)
		out.AppendChild(leaf(ctx, v.Key))
		out.AppendChild(leaf(ctx, v.Eql))
		appendIf(out, fromASTNode(v.Value, ctx))
		return out
	case *ast.Binary:
		out := interior(ctx, ast.KindBinary)
		appendIf(out, fromASTNode(v.Left, ctx))
		out.AppendChild(leaf(ctx, v.Op))
		appendIf(out, fromASTNode(v.Right, ctx))
		return out
	case *ast.Unary:
		out := interior(ctx, ast.KindUnary)
		out.AppendChild(leaf(ctx, v.Op))
		appendIf(out, fromASTNode(v.Operand, ctx))
		return out
	case *ast.Grouping:
		out := interior(ctx, ast.KindGrouping)
		out.AppendChild(leaf(ctx, v.LParen))
		appendIf(out, fromASTNode(v.Inner, ctx))
		out.AppendChild(leaf(ctx, v.RParen))
		return out
	case *ast.Rational:
		out := interior(ctx, ast.KindRational)
		out.AppendChild(leaf(ctx, v.Numerator))
		out.AppendChild(leaf(ctx, v.Slash))
		out.AppendChild(leaf(ctx, v.Denominator))
		return out
	case *ast.Measurement:
		out := interior(ctx, ast.KindMeasurement)
		out.AppendChild(leaf(ctx, v.Number))
		out.AppendChild(leaf(ctx, v.Unit))
		return out
	case *ast.AbsolutePitch:
		out := interior(ctx, ast.KindAbsolutePitch)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.Literal:
		out := interior(ctx, ast.KindLiteral)
		out.AppendChild(leaf(ctx, v.Tok))
		return out
	case *ast.LyricLine:
		out := interior(ctx, ast.KindLyricLine)
		out.AppendChild(leaf(ctx, v.Header))
		for _, t := range v.Items {
			out.AppendChild(leaf(ctx, t))
		}
		return out
	case *ast.SymbolLine:
		out := interior(ctx, ast.KindSymbolLine)
		out.AppendChild(leaf(ctx, v.Header))
		for _, t := range v.Items {
			out.AppendChild(leaf(ctx, t))
		}
		return out
	default:
		// Unknown AST node kind: should be unreachable since the switch
		// above covers every variant in kind.go; fall back to a bare
		// interior node so a future-added variant degrades gracefully
		// instead of panicking.
		return interior(ctx, n.Kind())
	}
}
