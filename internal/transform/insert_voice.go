// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package transform

import (
	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

var (
	systemTag     = cst.Tag(ast.KindSystem)
	tuneTag       = cst.Tag(ast.KindTune)
	tuneHeaderTag = cst.Tag(ast.KindTuneHeader)
	infoLineTag   = cst.Tag(ast.KindInfoLine)
	graceGroupTag = cst.Tag(ast.KindGraceGroup)
)

// InsertVoiceLine duplicates every System a cursor touches, prefixing the
// duplicate with an inline `[V:voiceId]` switch and reducing every
// non-selected Note/Chord in it to a Rest of the same rhythm, after
// ensuring the enclosing tune header declares the voice (spec.md §4.5).
func InsertVoiceLine(sel Selection, voiceId string, ctx *token.Context) {
	var systems []*cst.Node
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		if n.Tag == systemTag && subtreeContainsCursor(n, sel) {
			systems = append(systems, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(sel.Root)

	seenTunes := map[*cst.Node]bool{}
	for _, sys := range systems {
		if tuneNode := cst.FindParent(sys, func(n *cst.Node) bool { return n.Tag == tuneTag }); tuneNode != nil && !seenTunes[tuneNode] {
			ensureVoiceHeader(tuneNode, voiceId, ctx)
			seenTunes[tuneNode] = true
		}
		dup := duplicateSystemWithVoice(sys, voiceId, sel, ctx)
		cst.InsertAfter(sys, dup)
	}
}

// subtreeContainsCursor reports whether any node inside n's subtree (n
// included) is named by one of sel's cursors; an empty Selection (no
// cursors at all) is the "operate on everything" convenience default.
func subtreeContainsCursor(n *cst.Node, sel Selection) bool {
	if len(sel.Cursors) == 0 {
		return true
	}
	found := false
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		if found || n == nil {
			return
		}
		if sel.Contains(n.ID) {
			found = true
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// ensureVoiceHeader adds a `V:voiceId` line to tuneNode's header, just
// before its `K:` line, unless a V: line already declares voiceId
// (spec.md §4.5 "ensure the tune header carries V:voiceId").
func ensureVoiceHeader(tuneNode *cst.Node, voiceId string, ctx *token.Context) {
	header := cst.FindChildByTag(tuneNode, tuneHeaderTag)
	if header == nil {
		return
	}
	var kLine *cst.Node
	for c := header.FirstChild; c != nil; c = c.NextSibling {
		if c.Tag != infoLineTag {
			continue
		}
		hdr := c.FirstChild
		if hdr == nil || !hdr.IsLeaf() || hdr.Token == nil || len(hdr.Token.Lexeme) == 0 {
			continue
		}
		switch hdr.Token.Lexeme[0] {
		case 'V':
			if infoLineRHS(c) == voiceId {
				return
			}
		case 'K':
			if kLine == nil {
				kLine = c
			}
		}
	}

	newLine := buildVoiceInfoLine(ctx, voiceId)
	newEOL := cst.NewInterior(ctx.NewID(), ast.KindTrivia)
	newEOL.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.EOL, "\n")))
	if kLine != nil {
		cst.InsertBefore(header, kLine, newLine)
		cst.InsertBefore(header, kLine, newEOL)
	} else {
		header.AppendChild(newLine)
		header.AppendChild(newEOL)
	}
}

// infoLineRHS concatenates an InfoLine node's value-token lexemes (every
// child after its Header leaf).
func infoLineRHS(infoLine *cst.Node) string {
	s := ""
	for c := infoLine.FirstChild.NextSibling; c != nil; c = c.NextSibling {
		if c.IsLeaf() && c.Token != nil {
			s += c.Token.Lexeme
		}
	}
	return s
}

// buildVoiceInfoLine materializes a tune-header `V:voiceId` InfoLine CST
// node.
func buildVoiceInfoLine(ctx *token.Context, voiceId string) *cst.Node {
	out := cst.NewInterior(ctx.NewID(), ast.KindInfoLine)
	out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.INF_HDR, "V:")))
	out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.IDENTIFIER, voiceId)))
	return out
}

// buildInlineFieldVoice materializes a body-level `[V:voiceId]` InlineField
// CST node, the prefix every duplicated line gets (spec.md §4.5).
func buildInlineFieldVoice(ctx *token.Context, voiceId string) *cst.Node {
	out := cst.NewInterior(ctx.NewID(), ast.KindInlineField)
	out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.INLN_FLD_LFT_BRKT, "[")))
	out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.INF_HDR, "V:")))
	out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.IDENTIFIER, voiceId)))
	out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.INLN_FLD_RGT_BRKT, "]")))
	return out
}

// duplicateSystemWithVoice builds sys's duplicate: every selected Note/
// Chord is kept verbatim, every other Note/Chord becomes a Rest of the
// same rhythm (with its leading GraceGroup, if any, dropped), and the
// whole line is prefixed with an inline voice switch (spec.md §4.5).
func duplicateSystemWithVoice(sys *cst.Node, voiceId string, sel Selection, ctx *token.Context) *cst.Node {
	dup := cst.NewInterior(ctx.NewID(), ast.KindSystem)
	for _, child := range cloneFilterChildren(sys, sel, ctx) {
		dup.AppendChild(child)
	}
	prefix := buildInlineFieldVoice(ctx, voiceId)
	if dup.FirstChild != nil {
		cst.InsertBefore(dup, dup.FirstChild, prefix)
	} else {
		dup.AppendChild(prefix)
	}
	return dup
}

// cloneFilterNode deep-clones orig, assigning fresh ids throughout via ctx,
// applying cloneFilterChildren's Note/Chord-to-Rest conversion at every
// container level it descends through.
func cloneFilterNode(orig *cst.Node, sel Selection, ctx *token.Context) *cst.Node {
	if orig.IsLeaf() {
		return cst.NewToken(ctx.NewID(), *orig.Token)
	}
	out := cst.NewInterior(ctx.NewID(), ast.Kind(orig.Tag))
	for _, child := range cloneFilterChildren(orig, sel, ctx) {
		out.AppendChild(child)
	}
	return out
}

// cloneFilterChildren clones origParent's children in order, replacing any
// direct Note/Chord child that sel does not select with a Rest of the same
// rhythm, and dropping an immediately preceding GraceGroup when it does
// (spec.md §4.5 "strip grace groups attached to non-selected targets").
func cloneFilterChildren(origParent *cst.Node, sel Selection, ctx *token.Context) []*cst.Node {
	var out []*cst.Node
	for c := origParent.FirstChild; c != nil; c = c.NextSibling {
		if (c.Tag == noteTag || c.Tag == chordTag) && !selected(c, sel) {
			if n := len(out); n > 0 && out[n-1].Tag == graceGroupTag {
				out = out[:n-1]
			}
			out = append(out, restFromRhythmOf(c, ctx))
			continue
		}
		out = append(out, cloneFilterNode(c, sel, ctx))
	}
	return out
}

// restFromRhythmOf builds a Rest CST node carrying a clone of orig's
// Rhythm, if it had one (spec.md §4.5 "a Rest of the same rhythm").
func restFromRhythmOf(orig *cst.Node, ctx *token.Context) *cst.Node {
	out := cst.NewInterior(ctx.NewID(), ast.KindRest)
	out.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.REST, "z")))
	if rhythmNode := cst.FindChildByTag(orig, rhythmTag); rhythmNode != nil {
		out.AppendChild(cloneFilterNode(rhythmNode, emptySelection, ctx))
	}
	return out
}

// emptySelection is the zero Selection, used when cloning a subtree (like
// a Rhythm) that can contain no Note/Chord of its own — cloneFilterNode's
// replacement logic is therefore a no-op, but it still needs a Selection
// value to thread through.
var emptySelection = Selection{}
