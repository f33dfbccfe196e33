// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package transform

import (
	"strconv"
	"strings"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

var restTag = cst.Tag(ast.KindRest)

// Factor is the ×2/÷2 operation scaleRhythm applies (spec.md §4.5 "multiply
// or divide by two").
type Factor int

const (
	Multiply Factor = iota
	Divide
)

// rational is a reduced numerator/denominator pair.
type rational struct {
	num, den int
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func (r rational) reduce() rational {
	g := gcd(r.num, r.den)
	return rational{r.num / g, r.den / g}
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func log2(n int) int {
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// readRhythmFraction reads r's rational value (spec.md §4.5 "convert each
// Rhythm in range to a rational (numerator / (2^slashes * denominator))").
// A nil Rhythm is the identity 1/1.
func readRhythmFraction(r *cst.Node) rational {
	if r == nil {
		return rational{1, 1}
	}
	num, slashes, den := 1, 0, 1
	for c := r.FirstChild; c != nil; c = c.NextSibling {
		if !c.IsLeaf() || c.Token == nil {
			continue
		}
		switch c.Token.Kind {
		case token.RHY_NUMER:
			num = atoiOr(c.Token.Lexeme, 1)
		case token.RHY_SEP:
			slashes = len(c.Token.Lexeme)
		case token.RHY_DENOM:
			den = atoiOr(c.Token.Lexeme, 1)
		}
	}
	if slashes > 0 {
		den = den * (1 << uint(slashes))
	}
	return rational{num, den}
}

// rhythmBroken returns r's broken-rhythm marker token, if any; scaleRhythm
// preserves it unchanged since it is not part of the fraction itself.
func rhythmBroken(r *cst.Node) *token.Token {
	if r == nil {
		return nil
	}
	for c := r.FirstChild; c != nil; c = c.NextSibling {
		if c.IsLeaf() && c.Token != nil && c.Token.Kind == token.RHY_BRKN {
			return c.Token
		}
	}
	return nil
}

// canonicalRhythmTokens re-emits a reduced fraction as the preferred token
// sequence: a bare numerator when the denominator reduces to 1, `/`//`/`//
// runs for power-of-two denominators, an explicit numerator/slash/
// denominator otherwise — and drops a redundant numerator of 1 whenever
// another token is already present (spec.md §4.5).
func canonicalRhythmTokens(ctx *token.Context, r rational) []token.Token {
	r = r.reduce()
	if r.den == 1 {
		if r.num == 1 {
			return nil
		}
		return []token.Token{newTok(ctx, token.RHY_NUMER, strconv.Itoa(r.num))}
	}
	var toks []token.Token
	if isPowerOfTwo(r.den) {
		if r.num != 1 {
			toks = append(toks, newTok(ctx, token.RHY_NUMER, strconv.Itoa(r.num)))
		}
		toks = append(toks, newTok(ctx, token.RHY_SEP, strings.Repeat("/", log2(r.den))))
		return toks
	}
	if r.num != 1 {
		toks = append(toks, newTok(ctx, token.RHY_NUMER, strconv.Itoa(r.num)))
	}
	toks = append(toks, newTok(ctx, token.RHY_SEP, "/"))
	toks = append(toks, newTok(ctx, token.RHY_DENOM, strconv.Itoa(r.den)))
	return toks
}

// buildRhythmNode materializes toks (plus an optional preserved broken
// marker) as a fresh Rhythm CST node, or returns nil when there is nothing
// left to represent (an empty rhythm with no broken marker).
func buildRhythmNode(ctx *token.Context, toks []token.Token, broken *token.Token) *cst.Node {
	if len(toks) == 0 && broken == nil {
		return nil
	}
	out := cst.NewInterior(ctx.NewID(), ast.KindRhythm)
	for _, t := range toks {
		out.AppendChild(cst.NewToken(ctx.NewID(), t))
	}
	if broken != nil {
		out.AppendChild(cst.NewToken(ctx.NewID(), *broken))
	}
	return out
}

// firstTokenPosition returns the position of the first leaf token found in
// n's subtree, in document order.
func firstTokenPosition(n *cst.Node) (Position, bool) {
	if n.IsLeaf() {
		if n.Token == nil {
			return Position{}, false
		}
		return Position{Line: n.Token.Line, Character: n.Token.Offset}, true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pos, ok := firstTokenPosition(c); ok {
			return pos, true
		}
	}
	return Position{}, false
}

// ScaleRhythm multiplies or divides the duration of every Note/Chord/Rest
// in rng (the whole tree, when rng is nil) by two, rewriting each Rhythm
// to its canonical token form and synthesizing one for notes that had
// none (spec.md §4.5).
func ScaleRhythm(root *cst.Node, factor Factor, rng *Range, ctx *token.Context) {
	var targets []*cst.Node
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		switch n.Tag {
		case noteTag, chordTag, restTag:
			if rng == nil {
				targets = append(targets, n)
			} else if pos, ok := firstTokenPosition(n); ok && rng.contains(pos) {
				targets = append(targets, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for _, n := range targets {
		scaleRhythmNode(n, factor, ctx)
	}
}

func scaleRhythmNode(n *cst.Node, factor Factor, ctx *token.Context) {
	rhythmNode := cst.FindChildByTag(n, rhythmTag)
	frac := readRhythmFraction(rhythmNode)
	broken := rhythmBroken(rhythmNode)

	switch factor {
	case Multiply:
		frac = rational{frac.num * 2, frac.den}
	case Divide:
		frac = rational{frac.num, frac.den * 2}
	}
	frac = frac.reduce()

	replacement := buildRhythmNode(ctx, canonicalRhythmTokens(ctx, frac), broken)
	switch {
	case replacement == nil && rhythmNode != nil:
		cst.RemoveChild(n, rhythmNode)
	case replacement != nil && rhythmNode != nil:
		cst.ReplaceChild(n, rhythmNode, replacement)
	case replacement != nil:
		// No prior Rhythm: insert before a trailing Tie, if any, to keep
		// the Pitch/Rhythm/Tie (or Contents/Rhythm/Tie) child order
		// fromAst/toAst expect; append otherwise.
		if tie := cst.FindTieChild(n); tie != nil {
			cst.InsertBefore(n, tie, replacement)
		} else {
			n.AppendChild(replacement)
		}
	}
}
