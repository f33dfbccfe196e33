// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package ast builds the tagged abstract syntax tree described in spec.md
// §3.2 from the token stream produced by internal/scanner. Parse is a
// hand-written recursive-descent parser with local lookahead and
// synchronization-point error recovery: a production that cannot match
// its expected shape records a diagnostic on the shared token.Context and
// falls back to an ErrorExpr rather than aborting the parse.
package ast
