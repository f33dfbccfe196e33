// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package cst implements the lossless concrete syntax tree described in
// spec.md §3.3/§4.4: a homogeneous child/sibling tree that mirrors the
// AST 1:1, plus the navigation and splice primitives the structural edit
// transforms in internal/transform are built on.
// FromAST walks an internal/ast tree, emitting one CST node per AST node
// (tagged with the matching ast.Kind) and one leaf Token node per
// token.Token; ToAST is its inverse.
package cst
