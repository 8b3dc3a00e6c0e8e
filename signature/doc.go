// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package signature builds the binding layout a resource cache is
// initialized from: per-stage slot counts, per-resource bind points and
// the dynamic constant buffer masks.
//
// A layout starts as a Desc, which can be written in code, decoded from
// a TOML file (Load, LoadFile) or reflected from WGSL shader source
// (FromWGSL). New compiles the Desc into a Signature, and
// Signature.NewCache hands back a ready cache:
//
//	desc, err := signature.LoadFile("forward.sig.toml")
//	if err != nil { ... }
//	sig, err := signature.New(desc)
//	if err != nil { ... }
//	cache := sig.NewCache(d3d11.ContentSignature)
//
// Slot assignment is deterministic: resources take consecutive slots in
// declaration order, each stage filling its four slot spaces
// independently.
package signature
