// Package group models finite presentations of groups: a set of abstract
// generators together with relator words and optional subgroup generator
// words.
//
// Generators are translated to a dense integer alphabet in which each
// generator sits next to its formal inverse, so that inversion is a single
// bit flip. All downstream algorithms (notably coset enumeration in package
// coset) operate on this concrete alphabet and never see generator names.
//
// # Words
//
// Words are written in a small expression language parsed with participle:
//
//	a           single generator
//	a^-1        formal inverse
//	a^3         repetition (a*a*a)
//	a*b  a b    juxtaposition, with or without '*'
//	(a*b)^3     grouping with repetition
//
// Relator and subgroup words do not need to be freely reduced; redundant
// words cost enumeration work but never correctness.
//
// # Manifests
//
// Presentations are typically loaded from TOML manifests:
//
//	name       = "S3"
//	generators = ["a", "b"]
//	relators   = ["a^2", "b^2", "(a*b)^3"]
//	subgroup   = ["a"]
//
// Use [LoadManifest] to read one, then [Presentation.Compile] to obtain the
// concrete alphabet and encoded words.
package group
