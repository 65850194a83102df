// Package pkg provides the core libraries for Cosetta coset enumeration.
//
// # Overview
//
// Cosetta computes the index of a subgroup in a finitely presented group
// together with the complete right-coset table, using the Todd-Coxeter
// coset enumeration procedure. The pkg directory is organized into:
//
//  1. [group] - Presentations: generator alphabets, word parsing, manifests
//  2. [coset] - The enumeration engine: coset table, unification, driver
//  3. [render/schreier] - Schreier graph rendering via Graphviz
//  4. [pipeline] - Orchestration (load → enumerate → render) with caching
//  5. [cache] - Result caching backends (file, Redis, null)
//  6. [catalog] - MongoDB persistence of finished enumerations
//
// # Architecture
//
// The typical data flow through Cosetta:
//
//	TOML manifest / inline presentation
//	         ↓
//	    [group] package (parse and compile words)
//	         ↓
//	    [coset] package (enumerate to closure)
//	         ↓
//	    [render/schreier] package (table, JSON, DOT, SVG, PNG output)
//
// # Quick Start
//
// Compile a presentation and enumerate its cosets:
//
//	import (
//	    "context"
//	    "github.com/igarnier/cosetta/pkg/coset"
//	    "github.com/igarnier/cosetta/pkg/group"
//	)
//
//	p := group.Presentation{
//	    Generators: []string{"a", "b"},
//	    Relators:   []string{"a^2", "b^2", "(a*b)^3"},
//	}
//	compiled, _ := p.Compile()
//	result, _ := coset.Enumerate(context.Background(), compiled, coset.Options{})
//	fmt.Println(result.Index()) // 6
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/coset/...  # Specific package
//	go test -run Example     # Examples only
//
// [group]: https://pkg.go.dev/github.com/igarnier/cosetta/pkg/group
// [coset]: https://pkg.go.dev/github.com/igarnier/cosetta/pkg/coset
// [render/schreier]: https://pkg.go.dev/github.com/igarnier/cosetta/pkg/render/schreier
// [pipeline]: https://pkg.go.dev/github.com/igarnier/cosetta/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/igarnier/cosetta/pkg/cache
// [catalog]: https://pkg.go.dev/github.com/igarnier/cosetta/pkg/catalog
package pkg
