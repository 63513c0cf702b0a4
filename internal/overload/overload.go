// Package overload implements the call-site overload resolver of §4.4:
// given a list of candidate FunctionSignatures and the argument
// descriptors at a call site, pick the one signature that matches, with a
// declaration-ordered tie-break and a memoizing cache.
package overload

import (
	"strconv"
	"strings"
	"sync"

	"github.com/occ2swift/occ/internal/ast"
	"github.com/occ2swift/occ/internal/types"
	"github.com/occ2swift/occ/internal/typesys"
)

// Argument is one call-site argument descriptor (§4.4). Type is nil for a
// position whose type could not be resolved; isMissingType also counts an
// explicit errorType the same way.
type Argument struct {
	Type        *types.SwiftType
	IsLiteral   bool
	LiteralKind *ast.LiteralKind
}

func (a Argument) isMissingType() bool {
	return a.Type == nil || a.Type.IsErrorType()
}

// candidate is one SelectorSignature a FunctionSignature can produce
// (§4.4 step 3), tagged with the index of its originating signature and
// the parameter slice that selector form actually consumes.
type candidate struct {
	signatureIndex int
	params         []types.Parameter
}

func (c candidate) argumentCount() int { return len(c.params) }

// Resolver selects a signature index from a candidate list, memoizing
// results behind a cache keyed on the full (signatures, arguments) call
// shape (§4.4, §5: "all read and mutation is guarded").
type Resolver struct {
	ts    typesys.TypeSystem
	mu    sync.RWMutex
	cache map[string]*int
	enabled bool
}

func New(ts typesys.TypeSystem) *Resolver {
	return &Resolver{ts: ts}
}

// Enable turns memoization on; idempotent per §4.4.
func (r *Resolver) Enable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enabled {
		return
	}
	r.enabled = true
	r.cache = make(map[string]*int)
}

// Teardown disables memoization and discards the cache; idempotent.
func (r *Resolver) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
	r.cache = nil
}

// Resolve runs the full §4.4 algorithm and returns the winning signature's
// index into signatures, or false if no candidate was selected.
func (r *Resolver) Resolve(signatures []types.FunctionSignature, args []Argument) (int, bool) {
	if len(signatures) == 0 {
		return 0, false
	}

	key := ""
	if r.enabled {
		key = cacheKey(signatures, args)
		r.mu.RLock()
		cached, ok := r.cache[key]
		r.mu.RUnlock()
		if ok {
			if cached == nil {
				return 0, false
			}
			return *cached, true
		}
	}

	idx, ok := r.resolveUncached(signatures, args)

	if r.enabled {
		r.mu.Lock()
		if ok {
			v := idx
			r.cache[key] = &v
		} else {
			r.cache[key] = nil
		}
		r.mu.Unlock()
	}
	return idx, ok
}

func (r *Resolver) resolveUncached(signatures []types.FunctionSignature, args []Argument) (int, bool) {
	var candidates []candidate
	for i, sig := range signatures {
		for _, sel := range sig.Selectors() {
			n := sel.ArgumentCount()
			candidates = append(candidates, candidate{signatureIndex: i, params: sig.Parameters[:n]})
		}
	}

	arityMatched := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.argumentCount() == len(args) {
			arityMatched = append(arityMatched, c)
		}
	}

	// An argument missing a concrete type still carries information if
	// it's a literal of a known kind (§4.4: integer/float literals admit
	// implicit promotion even with type:None) — only bail out when every
	// argument is genuinely uninformative.
	allMissing := len(args) > 0
	for _, a := range args {
		if !a.isMissingType() || (a.IsLiteral && a.LiteralKind != nil) {
			allMissing = false
			break
		}
	}
	if len(arityMatched) == 0 || allMissing {
		return 0, false
	}

	if idx, ok := r.exactMatchPass(arityMatched, args); ok {
		return idx, true
	}

	return r.nullabilityIgnoringPass(arityMatched, args)
}

// exactMatchPass implements §4.4 step 5: only runs when every argument has
// a concrete type, scans in declaration order, and the first candidate
// matching every parameter under typesMatch(ignoreNullability=false) wins.
func (r *Resolver) exactMatchPass(candidates []candidate, args []Argument) (int, bool) {
	for _, a := range args {
		if a.isMissingType() {
			return 0, false
		}
	}
	for _, c := range candidates {
		matched := true
		for i, p := range c.params {
			if !r.ts.TypesMatch(*args[i].Type, p.Type, false) {
				matched = false
				break
			}
		}
		if matched {
			return c.signatureIndex, true
		}
	}
	return 0, false
}

// nullabilityIgnoringPass implements §4.4 step 6: iteratively eliminate
// candidates per argument index, allowing integer-literal→numeric and
// float-literal→float implicit promotion (never float literal→integer),
// and stops as soon as an argument's eliminations leave at most one
// candidate (a lone candidate is still checked). An argument with no
// concrete type still eliminates candidates by literal kind when it has
// one; only a non-literal or kindless missing-type argument admits every
// candidate unconditionally.
func (r *Resolver) nullabilityIgnoringPass(candidates []candidate, args []Argument) (int, bool) {
	remaining := append([]candidate{}, candidates...)
	for i, a := range args {
		if a.isMissingType() {
			if !a.IsLiteral || a.LiteralKind == nil {
				continue
			}
			var kept []candidate
			for _, c := range remaining {
				if r.literalKindAdmits(*a.LiteralKind, c.params[i].Type.DeepUnwrapped()) {
					kept = append(kept, c)
				}
			}
			remaining = kept
			if len(remaining) <= 1 {
				break
			}
			continue
		}
		var kept []candidate
		for _, c := range remaining {
			if r.argumentAdmits(a, c.params[i].Type) {
				kept = append(kept, c)
			}
		}
		remaining = kept
		if len(remaining) <= 1 {
			break
		}
	}
	if len(remaining) == 0 {
		return 0, false
	}
	return remaining[0].signatureIndex, true
}

// literalKindAdmits is the promotion rule a literal's kind alone admits,
// independent of whatever concrete type (if any) the literal also carries.
func (r *Resolver) literalKindAdmits(kind ast.LiteralKind, paramT types.SwiftType) bool {
	switch kind {
	case ast.LitInteger:
		return r.ts.IsNumeric(paramT)
	case ast.LitFloat:
		return r.ts.IsFloat(paramT)
	}
	return false
}

func (r *Resolver) argumentAdmits(a Argument, paramT types.SwiftType) bool {
	argT := *a.Type
	if a.IsLiteral && a.LiteralKind != nil && r.literalKindAdmits(*a.LiteralKind, paramT.DeepUnwrapped()) {
		return true
	}
	return r.ts.IsAssignable(argT.DeepUnwrapped(), paramT.DeepUnwrapped())
}

// cacheKey renders the full (signatures, arguments) call shape as a
// deterministic string, the granularity §4.4's memoization cache keys on.
func cacheKey(signatures []types.FunctionSignature, args []Argument) string {
	var b strings.Builder
	for i, sig := range signatures {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(sig.Name)
		b.WriteByte('(')
		for j, p := range sig.Parameters {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(p.Label)
			b.WriteByte(':')
			b.WriteString(p.Type.Hash())
			if p.HasDefault {
				b.WriteByte('?')
			}
		}
		b.WriteString(")->")
		b.WriteString(sig.ReturnType.Hash())
		if sig.IsStatic {
			b.WriteString("#static")
		}
	}
	b.WriteString("|args:")
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		if a.isMissingType() {
			b.WriteString("?")
			continue
		}
		b.WriteString(a.Type.Hash())
		if a.IsLiteral {
			b.WriteString("#lit")
			if a.LiteralKind != nil {
				b.WriteString(strconv.Itoa(int(*a.LiteralKind)))
			}
		}
	}
	return b.String()
}
