// Package compiler defines the contract every asset transform satisfies and
// the ordered registry that dispatches an input path to exactly one of them.
//
// The set of compilers is closed: the pass-through, script, stylesheet and
// document compilers live in sub-packages and are assembled into a Registry
// once at start-up. Selection walks the registry in order and returns the
// first compiler whose Matches reports true; the pass-through fallback
// matches everything, so selection never fails. Overlapping extensions are
// not detected at registration time, registry order is the only tie-break.
package compiler
