// Package errors provides the classified error primitives used across rollerblade.
//
// Every failure the compile pipeline surfaces is a ClassifiedError carrying a
// category, a severity and structured context (usually the offending path).
// Callers branch on the category rather than on message text:
//
//   - CategoryConfig: malformed compile request, fatal before any I/O
//   - CategoryNotFound: the input file does not exist, fatal during normalization
//   - CategoryValidation: soft problems with optional features (warnings)
//   - CategoryTransform: the external bundler/renderer failed
//   - CategoryFileSystem: materializing output failed
//
// Example usage:
//
//	err := errors.InputNotFound(path).
//		WithContext("compiler", "script").
//		Build()
package errors
