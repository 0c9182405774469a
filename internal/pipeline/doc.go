// Package pipeline orchestrates compile requests: select a compiler from the
// registry, normalize the request, run the transform and hand the result
// back to the caller. Batches run strictly in order and one failed request
// never stops the rest.
package pipeline
