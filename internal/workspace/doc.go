// Package workspace manages the scratch files external transforms write to
// before their output is read back into memory.
//
// Every Scratch gets a unique name in the process temporary directory
// (e.g., rollerblade-3f0c...), so unrelated compiles never collide. Cleanup
// removes the scratch file and any companions (such as a ".map" file) and is
// safe to call whether or not the transform managed to create them.
package workspace
