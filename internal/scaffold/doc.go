// Package scaffold holds the embedded project templates and materializes a
// Plan (directory skeleton plus file set) under an explicit project root.
// Directories are created before files, existing directories are tolerated
// and files are overwritten unconditionally.
package scaffold
