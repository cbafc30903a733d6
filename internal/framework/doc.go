// Package framework holds the fixed set of web frameworks the generator can
// scaffold, and the numbered-menu selection used by the interactive variant.
// A menu answer that is missing, non-numeric or out of range resolves to the
// default framework (Vite + React) rather than failing.
package framework
