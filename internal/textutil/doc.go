// Package textutil provides the string transforms shared by asset matching:
// comparison keys, numbered-suffix stripping, a sequence similarity ratio,
// and filename sanitization.
//
// Comparison keys are lossy on purpose. Two raw strings that produce the same
// key are treated as naming the same game, so keys are never persisted or shown
// as ground truth. An empty key never matches anything.
package textutil
