// Package word classifies and combines the 32-bit units of a compressed set.
//
// A unit is one of:
//
//	1xxxxxxx xxxxxxxx xxxxxxxx xxxxxxxx  literal: low 31 bits are raw set bits
//	00fffffc cccccccc cccccccc cccccccc  zero run: c = blocks-1, f = flipped bit+1 (CONCISE)
//	01fffffc cccccccc cccccccc cccccccc  one run:  symmetric, f names a cleared bit
//
// In WAH mode the f bits belong to the run count instead.
//
// All functions are pure. Functions taking a run count mask expect
// ConciseRunMask or WAHRunMask.
package word
