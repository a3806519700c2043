// Package concise implements compressed sets of non-negative integers for
// bitmap indexes.
//
// # Encodings
//
// A set is a sequence of 32-bit words. Each word is either a literal holding
// 31 raw bits, or a run of 31-bit blocks that are all zero or all one. Two
// encodings share one implementation through the Encoding type parameter:
//
//   - Concise: a run may name one bit inside its first block that is
//     flipped, so a sparse bit next to a long run costs no extra word.
//     Values range up to MaxConciseValue.
//   - WAH: plain runs with a wider run count. Values range up to MaxWAHValue.
//
// # Set Algebra
//
// And, Or, Xor and AndNot walk both operands word by word without
// decompressing, in O(words(a) + words(b)). The Count variants, Intersects
// and Equals run the same walk without building a result. FastUnion merges
// many sets, always combining the two smallest first.
//
// # Example Usage
//
//	a, _ := concise.Of[concise.Concise](1, 2, 3, 100, 1000)
//	b, _ := concise.Of[concise.Concise](0, 2, 3, 100, 3000)
//
//	both := a.And(b) // {2, 3, 100}
//	for v := range a.Or(b).All() {
//	    fmt.Println(v)
//	}
//
// # Persistence
//
// MarshalBinary and WriteTo emit the word buffer together with its logical
// length, highest member and a CRC32C. Decoding validates the words and
// rejects malformed buffers with ErrMalformedEncoding.
//
// # Concurrency
//
// A Set is not safe for concurrent mutation. Binary operations never modify
// their operands and always return a new set.
package concise
