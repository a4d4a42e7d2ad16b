package nbsvm

// EncodeSequence flattens a sparse count vector into a fixed-length term-ID
// sequence: each ID is repeated by its occurrence count, in ascending-ID
// order. Short sequences are left-padded with PadID; long ones keep only the
// trailing `length` entries, which drops the lowest-ID expansions first.
func EncodeSequence(vec DocVector, length int) []int {
	expanded := make([]int, 0, vec.Total())
	for i, id := range vec.IDs {
		for n := 0; n < vec.Counts[i]; n++ {
			expanded = append(expanded, id)
		}
	}

	seq := make([]int, length)
	if len(expanded) >= length {
		copy(seq, expanded[len(expanded)-length:])
		return seq
	}
	copy(seq[length-len(expanded):], expanded)
	return seq
}

// EncodeSequences encodes every vector to the same fixed length.
func EncodeSequences(vectors []DocVector, length int) [][]int {
	seqs := make([][]int, len(vectors))
	for i, vec := range vectors {
		seqs[i] = EncodeSequence(vec, length)
	}
	return seqs
}
