package topk

// Merge combines two partial top-K results for the same source rows into a
// single result of the same width, keeping the K largest entries per row
// from the union of both inputs.
//
// Merge is the combine operation of the key-grouped reduction over all block
// pairs sharing a source block: nil is the identity (the first contribution
// is returned verbatim), and with the tie rule below the operation is
// associative and commutative as a set of (id, score) pairs, so contribution
// order does not matter.
//
// On equal scores the candidate from b is taken and only b's pointer
// advances. A naive formulation that advances neither side on equality
// stalls both pointers; the explicit rule keeps the merge total.
func Merge(a, b *Partial, k int) *Partial {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.rows != b.rows || a.k != k || b.k != k {
		panic("topk: merge of mismatched partials")
	}

	out := newPartial(a.rows, k)

	for r := 0; r < a.rows; r++ {
		base := r * k
		i, j := 0, 0
		for o := 0; o < k; o++ {
			// i+j == o < k, so neither pointer can run off its row.
			if b.scores[base+j] >= a.scores[base+i] {
				out.ids[base+o] = b.ids[base+j]
				out.scores[base+o] = b.scores[base+j]
				j++
			} else {
				out.ids[base+o] = a.ids[base+i]
				out.scores[base+o] = a.scores[base+i]
				i++
			}
		}
	}

	return out
}
