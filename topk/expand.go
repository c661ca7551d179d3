package topk

import (
	"github.com/hupe1980/recgo/model"
)

// Expand converts a final merged partial into variable-length per-source
// results, trimming sentinel padding. Row r belongs to srcIDs[r]. Because
// rows are sorted descending, the first sentinel marks the true cutoff; a
// row with cutoff zero yields empty Items, not an error.
//
// A nil partial (a source block that saw no destination blocks) expands to
// empty Items for every source id.
func Expand(p *Partial, srcIDs []model.ID) []model.Recommendations {
	out := make([]model.Recommendations, len(srcIDs))

	if p == nil {
		for r, id := range srcIDs {
			out[r] = model.Recommendations{SourceID: id, Items: []model.Recommendation{}}
		}
		return out
	}

	for r, id := range srcIDs {
		ids, scores := p.Row(r)

		cut := 0
		for cut < len(scores) && scores[cut] != Sentinel {
			cut++
		}

		items := make([]model.Recommendation, cut)
		for i := 0; i < cut; i++ {
			items[i] = model.Recommendation{ID: ids[i], Score: scores[i]}
		}
		out[r] = model.Recommendations{SourceID: id, Items: items}
	}

	return out
}
