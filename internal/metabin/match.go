package metabin

// Match is a BLAST-style "hit" of a query contig against a reference genome.
//
// The engine never runs the aligner itself. Hit records arrive pre-parsed from
// the driver layer, one Match per HSP.
type Match struct {
	// QueryID of the contig that was BLASTed
	QueryID string

	// SubjectID of the sequence hit in the reference genome
	SubjectID string

	// Identity is the percent identity of the alignment (0-100)
	Identity float64

	// AlignedLength is the number of aligned bases, gaps included
	AlignedLength int

	// SubjectStart of the alignment on the subject (1-indexed)
	SubjectStart int

	// SubjectEnd of the alignment on the subject (1-indexed)
	SubjectEnd int

	// Strand is +1 or -1
	Strand int

	// EValue of the hit. Carried for interchange, not used in scoring
	EValue float64
}

// Span returns the length of the alignment on the subject sequence.
func (m *Match) Span() int {
	if m.SubjectEnd > m.SubjectStart {
		return m.SubjectEnd - m.SubjectStart
	}
	return m.SubjectStart - m.SubjectEnd
}
