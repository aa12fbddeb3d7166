// Package exam holds the compiled-in exam content: the candidate-facing
// paper and the answer key. Both are process-wide immutable configuration;
// nothing here is loaded from external files.
package exam

// KeyEntry maps one objective question id to its accepted answers. Accepted
// values are stored pre-normalized (trimmed, lowercase). Multiple-choice
// questions carry the single accepted option id; short answers may list
// several accepted spellings.
type KeyEntry struct {
	ID       string
	Accepted []string
}

// AnswerKey is the full objective key in paper order.
type AnswerKey struct {
	Listening []KeyEntry
	Reading   []KeyEntry
}

// Total returns the objective question count (the numeric score base).
func (k AnswerKey) Total() int {
	return len(k.Listening) + len(k.Reading)
}

// Key returns the answer key for the placement exam.
func Key() AnswerKey {
	return AnswerKey{
		Listening: []KeyEntry{
			{ID: "q1", Accepted: []string{"miller"}},
			{ID: "q2", Accepted: []string{"0770918452"}},
			{ID: "q3", Accepted: []string{"toothache", "a toothache"}},
			{ID: "q4", Accepted: []string{"wednesday"}},
			{ID: "q5", Accepted: []string{"10:30", "10:30 am", "10:30am", "half past ten"}},
		},
		Reading: []KeyEntry{
			{ID: "r1", Accepted: []string{"b"}},
			{ID: "r2", Accepted: []string{"b"}},
			{ID: "r3", Accepted: []string{"b"}},
			{ID: "r4", Accepted: []string{"b"}},
			{ID: "r5", Accepted: []string{"b"}},
			{ID: "r6", Accepted: []string{"accessible"}},
			{ID: "r7", Accepted: []string{"weight"}},
			{ID: "r8", Accepted: []string{"injuries"}},
			{ID: "r9", Accepted: []string{"stress"}},
			{ID: "r10", Accepted: []string{"natural"}},
		},
	}
}
