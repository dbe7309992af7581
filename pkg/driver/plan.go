package driver

// InputPlan is the ordered queue of scripted answers for one run. The cursor
// is advanced only by the feeder goroutine that owns the plan during a run.
type InputPlan struct {
	answers []string
	cursor  int
}

// NewInputPlan builds a plan over the given answers.
func NewInputPlan(answers []string) *InputPlan {
	return &InputPlan{answers: answers}
}

// Next returns the answer at the cursor and advances it. ok is false once the
// plan is exhausted.
func (p *InputPlan) Next() (answer string, ok bool) {
	if p.cursor >= len(p.answers) {
		return "", false
	}
	answer = p.answers[p.cursor]
	p.cursor++
	return answer, true
}

// Len returns the total number of scripted answers.
func (p *InputPlan) Len() int {
	return len(p.answers)
}

// Remaining returns how many answers have not yet been delivered.
func (p *InputPlan) Remaining() int {
	return len(p.answers) - p.cursor
}
