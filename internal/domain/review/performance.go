package review

// Achievement pairs an objective from the previous period with its
// recorded outcome.
type Achievement struct {
	Objective string `json:"objective"`
	Outcome   string `json:"outcome"`
}

// PastPerformance is the review-of-past-performance section: what was
// planned and what came of it, with a free-text summary.
type PastPerformance struct {
	Achievements []Achievement `json:"achievements"`
	Summary      string        `json:"summary"`
}

// NewPastPerformance carries last period's goals forward as objectives
// with empty outcomes to be filled in during the review.
func NewPastPerformance(objectives []string, summary string) *PastPerformance {
	p := &PastPerformance{Summary: summary}
	for _, objective := range objectives {
		p.Achievements = append(p.Achievements, Achievement{Objective: objective})
	}
	return p
}

// RecordOutcome sets the outcome for a known objective. Returns false if
// the objective is not part of this section.
func (p *PastPerformance) RecordOutcome(objective, outcome string) bool {
	for i := range p.Achievements {
		if p.Achievements[i].Objective == objective {
			p.Achievements[i].Outcome = outcome
			return true
		}
	}
	return false
}

// FutureGoals is the preview-of-future-performance section: planned goals
// for the coming period, with a free-text summary.
type FutureGoals struct {
	Goals   []string `json:"goals"`
	Summary string   `json:"summary"`
}

// NewFutureGoals builds the forward-looking section.
func NewFutureGoals(goals []string, summary string) *FutureGoals {
	return &FutureGoals{Goals: goals, Summary: summary}
}

// AddGoal appends a planned goal.
func (f *FutureGoals) AddGoal(goal string) {
	f.Goals = append(f.Goals, goal)
}

// RemoveGoal drops the goal at index. Returns false if out of range.
func (f *FutureGoals) RemoveGoal(index int) bool {
	if index < 0 || index >= len(f.Goals) {
		return false
	}
	f.Goals = append(f.Goals[:index], f.Goals[index+1:]...)
	return true
}
