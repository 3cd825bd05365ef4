package model

// SurveyStep is the linear survey flow state. The only backward edge is
// watching → awareness; everything else moves forward one step.
type SurveyStep string

const (
	StepAwareness SurveyStep = "awareness"
	StepWatching  SurveyStep = "watching"
	StepAbout     SurveyStep = "about"
	StepComplete  SurveyStep = "complete"
)

// stepTransitions is the allowed-transition table.
var stepTransitions = map[SurveyStep][]SurveyStep{
	StepAwareness: {StepWatching},
	StepWatching:  {StepAbout, StepAwareness},
	StepAbout:     {StepComplete},
	StepComplete:  {},
}

// Valid reports whether s is a known survey step.
func (s SurveyStep) Valid() bool {
	_, ok := stepTransitions[s]
	return ok
}

// CanTransition reports whether moving from s to next is allowed.
func (s SurveyStep) CanTransition(next SurveyStep) bool {
	for _, t := range stepTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Next returns the forward step from s. Complete is terminal and returns
// itself.
func (s SurveyStep) Next() SurveyStep {
	switch s {
	case StepAwareness:
		return StepWatching
	case StepWatching:
		return StepAbout
	case StepAbout:
		return StepComplete
	default:
		return StepComplete
	}
}
