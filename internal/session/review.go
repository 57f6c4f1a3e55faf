package session

import "github.com/abhisek/wordquiz/internal/words"

// ReviewPhase is the tag of a ReviewState.
type ReviewPhase int

const (
	ReviewInactive         ReviewPhase = iota // No review in progress
	ReviewAwaitingDecision                    // Learner must start or skip
	ReviewActive                              // Practicing the review set
	ReviewCompleted                           // Review finished, re-init pending
)

func (p ReviewPhase) String() string {
	switch p {
	case ReviewAwaitingDecision:
		return "awaiting decision"
	case ReviewActive:
		return "active"
	case ReviewCompleted:
		return "completed"
	default:
		return "inactive"
	}
}

// ReviewState is the review cycle state. Message is set while awaiting a
// decision or after completion; Set is set while active.
type ReviewState struct {
	Phase   ReviewPhase
	Message string
	Set     words.Set
}

// ReviewManager tracks misses within the current group and drives the
// review sub-state machine.
type ReviewManager struct {
	state  ReviewState
	group  words.Set
	missed map[string]bool
}

// NewReviewManager returns a manager with no group.
func NewReviewManager() *ReviewManager {
	return &ReviewManager{missed: make(map[string]bool)}
}

// State returns the current review state.
func (r *ReviewManager) State() ReviewState { return r.state }

// BeginGroup starts tracking a new group. Earlier misses are forgotten.
func (r *ReviewManager) BeginGroup(set words.Set) {
	r.group = set
	r.missed = make(map[string]bool)
}

// Record notes the verdict for w. A word is a miss if any attempt at it was
// incorrect, even if a later retry succeeded.
func (r *ReviewManager) Record(w words.Word, correct bool) {
	if !correct {
		r.missed[w.Word] = true
	}
}

// Misses returns the missed words of the group, deduplicated, in the order
// they appear in the group.
func (r *ReviewManager) Misses() words.Set {
	var out words.Set
	seen := make(map[string]bool, len(r.missed))
	for _, w := range r.group {
		if r.missed[w.Word] && !seen[w.Word] {
			seen[w.Word] = true
			out = append(out, w)
		}
	}
	return out
}

// Enter moves to AwaitingDecision.
func (r *ReviewManager) Enter(message string) {
	r.state = ReviewState{Phase: ReviewAwaitingDecision, Message: message}
}

// Awaiting reports whether a start/skip decision is pending.
func (r *ReviewManager) Awaiting() bool {
	return r.state.Phase == ReviewAwaitingDecision
}

// Start activates the review with the set returned by the backend. An empty
// set falls back to the group's misses. The returned set becomes the new
// working set; it is empty when there is nothing to review.
func (r *ReviewManager) Start(returned words.Set) words.Set {
	set := returned
	if len(set) == 0 {
		set = r.Misses()
	}
	if len(set) == 0 {
		r.state = ReviewState{}
		return nil
	}
	r.Activate(set)
	return set
}

// Activate marks set as the active review set and starts tracking it.
func (r *ReviewManager) Activate(set words.Set) {
	r.state = ReviewState{Phase: ReviewActive, Set: set}
	r.BeginGroup(set)
}

// Skip abandons the review and returns to Inactive.
func (r *ReviewManager) Skip() {
	r.state = ReviewState{}
}

// Complete records the completion message. The state is discarded by the
// re-initialization that follows.
func (r *ReviewManager) Complete(message string) {
	r.state = ReviewState{Phase: ReviewCompleted, Message: message}
}

// Reset discards all review state and misses.
func (r *ReviewManager) Reset() {
	r.state = ReviewState{}
	r.group = nil
	r.missed = make(map[string]bool)
}
