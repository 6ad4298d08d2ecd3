// Package lifecycle enforces the case and hearing state machines and keeps
// the derived hearing fields on a case consistent.
package lifecycle

import (
	"time"

	"courtflow/internal/errors"
	"courtflow/internal/model"
)

var statusRank = map[model.CaseStatus]int{
	model.CaseStatusFiled:    0,
	model.CaseStatusAdmitted: 1,
	model.CaseStatusHearing:  2,
	model.CaseStatusJudgment: 3,
	model.CaseStatusClosed:   4,
	model.CaseStatusArchived: 5,
}

var stageRank = map[model.CaseStage]int{
	model.CaseStagePreliminary: 0,
	model.CaseStageTrial:       1,
	model.CaseStageFinal:       2,
}

// hearingTransitions lists the legal moves per hearing status. Completed and
// cancelled are terminal; an adjourned hearing may be re-listed.
var hearingTransitions = map[model.HearingStatus][]model.HearingStatus{
	model.HearingStatusScheduled: {model.HearingStatusOngoing, model.HearingStatusAdjourned, model.HearingStatusCancelled},
	model.HearingStatusOngoing:   {model.HearingStatusCompleted, model.HearingStatusAdjourned},
	model.HearingStatusAdjourned: {model.HearingStatusScheduled},
	model.HearingStatusCompleted: {},
	model.HearingStatusCancelled: {},
}

// ApplyCaseChange validates and applies a status and/or stage change to the
// case in memory. Empty values leave the corresponding axis untouched.
//
// Both axes advance one step at a time and never move backward. Entering
// judgment additionally requires the stage to be final after this same
// update; the engine applies the stage change first so that a single request
// may set stage=final and status=judgment together. AdmissionDate and
// JudgmentDate are set exactly once, at their transition.
func ApplyCaseChange(c *model.Case, status model.CaseStatus, stage model.CaseStage, now time.Time) error {
	if stage != "" && stage != c.Stage {
		to, ok := stageRank[stage]
		if !ok || to != stageRank[c.Stage]+1 {
			return errors.NewTransitionError("case stage", string(c.Stage), string(stage))
		}
		c.Stage = stage
	}

	if status != "" && status != c.Status {
		to, ok := statusRank[status]
		if !ok || to != statusRank[c.Status]+1 {
			return errors.NewTransitionError("case status", string(c.Status), string(status))
		}
		if status == model.CaseStatusJudgment && c.Stage != model.CaseStageFinal {
			return errors.NewTransitionError("case status", string(c.Status), string(status))
		}
		c.Status = status
		switch status {
		case model.CaseStatusAdmitted:
			if c.AdmissionDate == nil {
				t := now
				c.AdmissionDate = &t
			}
		case model.CaseStatusJudgment:
			if c.JudgmentDate == nil {
				t := now
				c.JudgmentDate = &t
			}
		}
	}

	return nil
}

// RegisterHearing applies the derived-field effects of creating a hearing on
// its parent case: the hearing count always grows by one, and the next
// hearing date moves forward only.
func RegisterHearing(c *model.Case, hearingDate time.Time) {
	c.HearingCount++
	if c.NextHearingDate == nil || hearingDate.After(*c.NextHearingDate) {
		t := hearingDate
		c.NextHearingDate = &t
	}
}

// TransitionHearing validates and applies a hearing status change. Adjourning
// requires a reason; an adjournment that names a next hearing date records it
// on the hearing, and the caller propagates it to the parent case.
func TransitionHearing(h *model.Hearing, to model.HearingStatus, reason string, next *time.Time) error {
	if to == h.Status || Terminal(h.Status) {
		return errors.NewTransitionError("hearing", string(h.Status), string(to))
	}
	allowed := hearingTransitions[h.Status]
	legal := false
	for _, s := range allowed {
		if s == to {
			legal = true
			break
		}
	}
	if !legal {
		return errors.NewTransitionError("hearing", string(h.Status), string(to))
	}

	if to == model.HearingStatusAdjourned {
		if reason == "" {
			return errors.NewTransitionError("hearing", string(h.Status), string(to))
		}
		h.AdjournReason = reason
		if next != nil {
			t := *next
			h.NextHearingDate = &t
		}
	}

	h.Status = to
	return nil
}

// Terminal reports whether a hearing status admits no further transitions.
func Terminal(s model.HearingStatus) bool {
	return len(hearingTransitions[s]) == 0
}
