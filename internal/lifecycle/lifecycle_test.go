package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"courtflow/internal/errors"
	"courtflow/internal/model"
)

func newCase(status model.CaseStatus, stage model.CaseStage) *model.Case {
	return &model.Case{Status: status, Stage: stage}
}

func TestApplyCaseChange_Status(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		from      model.CaseStatus
		stage     model.CaseStage
		to        model.CaseStatus
		expectErr bool
	}{
		{"filed to admitted", model.CaseStatusFiled, model.CaseStagePreliminary, model.CaseStatusAdmitted, false},
		{"admitted to hearing", model.CaseStatusAdmitted, model.CaseStagePreliminary, model.CaseStatusHearing, false},
		{"hearing to judgment at final stage", model.CaseStatusHearing, model.CaseStageFinal, model.CaseStatusJudgment, false},
		{"judgment to closed", model.CaseStatusJudgment, model.CaseStageFinal, model.CaseStatusClosed, false},
		{"closed to archived", model.CaseStatusClosed, model.CaseStageFinal, model.CaseStatusArchived, false},
		{"filed to judgment skips steps", model.CaseStatusFiled, model.CaseStageFinal, model.CaseStatusJudgment, true},
		{"filed to hearing skips admitted", model.CaseStatusFiled, model.CaseStagePreliminary, model.CaseStatusHearing, true},
		{"backward move rejected", model.CaseStatusHearing, model.CaseStagePreliminary, model.CaseStatusAdmitted, true},
		{"judgment without final stage", model.CaseStatusHearing, model.CaseStageTrial, model.CaseStatusJudgment, true},
		{"unknown status rejected", model.CaseStatusFiled, model.CaseStagePreliminary, model.CaseStatus("bogus"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCase(tt.from, tt.stage)
			err := ApplyCaseChange(c, tt.to, "", now)
			if tt.expectErr {
				assert.Error(t, err)
				var terr *errors.TransitionError
				assert.ErrorAs(t, err, &terr)
				assert.Equal(t, tt.from, c.Status, "failed transition must not mutate")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, c.Status)
			}
		})
	}
}

func TestApplyCaseChange_Stage(t *testing.T) {
	now := time.Now()

	c := newCase(model.CaseStatusAdmitted, model.CaseStagePreliminary)
	assert.NoError(t, ApplyCaseChange(c, "", model.CaseStageTrial, now))
	assert.Equal(t, model.CaseStageTrial, c.Stage)

	// skipping trial is rejected
	c = newCase(model.CaseStatusAdmitted, model.CaseStagePreliminary)
	assert.Error(t, ApplyCaseChange(c, "", model.CaseStageFinal, now))
	assert.Equal(t, model.CaseStagePreliminary, c.Stage)

	// backward is rejected
	c = newCase(model.CaseStatusAdmitted, model.CaseStageFinal)
	assert.Error(t, ApplyCaseChange(c, "", model.CaseStageTrial, now))
}

func TestApplyCaseChange_StageAppliesBeforeStatus(t *testing.T) {
	// One request may complete the final stage and enter judgment together.
	now := time.Now()
	c := newCase(model.CaseStatusHearing, model.CaseStageTrial)

	err := ApplyCaseChange(c, model.CaseStatusJudgment, model.CaseStageFinal, now)
	assert.NoError(t, err)
	assert.Equal(t, model.CaseStatusJudgment, c.Status)
	assert.Equal(t, model.CaseStageFinal, c.Stage)
	assert.NotNil(t, c.JudgmentDate)
}

func TestApplyCaseChange_DatesSetOnce(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-24 * time.Hour)

	c := newCase(model.CaseStatusFiled, model.CaseStagePreliminary)
	assert.NoError(t, ApplyCaseChange(c, model.CaseStatusAdmitted, "", earlier))
	assert.NotNil(t, c.AdmissionDate)
	first := *c.AdmissionDate

	// A pre-set admission date survives later transitions.
	assert.NoError(t, ApplyCaseChange(c, model.CaseStatusHearing, "", now))
	assert.Equal(t, first, *c.AdmissionDate)

	c.Stage = model.CaseStageFinal
	assert.NoError(t, ApplyCaseChange(c, model.CaseStatusJudgment, "", now))
	judgment := *c.JudgmentDate
	assert.NoError(t, ApplyCaseChange(c, model.CaseStatusClosed, "", now.Add(time.Hour)))
	assert.Equal(t, judgment, *c.JudgmentDate)
}

func TestApplyCaseChange_NoopLeavesCase(t *testing.T) {
	now := time.Now()
	c := newCase(model.CaseStatusAdmitted, model.CaseStageTrial)

	assert.NoError(t, ApplyCaseChange(c, "", "", now))
	assert.NoError(t, ApplyCaseChange(c, model.CaseStatusAdmitted, model.CaseStageTrial, now))
	assert.Equal(t, model.CaseStatusAdmitted, c.Status)
	assert.Equal(t, model.CaseStageTrial, c.Stage)
	assert.Nil(t, c.AdmissionDate)
}

func TestRegisterHearing(t *testing.T) {
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	c := newCase(model.CaseStatusHearing, model.CaseStageTrial)

	RegisterHearing(c, base)
	assert.Equal(t, 1, c.HearingCount)
	assert.Equal(t, base, *c.NextHearingDate)

	// A later hearing moves the date forward.
	later := base.Add(48 * time.Hour)
	RegisterHearing(c, later)
	assert.Equal(t, 2, c.HearingCount)
	assert.Equal(t, later, *c.NextHearingDate)

	// An earlier hearing still counts but never moves the date back.
	RegisterHearing(c, base.Add(-48*time.Hour))
	assert.Equal(t, 3, c.HearingCount)
	assert.Equal(t, later, *c.NextHearingDate)
}

func TestTransitionHearing(t *testing.T) {
	next := time.Date(2026, 4, 2, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		from      model.HearingStatus
		to        model.HearingStatus
		reason    string
		expectErr bool
	}{
		{"scheduled to ongoing", model.HearingStatusScheduled, model.HearingStatusOngoing, "", false},
		{"scheduled to cancelled", model.HearingStatusScheduled, model.HearingStatusCancelled, "", false},
		{"ongoing to completed", model.HearingStatusOngoing, model.HearingStatusCompleted, "", false},
		{"ongoing to adjourned with reason", model.HearingStatusOngoing, model.HearingStatusAdjourned, "witness unavailable", false},
		{"adjourned relisted", model.HearingStatusAdjourned, model.HearingStatusScheduled, "", false},
		{"adjourn without reason", model.HearingStatusScheduled, model.HearingStatusAdjourned, "", true},
		{"scheduled to completed skips ongoing", model.HearingStatusScheduled, model.HearingStatusCompleted, "", true},
		{"completed is terminal", model.HearingStatusCompleted, model.HearingStatusOngoing, "", true},
		{"cancelled is terminal", model.HearingStatusCancelled, model.HearingStatusScheduled, "", true},
		{"same state rejected", model.HearingStatusScheduled, model.HearingStatusScheduled, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &model.Hearing{Status: tt.from}
			err := TransitionHearing(h, tt.to, tt.reason, &next)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Equal(t, tt.from, h.Status)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, h.Status)
				if tt.to == model.HearingStatusAdjourned {
					assert.Equal(t, tt.reason, h.AdjournReason)
					assert.Equal(t, next, *h.NextHearingDate)
				}
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(model.HearingStatusCompleted))
	assert.True(t, Terminal(model.HearingStatusCancelled))
	assert.False(t, Terminal(model.HearingStatusScheduled))
	assert.False(t, Terminal(model.HearingStatusOngoing))
	assert.False(t, Terminal(model.HearingStatusAdjourned))
}
