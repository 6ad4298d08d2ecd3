package model

import "time"

// CaseStatus tracks a case's procedural progress. Transitions are stepwise
// forward only.
type CaseStatus string

const (
	CaseStatusFiled    CaseStatus = "filed"
	CaseStatusAdmitted CaseStatus = "admitted"
	CaseStatusHearing  CaseStatus = "hearing"
	CaseStatusJudgment CaseStatus = "judgment"
	CaseStatusClosed   CaseStatus = "closed"
	CaseStatusArchived CaseStatus = "archived"
)

// CaseStage tracks the trial phase, independent of status except for the
// judgment rule enforced by the lifecycle engine.
type CaseStage string

const (
	CaseStagePreliminary CaseStage = "preliminary"
	CaseStageTrial       CaseStage = "trial"
	CaseStageFinal       CaseStage = "final"
)

// CasePriority is free-form but seeded with the usual three levels.
type CasePriority string

const (
	CasePriorityLow    CasePriority = "low"
	CasePriorityMedium CasePriority = "medium"
	CasePriorityHigh   CasePriority = "high"
)

// Case represents a legal case.
type Case struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CaseNumber  string `json:"case_number" gorm:"uniqueIndex;size:100;not null"`
	Title       string `json:"title" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text"`

	CourtID    uint     `json:"court_id" gorm:"not null;index"`
	Court      Court    `json:"court,omitempty" gorm:"foreignKey:CourtID"`
	CaseTypeID uint     `json:"case_type_id" gorm:"not null;index"`
	CaseType   CaseType `json:"case_type,omitempty" gorm:"foreignKey:CaseTypeID"`
	FiledByID  uint     `json:"filed_by_id" gorm:"not null;index"`
	FiledBy    User     `json:"filed_by,omitempty" gorm:"foreignKey:FiledByID"`

	Status   CaseStatus   `json:"status" gorm:"size:20;not null;default:'filed';index"`
	Stage    CaseStage    `json:"stage" gorm:"size:20;not null;default:'preliminary'"`
	Priority CasePriority `json:"priority" gorm:"size:20;not null;default:'medium'"`

	FilingDate time.Time `json:"filing_date" gorm:"not null"`
	// AdmissionDate and JudgmentDate are set exactly once, at the transition
	// into their status, and are immutable afterwards.
	AdmissionDate   *time.Time `json:"admission_date,omitempty"`
	JudgmentDate    *time.Time `json:"judgment_date,omitempty"`
	NextHearingDate *time.Time `json:"next_hearing_date,omitempty"`
	HearingCount    int        `json:"hearing_count" gorm:"not null;default:0"`

	Public    bool `json:"public" gorm:"not null;default:false"`
	Sensitive bool `json:"sensitive" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HearingStatus tracks a hearing's own lifecycle. Completed and cancelled
// are terminal.
type HearingStatus string

const (
	HearingStatusScheduled HearingStatus = "scheduled"
	HearingStatusOngoing   HearingStatus = "ongoing"
	HearingStatusCompleted HearingStatus = "completed"
	HearingStatusAdjourned HearingStatus = "adjourned"
	HearingStatusCancelled HearingStatus = "cancelled"
)

// Hearing belongs to exactly one case.
type Hearing struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	CaseID  uint `json:"case_id" gorm:"not null;index"`
	Case    Case `json:"-" gorm:"foreignKey:CaseID"`
	JudgeID uint `json:"judge_id" gorm:"not null;index"`
	Judge   User `json:"judge,omitempty" gorm:"foreignKey:JudgeID"`

	Status      HearingStatus `json:"status" gorm:"size:20;not null;default:'scheduled'"`
	HearingDate time.Time     `json:"hearing_date" gorm:"not null"`
	Purpose     string        `json:"purpose" gorm:"size:255"`
	// AdjournReason is required whenever the hearing is adjourned.
	AdjournReason   string     `json:"adjourn_reason,omitempty" gorm:"size:255"`
	NextHearingDate *time.Time `json:"next_hearing_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CaseParty links a person (optionally a registered identity) to a case.
// Parties are deactivated, never deleted.
type CaseParty struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	CaseID    uint   `json:"case_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"size:255;not null"`
	PartyType string `json:"party_type" gorm:"size:50;not null"` // petitioner, respondent, advocate, witness
	UserID    *uint  `json:"user_id,omitempty" gorm:"index"`
	Advocate  string `json:"advocate,omitempty" gorm:"size:255"`
	Active    bool   `json:"active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Document holds file metadata for a case; the binary itself lives in an
// external store addressed by StorageKey.
type Document struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	CaseID       uint   `json:"case_id" gorm:"not null;index"`
	Title        string `json:"title" gorm:"size:255;not null"`
	DocType      string `json:"doc_type" gorm:"size:50"`
	StorageKey   string `json:"storage_key" gorm:"uniqueIndex;size:64;not null"`
	UploadedByID uint   `json:"uploaded_by_id" gorm:"not null;index"`
	Public       bool   `json:"public" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bookmark marks a case as followed by a user.
type Bookmark struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_bookmark_user_case"`
	CaseID uint `json:"case_id" gorm:"not null;uniqueIndex:idx_bookmark_user_case"`

	CreatedAt time.Time `json:"created_at"`
}

// Notification is an in-app notification row; delivery to external channels
// happens downstream off the event stream.
type Notification struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	CaseID    *uint  `json:"case_id,omitempty" gorm:"index"`
	HearingID *uint  `json:"hearing_id,omitempty"`
	Kind      string `json:"kind" gorm:"size:50;not null"`
	Message   string `json:"message" gorm:"size:500;not null"`
	Read      bool   `json:"read" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
}
