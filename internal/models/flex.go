package models

import "time"

// FlexStatus is the lifecycle state of a flex period.
type FlexStatus string

const (
	FlexStatusUpcoming  FlexStatus = "upcoming"
	FlexStatusAvailable FlexStatus = "available"
	FlexStatusClosed    FlexStatus = "closed"
)

// FlexPeriod is the registration aggregate: the period row plus every
// option and its enrolled student set. The version column serialises all
// writes against the aggregate.
type FlexPeriod struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Status    FlexStatus `db:"status" json:"status"`
	Version   int64      `db:"version" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`

	Options []FlexOption `json:"options"`
}

// FlexOption is one elective session within a period.
type FlexOption struct {
	ID       string `db:"id" json:"id"`
	PeriodID string `db:"period_id" json:"-"`
	Title    string `db:"title" json:"title"`
	Room     string `db:"room" json:"room"`
	Teacher  string `db:"teacher" json:"teacher"`
	Capacity int    `db:"capacity" json:"capacity"`
	Position int    `db:"position" json:"-"`

	Enrolled []string `json:"enrolled"`
}

// Option returns the option with the given id, or nil.
func (p *FlexPeriod) Option(optionID string) *FlexOption {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i]
		}
	}
	return nil
}

// EnrolledOption returns the option the student currently occupies, or nil.
func (p *FlexPeriod) EnrolledOption(studentID string) *FlexOption {
	for i := range p.Options {
		if p.Options[i].HasStudent(studentID) {
			return &p.Options[i]
		}
	}
	return nil
}

// HasStudent reports whether the student holds a seat in the option.
func (o *FlexOption) HasStudent(studentID string) bool {
	for _, id := range o.Enrolled {
		if id == studentID {
			return true
		}
	}
	return false
}

// FlexPeriodSummary is the listing row for the flexes screen.
type FlexPeriodSummary struct {
	ID     string     `db:"id" json:"id"`
	Name   string     `db:"name" json:"name"`
	Status FlexStatus `db:"status" json:"status"`
}

// FlexOptionView is the display shape for one option.
type FlexOptionView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Room          string `json:"room"`
	Teacher       string `json:"teacher"`
	Capacity      int    `json:"capacity"`
	EnrolledCount int    `json:"enrolled_count"`
}

// FlexPeriodView is the display shape for the pick-flex screen.
type FlexPeriodView struct {
	Name    string           `json:"name"`
	Status  FlexStatus       `json:"status"`
	Options []FlexOptionView `json:"options"`
}

// CommitOutcome classifies the result of a registration commit.
type CommitOutcome string

const (
	CommitCommitted          CommitOutcome = "COMMITTED"
	CommitPeriodNotFound     CommitOutcome = "PERIOD_NOT_FOUND"
	CommitOptionNotFound     CommitOutcome = "OPTION_NOT_FOUND"
	CommitPeriodNotAvailable CommitOutcome = "PERIOD_NOT_AVAILABLE"
	CommitOptionFull         CommitOutcome = "OPTION_FULL"
)

// CommitResult reports what a registration commit did. Transferred is set
// when the student moved from another option; NoChange when the student
// already held the target seat and the commit was a no-op.
type CommitResult struct {
	Outcome     CommitOutcome
	Transferred bool
	NoChange    bool
}

// RegistrationResult is the success payload returned to the client.
type RegistrationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
