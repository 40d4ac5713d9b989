package kyc

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotPending          = errors.New("record is not pending review")
	ErrNotApproved         = errors.New("record is not approved")
	ErrProcedureNotStarted = errors.New("procedure has not been started")
	ErrProcedureFinished   = errors.New("procedure is already completed")
)

// Record is the per-user identity submission. One record per user; a
// resubmission overwrites the profile and photos in place.
type Record struct {
	userID               uuid.UUID
	profile              Profile
	photos               PhotoSet
	status               Status
	rejectReason         *string
	submittedAt          time.Time
	reviewedAt           *time.Time
	noticeAcknowledged   bool
	procedureStatus      ProcedureStatus
	procedureNote        *string
	procedureCompletedAt *time.Time
}

func NewRecord(userID uuid.UUID, profile Profile, photos PhotoSet, now time.Time) (*Record, error) {
	if err := profile.Validate(now); err != nil {
		return nil, err
	}
	return &Record{
		userID:          userID,
		profile:         profile,
		photos:          photos,
		status:          StatusPending,
		submittedAt:     now,
		procedureStatus: ProcedureNotStarted,
	}, nil
}

func ReconstructRecord(
	userID uuid.UUID,
	profile Profile,
	photos PhotoSet,
	status Status,
	rejectReason *string,
	submittedAt time.Time,
	reviewedAt *time.Time,
	noticeAcknowledged bool,
	procedureStatus ProcedureStatus,
	procedureNote *string,
	procedureCompletedAt *time.Time,
) *Record {
	return &Record{
		userID:               userID,
		profile:              profile,
		photos:               photos,
		status:               status,
		rejectReason:         rejectReason,
		submittedAt:          submittedAt,
		reviewedAt:           reviewedAt,
		noticeAcknowledged:   noticeAcknowledged,
		procedureStatus:      procedureStatus,
		procedureNote:        procedureNote,
		procedureCompletedAt: procedureCompletedAt,
	}
}

// Resubmit replaces the profile and photos and always returns the record to
// pending review, clearing any earlier rejection. The notice flag and
// procedure fields survive.
func (r *Record) Resubmit(profile Profile, photos PhotoSet, now time.Time) error {
	if err := profile.Validate(now); err != nil {
		return err
	}
	r.profile = profile
	r.photos = photos
	r.status = StatusPending
	r.rejectReason = nil
	r.submittedAt = now
	r.reviewedAt = nil
	return nil
}

func (r *Record) Approve(now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusApproved
	at := now
	r.reviewedAt = &at
	return nil
}

func (r *Record) Reject(reason string, now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return ErrBlankReason
	}
	r.status = StatusRejected
	r.rejectReason = &trimmed
	at := now
	r.reviewedAt = &at
	return nil
}

// AcknowledgeNotice records consent to the pre-procedure notice. Idempotent.
func (r *Record) AcknowledgeNotice() error {
	if r.status != StatusApproved {
		return ErrNotApproved
	}
	r.noticeAcknowledged = true
	return nil
}

// CanBook is the reservation gate: approved and notice acknowledged.
func (r *Record) CanBook() bool {
	return r.status == StatusApproved && r.noticeAcknowledged
}

func (r *Record) StartProcedure() error {
	if r.status != StatusApproved {
		return ErrNotApproved
	}
	if r.procedureStatus == ProcedureCompleted {
		return ErrProcedureFinished
	}
	r.procedureStatus = ProcedureInProgress
	return nil
}

func (r *Record) CompleteProcedure(note string, now time.Time) error {
	if r.procedureStatus != ProcedureInProgress {
		return ErrProcedureNotStarted
	}
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return ErrBlankNote
	}
	r.procedureStatus = ProcedureCompleted
	r.procedureNote = &trimmed
	at := now
	r.procedureCompletedAt = &at
	return nil
}

func (r *Record) UserID() uuid.UUID                 { return r.userID }
func (r *Record) Profile() Profile                  { return r.profile }
func (r *Record) Photos() PhotoSet                  { return r.photos }
func (r *Record) Status() Status                    { return r.status }
func (r *Record) RejectReason() *string             { return r.rejectReason }
func (r *Record) SubmittedAt() time.Time            { return r.submittedAt }
func (r *Record) ReviewedAt() *time.Time            { return r.reviewedAt }
func (r *Record) NoticeAcknowledged() bool          { return r.noticeAcknowledged }
func (r *Record) ProcedureStatus() ProcedureStatus  { return r.procedureStatus }
func (r *Record) ProcedureNote() *string            { return r.procedureNote }
func (r *Record) ProcedureCompletedAt() *time.Time  { return r.procedureCompletedAt }
