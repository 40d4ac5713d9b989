package kyc

import "errors"

var (
	ErrInvalidStatus          = errors.New("invalid kyc status")
	ErrInvalidGender          = errors.New("invalid gender")
	ErrInvalidSkinType        = errors.New("invalid skin type")
	ErrInvalidProcedureStatus = errors.New("invalid procedure status")
	ErrInvalidPhotoKind       = errors.New("invalid photo kind")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

func NewGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderFemale, GenderMale, GenderOther:
		return Gender(s), nil
	default:
		return "", ErrInvalidGender
	}
}

type SkinType string

const (
	SkinNormal      SkinType = "normal"
	SkinDry         SkinType = "dry"
	SkinOily        SkinType = "oily"
	SkinCombination SkinType = "combination"
	SkinSensitive   SkinType = "sensitive"
)

func NewSkinType(s string) (SkinType, error) {
	switch SkinType(s) {
	case SkinNormal, SkinDry, SkinOily, SkinCombination, SkinSensitive:
		return SkinType(s), nil
	default:
		return "", ErrInvalidSkinType
	}
}

type ProcedureStatus string

const (
	ProcedureNotStarted ProcedureStatus = "not_started"
	ProcedureInProgress ProcedureStatus = "in_progress"
	ProcedureCompleted  ProcedureStatus = "completed"
)

func NewProcedureStatus(s string) (ProcedureStatus, error) {
	switch ProcedureStatus(s) {
	case ProcedureNotStarted, ProcedureInProgress, ProcedureCompleted:
		return ProcedureStatus(s), nil
	default:
		return "", ErrInvalidProcedureStatus
	}
}

func (s ProcedureStatus) String() string { return string(s) }

// PhotoKind distinguishes inline payloads from externally hosted images.
type PhotoKind string

const (
	PhotoInline PhotoKind = "inline"
	PhotoRemote PhotoKind = "remote"
)

func NewPhotoKind(s string) (PhotoKind, error) {
	switch PhotoKind(s) {
	case PhotoInline, PhotoRemote:
		return PhotoKind(s), nil
	default:
		return "", ErrInvalidPhotoKind
	}
}
