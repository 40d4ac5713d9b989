package kyc

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrInvalidBirthYear = errors.New("birth year out of range")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrEmptyRegionCode  = errors.New("all three region codes are required")
	ErrEmptyPhoto       = errors.New("photo payload must not be empty")
	ErrBlankReason      = errors.New("reject reason must not be blank")
	ErrBlankNote        = errors.New("procedure note must not be blank")
)

var phoneRegex = regexp.MustCompile(`^0\d{1,2}-?\d{3,4}-?\d{4}$`)

type Phone struct {
	value string
}

func NewPhone(s string) (Phone, error) {
	trimmed := strings.TrimSpace(s)
	if !phoneRegex.MatchString(trimmed) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: trimmed}, nil
}

func (p Phone) String() string { return p.value }

// Region is the three-level administrative code triple. Codes are validated
// against the embedded directory at the usecase boundary.
type Region struct {
	Province    string
	District    string
	SubDistrict string
}

func NewRegion(province, district, subDistrict string) (Region, error) {
	if province == "" || district == "" || subDistrict == "" {
		return Region{}, ErrEmptyRegionCode
	}
	return Region{Province: province, District: district, SubDistrict: subDistrict}, nil
}

// Photo is either an inline payload (data URI or base64) or a remote URL.
type Photo struct {
	kind PhotoKind
	data string
}

func NewPhoto(kind PhotoKind, data string) (Photo, error) {
	if strings.TrimSpace(data) == "" {
		return Photo{}, ErrEmptyPhoto
	}
	return Photo{kind: kind, data: data}, nil
}

func (p Photo) Kind() PhotoKind { return p.kind }
func (p Photo) Data() string    { return p.data }
func (p Photo) IsZero() bool    { return p.data == "" }

// PhotoSet holds up to three photos, one per angle. Any side may be absent;
// the studio reviews whatever the customer provided.
type PhotoSet struct {
	Left  Photo
	Front Photo
	Right Photo
}

func NewPhotoSet(left, front, right Photo) PhotoSet {
	return PhotoSet{Left: left, Front: front, Right: right}
}

// Profile groups the customer-entered identity fields of a submission.
type Profile struct {
	Name           string
	Gender         Gender
	BirthYear      int
	Phone          Phone
	Region         Region
	AddressDetail  string
	SkinType       SkinType
	SkinTypeNote   string
	PriorTreatment bool
}

func (p Profile) Validate(now time.Time) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.BirthYear < 1900 || p.BirthYear > now.Year() {
		return ErrInvalidBirthYear
	}
	return nil
}
