//go:build unit

package builder

import (
	"time"

	domkyc "brow-studio-api/internal/domain/kyc"

	"github.com/google/uuid"
)

type KycBuilder struct {
	UserID         uuid.UUID
	Name           string
	Gender         string
	BirthYear      int
	Phone          string
	Province       string
	District       string
	SubDistrict    string
	AddressDetail  string
	SkinType       string
	SkinTypeNote   string
	PriorTreatment bool
	LeftPhoto      string
	FrontPhoto     string
	RightPhoto     string
	Now            time.Time
}

func NewKycBuilder() *KycBuilder {
	return &KycBuilder{
		UserID:         uuid.New(),
		Name:           "Kim Jiyoung",
		Gender:         "female",
		BirthYear:      1994,
		Phone:          "010-1234-5678",
		Province:       "11",
		District:       "11680",
		SubDistrict:    "1168010100",
		AddressDetail:  "101-1001",
		SkinType:       "combination",
		SkinTypeNote:   "",
		PriorTreatment: false,
		LeftPhoto:      "https://cdn.example.com/p/left.jpg",
		FrontPhoto:     "https://cdn.example.com/p/front.jpg",
		RightPhoto:     "https://cdn.example.com/p/right.jpg",
		Now:            time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func (b *KycBuilder) With(mutate func(*KycBuilder)) *KycBuilder {
	mutate(b)
	return b
}

func (b *KycBuilder) BuildProfile() (domkyc.Profile, error) {
	gender, err := domkyc.NewGender(b.Gender)
	if err != nil {
		return domkyc.Profile{}, err
	}
	phone, err := domkyc.NewPhone(b.Phone)
	if err != nil {
		return domkyc.Profile{}, err
	}
	region, err := domkyc.NewRegion(b.Province, b.District, b.SubDistrict)
	if err != nil {
		return domkyc.Profile{}, err
	}
	skinType, err := domkyc.NewSkinType(b.SkinType)
	if err != nil {
		return domkyc.Profile{}, err
	}
	return domkyc.Profile{
		Name:           b.Name,
		Gender:         gender,
		BirthYear:      b.BirthYear,
		Phone:          phone,
		Region:         region,
		AddressDetail:  b.AddressDetail,
		SkinType:       skinType,
		SkinTypeNote:   b.SkinTypeNote,
		PriorTreatment: b.PriorTreatment,
	}, nil
}

func (b *KycBuilder) BuildPhotos() (domkyc.PhotoSet, error) {
	toPhoto := func(data string) (domkyc.Photo, error) {
		if data == "" {
			return domkyc.Photo{}, nil
		}
		return domkyc.NewPhoto(domkyc.PhotoRemote, data)
	}
	left, err := toPhoto(b.LeftPhoto)
	if err != nil {
		return domkyc.PhotoSet{}, err
	}
	front, err := toPhoto(b.FrontPhoto)
	if err != nil {
		return domkyc.PhotoSet{}, err
	}
	right, err := toPhoto(b.RightPhoto)
	if err != nil {
		return domkyc.PhotoSet{}, err
	}
	return domkyc.NewPhotoSet(left, front, right), nil
}

func (b *KycBuilder) BuildDomain() (*domkyc.Record, error) {
	profile, err := b.BuildProfile()
	if err != nil {
		return nil, err
	}
	photos, err := b.BuildPhotos()
	if err != nil {
		return nil, err
	}
	return domkyc.NewRecord(b.UserID, profile, photos, b.Now)
}
