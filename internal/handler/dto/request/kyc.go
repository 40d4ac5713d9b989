package request

import (
	"brow-studio-api/internal/domain/kyc"
)

type PhotoPayload struct {
	Kind string `json:"kind" binding:"required,oneof=inline remote"`
	Data string `json:"data" binding:"required"`
}

// toDomain maps an absent payload to the zero Photo.
func (p *PhotoPayload) toDomain() (kyc.Photo, error) {
	if p == nil {
		return kyc.Photo{}, nil
	}
	kind, err := kyc.NewPhotoKind(p.Kind)
	if err != nil {
		return kyc.Photo{}, err
	}
	return kyc.NewPhoto(kind, p.Data)
}

type SubmitKycRequest struct {
	Name            string       `json:"name" binding:"required"`
	Gender          string       `json:"gender" binding:"required"`
	BirthYear       int          `json:"birth_year" binding:"required"`
	Phone           string       `json:"phone" binding:"required"`
	ProvinceCode    string       `json:"province_code" binding:"required"`
	DistrictCode    string       `json:"district_code" binding:"required"`
	SubDistrictCode string       `json:"subdistrict_code" binding:"required"`
	AddressDetail   string       `json:"address_detail"`
	SkinType        string       `json:"skin_type" binding:"required"`
	SkinTypeNote    string       `json:"skin_type_note"`
	PriorTreatment  bool         `json:"prior_treatment"`
	LeftPhoto       *PhotoPayload `json:"left_photo"`
	FrontPhoto      *PhotoPayload `json:"front_photo"`
	RightPhoto      *PhotoPayload `json:"right_photo"`
}

func (r SubmitKycRequest) ToProfile() (kyc.Profile, error) {
	gender, err := kyc.NewGender(r.Gender)
	if err != nil {
		return kyc.Profile{}, err
	}
	phone, err := kyc.NewPhone(r.Phone)
	if err != nil {
		return kyc.Profile{}, err
	}
	region, err := kyc.NewRegion(r.ProvinceCode, r.DistrictCode, r.SubDistrictCode)
	if err != nil {
		return kyc.Profile{}, err
	}
	skinType, err := kyc.NewSkinType(r.SkinType)
	if err != nil {
		return kyc.Profile{}, err
	}
	return kyc.Profile{
		Name:           r.Name,
		Gender:         gender,
		BirthYear:      r.BirthYear,
		Phone:          phone,
		Region:         region,
		AddressDetail:  r.AddressDetail,
		SkinType:       skinType,
		SkinTypeNote:   r.SkinTypeNote,
		PriorTreatment: r.PriorTreatment,
	}, nil
}

func (r SubmitKycRequest) ToPhotos() (kyc.PhotoSet, error) {
	left, err := r.LeftPhoto.toDomain()
	if err != nil {
		return kyc.PhotoSet{}, err
	}
	front, err := r.FrontPhoto.toDomain()
	if err != nil {
		return kyc.PhotoSet{}, err
	}
	right, err := r.RightPhoto.toDomain()
	if err != nil {
		return kyc.PhotoSet{}, err
	}
	return kyc.NewPhotoSet(left, front, right), nil
}

type CompleteProcedureRequest struct {
	Note string `json:"note"`
}
