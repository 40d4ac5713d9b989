package repository

import (
	"context"
	"encoding/json"
	"time"

	"brow-studio-api/internal/domain/kyc"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var kycColumns = []string{
	"user_id", "name", "gender", "birth_year", "phone",
	"province_code", "district_code", "subdistrict_code", "address_detail",
	"skin_type", "skin_type_note", "prior_treatment", "photos",
	"status", "reject_reason", "submitted_at", "reviewed_at",
	"notice_acknowledged", "procedure_status", "procedure_note", "procedure_completed_at",
}

// photoJSON is the stored shape of a single photo inside the jsonb column.
type photoJSON struct {
	Kind string `json:"kind"`
	Data string `json:"data"`
}

// Sides the customer did not provide are stored as null.
type photoSetJSON struct {
	Left  *photoJSON `json:"left"`
	Front *photoJSON `json:"front"`
	Right *photoJSON `json:"right"`
}

type KycRepository struct {
	db db.DBTX
}

func NewKycRepository(dbtx db.DBTX) *KycRepository {
	return &KycRepository{db: dbtx}
}

func (r *KycRepository) dbtx(tx db.DBTX) db.DBTX {
	if tx != nil {
		return tx
	}
	return r.db
}

// Save upserts on user_id: one record per user, resubmissions overwrite.
func (r *KycRepository) Save(ctx context.Context, tx db.DBTX, rec *kyc.Record) error {
	photos, err := marshalPhotos(rec.Photos())
	if err != nil {
		return infra.WrapRepoErr("failed to marshal kyc photos", err)
	}

	p := rec.Profile()
	query, args, err := psql.Insert("kyc_records").
		Columns(kycColumns...).
		Values(
			rec.UserID(), p.Name, p.Gender, p.BirthYear, p.Phone.String(),
			p.Region.Province, p.Region.District, p.Region.SubDistrict, p.AddressDetail,
			p.SkinType, p.SkinTypeNote, p.PriorTreatment, photos,
			rec.Status(), rec.RejectReason(), rec.SubmittedAt(), rec.ReviewedAt(),
			rec.NoticeAcknowledged(), rec.ProcedureStatus(), rec.ProcedureNote(), rec.ProcedureCompletedAt(),
		).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			gender = EXCLUDED.gender,
			birth_year = EXCLUDED.birth_year,
			phone = EXCLUDED.phone,
			province_code = EXCLUDED.province_code,
			district_code = EXCLUDED.district_code,
			subdistrict_code = EXCLUDED.subdistrict_code,
			address_detail = EXCLUDED.address_detail,
			skin_type = EXCLUDED.skin_type,
			skin_type_note = EXCLUDED.skin_type_note,
			prior_treatment = EXCLUDED.prior_treatment,
			photos = EXCLUDED.photos,
			status = EXCLUDED.status,
			reject_reason = EXCLUDED.reject_reason,
			submitted_at = EXCLUDED.submitted_at,
			reviewed_at = EXCLUDED.reviewed_at,
			notice_acknowledged = EXCLUDED.notice_acknowledged,
			procedure_status = EXCLUDED.procedure_status,
			procedure_note = EXCLUDED.procedure_note,
			procedure_completed_at = EXCLUDED.procedure_completed_at`).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build kyc upsert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to save kyc record", err)
	}
	return nil
}

func (r *KycRepository) FindByUserID(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (*kyc.Record, error) {
	query, args, err := psql.Select(kycColumns...).
		From("kyc_records").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build kyc select", err)
	}

	rec, err := scanKycRecord(r.dbtx(dbtx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find kyc record", err)
	}
	return rec, nil
}

func marshalPhotos(set kyc.PhotoSet) ([]byte, error) {
	toStored := func(p kyc.Photo) *photoJSON {
		if p.IsZero() {
			return nil
		}
		return &photoJSON{Kind: string(p.Kind()), Data: p.Data()}
	}
	return json.Marshal(photoSetJSON{
		Left:  toStored(set.Left),
		Front: toStored(set.Front),
		Right: toStored(set.Right),
	})
}

func unmarshalPhotos(raw []byte) (kyc.PhotoSet, error) {
	var stored photoSetJSON
	if err := json.Unmarshal(raw, &stored); err != nil {
		return kyc.PhotoSet{}, err
	}
	toPhoto := func(p *photoJSON) (kyc.Photo, error) {
		if p == nil {
			return kyc.Photo{}, nil
		}
		kind, err := kyc.NewPhotoKind(p.Kind)
		if err != nil {
			return kyc.Photo{}, err
		}
		return kyc.NewPhoto(kind, p.Data)
	}
	left, err := toPhoto(stored.Left)
	if err != nil {
		return kyc.PhotoSet{}, err
	}
	front, err := toPhoto(stored.Front)
	if err != nil {
		return kyc.PhotoSet{}, err
	}
	right, err := toPhoto(stored.Right)
	if err != nil {
		return kyc.PhotoSet{}, err
	}
	return kyc.NewPhotoSet(left, front, right), nil
}

func scanKycRecord(row rowScanner) (*kyc.Record, error) {
	var (
		userID                              uuid.UUID
		name, gender, phone                 string
		birthYear                           int
		province, district, subdistrict     string
		addressDetail, skinType, skinNote   string
		priorTreatment                      bool
		photosRaw                           []byte
		status                              string
		rejectReason                        *string
		submittedAt                         time.Time
		reviewedAt                          *time.Time
		noticeAcknowledged                  bool
		procedureStatus                     string
		procedureNote                       *string
		procedureCompletedAt                *time.Time
	)
	if err := row.Scan(
		&userID, &name, &gender, &birthYear, &phone,
		&province, &district, &subdistrict, &addressDetail,
		&skinType, &skinNote, &priorTreatment, &photosRaw,
		&status, &rejectReason, &submittedAt, &reviewedAt,
		&noticeAcknowledged, &procedureStatus, &procedureNote, &procedureCompletedAt,
	); err != nil {
		return nil, err
	}

	genderVO, err := kyc.NewGender(gender)
	if err != nil {
		return nil, err
	}
	phoneVO, err := kyc.NewPhone(phone)
	if err != nil {
		return nil, err
	}
	region, err := kyc.NewRegion(province, district, subdistrict)
	if err != nil {
		return nil, err
	}
	skinVO, err := kyc.NewSkinType(skinType)
	if err != nil {
		return nil, err
	}
	photos, err := unmarshalPhotos(photosRaw)
	if err != nil {
		return nil, err
	}

	profile := kyc.Profile{
		Name:           name,
		Gender:         genderVO,
		BirthYear:      birthYear,
		Phone:          phoneVO,
		Region:         region,
		AddressDetail:  addressDetail,
		SkinType:       skinVO,
		SkinTypeNote:   skinNote,
		PriorTreatment: priorTreatment,
	}

	return kyc.ReconstructRecord(
		userID, profile, photos,
		kyc.Status(status), rejectReason, submittedAt, reviewedAt,
		noticeAcknowledged, kyc.ProcedureStatus(procedureStatus),
		procedureNote, procedureCompletedAt,
	), nil
}
