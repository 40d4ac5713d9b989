package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"
	"brow-studio-api/internal/pkg/regions"
	"brow-studio-api/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var kycViewColumns = []string{
	"user_id", "name", "gender", "birth_year", "phone",
	"province_code", "district_code", "subdistrict_code", "address_detail",
	"skin_type", "skin_type_note", "prior_treatment", "photos",
	"status", "reject_reason", "submitted_at", "reviewed_at",
	"notice_acknowledged", "procedure_status", "procedure_note", "procedure_completed_at",
}

type KycReadStore struct {
	db db.DBTX
}

func NewKycReadStore(dbtx db.DBTX) *KycReadStore {
	return &KycReadStore{db: dbtx}
}

func (r *KycReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*queries.KycView, error) {
	query, args, err := psql.Select(kycViewColumns...).
		From("kyc_records").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build kyc select", err)
	}

	view, err := scanKycView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("kyc record not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find kyc record", err)
	}
	return view, nil
}

func (r *KycReadStore) FindAll(ctx context.Context, status *string) ([]*queries.KycView, error) {
	builder := psql.Select(kycViewColumns...).
		From("kyc_records").
		OrderBy("submitted_at DESC")
	if status != nil {
		builder = builder.Where(sq.Eq{"status": *status})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build kyc select", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query kyc records", err)
	}
	defer rows.Close()

	var out []*queries.KycView
	for rows.Next() {
		view, err := scanKycView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan kyc record", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate kyc records", err)
	}
	return out, nil
}

func scanKycView(row rowScanner) (*queries.KycView, error) {
	var (
		view      queries.KycView
		photosRaw []byte
	)
	if err := row.Scan(
		&view.UserID, &view.Name, &view.Gender, &view.BirthYear, &view.Phone,
		&view.ProvinceCode, &view.DistrictCode, &view.SubDistrictCode, &view.AddressDetail,
		&view.SkinType, &view.SkinTypeNote, &view.PriorTreatment, &photosRaw,
		&view.Status, &view.RejectReason, &view.SubmittedAt, &view.ReviewedAt,
		&view.NoticeAcknowledged, &view.ProcedureStatus, &view.ProcedureNote, &view.ProcedureCompletedAt,
	); err != nil {
		return nil, err
	}

	var photos map[string]queries.PhotoView
	if err := json.Unmarshal(photosRaw, &photos); err != nil {
		return nil, err
	}
	view.Photos = photos

	// label resolution is cosmetic; stale codes degrade to the raw triple
	if province, district, subDistrict, err := regions.ResolveLabels(
		view.ProvinceCode, view.DistrictCode, view.SubDistrictCode,
	); err == nil {
		view.RegionLabel = province + " " + district + " " + subDistrict
	} else {
		view.RegionLabel = view.ProvinceCode + " " + view.DistrictCode + " " + view.SubDistrictCode
	}

	return &view, nil
}
