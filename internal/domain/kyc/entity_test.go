//go:build unit

package kyc_test

import (
	"testing"
	"time"

	"brow-studio-api/internal/domain/kyc"
	"brow-studio-api/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.KycBuilder)
	errIs  error
}

func TestSubmit(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewKycBuilder()
		rec, err := b.BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, b.UserID, rec.UserID())
		assert.Equal(t, kyc.StatusPending, rec.Status())
		assert.Nil(t, rec.RejectReason())
		assert.Equal(t, b.Now, rec.SubmittedAt())
		assert.Nil(t, rec.ReviewedAt())
		assert.False(t, rec.NoticeAcknowledged())
		assert.Equal(t, kyc.ProcedureNotStarted, rec.ProcedureStatus())
		assert.False(t, rec.CanBook())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.KycBuilder) { b.Name = "  " },
				errIs:  kyc.ErrEmptyName,
			},
			{
				name:   "unknown gender",
				mutate: func(b *builder.KycBuilder) { b.Gender = "unspecified" },
				errIs:  kyc.ErrInvalidGender,
			},
			{
				name:   "birth year too old",
				mutate: func(b *builder.KycBuilder) { b.BirthYear = 1850 },
				errIs:  kyc.ErrInvalidBirthYear,
			},
			{
				name:   "birth year in the future",
				mutate: func(b *builder.KycBuilder) { b.BirthYear = b.Now.Year() + 1 },
				errIs:  kyc.ErrInvalidBirthYear,
			},
			{
				name:   "malformed phone",
				mutate: func(b *builder.KycBuilder) { b.Phone = "12345" },
				errIs:  kyc.ErrInvalidPhone,
			},
			{
				name:   "phone without dashes",
				mutate: func(b *builder.KycBuilder) { b.Phone = "01012345678" },
			},
			{
				name:   "missing region code",
				mutate: func(b *builder.KycBuilder) { b.SubDistrict = "" },
				errIs:  kyc.ErrEmptyRegionCode,
			},
			{
				name:   "unknown skin type",
				mutate: func(b *builder.KycBuilder) { b.SkinType = "glass" },
				errIs:  kyc.ErrInvalidSkinType,
			},
			{
				name:   "photos are optional",
				mutate: func(b *builder.KycBuilder) { b.LeftPhoto, b.FrontPhoto, b.RightPhoto = "", "", "" },
			},
		})
	})
}

func TestResubmit(t *testing.T) {
	t.Run("rejected record returns to pending and the reason is cleared", func(t *testing.T) {
		b := builder.NewKycBuilder()
		rec, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, rec.Reject("photos too dark", b.Now.Add(time.Hour)))
		require.NotNil(t, rec.RejectReason())
		require.NotNil(t, rec.ReviewedAt())

		profile, err := b.With(func(b *builder.KycBuilder) { b.SkinType = "dry" }).BuildProfile()
		require.NoError(t, err)
		photos, err := b.BuildPhotos()
		require.NoError(t, err)

		resubmitAt := b.Now.Add(2 * time.Hour)
		require.NoError(t, rec.Resubmit(profile, photos, resubmitAt))

		assert.Equal(t, kyc.StatusPending, rec.Status())
		assert.Nil(t, rec.RejectReason())
		assert.Nil(t, rec.ReviewedAt())
		assert.Equal(t, resubmitAt, rec.SubmittedAt())
		assert.Equal(t, kyc.SkinDry, rec.Profile().SkinType)
	})

	t.Run("notice flag and procedure fields survive resubmission", func(t *testing.T) {
		b := builder.NewKycBuilder()
		rec, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, rec.Approve(b.Now))
		require.NoError(t, rec.AcknowledgeNotice())
		require.NoError(t, rec.StartProcedure())

		profile, err := b.BuildProfile()
		require.NoError(t, err)
		photos, err := b.BuildPhotos()
		require.NoError(t, err)
		require.NoError(t, rec.Resubmit(profile, photos, b.Now.Add(time.Hour)))

		assert.Equal(t, kyc.StatusPending, rec.Status())
		assert.True(t, rec.NoticeAcknowledged())
		assert.Equal(t, kyc.ProcedureInProgress, rec.ProcedureStatus())
	})
}

func TestReview(t *testing.T) {
	t.Run("approve stamps reviewed_at", func(t *testing.T) {
		b := builder.NewKycBuilder()
		rec, err := b.BuildDomain()
		require.NoError(t, err)

		at := b.Now.Add(time.Hour)
		require.NoError(t, rec.Approve(at))

		assert.Equal(t, kyc.StatusApproved, rec.Status())
		require.NotNil(t, rec.ReviewedAt())
		assert.Equal(t, at, *rec.ReviewedAt())
	})

	t.Run("reject requires a non-blank reason", func(t *testing.T) {
		b := builder.NewKycBuilder()
		rec, err := b.BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, rec.Reject("", b.Now), kyc.ErrBlankReason)
		require.ErrorIs(t, rec.Reject("   ", b.Now), kyc.ErrBlankReason)
		assert.Equal(t, kyc.StatusPending, rec.Status())

		require.NoError(t, rec.Reject("id does not match photos", b.Now))
		assert.Equal(t, kyc.StatusRejected, rec.Status())
	})

	t.Run("review only while pending", func(t *testing.T) {
		b := builder.NewKycBuilder()
		rec, err := b.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, rec.Approve(b.Now))

		require.ErrorIs(t, rec.Approve(b.Now), kyc.ErrNotPending)
		require.ErrorIs(t, rec.Reject("x", b.Now), kyc.ErrNotPending)
	})
}

func TestNoticeAndBookingGate(t *testing.T) {
	b := builder.NewKycBuilder()
	rec, err := b.BuildDomain()
	require.NoError(t, err)

	// pending: neither acknowledgeable nor bookable
	require.ErrorIs(t, rec.AcknowledgeNotice(), kyc.ErrNotApproved)
	assert.False(t, rec.CanBook())

	require.NoError(t, rec.Approve(b.Now))
	assert.False(t, rec.CanBook())

	require.NoError(t, rec.AcknowledgeNotice())
	assert.True(t, rec.CanBook())

	// idempotent
	require.NoError(t, rec.AcknowledgeNotice())
	assert.True(t, rec.CanBook())
}

func TestProcedure(t *testing.T) {
	approved := func(t *testing.T) *kyc.Record {
		t.Helper()
		b := builder.NewKycBuilder()
		rec, err := b.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, rec.Approve(b.Now))
		return rec
	}

	t.Run("start then complete with a note", func(t *testing.T) {
		rec := approved(t)
		require.NoError(t, rec.StartProcedure())
		assert.Equal(t, kyc.ProcedureInProgress, rec.ProcedureStatus())

		at := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)
		require.NoError(t, rec.CompleteProcedure("natural brown, touch-up in 4 weeks", at))

		assert.Equal(t, kyc.ProcedureCompleted, rec.ProcedureStatus())
		require.NotNil(t, rec.ProcedureNote())
		assert.Equal(t, "natural brown, touch-up in 4 weeks", *rec.ProcedureNote())
		require.NotNil(t, rec.ProcedureCompletedAt())
		assert.Equal(t, at, *rec.ProcedureCompletedAt())
	})

	t.Run("complete requires a non-blank note", func(t *testing.T) {
		rec := approved(t)
		require.NoError(t, rec.StartProcedure())

		require.ErrorIs(t, rec.CompleteProcedure("  ", time.Now()), kyc.ErrBlankNote)
		assert.Equal(t, kyc.ProcedureInProgress, rec.ProcedureStatus())
	})

	t.Run("complete requires an in-progress procedure", func(t *testing.T) {
		rec := approved(t)
		require.ErrorIs(t, rec.CompleteProcedure("note", time.Now()), kyc.ErrProcedureNotStarted)
	})

	t.Run("restart after completion is refused", func(t *testing.T) {
		rec := approved(t)
		require.NoError(t, rec.StartProcedure())
		require.NoError(t, rec.CompleteProcedure("done", time.Now()))

		require.ErrorIs(t, rec.StartProcedure(), kyc.ErrProcedureFinished)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewKycBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
