package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side). The canonical instants are authoritative;
// the Display* strings are derived from them at read time in the studio's
// display time zone and exist only for presentation.

type SlotView struct {
	ID              uuid.UUID  `json:"id"`
	Kind            string     `json:"kind"`
	StartAt         *time.Time `json:"start_at,omitempty"`
	EndAt           *time.Time `json:"end_at,omitempty"`
	DisplayDate     string     `json:"display_date,omitempty"`
	DisplayTime     string     `json:"display_time,omitempty"`
	Status          string     `json:"status"`
	TemplateID      *uuid.UUID `json:"template_id,omitempty"`
	DaysOfWeek      []int      `json:"days_of_week,omitempty"`
	StartTime       *string    `json:"start_time,omitempty"`
	EndTime         *string    `json:"end_time,omitempty"`
	IntervalMinutes *int       `json:"interval_minutes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ReservationView struct {
	ID                 uuid.UUID  `json:"id"`
	SlotID             uuid.UUID  `json:"slot_id"`
	UserID             uuid.UUID  `json:"user_id"`
	UserEmail          string     `json:"user_email"`
	UserName           string     `json:"user_name"`
	SlotStartAt        time.Time  `json:"slot_start_at"`
	SlotEndAt          time.Time  `json:"slot_end_at"`
	DisplayDate        string     `json:"display_date"`
	DisplayTime        string     `json:"display_time"`
	Status             string     `json:"status"`
	PaymentConfirmed   bool       `json:"payment_confirmed"`
	PaymentConfirmedAt *time.Time `json:"payment_confirmed_at,omitempty"`
	PaymentDeadline    time.Time  `json:"payment_deadline"`
	ApprovalDeadline   time.Time  `json:"approval_deadline"`
	RejectReason       *string    `json:"reject_reason,omitempty"`
	RejectedAt         *time.Time `json:"rejected_at,omitempty"`
	DeleteReason       *string    `json:"delete_reason,omitempty"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type PhotoView struct {
	Kind string `json:"kind"`
	Data string `json:"data"`
}

type KycView struct {
	UserID               uuid.UUID            `json:"user_id"`
	Name                 string               `json:"name"`
	Gender               string               `json:"gender"`
	BirthYear            int                  `json:"birth_year"`
	Phone                string               `json:"phone"`
	ProvinceCode         string               `json:"province_code"`
	DistrictCode         string               `json:"district_code"`
	SubDistrictCode      string               `json:"subdistrict_code"`
	RegionLabel          string               `json:"region_label"`
	AddressDetail        string               `json:"address_detail"`
	SkinType             string               `json:"skin_type"`
	SkinTypeNote         string               `json:"skin_type_note,omitempty"`
	PriorTreatment       bool                 `json:"prior_treatment"`
	Photos               map[string]PhotoView `json:"photos"`
	Status               string               `json:"status"`
	RejectReason         *string              `json:"reject_reason,omitempty"`
	SubmittedAt          time.Time            `json:"submitted_at"`
	ReviewedAt           *time.Time           `json:"reviewed_at,omitempty"`
	NoticeAcknowledged   bool                 `json:"notice_acknowledged"`
	ProcedureStatus      string               `json:"procedure_status"`
	ProcedureNote        *string              `json:"procedure_note,omitempty"`
	ProcedureCompletedAt *time.Time           `json:"procedure_completed_at,omitempty"`
}

type NotificationView struct {
	ID        uuid.UUID      `json:"id"`
	Recipient string         `json:"recipient"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Read      bool           `json:"read"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// FormatDisplayDate and FormatDisplayTime derive the presentation strings
// the original portal stored verbatim. They are recomputed on every read.
func FormatDisplayDate(at time.Time, loc *time.Location) string {
	return at.In(loc).Format("2006-01-02 (Mon)")
}

func FormatDisplayTime(start, end time.Time, loc *time.Location) string {
	return start.In(loc).Format("15:04") + " - " + end.In(loc).Format("15:04")
}
