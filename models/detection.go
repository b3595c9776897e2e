package models

import "time"

// Detection statuses reported by the status-polling endpoint.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// Detection tracks a single uploaded image through AI classification.
//
// Upload metadata (ImagePath, ImageName, ImageSize) is set at creation and is
// immutable afterwards, as is the owning UserID. The result fields are nil
// until the external AI engine reports back; once any of them is written,
// ProcessedAt is stamped and the record counts as completed.
type Detection struct {
	// ID is the unique identifier of the detection assigned by the database.
	ID int64 `json:"id"`

	// UserID is the identifier of the owning user. It never changes after
	// creation; every read/update/delete outside the AI callback path is
	// scoped to it.
	UserID int64 `json:"user_id"`

	// ImagePath is the opaque locator of the stored image bytes
	// (filesystem path or object-store key, depending on the blob backend).
	ImagePath string `json:"image_path"`

	// ImageName is the original filename supplied by the uploader.
	ImageName string `json:"image_name"`

	// ImageSize is the uploaded image size in bytes.
	ImageSize int64 `json:"image_size"`

	// IsAIGenerated is the classification verdict: true means AI-generated,
	// false means a real photograph. Nil while processing.
	IsAIGenerated *bool `json:"is_ai_generated"`

	// ConfidenceScore is the classifier confidence in [0,1]. Nil while processing.
	ConfidenceScore *float64 `json:"confidence_score"`

	// ModelUsed identifies the model that produced the result. Nil while processing.
	ModelUsed *string `json:"model_used"`

	// DetectionDetails is an opaque blob of additional classifier output,
	// serialized as text (typically JSON). Nil while processing.
	DetectionDetails *string `json:"detection_details"`

	// CreatedAt is the timestamp of the upload. Immutable.
	CreatedAt time.Time `json:"created_at"`

	// ProcessedAt is stamped every time a result-writing call succeeds.
	// Nil until the first result arrives; refreshed on reprocessing.
	ProcessedAt *time.Time `json:"processed_at"`
}

// Processed reports whether the detection has received a classification
// result. The verdict field is authoritative: the record counts as completed
// exactly when IsAIGenerated is set.
func (d Detection) Processed() bool {
	return d.IsAIGenerated != nil
}

// Status returns the lifecycle status string derived from the result fields.
func (d Detection) Status() string {
	if d.Processed() {
		return StatusCompleted
	}
	return StatusProcessing
}

// TableName returns the name of the database table
// associated with the Detection model.
func (d Detection) TableName() string {
	return "detections"
}

// DetectionUpdate is a partial result payload written by the AI callback
// (or by the owner through the PATCH endpoint). Only non-nil fields are
// persisted.
type DetectionUpdate struct {
	IsAIGenerated    *bool    `json:"is_ai_generated"`
	ConfidenceScore  *float64 `json:"confidence_score"`
	ModelUsed        *string  `json:"model_used"`
	DetectionDetails *string  `json:"detection_details"`
}

// HasResultFields reports whether the update carries at least one result
// field. Updates with no fields are accepted as no-ops and do not stamp
// ProcessedAt.
func (u DetectionUpdate) HasResultFields() bool {
	return u.IsAIGenerated != nil || u.ConfidenceScore != nil || u.ModelUsed != nil || u.DetectionDetails != nil
}
