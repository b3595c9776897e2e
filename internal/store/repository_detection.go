package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/models"
)

// detectionRepository is the PostgreSQL-backed implementation of
// [DetectionRepository]. It executes all detection CRUD operations directly
// against the "detections" table using the embedded [*DB] connection.
//
// Result updates and deletes are single statements, so concurrent
// update/delete on the same id serialize at the database: either the update
// lands before the delete, or the update finds no row and reports
// [ErrDetectionNotFound]. No record is ever partially updated or resurrected.
type detectionRepository struct {
	*DB
	logger *logger.Logger
}

// NewDetectionRepository constructs a [DetectionRepository] backed by the
// provided database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewDetectionRepository(db *DB, logger *logger.Logger) DetectionRepository {
	return &detectionRepository{
		DB:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDetection reads one row in [detectionColumns] order.
func scanDetection(row rowScanner) (models.Detection, error) {
	var d models.Detection
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.ImagePath,
		&d.ImageName,
		&d.ImageSize,
		&d.IsAIGenerated,
		&d.ConfidenceScore,
		&d.ModelUsed,
		&d.DetectionDetails,
		&d.CreatedAt,
		&d.ProcessedAt,
	)
	return d, err
}

// CreateDetection inserts a new detection record in the processing state.
//
// The INSERT returns all columns, so the caller receives the server-assigned
// ID and CreatedAt along with NULL result fields.
func (r *detectionRepository) CreateDetection(ctx context.Context, detection models.Detection) (models.Detection, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, createDetection,
		detection.UserID,
		detection.ImagePath,
		detection.ImageName,
		detection.ImageSize,
	)

	created, err := scanDetection(row)
	if err != nil {
		log.Err(err).
			Str("func", "detectionRepository.CreateDetection").
			Int64("user_id", detection.UserID).
			Str("image_name", detection.ImageName).
			Msg("failed to insert detection")
		return models.Detection{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// GetDetectionByID retrieves a single detection record.
//
// Returns [ErrDetectionNotFound] when no row matches.
func (r *detectionRepository) GetDetectionByID(ctx context.Context, id int64) (models.Detection, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getDetectionByID, id)

	found, err := scanDetection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Detection{}, ErrDetectionNotFound
		}

		log.Err(err).
			Str("func", "detectionRepository.GetDetectionByID").
			Int64("id", id).
			Msg("failed to query detection")
		return models.Detection{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// ListDetectionsByUser returns one page of the user's detection history
// ordered by creation time descending (ties broken by id descending, so the
// order is stable), together with the user's total record count.
//
// Paging bounds (offset ≥ 0, limit ∈ [1,100]) are enforced by the caller.
func (r *detectionRepository) ListDetectionsByUser(ctx context.Context, userID int64, offset, limit int) ([]models.Detection, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(detectionColumns...).
		From("detections").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "detectionRepository.ListDetectionsByUser").
			Int64("user_id", userID).
			Msg("failed to build list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "detectionRepository.ListDetectionsByUser").
			Int64("user_id", userID).
			Msg("failed to execute list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Detection, 0, limit)

	for rows.Next() {
		item, scanErr := scanDetection(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "detectionRepository.ListDetectionsByUser").
				Int64("user_id", userID).
				Msg("failed to scan detection row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "detectionRepository.ListDetectionsByUser").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	total, err := r.countByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// countByUser returns the total number of detection records owned by userID.
func (r *detectionRepository) countByUser(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("COUNT(*)").
		From("detections").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "detectionRepository.countByUser").
			Int64("user_id", userID).
			Msg("failed to count detections")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}

// UpdateDetectionResult applies a partial result update to a detection record.
//
// Only the fields present in update are written. Whenever at least one result
// field is carried, processed_at is set to NOW() — also when the record was
// already completed, so reprocessing refreshes the timestamp. Updates with no
// result fields degrade to a plain read.
//
// The UPDATE … RETURNING statement is atomic, which gives the required
// serialization against concurrent deletes: once the row is gone the update
// matches nothing and [ErrDetectionNotFound] is returned.
func (r *detectionRepository) UpdateDetectionResult(ctx context.Context, id int64, update models.DetectionUpdate) (models.Detection, error) {
	log := logger.FromContext(ctx)

	if !update.HasResultFields() {
		log.Warn().
			Str("func", "detectionRepository.UpdateDetectionResult").
			Int64("id", id).
			Msg("no result fields to update, returning current record")
		return r.GetDetectionByID(ctx, id)
	}

	builder := sq.Update("detections").PlaceholderFormat(sq.Dollar)

	if update.IsAIGenerated != nil {
		builder = builder.Set("is_ai_generated", *update.IsAIGenerated)
	}
	if update.ConfidenceScore != nil {
		builder = builder.Set("confidence_score", *update.ConfidenceScore)
	}
	if update.ModelUsed != nil {
		builder = builder.Set("model_used", *update.ModelUsed)
	}
	if update.DetectionDetails != nil {
		builder = builder.Set("detection_details", *update.DetectionDetails)
	}

	query, args, err := builder.
		Set("processed_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(detectionColumns, ", ")).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "detectionRepository.UpdateDetectionResult").
			Int64("id", id).
			Msg("failed to build update query")
		return models.Detection{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)

	updated, err := scanDetection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "detectionRepository.UpdateDetectionResult").
				Int64("id", id).
				Msg("record not found")
			return models.Detection{}, ErrDetectionNotFound
		}

		log.Err(err).
			Str("func", "detectionRepository.UpdateDetectionResult").
			Int64("id", id).
			Msg("failed to execute update query")
		return models.Detection{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().
		Str("func", "detectionRepository.UpdateDetectionResult").
		Int64("id", id).
		Msg("successfully applied detection result")

	return updated, nil
}

// DeleteDetection removes a detection record.
//
// The boolean result reports whether a row existed; deleting an absent record
// is not an error at this layer.
func (r *detectionRepository) DeleteDetection(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteDetection, id)
	if err != nil {
		log.Err(err).
			Str("func", "detectionRepository.DeleteDetection").
			Int64("id", id).
			Msg("failed to execute delete query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "detectionRepository.DeleteDetection").
			Int64("id", id).
			Msg("failed to read affected rows")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected > 0, nil
}
