package store

const (
	createUser = `INSERT INTO users (username, email, hashed_password)
    VALUES ($1, $2, $3)
    RETURNING id, username, email, hashed_password, is_active, created_at;`

	findUserByUsername = `SELECT id, username, email, hashed_password, is_active, created_at
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT id, username, email, hashed_password, is_active, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, username, email, hashed_password, is_active, created_at
    FROM users
    WHERE id = $1;`

	createDetection = `INSERT INTO detections (user_id, image_path, image_name, image_size)
    VALUES ($1, $2, $3, $4)
    RETURNING id, user_id, image_path, image_name, image_size,
        is_ai_generated, confidence_score, model_used, detection_details,
        created_at, processed_at;`

	getDetectionByID = `SELECT id, user_id, image_path, image_name, image_size,
        is_ai_generated, confidence_score, model_used, detection_details,
        created_at, processed_at
    FROM detections
    WHERE id = $1;`

	deleteDetection = `DELETE FROM detections WHERE id = $1;`

	// users_username_key / users_email_key are the unique-constraint names
	// generated for the users table; CreateUser maps unique violations to
	// domain errors by constraint.
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// detectionColumns is the canonical column order shared by every detection
// SELECT and RETURNING clause; scanDetection relies on it.
var detectionColumns = []string{
	"id",
	"user_id",
	"image_path",
	"image_name",
	"image_size",
	"is_ai_generated",
	"confidence_score",
	"model_used",
	"detection_details",
	"created_at",
	"processed_at",
}
