package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"

	// Бизнес-логика
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Matching
	CodeAlreadySwiped  ErrorCode = "ALREADY_SWIPED"
	CodeQuotaExceeded  ErrorCode = "QUOTA_EXCEEDED"
	CodeProfileMissing ErrorCode = "PROFILE_REQUIRED"

	// Аутентификация и авторизация
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
)
