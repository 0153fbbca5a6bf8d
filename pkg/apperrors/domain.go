package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки домена.
Сервисы возвращают их как есть, хендлеры рендерят через HandleError.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrInvalidStatus - 409, переход статуса не разрешен
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Users ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"user",
	"A user with this email already exists",
	http.StatusConflict,
)

var ErrUserInactive = New(
	CodeForbidden,
	"user",
	"User account is deactivated",
	http.StatusForbidden,
)

// --- Profiles ---

var ErrProfileNotFound = New(
	CodeProfileMissing,
	"profile",
	"Complete your profile first",
	http.StatusNotFound,
)

var ErrProfileAlreadyExists = New(
	CodeAlreadyExists,
	"profile",
	"Profile already exists",
	http.StatusConflict,
)

// ErrWrongUserType - стартап пытается создать профиль инвестора и наоборот
var ErrWrongUserType = New(
	CodeForbidden,
	"profile",
	"Operation is not available for this user type",
	http.StatusForbidden,
)

// --- Matching ---

// ErrTargetNotFound covers missing, inactive and same-type targets alike.
var ErrTargetNotFound = New(
	CodeNotFound,
	"matching",
	"Target user not found",
	http.StatusNotFound,
)

var ErrAlreadySwiped = New(
	CodeAlreadySwiped,
	"matching",
	"You have already swiped on this user",
	http.StatusConflict,
)

var ErrQuotaExceeded = New(
	CodeQuotaExceeded,
	"matching",
	"Daily swipe limit reached",
	http.StatusTooManyRequests,
)

var ErrMatchNotFound = New(
	CodeNotFound,
	"matching",
	"Match not found",
	http.StatusNotFound,
)

var ErrNotMatchParticipant = New(
	CodeForbidden,
	"matching",
	"You are not a participant of this match",
	http.StatusForbidden,
)

// --- Messaging ---

var ErrConversationNotFound = New(
	CodeNotFound,
	"messaging",
	"Conversation not found",
	http.StatusNotFound,
)

var ErrConversationAccessDenied = New(
	CodeForbidden,
	"messaging",
	"Access to this conversation is denied",
	http.StatusForbidden,
)

var ErrMatchClosed = New(
	CodeInvalidStatus,
	"messaging",
	"This match is no longer active",
	http.StatusConflict,
)

// --- Auth ---

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
