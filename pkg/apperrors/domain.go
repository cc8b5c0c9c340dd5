package apperrors

import (
	"net/http"
)

// Factories and predefined variables for the onboarding domain.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and friends)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Registration ---

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"registration",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"registration",
	"Email already in use",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters and contain upper-case, lower-case and digit characters",
	http.StatusBadRequest,
)

// --- Auth & sessions ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Email verification tokens ---
// Three internally distinct outcomes. Handlers answering public endpoints must
// respond with ErrVerificationLinkInvalid instead, so the caller cannot tell
// which case applied.

var ErrVerificationTokenInvalid = New(
	CodeInvalidToken,
	"verification",
	"Verification token is not known",
	http.StatusBadRequest,
)

var ErrVerificationTokenExpired = New(
	CodeTokenExpired,
	"verification",
	"Verification token has expired",
	http.StatusBadRequest,
)

var ErrVerificationTokenUsed = New(
	CodeTokenAlreadyUsed,
	"verification",
	"Verification token was already used",
	http.StatusBadRequest,
)

// ErrVerificationLinkInvalid is the single outward-facing form of the three
// token failures above.
var ErrVerificationLinkInvalid = New(
	CodeInvalidToken,
	"verification",
	"Invalid or expired verification link",
	http.StatusBadRequest,
)

var ErrEmailAlreadyVerified = New(
	CodeInvalidOperation,
	"verification",
	"Email address is already verified",
	http.StatusBadRequest,
)

// --- Verification documents ---

var ErrInvalidDocumentType = New(
	CodeValidationFailed,
	"documents",
	"Unsupported document type",
	http.StatusBadRequest,
)

var ErrRejectionReasonRequired = New(
	CodeValidationFailed,
	"documents",
	"A rejection reason is required when rejecting a document",
	http.StatusBadRequest,
)

var ErrInvalidDecision = New(
	CodeValidationFailed,
	"documents",
	"Decision must be either approved or rejected",
	http.StatusBadRequest,
)

// ErrDocumentStale signals that another administrator decided the document
// first. The caller should re-fetch and retry.
var ErrDocumentStale = New(
	CodeStaleState,
	"documents",
	"Document was already decided",
	http.StatusConflict,
)

var ErrDocumentNotFound = New(
	CodeNotFound,
	"documents",
	"Document not found",
	http.StatusNotFound,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
