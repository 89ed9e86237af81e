package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrInvitationInvalid   = errors.New("invitation invalid or expired")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrContentNotFound     = errors.New("content not found")
	ErrSlugTaken           = errors.New("slug already in use")
	ErrNoExamForContent    = errors.New("content has no exam")
	ErrNoTestForContent    = errors.New("content has no test")
	ErrExamSessionNotFound = errors.New("exam session not found")
	ErrExamFinished        = errors.New("exam session already finished")
	ErrExamUnanswered      = errors.New("all questions must be answered")
	ErrExamAlreadyPassed   = errors.New("exam already passed")
	ErrAnswerOutOfRange    = errors.New("answer index out of range")
	ErrTestIncomplete      = errors.New("required question not answered")
	ErrCertNotEligible     = errors.New("not all exams completed with a sufficient score")
	ErrCertAlreadyExists   = errors.New("certificate already requested")
	ErrCertRequestNotFound = errors.New("certificate request not found")
)
