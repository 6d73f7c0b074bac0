package messageerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidMessageID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid message id",
		http.StatusBadRequest,
	)
	ErrMessageNotFound = apperror.New(
		apperror.CodeNotFound,
		"message not found",
		http.StatusNotFound,
	)
	ErrRecipientNotFound = apperror.New(
		apperror.CodeNotFound,
		"recipient not found",
		http.StatusNotFound,
	)
	ErrNotParticipant = apperror.New(
		apperror.CodeForbidden,
		"message belongs to another conversation",
		http.StatusForbidden,
	)
	ErrNotRecipient = apperror.New(
		apperror.CodeForbidden,
		"only the recipient can mark a message as read",
		http.StatusForbidden,
	)
)
