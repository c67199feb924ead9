package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
)

func TestSendMessageRejectsBlankText(t *testing.T) {
	svc := &chatService{}

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.SendMessage(context.Background(), uuid.New(), nil, text)

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr, "text %q", text)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	}
}

func TestSubmitFeedbackRejectsOutOfRangeRating(t *testing.T) {
	svc := &chatService{}

	for _, rating := range []int{-1, 0, 6} {
		err := svc.SubmitFeedback(context.Background(), uuid.New(), uuid.New(), rating, "")

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr, "rating %d", rating)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	}
}
