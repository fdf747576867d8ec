package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeExtraction(t *testing.T) {
	t.Run("new error carries its code", func(t *testing.T) {
		err := New(CodeDuplicateVote, "already voted")
		assert.True(t, Is(err, CodeDuplicateVote))
		assert.Equal(t, CodeDuplicateVote, CodeOf(err))
	})

	t.Run("wrapped cause stays reachable", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(cause, CodeInternal, "failed to save vote")

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, CodeInternal, CodeOf(err))
		assert.Contains(t, err.Error(), "failed to save vote")
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(CodeInsufficientPayment, "short"))
		assert.True(t, Is(err, CodeInsufficientPayment))
	})

	t.Run("plain error reads as internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
		assert.False(t, Is(errors.New("boom"), CodeConflict))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:             http.StatusBadRequest,
		CodeInvalidAmount:          http.StatusBadRequest,
		CodeUnauthorized:           http.StatusUnauthorized,
		CodeCandidateNotRegistered: http.StatusNotFound,
		CodeAlreadyRegistered:      http.StatusConflict,
		CodeDuplicateVote:          http.StatusConflict,
		CodeNotApproved:            http.StatusConflict,
		CodeInsufficientPayment:    http.StatusPaymentRequired,
		CodeInsufficientSupply:     http.StatusUnprocessableEntity,
		CodeWrongRecipient:         http.StatusUnprocessableEntity,
		CodeWrongAsset:             http.StatusUnprocessableEntity,
		CodeAssetNotInitialized:    http.StatusUnprocessableEntity,
		CodeInternal:               http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(New(code, "x")), "code %s", code)
	}
}
