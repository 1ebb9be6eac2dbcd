package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopfleet/order-service/pkg/apperror"
)

const testTimeout = 2 * time.Second

func TestVerify_ExistingUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"name":"John"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	user, err := client.Verify(context.Background(), 1, testTimeout)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "John", user.Name)
}

func TestVerify_NotFoundIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"User does not exist","code":"nonExisting"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	user, err := client.Verify(context.Background(), 7, testTimeout)

	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestVerify_TimeoutMapsToVerificationFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.Verify(context.Background(), 1, 20*time.Millisecond)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindVerificationFailed, appErr.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
}

func TestVerify_ConnectionRefusedMapsToVerificationFailed(t *testing.T) {
	// A freshly closed test server leaves a port nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, zap.NewNop())
	_, err := client.Verify(context.Background(), 1, testTimeout)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindVerificationFailed, appErr.Kind)
}

func TestVerify_ServerErrorPropagatesUnclassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.Verify(context.Background(), 1, testTimeout)

	require.Error(t, err)
	var appErr *apperror.AppError
	assert.False(t, errors.As(err, &appErr), "5xx must not be reclassified")
}
