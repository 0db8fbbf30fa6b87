package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/auth/http/dto"
	"github.com/allisson/accounts/internal/httputil"
)

func setupLoginRouter(mockAuthUC *mockAuthUseCase) *gin.Engine {
	handler := NewAuthHandler(mockAuthUC, createTestLogger())
	router := gin.New()
	router.POST("/v1/auth/login", handler.LoginHandler)
	return router
}

func performLogin(router *gin.Engine, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginHandler_Success(t *testing.T) {
	mockAuthUC := &mockAuthUseCase{}
	router := setupLoginRouter(mockAuthUC)

	expiresAt := time.Now().UTC().Add(30 * time.Minute).Truncate(time.Second)
	output := &authDomain.LoginOutput{
		AccessToken: "signed-token",
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}

	mockAuthUC.On("Login", mock.Anything, &authDomain.LoginInput{
		Username: "alice",
		Password: "correct-password",
	}).Return(output, nil).Once()

	w := performLogin(router, dto.LoginRequest{
		Username: "alice",
		Password: "correct-password",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.LoginResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "signed-token", response.AccessToken)
	assert.Equal(t, "bearer", response.TokenType)
	assert.Equal(t, expiresAt.Unix(), response.ExpiresAt.Unix())

	mockAuthUC.AssertExpectations(t)
}

func TestLoginHandler_Error_BadCredentials(t *testing.T) {
	mockAuthUC := &mockAuthUseCase{}
	router := setupLoginRouter(mockAuthUC)

	mockAuthUC.On("Login", mock.Anything, mock.Anything).
		Return(nil, authDomain.ErrBadCredentials).
		Once()

	w := performLogin(router, dto.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	var response httputil.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "unauthorized", response.Error)
	assert.Equal(t, "Incorrect username or password", response.Message)

	mockAuthUC.AssertExpectations(t)
}

func TestLoginHandler_Error_Validation(t *testing.T) {
	testCases := []struct {
		name string
		body dto.LoginRequest
	}{
		{"missing username", dto.LoginRequest{Password: "secret"}},
		{"missing password", dto.LoginRequest{Username: "alice"}},
		{"blank username", dto.LoginRequest{Username: "   ", Password: "secret"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockAuthUC := &mockAuthUseCase{}
			router := setupLoginRouter(mockAuthUC)

			w := performLogin(router, tc.body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			mockAuthUC.AssertNotCalled(t, "Login")
		})
	}
}

func TestLoginHandler_Error_MalformedJSON(t *testing.T) {
	mockAuthUC := &mockAuthUseCase{}
	router := setupLoginRouter(mockAuthUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockAuthUC.AssertNotCalled(t, "Login")
}

func TestLoginHandler_Error_InternalError(t *testing.T) {
	mockAuthUC := &mockAuthUseCase{}
	router := setupLoginRouter(mockAuthUC)

	mockAuthUC.On("Login", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).
		Once()

	w := performLogin(router, dto.LoginRequest{
		Username: "alice",
		Password: "correct-password",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response httputil.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "internal_error", response.Error)

	mockAuthUC.AssertExpectations(t)
}
