// Package integration provides end-to-end integration tests for the Accounts API.
// Tests all API endpoints against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/accounts/internal/app"
	authDTO "github.com/allisson/accounts/internal/auth/http/dto"
	"github.com/allisson/accounts/internal/config"
	fileDTO "github.com/allisson/accounts/internal/file/http/dto"
	postDTO "github.com/allisson/accounts/internal/post/http/dto"
	"github.com/allisson/accounts/internal/testutil"
	userDTO "github.com/allisson/accounts/internal/user/http/dto"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	user      userDTO.UserResponse
	password  string
	token     string
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	useAuth bool,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if useAuth {
		req.Header.Set("Authorization", "Bearer "+ctx.token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// uploadFile performs a multipart upload with an explicit part content type.
func (ctx *integrationTestContext) uploadFile(
	t *testing.T,
	filename, contentType string,
	content []byte,
) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err, "failed to create multipart part")

	_, err = part.Write(content)
	require.NoError(t, err, "failed to write multipart content")
	require.NoError(t, writer.Close(), "failed to close multipart writer")

	req, err := http.NewRequest(http.MethodPost, ctx.server.URL+"/api/v1/files/upload", &buf)
	require.NoError(t, err, "failed to create upload request")
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ctx.token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform upload request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read upload response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Setup database
	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	// Create configuration
	cfg := &config.Config{
		DBDriver:                dbDriver,
		DBConnectionString:      dsn,
		DBMaxOpenConnections:    10,
		DBMaxIdleConnections:    5,
		DBConnMaxLifetime:       time.Hour,
		ServerHost:              "localhost",
		ServerPort:              8080,
		LogLevel:                "error",
		JWTSecretKey:            "integration-test-secret-key",
		JWTAlgorithm:            "HS256",
		JWTExpiration:           time.Hour,
		FileStorageDir:          t.TempDir(),
		FileMaxUploadSize:       10 * 1024 * 1024,
		FileAllowedContentTypes: "image/png,image/jpeg,application/pdf",
	}

	// Create DI container
	container := app.NewContainer(cfg)

	// Setup HTTP server
	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	testServer := httptest.NewServer(handler)

	ctx := &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		password:  "Sup3rSecretPass!",
		dbDriver:  dbDriver,
	}

	// Register a user through the API and log in to obtain a bearer token
	registerBody := userDTO.RegisterUserRequest{
		Username: "integration-user",
		Email:    "integration-user@example.com",
		Password: ctx.password,
		Role:     "user",
	}
	resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/users", registerBody, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "failed to register test user: %s", body)
	require.NoError(t, json.Unmarshal(body, &ctx.user))

	loginBody := authDTO.LoginRequest{Username: ctx.user.Username, Password: ctx.password}
	resp, body = ctx.makeRequest(t, http.MethodPost, "/api/v1/auth/login", loginBody, false)
	require.Equal(t, http.StatusOK, resp.StatusCode, "failed to log in test user: %s", body)

	var loginResponse authDTO.LoginResponse
	require.NoError(t, json.Unmarshal(body, &loginResponse))
	ctx.token = loginResponse.AccessToken

	t.Logf("Integration test setup complete for %s (user_id=%d)", dbDriver, ctx.user.ID)

	return ctx
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		err := ctx.container.Shutdown(context.Background())
		if err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}

	t.Logf("Integration test teardown complete for %s", ctx.dbDriver)
}

// driverTestCases lists the database drivers exercised by every integration test.
var driverTestCases = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

// TestIntegration_Health_BasicChecks validates infrastructure health and readiness endpoints.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "healthy", response["status"])
			})

			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response struct {
					Status string `json:"status"`
				}
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "ready", response.Status)
			})
		})
	}
}

// TestIntegration_Auth_CompleteFlow tests credential verification and token
// authentication against live user records.
func TestIntegration_Auth_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_LoginSuccess", func(t *testing.T) {
				requestBody := authDTO.LoginRequest{
					Username: ctx.user.Username,
					Password: ctx.password,
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/auth/login", requestBody, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response authDTO.LoginResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotEmpty(t, response.AccessToken)
				assert.Equal(t, "bearer", response.TokenType)
				assert.True(t, response.ExpiresAt.After(time.Now()))
			})

			t.Run("02_LoginWrongPassword", func(t *testing.T) {
				requestBody := authDTO.LoginRequest{
					Username: ctx.user.Username,
					Password: "not-the-password",
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/auth/login", requestBody, false)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
				assert.NotContains(t, string(body), "password")
			})

			t.Run("03_LoginUnknownUsername", func(t *testing.T) {
				requestBody := authDTO.LoginRequest{
					Username: "no-such-user",
					Password: "whatever-password",
				}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/v1/auth/login", requestBody, false)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("04_AuthenticatedRequest", func(t *testing.T) {
				requestBody := postDTO.CreatePostRequest{
					Title:   "Authenticated post",
					Content: "created with a valid bearer token",
				}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/v1/posts", requestBody, true)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)
			})

			t.Run("05_InvalidToken", func(t *testing.T) {
				req, err := http.NewRequest(
					http.MethodPost,
					ctx.server.URL+"/api/v1/posts",
					strings.NewReader(`{"title":"t","content":"c"}`),
				)
				require.NoError(t, err)
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer not-a-real-token")

				client := &http.Client{Timeout: 10 * time.Second}
				resp, err := client.Do(req)
				require.NoError(t, err)
				defer func() { _ = resp.Body.Close() }()

				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})
		})
	}
}

// TestIntegration_Users_CompleteFlow validates the complete user lifecycle.
func TestIntegration_Users_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var createdUser userDTO.UserResponse

			t.Run("01_RegisterUser", func(t *testing.T) {
				fullName := "Bob Example"
				requestBody := userDTO.RegisterUserRequest{
					Username: "bob",
					Email:    "bob@example.com",
					Password: "Password123!",
					FullName: &fullName,
					Role:     "user",
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/users", requestBody, false)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				err := json.Unmarshal(body, &createdUser)
				require.NoError(t, err)
				assert.Equal(t, "bob", createdUser.Username)
				assert.Equal(t, "bob@example.com", createdUser.Email)
				assert.True(t, createdUser.IsActive)
				assert.NotContains(t, string(body), "password")
			})

			t.Run("02_RegisterDuplicateUsername", func(t *testing.T) {
				requestBody := userDTO.RegisterUserRequest{
					Username: "bob",
					Email:    "bob2@example.com",
					Password: "Password123!",
					Role:     "user",
				}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/v1/users", requestBody, false)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			t.Run("03_GetUser", func(t *testing.T) {
				path := fmt.Sprintf("/api/v1/users/%d", createdUser.ID)
				resp, body := ctx.makeRequest(t, http.MethodGet, path, nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.UserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, createdUser.ID, response.ID)
				assert.Equal(t, "bob", response.Username)
			})

			t.Run("04_UpdateUser", func(t *testing.T) {
				email := "bob-updated@example.com"
				isActive := false
				requestBody := userDTO.UpdateUserRequest{
					Email:    &email,
					IsActive: &isActive,
				}

				path := fmt.Sprintf("/api/v1/users/%d", createdUser.ID)
				resp, body := ctx.makeRequest(t, http.MethodPut, path, requestBody, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.UserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "bob-updated@example.com", response.Email)
				assert.False(t, response.IsActive)
			})

			t.Run("05_ListUsers", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/users?skip=0&limit=10", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.ListUsersResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, int64(2), response.Total)
				assert.Len(t, response.Data, 2)
			})

			t.Run("06_DeleteUserRequiresAdmin", func(t *testing.T) {
				path := fmt.Sprintf("/api/v1/users/%d", createdUser.ID)

				resp, _ := ctx.makeRequest(t, http.MethodDelete, path, nil, false)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

				// ctx.token belongs to a regular user
				resp, _ = ctx.makeRequest(t, http.MethodDelete, path, nil, true)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Run("07_DeleteUserAsAdmin", func(t *testing.T) {
				adminPassword := "Adm1nSecretPass!"
				registerBody := userDTO.RegisterUserRequest{
					Username: "integration-admin",
					Email:    "integration-admin@example.com",
					Password: adminPassword,
					Role:     "admin",
				}
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/users", registerBody, false)
				require.Equal(t, http.StatusCreated, resp.StatusCode, "failed to register admin: %s", body)

				loginBody := authDTO.LoginRequest{Username: "integration-admin", Password: adminPassword}
				resp, body = ctx.makeRequest(t, http.MethodPost, "/api/v1/auth/login", loginBody, false)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var loginResponse authDTO.LoginResponse
				require.NoError(t, json.Unmarshal(body, &loginResponse))

				path := fmt.Sprintf("/api/v1/users/%d", createdUser.ID)
				req, err := http.NewRequest(http.MethodDelete, ctx.server.URL+path, nil)
				require.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+loginResponse.AccessToken)

				client := &http.Client{Timeout: 10 * time.Second}
				deleteResp, err := client.Do(req)
				require.NoError(t, err)
				defer func() { _ = deleteResp.Body.Close() }()
				assert.Equal(t, http.StatusNoContent, deleteResp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, path, nil, false)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}

// TestIntegration_Posts_CompleteFlow validates the complete post lifecycle
// including author attribution and authentication requirements.
func TestIntegration_Posts_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var createdPost postDTO.PostResponse

			t.Run("01_CreatePostRequiresAuth", func(t *testing.T) {
				requestBody := postDTO.CreatePostRequest{
					Title:   "Unauthenticated",
					Content: "should be rejected",
				}

				resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/v1/posts", requestBody, false)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("02_CreatePost", func(t *testing.T) {
				requestBody := postDTO.CreatePostRequest{
					Title:   "First post",
					Content: "Hello from the integration suite",
					Status:  "published",
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/posts", requestBody, true)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				err := json.Unmarshal(body, &createdPost)
				require.NoError(t, err)
				assert.Equal(t, "First post", createdPost.Title)
				assert.Equal(t, "published", createdPost.Status)
				assert.Equal(t, ctx.user.ID, createdPost.AuthorID)
			})

			t.Run("03_GetPost", func(t *testing.T) {
				path := fmt.Sprintf("/api/v1/posts/%d", createdPost.ID)
				resp, body := ctx.makeRequest(t, http.MethodGet, path, nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response postDTO.PostResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, createdPost.ID, response.ID)
			})

			t.Run("04_UpdatePost", func(t *testing.T) {
				title := "First post (edited)"
				requestBody := postDTO.UpdatePostRequest{Title: &title}

				path := fmt.Sprintf("/api/v1/posts/%d", createdPost.ID)
				resp, body := ctx.makeRequest(t, http.MethodPut, path, requestBody, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response postDTO.PostResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "First post (edited)", response.Title)
			})

			t.Run("05_ListPosts", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/posts", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response postDTO.ListPostsResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, int64(1), response.Total)
				assert.Len(t, response.Data, 1)
			})

			t.Run("06_DeletePost", func(t *testing.T) {
				path := fmt.Sprintf("/api/v1/posts/%d", createdPost.ID)
				resp, _ := ctx.makeRequest(t, http.MethodDelete, path, nil, true)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, path, nil, false)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}

// TestIntegration_Files_CompleteFlow validates upload, download, listing and
// deletion of stored files.
func TestIntegration_Files_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range driverTestCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			fileContent := []byte("fake png bytes for the integration suite")
			var savedAs string

			t.Run("01_UploadFile", func(t *testing.T) {
				resp, body := ctx.uploadFile(t, "avatar.png", "image/png", fileContent)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				var response fileDTO.UploadFileResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "avatar.png", response.Filename)
				assert.Equal(t, int64(len(fileContent)), response.Size)
				assert.Equal(t, "image/png", response.ContentType)
				assert.Equal(t, ctx.user.Username, response.UploadedBy)
				assert.True(t, strings.HasSuffix(response.SavedAs, "_avatar.png"))

				savedAs = response.SavedAs
			})

			t.Run("02_UploadUnsupportedType", func(t *testing.T) {
				resp, _ := ctx.uploadFile(t, "notes.txt", "text/plain", []byte("plain text"))
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			t.Run("03_DownloadFile", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/files/"+savedAs, nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.Equal(t, fileContent, body)
				assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
				assert.Contains(t, resp.Header.Get("Content-Disposition"), "inline")
			})

			t.Run("04_DownloadAsAttachment", func(t *testing.T) {
				path := "/api/v1/files/" + savedAs + "?download=true"
				resp, _ := ctx.makeRequest(t, http.MethodGet, path, nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
			})

			t.Run("05_ListFiles", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/files", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response fileDTO.ListFilesResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, 1, response.Total)
				require.Len(t, response.Files, 1)
				assert.Equal(t, savedAs, response.Files[0].Filename)
			})

			t.Run("06_DeleteFile", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodDelete, "/api/v1/files/"+savedAs, nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response fileDTO.DeleteFileResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, ctx.user.Username, response.DeletedBy)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/api/v1/files/"+savedAs, nil, false)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}
