package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worlddist/ordering-backend/internal/domain"
	"github.com/worlddist/ordering-backend/internal/testutil"
)

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	return resp
}

func getWithCookie(t *testing.T, url string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		expectedCode   string
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"email":       "new@restaurant.com",
				"password":    "password123",
				"companyName": "New Restaurant Chain",
				"country":     "Germany",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result struct {
					User *domain.User `json:"user"`
				}
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "new@restaurant.com", result.User.Email)
				assert.Equal(t, "EU", result.User.Region)

				var session *http.Cookie
				for _, c := range resp.Cookies() {
					if c.Name == "session_id" {
						session = c
					}
				}
				require.NotNil(t, session, "registration must set a session cookie")
				assert.True(t, session.HttpOnly)
				assert.NotEmpty(t, session.Value)
			},
		},
		{
			name: "invalid email",
			request: map[string]string{
				"email":       "not-an-email",
				"password":    "password123",
				"companyName": "Broken Mail Ltd",
				"country":     "Spain",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   string(domain.KindValidation),
		},
		{
			name: "short password",
			request: map[string]string{
				"email":       "short@pass.com",
				"password":    "12345",
				"companyName": "Short Pass Ltd",
				"country":     "Spain",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   string(domain.KindValidation),
		},
		{
			name: "missing company name",
			request: map[string]string{
				"email":    "nocompany@buyer.com",
				"password": "password123",
				"country":  "Spain",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   string(domain.KindValidation),
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"email":       "existing@buyer.com",
				"password":    "password123",
				"companyName": "Duplicate Ltd",
				"country":     "Italy",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@buyer.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   string(domain.KindConflict),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := postJSON(t, ts.APIURL("/auth/register"), tt.request)
			defer resp.Body.Close()

			if tt.expectedCode != "" {
				testutil.AssertErrorCode(t, resp, tt.expectedStatus, tt.expectedCode)
				return
			}

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@hotel.com").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successful login",
			request: map[string]string{
				"email":    user.Email,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			request: map[string]string{
				"email":    user.Email,
				"password": "wrongpassword",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   string(domain.KindUnauthenticated),
		},
		{
			name: "unknown email",
			request: map[string]string{
				"email":    "ghost@hotel.com",
				"password": "anypassword",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   string(domain.KindUnauthenticated),
		},
		{
			name:           "missing fields",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   string(domain.KindValidation),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/login"), tt.request)
			defer resp.Body.Close()

			if tt.expectedCode != "" {
				testutil.AssertErrorCode(t, resp, tt.expectedStatus, tt.expectedCode)
				return
			}

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Cookies())
		})
	}
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, session := testutil.NewUserBuilder().
		WithEmail("session@hotel.com").
		BuildAndLogin(t, ts)

	t.Run("me with valid session", func(t *testing.T) {
		resp := getWithCookie(t, ts.APIURL("/auth/me"), session)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result struct {
			User *domain.User `json:"user"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, user.Email, result.User.Email)
	})

	t.Run("me without session", func(t *testing.T) {
		resp := getWithCookie(t, ts.APIURL("/auth/me"), nil)
		defer resp.Body.Close()

		testutil.AssertErrorCode(t, resp, http.StatusUnauthorized, string(domain.KindUnauthenticated))
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.APIURL("/auth/logout"), nil)
		require.NoError(t, err)
		req.AddCookie(session)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		// The revoked token no longer authenticates.
		me := getWithCookie(t, ts.APIURL("/auth/me"), session)
		defer me.Body.Close()
		testutil.AssertErrorCode(t, me, http.StatusUnauthorized, string(domain.KindUnauthenticated))
	})

	t.Run("logout without session still succeeds", func(t *testing.T) {
		resp, err := http.Post(ts.APIURL("/auth/logout"), "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})
}

func TestAuthHandler_LogoutSurvivesStorageFailure(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, session := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	// Take the store down so the revoke cannot run; logout must still
	// succeed and clear the cookie.
	sqlDB, err := ts.DB.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	req, err := http.NewRequest(http.MethodPost, ts.APIURL("/auth/logout"), nil)
	require.NoError(t, err)
	req.AddCookie(session)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var cleared *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			cleared = c
		}
	}
	require.NotNil(t, cleared, "logout must always clear the session cookie")
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
