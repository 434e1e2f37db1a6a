package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pulseboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockAccountRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"username": "ada"}`,
			mockSetup: func(m *MockAccountRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Account) bool {
					return a.Username == "ada" && !a.IsAdmin && a.ImageURL == nil
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Account).ID = 1
				}).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing username",
			body:           `{"is_admin": true}`,
			mockSetup:      func(m *MockAccountRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed body",
			body:           `{"username":`,
			mockSetup:      func(m *MockAccountRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockAccountRepository)
			s := &Server{accountRepo: mockRepo}
			app.Post("/accounts", s.CreateAccount)
			tt.mockSetup(mockRepo)

			req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCreateAccount_ResponseIncludesID(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockAccountRepository)
	s := &Server{accountRepo: mockRepo}
	app.Post("/accounts", s.CreateAccount)

	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Account).ID = 7
	}).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"username": "ada"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body models.Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint(7), body.ID)
	assert.Equal(t, "ada", body.Username)
	assert.Nil(t, body.ImageURL)
}

func TestGetAccounts(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockAccountRepository)
	s := &Server{accountRepo: mockRepo}
	app.Get("/accounts", s.GetAccounts)

	mockRepo.On("List", mock.Anything, "ada").
		Return([]models.Account{{ID: 1, Username: "ada"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts?username=ada", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []models.Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "ada", body[0].Username)
}

func TestGetAccount(t *testing.T) {
	tests := []struct {
		name           string
		idParam        string
		mockSetup      func(*MockAccountRepository)
		expectedStatus int
	}{
		{
			name:    "Success",
			idParam: "1",
			mockSetup: func(m *MockAccountRepository) {
				m.On("GetByID", mock.Anything, uint(1)).
					Return(&models.Account{ID: 1, Username: "ada"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid ID",
			idParam:        "abc",
			mockSetup:      func(m *MockAccountRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "Not found",
			idParam: "99",
			mockSetup: func(m *MockAccountRepository) {
				m.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("Account", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockAccountRepository)
			s := &Server{accountRepo: mockRepo}
			app.Get("/accounts/:id", s.GetAccount)
			tt.mockSetup(mockRepo)

			req := httptest.NewRequest(http.MethodGet, "/accounts/"+tt.idParam, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateAccountUsername(t *testing.T) {
	tests := []struct {
		name           string
		idParam        string
		body           string
		mockSetup      func(*MockAccountRepository)
		expectedStatus int
	}{
		{
			name:    "Success",
			idParam: "1",
			body:    `{"username": "lovelace"}`,
			mockSetup: func(m *MockAccountRepository) {
				m.On("UpdateField", mock.Anything, uint(1), "username", "lovelace").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Empty username",
			idParam:        "1",
			body:           `{"username": ""}`,
			mockSetup:      func(m *MockAccountRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "Not found",
			idParam: "99",
			body:    `{"username": "lovelace"}`,
			mockSetup: func(m *MockAccountRepository) {
				m.On("UpdateField", mock.Anything, uint(99), "username", "lovelace").
					Return(models.NewNotFoundError("Account", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockAccountRepository)
			s := &Server{accountRepo: mockRepo}
			app.Patch("/accounts/:id/username", s.UpdateAccountUsername)
			tt.mockSetup(mockRepo)

			req := httptest.NewRequest(http.MethodPatch, "/accounts/"+tt.idParam+"/username", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateAccountAdmin_RequiresBoolean(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockAccountRepository)
	s := &Server{accountRepo: mockRepo}
	app.Patch("/accounts/:id/is_admin", s.UpdateAccountAdmin)

	req := httptest.NewRequest(http.MethodPatch, "/accounts/1/is_admin", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "UpdateField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateAccountImage_NullClears(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockAccountRepository)
	s := &Server{accountRepo: mockRepo}
	app.Patch("/accounts/:id/image_url", s.UpdateAccountImage)

	mockRepo.On("UpdateField", mock.Anything, uint(1), "image_url", (*string)(nil)).Return(nil)

	req := httptest.NewRequest(http.MethodPatch, "/accounts/1/image_url", strings.NewReader(`{"image_url": null}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestDeleteAccount(t *testing.T) {
	tests := []struct {
		name           string
		idParam        string
		mockSetup      func(*MockAccountRepository)
		expectedStatus int
	}{
		{
			name:    "Success",
			idParam: "1",
			mockSetup: func(m *MockAccountRepository) {
				m.On("Delete", mock.Anything, uint(1)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Not found",
			idParam: "99",
			mockSetup: func(m *MockAccountRepository) {
				m.On("Delete", mock.Anything, uint(99)).
					Return(models.NewNotFoundError("Account", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockAccountRepository)
			s := &Server{accountRepo: mockRepo}
			app.Delete("/accounts/:id", s.DeleteAccount)
			tt.mockSetup(mockRepo)

			req := httptest.NewRequest(http.MethodDelete, "/accounts/"+tt.idParam, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}
