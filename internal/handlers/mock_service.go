package handlers

import (
	"context"

	"itemvault/internal/models"
	"itemvault/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser *models.User
	registerErr  error
	loginToken   string
	loginErr     error
	parseSubject string
	parseErr     error
	authUser     *models.User
	authErr      error

	lastRegisterInput service.RegisterInput
	lastLoginEmail    string
	lastLoginPassword string
	lastParsedToken   string
	lastAuthToken     string
}

func (m *mockAuth) Register(_ context.Context, input service.RegisterInput) (*models.User, error) {
	m.lastRegisterInput = input
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParsedToken = token
	return m.parseSubject, m.parseErr
}

func (m *mockAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	m.lastAuthToken = token
	return m.authUser, m.authErr
}

type mockItems struct {
	listItems  []models.Item
	listErr    error
	createItem *models.Item
	createErr  error
	getItem    *models.Item
	getErr     error
	updateItem *models.Item
	updateErr  error
	deleteErr  error

	lastOwnerID     int
	lastItemID      int
	lastCreateInput service.CreateItemInput
	lastPatch       service.ItemPatch
	deleteCalls     int
}

func (m *mockItems) List(_ context.Context, ownerID int) ([]models.Item, error) {
	m.lastOwnerID = ownerID
	return m.listItems, m.listErr
}

func (m *mockItems) Create(_ context.Context, ownerID int, input service.CreateItemInput) (*models.Item, error) {
	m.lastOwnerID = ownerID
	m.lastCreateInput = input
	return m.createItem, m.createErr
}

func (m *mockItems) Get(_ context.Context, id, ownerID int) (*models.Item, error) {
	m.lastItemID = id
	m.lastOwnerID = ownerID
	return m.getItem, m.getErr
}

func (m *mockItems) Update(_ context.Context, id, ownerID int, patch service.ItemPatch) (*models.Item, error) {
	m.lastItemID = id
	m.lastOwnerID = ownerID
	m.lastPatch = patch
	return m.updateItem, m.updateErr
}

func (m *mockItems) Delete(_ context.Context, id, ownerID int) error {
	m.deleteCalls++
	m.lastItemID = id
	m.lastOwnerID = ownerID
	return m.deleteErr
}

type mockUsers struct {
	updatedUser *models.User
	updateErr   error

	lastUser  *models.User
	lastPatch service.UserPatch
}

func (m *mockUsers) UpdateProfile(_ context.Context, user *models.User, patch service.UserPatch) (*models.User, error) {
	m.lastUser = user
	m.lastPatch = patch
	return m.updatedUser, m.updateErr
}

// newTestRouter builds the full route tree around the given service mocks.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, nil)
	return h.InitRoutes()
}
