package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/models"
	"writeoff_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockMonitor struct {
	runSum     wm.RunSummary
	runErr     error
	preview    service.Result
	previewErr error

	mu          sync.Mutex
	runCalls    int
	lastPreview time.Time
	runs        chan wm.RunSummary
}

func (m *mockMonitor) Run(ctx context.Context) (wm.RunSummary, error) {
	m.mu.Lock()
	m.runCalls++
	m.mu.Unlock()
	return m.runSum, m.runErr
}
func (m *mockMonitor) Preview(ctx context.Context, at time.Time) (service.Result, error) {
	m.mu.Lock()
	m.lastPreview = at
	m.mu.Unlock()
	return m.preview, m.previewErr
}
func (m *mockMonitor) Subscribe() (<-chan wm.RunSummary, func()) {
	if m.runs == nil {
		m.runs = make(chan wm.RunSummary, 1)
	}
	return m.runs, func() {}
}

type mockGrids struct {
	units     []wm.Unit
	unitsErr  error
	created   wm.Unit
	createErr error
	rows      []models.RawRow
	rowsErr   error
	putErr    error

	lastUnit    string
	lastWeekday int
	lastCell    service.CellParams
}

func (m *mockGrids) Units(ctx context.Context) ([]wm.Unit, error) {
	return m.units, m.unitsErr
}
func (m *mockGrids) CreateUnit(ctx context.Context, name string) (wm.Unit, error) {
	m.lastUnit = name
	return m.created, m.createErr
}
func (m *mockGrids) WeekdayRows(ctx context.Context, unit string, weekday int) ([]models.RawRow, error) {
	m.lastUnit, m.lastWeekday = unit, weekday
	return m.rows, m.rowsErr
}
func (m *mockGrids) PutCell(ctx context.Context, unit string, p service.CellParams) error {
	m.lastUnit, m.lastCell = unit, p
	return m.putErr
}

type mockRunLog struct {
	resp     []wm.RunSummary
	err      error
	lastFrom time.Time
	lastTo   time.Time
}

func (m *mockRunLog) List(ctx context.Context, f service.RunFilter) ([]wm.RunSummary, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
