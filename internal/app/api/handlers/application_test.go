package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cineconnect/sponsorpay/internal/app/service/application"
	"github.com/cineconnect/sponsorpay/internal/models"
	"github.com/cineconnect/sponsorpay/pkg/types"
)

type statusCall struct {
	id      string
	status  types.ApplicationStatus
	updates *application.StatusUpdates
}

// stubAppMgr records writes and serves canned reads. Methods a test does not
// exercise panic so accidental use is loud.
type stubAppMgr struct {
	created     *application.CreateRequest
	createdApp  *models.SponsorshipApplication
	app         *models.SponsorshipApplication
	getErr      error
	byProject   []*models.SponsorshipApplication
	bySponsor   []*models.SponsorshipApplication
	statusCalls []statusCall
	statusErr   error
}

func (s *stubAppMgr) Create(_ context.Context, req *application.CreateRequest) (*models.SponsorshipApplication, error) {
	s.created = req
	if s.createdApp != nil {
		return s.createdApp, nil
	}
	return &models.SponsorshipApplication{ID: "app-new", Amount: req.Amount}, nil
}

func (s *stubAppMgr) Get(_ context.Context, _ string) (*models.SponsorshipApplication, error) {
	return s.app, s.getErr
}

func (s *stubAppMgr) ListBySponsor(_ context.Context, _ string) ([]*models.SponsorshipApplication, error) {
	return s.bySponsor, nil
}

func (s *stubAppMgr) ListByProject(_ context.Context, _ string) ([]*models.SponsorshipApplication, error) {
	return s.byProject, nil
}

func (s *stubAppMgr) UpdateStatus(_ context.Context, id string, status types.ApplicationStatus, updates *application.StatusUpdates) error {
	s.statusCalls = append(s.statusCalls, statusCall{id: id, status: status, updates: updates})
	return s.statusErr
}

func (s *stubAppMgr) Scan(_ context.Context, _ *application.ScanRequest) (*application.ScanResponse, error) {
	panic("not used")
}

func postJSON(r *gin.Engine, path string, payload map[string]any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApiCreateApplication_Created(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := &stubAppMgr{}
	r := gin.New()
	r.POST("/api/v1/applications", ApiCreateApplication(mgr))

	w := postJSON(r, "/api/v1/applications", map[string]any{
		"projectId":            "proj-1",
		"sponsorId":            "sp-1",
		"sponsorshipPackageId": "pkg-1",
		"amount":               2500.0,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "Application submitted successfully")
	require.NotNil(t, mgr.created)
	require.Equal(t, "proj-1", mgr.created.ProjectID)
	require.Equal(t, 2500.0, mgr.created.Amount)
}

func TestApiCreateApplication_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/applications", ApiCreateApplication(&stubAppMgr{}))

	cases := []struct {
		name    string
		payload map[string]any
		wantMsg string
	}{
		{
			name:    "missing projectId",
			payload: map[string]any{"sponsorId": "sp-1", "sponsorshipPackageId": "pkg-1", "amount": 100},
			wantMsg: "Missing required field: projectId",
		},
		{
			name:    "missing sponsorId",
			payload: map[string]any{"projectId": "proj-1", "sponsorshipPackageId": "pkg-1", "amount": 100},
			wantMsg: "Missing required field: sponsorId",
		},
		{
			name:    "missing package",
			payload: map[string]any{"projectId": "proj-1", "sponsorId": "sp-1", "amount": 100},
			wantMsg: "Missing required field: sponsorshipPackageId",
		},
		{
			name:    "missing amount",
			payload: map[string]any{"projectId": "proj-1", "sponsorId": "sp-1", "sponsorshipPackageId": "pkg-1"},
			wantMsg: "Missing required field: amount",
		},
		{
			name:    "non-positive amount",
			payload: map[string]any{"projectId": "proj-1", "sponsorId": "sp-1", "sponsorshipPackageId": "pkg-1", "amount": 0},
			wantMsg: "Amount must be a positive number",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, "/api/v1/applications", tc.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Contains(t, w.Body.String(), tc.wantMsg)
		})
	}
}

func TestApiListApplications_ByProject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := &stubAppMgr{byProject: []*models.SponsorshipApplication{{ID: "app-1"}, {ID: "app-2"}}}
	r := gin.New()
	r.GET("/api/v1/applications", ApiListApplications(mgr))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications?userId=u-1&projectId=proj-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"count":2`)
}

func TestApiListApplications_SponsorRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := &stubAppMgr{bySponsor: []*models.SponsorshipApplication{{ID: "app-1"}}}
	r := gin.New()
	r.GET("/api/v1/applications", ApiListApplications(mgr))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications?userId=sp-1&role=sponsor", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"count":1`)
}

func TestApiListApplications_BadQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/applications", ApiListApplications(&stubAppMgr{}))

	// No userId at all.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "userId is required")

	// userId but neither projectId nor sponsor role.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/applications?userId=u-1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid query parameters")
}

func TestApiGetApplication_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/applications/:id", ApiGetApplication(&stubAppMgr{getErr: application.ErrNotFound}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Application not found")
}

func TestApiUpdateApplicationStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := &stubAppMgr{}
	r := gin.New()
	r.PATCH("/api/v1/applications/:id/status", ApiUpdateApplicationStatus(mgr))

	body, _ := json.Marshal(map[string]string{"status": "completed"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/applications/app-1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mgr.statusCalls, 1)
	require.Equal(t, "app-1", mgr.statusCalls[0].id)
	require.Equal(t, types.ApplicationStatusCompleted, mgr.statusCalls[0].status)
}

func TestApiUpdateApplicationStatus_RejectsInvalid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := &stubAppMgr{}
	r := gin.New()
	r.PATCH("/api/v1/applications/:id/status", ApiUpdateApplicationStatus(mgr))

	for _, status := range []string{"pending", "bogus", ""} {
		body, _ := json.Marshal(map[string]string{"status": status})
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/applications/app-1/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code, "status %q", status)
	}
	require.Empty(t, mgr.statusCalls)
}

func TestRegisterApplicationRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1")
	RegisterApplicationRoutes(g, &stubAppMgr{})

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("POST /api/v1/applications"))
	require.True(t, contains("GET /api/v1/applications"))
	require.True(t, contains("GET /api/v1/applications/:id"))
	require.True(t, contains("PATCH /api/v1/applications/:id/status"))
}
