package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cineconnect/sponsorpay/internal/app/service/application"
	"github.com/cineconnect/sponsorpay/internal/models"
	"github.com/cineconnect/sponsorpay/pkg/types"
)

type createApplicationReq struct {
	ProjectID            string   `json:"projectId"`
	SponsorID            string   `json:"sponsorId"`
	SponsorshipPackageID string   `json:"sponsorshipPackageId"`
	Amount               *float64 `json:"amount"`
}

// @Summary      Submit sponsorship application
// @Tags         Application
// @Accept       json
// @Produce      json
// @Success      201  {object}  handlers.CreateApplicationResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Router       /api/v1/applications [post]
func ApiCreateApplication(mgr application.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createApplicationReq
		if err := c.ShouldBindJSON(&req); err != nil {
			failJSON(c, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}

		required := []struct{ field, value string }{
			{"projectId", req.ProjectID},
			{"sponsorId", req.SponsorID},
			{"sponsorshipPackageId", req.SponsorshipPackageID},
		}
		for _, f := range required {
			if f.value == "" {
				failJSON(c, http.StatusBadRequest, "Missing required field: "+f.field)
				return
			}
		}
		if req.Amount == nil {
			failJSON(c, http.StatusBadRequest, "Missing required field: amount")
			return
		}
		if *req.Amount <= 0 {
			failJSON(c, http.StatusBadRequest, "Amount must be a positive number")
			return
		}

		app, err := mgr.Create(c.Request.Context(), &application.CreateRequest{
			ProjectID:            req.ProjectID,
			SponsorID:            req.SponsorID,
			SponsorshipPackageID: req.SponsorshipPackageID,
			Amount:               *req.Amount,
		})
		if err != nil {
			failJSON(c, http.StatusInternalServerError, "Failed to submit application")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":       true,
			"applicationId": app.ID,
			"message":       "Application submitted successfully",
		})
	}
}

// @Summary      List applications
// @Description  Lists applications for a project, or a sponsor's own applications when role=sponsor.
// @Tags         Application
// @Produce      json
// @Param        userId     query  string  true   "Requesting user id"
// @Param        projectId  query  string  false  "Project id"
// @Param        role       query  string  false  "sponsor"
// @Success      200  {object}  handlers.ListApplicationsResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Router       /api/v1/applications [get]
func ApiListApplications(mgr application.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		projectID := c.Query("projectId")
		role := c.Query("role")

		if userID == "" {
			failJSON(c, http.StatusBadRequest, "userId is required")
			return
		}

		var apps []*models.SponsorshipApplication
		var err error
		switch {
		case projectID != "":
			apps, err = mgr.ListByProject(c.Request.Context(), projectID)
		case role == "sponsor":
			apps, err = mgr.ListBySponsor(c.Request.Context(), userID)
		default:
			failJSON(c, http.StatusBadRequest, "Invalid query parameters")
			return
		}
		if err != nil {
			failJSON(c, http.StatusInternalServerError, "Failed to fetch applications")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"applications": apps,
			"count":        len(apps),
		})
	}
}

// @Summary      Get application
// @Tags         Application
// @Produce      json
// @Param        id  path  string  true  "Application id"
// @Success      200  {object}  handlers.GetApplicationResponse
// @Failure      404  {object}  handlers.ErrorResponse
// @Router       /api/v1/applications/{id} [get]
func ApiGetApplication(mgr application.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		app, err := mgr.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, application.ErrNotFound) {
				failJSON(c, http.StatusNotFound, "Application not found")
				return
			}
			failJSON(c, http.StatusInternalServerError, "Failed to fetch application")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "application": app})
	}
}

type updateApplicationStatusReq struct {
	Status types.ApplicationStatus `json:"status"`
}

// @Summary      Update application status
// @Description  Manual operator path for accepting/rejecting/completing an application. May race a webhook delivery; last write wins.
// @Tags         Application
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Application id"
// @Success      200  {object}  handlers.SuccessResponse
// @Failure      400  {object}  handlers.ErrorResponse
// @Router       /api/v1/applications/{id}/status [patch]
func ApiUpdateApplicationStatus(mgr application.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateApplicationStatusReq
		if err := c.ShouldBindJSON(&req); err != nil {
			failJSON(c, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
		if !req.Status.Valid() || req.Status == types.ApplicationStatusPending {
			failJSON(c, http.StatusBadRequest, "status must be one of accepted, rejected, completed")
			return
		}

		err := mgr.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, nil)
		if err != nil {
			if errors.Is(err, application.ErrNotFound) {
				failJSON(c, http.StatusNotFound, "Application not found")
				return
			}
			failJSON(c, http.StatusInternalServerError, "Failed to update application")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func RegisterApplicationRoutes(r gin.IRouter, mgr application.Manager) {
	r.POST("/applications", ApiCreateApplication(mgr))
	r.GET("/applications", ApiListApplications(mgr))
	r.GET("/applications/:id", ApiGetApplication(mgr))
	r.PATCH("/applications/:id/status", ApiUpdateApplicationStatus(mgr))
}
