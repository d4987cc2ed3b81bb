package http

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstack/internal/audit"
	"github.com/mrlokans/bookstack/internal/integrity"
	"github.com/mrlokans/bookstack/internal/settingsstore"
)

// IntegrityLibrary runs the integrity checks of a library.
type IntegrityLibrary interface {
	Audit(ctx context.Context, userID uint) (integrity.Report, error)
}

// AuditScheduler is the control surface of the periodic integrity audit.
type AuditScheduler interface {
	Reschedule() error
	RunNow()
	IsRunning() bool
	IsAuditing() bool
	GetNextRunTime() *time.Time
}

// ReportArchive reads integrity reports saved by scheduled audits.
type ReportArchive interface {
	List() ([]string, error)
	Load(name string, v any) error
}

// IntegrityController serves audit reports and the schedule settings of the
// periodic audit.
type IntegrityController struct {
	library       IntegrityLibrary
	settingsStore *settingsstore.SettingsStore
	scheduler     AuditScheduler
	archive       ReportArchive
}

// NewIntegrityController creates the controller. settingsStore and
// scheduler may be nil, which disables the schedule endpoints.
func NewIntegrityController(library IntegrityLibrary, store *settingsstore.SettingsStore, sched AuditScheduler) *IntegrityController {
	return &IntegrityController{
		library:       library,
		settingsStore: store,
		scheduler:     sched,
	}
}

// Report handles GET /api/integrity. ?type= and ?reason= narrow findings
// and groups; the summary always covers the whole library.
func (ic *IntegrityController) Report(c *gin.Context) {
	var issueType integrity.IssueType
	if raw := c.Query("type"); raw != "" {
		t, ok := integrity.ParseIssueType(raw)
		if !ok {
			respondBadRequest(c, "unknown issue type: "+raw)
			return
		}
		issueType = t
	}

	report, err := ic.library.Audit(c.Request.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			respondError(c, 499, "request cancelled")
			return
		}
		respondInternalError(c, err, "integrity audit")
		return
	}

	reason := c.Query("reason")
	if issueType != "" || reason != "" {
		report.Findings = integrity.Filter(report.Findings, issueType, reason)
		report.Groups = integrity.GroupByReason(report.Findings)
	}
	c.JSON(http.StatusOK, report)
}

// ScheduleResponse is the response of GET /api/integrity/schedule.
type ScheduleResponse struct {
	Config     settingsstore.IntegrityAuditConfigInfo `json:"config"`
	Status     settingsstore.IntegrityAuditStatus     `json:"status"`
	NextRun    *time.Time                             `json:"next_run,omitempty"`
	IsRunning  bool                                   `json:"is_running"`
	IsAuditing bool                                   `json:"is_auditing"`
	Presets    []SchedulePreset                       `json:"presets"`
}

// SchedulePreset is a predefined schedule option
type SchedulePreset struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

var schedulePresets = []SchedulePreset{
	{Label: "Every 6 hours", Value: "0 */6 * * *", Description: "Runs at midnight, 6am, noon, 6pm"},
	{Label: "Daily at 3am", Value: settingsstore.DefaultIntegrityAuditSchedule, Description: "Runs once daily at 03:00"},
	{Label: "Weekly on Sunday", Value: "0 3 * * 0", Description: "Runs every Sunday at 03:00"},
	{Label: "Monthly", Value: "0 3 1 * *", Description: "Runs on the first day of the month at 03:00"},
}

func (ic *IntegrityController) scheduleResponse() ScheduleResponse {
	resp := ScheduleResponse{
		Config:  ic.settingsStore.GetIntegrityAuditConfigInfo(time.Now()),
		Status:  ic.settingsStore.GetIntegrityAuditStatus(),
		Presets: schedulePresets,
	}
	if ic.scheduler != nil {
		resp.NextRun = ic.scheduler.GetNextRunTime()
		resp.IsRunning = ic.scheduler.IsRunning()
		resp.IsAuditing = ic.scheduler.IsAuditing()
	}
	return resp
}

// GetSchedule handles GET /api/integrity/schedule.
func (ic *IntegrityController) GetSchedule(c *gin.Context) {
	if ic.settingsStore == nil {
		respondError(c, http.StatusServiceUnavailable, "settings store not available")
		return
	}
	c.JSON(http.StatusOK, ic.scheduleResponse())
}

// UpdateScheduleRequest is the body of PUT /api/integrity/schedule.
type UpdateScheduleRequest struct {
	Enabled  *bool  `json:"enabled"`
	Schedule string `json:"schedule"`
}

// UpdateSchedule handles PUT /api/integrity/schedule.
func (ic *IntegrityController) UpdateSchedule(c *gin.Context) {
	if ic.settingsStore == nil {
		respondError(c, http.StatusServiceUnavailable, "settings store not available")
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	if req.Schedule != "" {
		if err := settingsstore.ValidateCronSchedule(req.Schedule); err != nil {
			respondBadRequest(c, "invalid cron schedule: "+err.Error())
			return
		}
		if err := ic.settingsStore.SetIntegrityAuditSchedule(req.Schedule); err != nil {
			respondInternalError(c, err, "save schedule")
			return
		}
	}
	if req.Enabled != nil {
		if err := ic.settingsStore.SetIntegrityAuditEnabled(*req.Enabled); err != nil {
			respondInternalError(c, err, "save enabled state")
			return
		}
	}

	if ic.scheduler != nil {
		if err := ic.scheduler.Reschedule(); err != nil {
			respondInternalError(c, err, "reschedule")
			return
		}
	}
	c.JSON(http.StatusOK, ic.scheduleResponse())
}

// ResetSchedule handles DELETE /api/integrity/schedule, reverting to the
// environment or defaults.
func (ic *IntegrityController) ResetSchedule(c *gin.Context) {
	if ic.settingsStore == nil {
		respondError(c, http.StatusServiceUnavailable, "settings store not available")
		return
	}
	if err := ic.settingsStore.ClearIntegrityAuditSettings(); err != nil {
		respondInternalError(c, err, "reset schedule")
		return
	}
	if ic.scheduler != nil {
		if err := ic.scheduler.Reschedule(); err != nil {
			respondInternalError(c, err, "reschedule")
			return
		}
	}
	c.JSON(http.StatusOK, ic.scheduleResponse())
}

// RunNow handles POST /api/integrity/run.
func (ic *IntegrityController) RunNow(c *gin.Context) {
	if ic.scheduler == nil {
		respondError(c, http.StatusServiceUnavailable, "scheduler not available")
		return
	}
	if ic.scheduler.IsAuditing() {
		respondError(c, http.StatusConflict, "integrity audit already running")
		return
	}
	ic.scheduler.RunNow()
	respondAccepted(c, "integrity audit started", nil)
}

// ListReports handles GET /api/integrity/reports, oldest first.
func (ic *IntegrityController) ListReports(c *gin.Context) {
	names, err := ic.archive.List()
	if err != nil {
		respondInternalError(c, err, "list archived reports")
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": names})
}

// GetReport handles GET /api/integrity/reports/:name.
func (ic *IntegrityController) GetReport(c *gin.Context) {
	var report integrity.Report
	err := ic.archive.Load(c.Param("name"), &report)
	switch {
	case errors.Is(err, audit.ErrInvalidReportName):
		respondBadRequest(c, err.Error())
	case errors.Is(err, fs.ErrNotExist):
		respondNotFound(c, "report")
	case err != nil:
		respondInternalError(c, err, "load archived report")
	default:
		c.JSON(http.StatusOK, report)
	}
}
