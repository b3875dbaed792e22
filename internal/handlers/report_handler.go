package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"report_manager/internal/apperrors"
	"report_manager/internal/calendar"
	"report_manager/internal/models"
	"report_manager/internal/reports"
	"report_manager/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
	userService   services.UserService
}

func NewReportHandler(reportService services.ReportService, userService services.UserService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		userService:   userService,
	}
}

type SaveReportRequest struct {
	ActorID     uint               `json:"actor_id"`
	UserID      uint               `json:"user_id"`
	Date        string             `json:"date"`
	ReportIndex *int               `json:"report_index"`
	Report      models.DailyReport `json:"report"`
}

type FeedbackRequest struct {
	ActorID       uint    `json:"actor_id"`
	AdminFeedback *string `json:"admin_feedback"`
	AdminReviewed bool    `json:"admin_reviewed"`
	ReportIndex   *int    `json:"report_index"`
}

// GetReports serves both the personal fetch (userId) and the admin team
// fetch (userIds, comma separated). Response shape: {userId: {date: report|[reports]}}.
func (h *ReportHandler) GetReports(c *gin.Context) {
	actorID, err := queryUint(c, "actorId")
	if err != nil {
		writeError(c, err)
		return
	}

	if userIDs, ok, err := queryUserIDs(c); err != nil {
		writeError(c, err)
		return
	} else if ok {
		if err := h.userService.RequireAdmin(actorID); err != nil {
			writeError(c, err)
			return
		}
		col, err := h.reportService.FetchReportsForAdmin(userIDs)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, col)
		return
	}

	userID, err := queryUint(c, "userId")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.userService.RequireSelfOrAdmin(actorID, userID); err != nil {
		writeError(c, err)
		return
	}

	col, err := h.reportService.FetchReportsForUser(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}

// SaveReport upserts a report. Content writes are owner-only.
func (h *ReportHandler) SaveReport(c *gin.Context) {
	var req SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if req.ActorID != req.UserID {
		writeError(c, fmt.Errorf("%w: reports can only be written by their owner", apperrors.ErrPermission))
		return
	}

	saved, err := h.reportService.SaveReport(req.UserID, req.Date, req.ReportIndex, &req.Report)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteReport removes exactly one report, addressed either by id or by
// the (userId, date, reportIndex) triple.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	actorID, err := queryUint(c, "actorId")
	if err != nil {
		writeError(c, err)
		return
	}

	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			writeError(c, fmt.Errorf("%w: invalid id %q", apperrors.ErrValidation, idStr))
			return
		}
		row, err := h.reportService.GetReportByID(uint(id))
		if err != nil {
			writeError(c, err)
			return
		}
		if row.UserID != actorID {
			writeError(c, fmt.Errorf("%w: reports can only be deleted by their owner", apperrors.ErrPermission))
			return
		}
		if err := h.reportService.DeleteReportByID(uint(id)); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "deleted_count": 1})
		return
	}

	userID, err := queryUint(c, "userId")
	if err != nil {
		writeError(c, err)
		return
	}
	if userID != actorID {
		writeError(c, fmt.Errorf("%w: reports can only be deleted by their owner", apperrors.ErrPermission))
		return
	}
	date := c.Query("date")
	index, err := queryInt(c, "reportIndex")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.reportService.DeleteReport(userID, date, index); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted_count": 1})
}

// SubmitFeedback writes an admin's review onto a single report.
func (h *ReportHandler) SubmitFeedback(c *gin.Context) {
	userID, err := paramUint(c, "userId")
	if err != nil {
		writeError(c, err)
		return
	}
	date := c.Param("date")

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if err := h.userService.RequireAdmin(req.ActorID); err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.reportService.SubmitFeedback(userID, date, req.ReportIndex, req.AdminFeedback, req.AdminReviewed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetCalendar builds the month grid for one user or, for admins, a set
// of users, with every day's click action resolved.
func (h *ReportHandler) GetCalendar(c *gin.Context) {
	actorID, err := queryUint(c, "actorId")
	if err != nil {
		writeError(c, err)
		return
	}
	year, err := queryInt(c, "year")
	if err != nil {
		writeError(c, err)
		return
	}
	month, err := queryInt(c, "month")
	if err != nil {
		writeError(c, err)
		return
	}
	if month < 1 || month > 12 {
		writeError(c, fmt.Errorf("%w: invalid month %d", apperrors.ErrValidation, month))
		return
	}

	view := calendar.ViewPersonal
	var subjectID uint
	var col reports.Collection

	if userIDs, ok, err := queryUserIDs(c); err != nil {
		writeError(c, err)
		return
	} else if ok {
		if err := h.userService.RequireAdmin(actorID); err != nil {
			writeError(c, err)
			return
		}
		view = calendar.ViewTeam
		col, err = h.reportService.FetchReportsForAdmin(userIDs)
		if err != nil {
			writeError(c, err)
			return
		}
	} else {
		userID, err := queryUint(c, "userId")
		if err != nil {
			writeError(c, err)
			return
		}
		if err := h.userService.RequireSelfOrAdmin(actorID, userID); err != nil {
			writeError(c, err)
			return
		}
		subjectID = userID
		col, err = h.reportService.FetchReportsForUser(userID)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	actor, err := h.userService.GetUserByID(actorID)
	if err != nil {
		writeError(c, fmt.Errorf("%w: unknown actor %d", apperrors.ErrPermission, actorID))
		return
	}

	grid := calendar.BuildMonthGrid(col, year, time.Month(month), view, subjectID)
	viewer := calendar.Viewer{UserID: actorID, IsAdmin: actor.IsAdmin()}
	calendar.AnnotateActions(&grid, col, viewer, reports.FormatDate(time.Now()))
	c.JSON(http.StatusOK, grid)
}

// GetStats serves the derived per-user report counts.
func (h *ReportHandler) GetStats(c *gin.Context) {
	actorID, err := queryUint(c, "actorId")
	if err != nil {
		writeError(c, err)
		return
	}
	userID, err := queryUint(c, "userId")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.userService.RequireSelfOrAdmin(actorID, userID); err != nil {
		writeError(c, err)
		return
	}

	stats, err := h.reportService.GetStats(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrPermission):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrNetwork):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": apperrors.MessageJa(err)})
}

func queryUint(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", apperrors.ErrValidation, name, raw)
	}
	return uint(v), nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", apperrors.ErrValidation, name, raw)
	}
	return v, nil
}

func paramUint(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", apperrors.ErrValidation, name, raw)
	}
	return uint(v), nil
}

func queryUserIDs(c *gin.Context) ([]uint, bool, error) {
	raw := c.Query("userIds")
	if raw == "" {
		return nil, false, nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, false, fmt.Errorf("%w: invalid userIds %q", apperrors.ErrValidation, raw)
		}
		ids = append(ids, uint(v))
	}
	return ids, true, nil
}
