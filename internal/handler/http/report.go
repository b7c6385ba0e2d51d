package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/officetrack/attendance-backend-go/internal/domain/report"
	"github.com/officetrack/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	DownloadAttendanceCSV(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// DownloadAttendanceCSV implements ReportHandler.
func (h *ReportHandlerImpl) DownloadAttendanceCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.reportService.SixMonthCSV(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
