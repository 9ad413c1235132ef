package routes

import (
	"time"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

func AdminListReports(ctx iris.Context) {
	page, perPage := parsePagination(ctx)

	query := storage.DB.Model(&models.Report{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if reason := ctx.URLParam("reason"); reason != "" {
		query = query.Where("reason = ?", reason)
	}

	var total int64
	if countErr := query.Count(&total).Error; countErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var reports []models.Report
	listErr := query.
		Preload("Reporter").
		Preload("Property").
		Preload("ReportedUser").
		Order("reports.created_at ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reports).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, reports, page, perPage, total)
}

func AdminResolveReport(ctx iris.Context) {
	closeReport(ctx, models.ReportStatusResolved, "report.resolve", "Report resolved.")
}

func AdminDismissReport(ctx iris.Context) {
	closeReport(ctx, models.ReportStatusDismissed, "report.dismiss", "Report dismissed.")
}

func closeReport(ctx iris.Context, status, action, message string) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var report models.Report
	reportQuery := storage.DB.Where("id = ?", id).Limit(1).Find(&report)
	if reportQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if reportQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	before := report
	now := time.Now()
	report.Status = status
	report.ResolvedAt = &now

	if saveErr := storage.DB.Save(&report).Error; saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, action, "report", report.ID, before, report)

	ctx.JSON(iris.Map{"message": message, "report": report})
}
