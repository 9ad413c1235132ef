package routes

import (
	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

// CreateReport files a complaint against a listing or a user, never
// both at once.
func CreateReport(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	var input CreateReportInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if (input.PropertyID == nil) == (input.ReportedUserID == nil) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Exactly one of propertyID or reportedUserID must be set.", ctx)
		return
	}

	if input.PropertyID != nil {
		var property models.Property
		propertyQuery := storage.DB.Where("id = ?", *input.PropertyID).Limit(1).Find(&property)
		if propertyQuery.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		if propertyQuery.RowsAffected == 0 {
			utils.CreateNotFound(ctx)
			return
		}
	}

	if input.ReportedUserID != nil {
		var user models.User
		userQuery := storage.DB.Where("id = ?", *input.ReportedUserID).Limit(1).Find(&user)
		if userQuery.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		if userQuery.RowsAffected == 0 {
			utils.CreateNotFound(ctx)
			return
		}
	}

	report := models.Report{
		ReporterID:     claims.ID,
		PropertyID:     input.PropertyID,
		ReportedUserID: input.ReportedUserID,
		Reason:         input.Reason,
		Description:    input.Description,
		Status:         models.ReportStatusPending,
	}

	if createErr := storage.DB.Create(&report).Error; createErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(report)
}

// ListReports shows admins every report and everyone else only their
// own filings.
func ListReports(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)
	page, perPage := parsePagination(ctx)

	query := storage.DB.Model(&models.Report{})
	if claims.Role != models.RoleAdmin {
		query = query.Where("reporter_id = ?", claims.ID)
	}
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
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
		Order("reports.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reports).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, reports, page, perPage, total)
}

type CreateReportInput struct {
	PropertyID     *uint  `json:"propertyID"`
	ReportedUserID *uint  `json:"reportedUserID"`
	Reason         string `json:"reason" validate:"required,oneof=FRAUD INAPPROPRIATE DUPLICATE OTHER"`
	Description    string `json:"description" validate:"required,max=2000"`
}
