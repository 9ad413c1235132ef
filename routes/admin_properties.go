package routes

import (
	"time"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func AdminListProperties(ctx iris.Context) {
	query := storage.DB.Model(&models.Property{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("properties.status = ?", status)
	}
	if propertyType := ctx.URLParam("type"); propertyType != "" {
		query = query.Where("properties.type = ?", propertyType)
	}
	if q := ctx.URLParam("q"); q != "" {
		search := "%" + q + "%"
		query = query.
			Joins("LEFT JOIN users ON users.id = properties.landlord_id").
			Select("properties.*").
			Where("lower(properties.title) LIKE lower(?) OR lower(users.email) LIKE lower(?)", search, search)
	}

	adminListProperties(ctx, query)
}

// AdminListPendingProperties is the moderation queue, oldest
// submission first.
func AdminListPendingProperties(ctx iris.Context) {
	page, perPage := parsePagination(ctx)

	query := storage.DB.Model(&models.Property{}).
		Where("properties.status = ?", models.PropertyStatusPending)

	var total int64
	if countErr := query.Count(&total).Error; countErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var properties []models.Property
	listErr := query.
		Preload("Landlord").
		Preload("Address").
		Preload("Photos").
		Order("properties.updated_at ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&properties).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}

func AdminGetProperty(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	property := getPropertyAndAssociationsByID(id, ctx)
	if property == nil {
		return
	}

	var reportsCount int64
	storage.DB.Model(&models.Report{}).Where("property_id = ?", property.ID).Count(&reportsCount)

	ctx.JSON(iris.Map{
		"property":     property,
		"reportsCount": reportsCount,
	})
}

func AdminApproveProperty(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var property models.Property
	propertyQuery := storage.DB.Where("id = ?", id).Limit(1).Find(&property)
	if propertyQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if propertyQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if property.Status != models.PropertyStatusPending {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Only pending properties can be approved.", ctx)
		return
	}

	before := property
	now := time.Now()
	property.Status = models.PropertyStatusPublished
	property.PublishedAt = &now

	if saveErr := storage.DB.Save(&property).Error; saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "property.approve", "property", property.ID, before, property)

	ctx.JSON(iris.Map{"message": "Property approved and published.", "property": property})
}

func AdminRejectProperty(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var property models.Property
	propertyQuery := storage.DB.Where("id = ?", id).Limit(1).Find(&property)
	if propertyQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if propertyQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	// The body may carry a free-text reason for the landlord. Nothing
	// stores or forwards it yet, the request simply tolerates it.
	if ctx.GetContentLength() > 0 {
		var input RejectPropertyInput
		ctx.ReadJSON(&input)
	}

	if property.Status != models.PropertyStatusPending {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Only pending properties can be rejected.", ctx)
		return
	}

	before := property
	property.Status = models.PropertyStatusRejected

	if saveErr := storage.DB.Save(&property).Error; saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "property.reject", "property", property.ID, before, property)

	ctx.JSON(iris.Map{"message": "Property rejected.", "property": property})
}

func adminListProperties(ctx iris.Context, query *gorm.DB) {
	page, perPage := parsePagination(ctx)

	var total int64
	if countErr := query.Count(&total).Error; countErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var properties []models.Property
	listErr := query.
		Preload("Landlord").
		Preload("Address").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.sort_order, photos.id")
		}).
		Order("properties.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&properties).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}

type RejectPropertyInput struct {
	Reason string `json:"reason"`
}
