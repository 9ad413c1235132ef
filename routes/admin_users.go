package routes

import (
	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

func AdminListUsers(ctx iris.Context) {
	page, perPage := parsePagination(ctx)

	query := storage.DB.Model(&models.User{})
	if role := ctx.URLParam("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if q := ctx.URLParam("q"); q != "" {
		search := "%" + q + "%"
		query = query.Where(
			"lower(first_name) LIKE lower(?) OR lower(last_name) LIKE lower(?) OR lower(email) LIKE lower(?)",
			search, search, search)
	}

	var total int64
	if countErr := query.Count(&total).Error; countErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var users []models.User
	listErr := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

func AdminGetUser(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var user models.User
	userQuery := storage.DB.Where("id = ?", id).Limit(1).Find(&user)
	if userQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var propertiesCount int64
	storage.DB.Model(&models.Property{}).Where("landlord_id = ?", user.ID).Count(&propertiesCount)

	var reportsAgainstCount int64
	storage.DB.Model(&models.Report{}).Where("reported_user_id = ?", user.ID).Count(&reportsAgainstCount)

	ctx.JSON(iris.Map{
		"user":                user,
		"propertiesCount":     propertiesCount,
		"reportsAgainstCount": reportsAgainstCount,
	})
}

func AdminSuspendUser(ctx iris.Context) {
	setUserStatus(ctx, models.UserStatusSuspended, "user.suspend", "User suspended.")
}

func AdminActivateUser(ctx iris.Context) {
	setUserStatus(ctx, models.UserStatusActive, "user.activate", "User activated.")
}

func setUserStatus(ctx iris.Context, status, action, message string) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var user models.User
	userQuery := storage.DB.Where("id = ?", id).Limit(1).Find(&user)
	if userQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	before := user
	user.Status = status
	if saveErr := storage.DB.Save(&user).Error; saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, action, "user", user.ID, before, user)

	ctx.JSON(iris.Map{"message": message, "user": user})
}
