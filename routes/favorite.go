package routes

import (
	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetFavorites(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)
	page, perPage := parsePagination(ctx)

	query := storage.DB.Model(&models.Favorite{}).Where("user_id = ?", claims.ID)

	var total int64
	if countErr := query.Count(&total).Error; countErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var favorites []models.Favorite
	listErr := query.
		Preload("Property").
		Preload("Property.Address").
		Preload("Property.Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.sort_order, photos.id")
		}).
		Order("favorites.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&favorites).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, favorites, page, perPage, total)
}

func CreateFavorite(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	var input CreateFavoriteInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	propertyQuery := storage.DB.
		Where("id = ? AND status = ?", input.PropertyID, models.PropertyStatusPublished).
		Limit(1).Find(&property)
	if propertyQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if propertyQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var existing models.Favorite
	existingQuery := storage.DB.
		Where("user_id = ? AND property_id = ?", claims.ID, input.PropertyID).
		Limit(1).Find(&existing)
	if existingQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if existingQuery.RowsAffected > 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Property already in favorites.", ctx)
		return
	}

	favorite := models.Favorite{
		UserID:     claims.ID,
		PropertyID: input.PropertyID,
	}

	// The unique index still backstops two conflicting writers.
	createQuery := storage.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "property_id"}},
			DoNothing: true,
		}).
		Create(&favorite)
	if createQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if createQuery.RowsAffected == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Property already in favorites.", ctx)
		return
	}

	favorite.Property = property

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(favorite)
}

func RemoveFavorite(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	propertyID, paramErr := ctx.Params().GetUint("propertyID")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// Hard delete so the unique pair can be favorited again later.
	deleteQuery := storage.DB.Unscoped().
		Where("user_id = ? AND property_id = ?", claims.ID, propertyID).
		Delete(&models.Favorite{})
	if deleteQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if deleteQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

type CreateFavoriteInput struct {
	PropertyID uint `json:"propertyID" validate:"required"`
}
