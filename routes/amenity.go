package routes

import (
	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetAmenities serves the amenity catalog from cache when warm. The
// catalog is tiny and changes only through the admin endpoints below.
func GetAmenities(ctx iris.Context) {
	if amenities, ok := storage.GetCachedAmenities(); ok {
		ctx.JSON(amenities)
		return
	}

	var amenities []models.Amenity
	listErr := storage.DB.Order("category, name").Find(&amenities).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.SetCachedAmenities(amenities)
	ctx.JSON(amenities)
}

func CreateAmenity(ctx iris.Context) {
	var input AmenityInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.Amenity
	existingQuery := storage.DB.Where("name = ?", input.Name).Limit(1).Find(&existing)
	if existingQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if existingQuery.RowsAffected > 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Amenity already exists.", ctx)
		return
	}

	amenity := models.Amenity{
		Name:     input.Name,
		Icon:     input.Icon,
		Category: input.Category,
	}

	if createErr := storage.DB.Create(&amenity).Error; createErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAmenityCache()
	utils.Audit(ctx, "amenity.create", "amenity", amenity.ID, nil, amenity)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(amenity)
}

func UpdateAmenity(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var amenity models.Amenity
	amenityQuery := storage.DB.Where("id = ?", id).Limit(1).Find(&amenity)
	if amenityQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if amenityQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var input AmenityInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := amenity
	amenity.Name = input.Name
	amenity.Icon = input.Icon
	amenity.Category = input.Category

	if saveErr := storage.DB.Save(&amenity).Error; saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAmenityCache()
	utils.Audit(ctx, "amenity.update", "amenity", amenity.ID, before, amenity)

	ctx.JSON(amenity)
}

func DeleteAmenity(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var amenity models.Amenity
	amenityQuery := storage.DB.Where("id = ?", id).Limit(1).Find(&amenity)
	if amenityQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if amenityQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM property_amenities WHERE amenity_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&amenity).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAmenityCache()
	utils.Audit(ctx, "amenity.delete", "amenity", amenity.ID, amenity, nil)

	ctx.StatusCode(iris.StatusNoContent)
}

type AmenityInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Icon     string `json:"icon" validate:"max=50"`
	Category string `json:"category" validate:"required,oneof=COMFORT SECURITY CONNECTIVITY EXTERIOR"`
}
