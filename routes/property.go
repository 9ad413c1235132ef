package routes

import (
	"fmt"
	"strings"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func CreateProperty(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	var input CreateListingInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	status := input.Status
	if status == "" {
		status = models.PropertyStatusDraft
	}

	property := models.Property{
		LandlordID:        claims.ID,
		Title:             input.Title,
		Description:       input.Description,
		Type:              input.Type,
		Surface:           input.Surface,
		NumberOfRooms:     input.NumberOfRooms,
		NumberOfBedrooms:  input.NumberOfBedrooms,
		NumberOfBathrooms: input.NumberOfBathrooms,
		Floor:             input.Floor,
		Furnished:         input.Furnished,
		MonthlyRent:       input.MonthlyRent,
		Charges:           input.Charges,
		ChargesIncluded:   input.ChargesIncluded,
		Deposit:           input.Deposit,
		AgencyFees:        input.AgencyFees,
		Status:            status,
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&property).Error; err != nil {
			return err
		}

		address := models.Address{
			PropertyID:    property.ID,
			StreetAddress: input.Address.StreetAddress,
			City:          input.Address.City,
			PostalCode:    input.Address.PostalCode,
			District:      input.Address.District,
			Latitude:      input.Address.Latitude,
			Longitude:     input.Address.Longitude,
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		if len(input.AmenityIDs) > 0 {
			var amenities []models.Amenity
			if err := tx.Find(&amenities, input.AmenityIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&property).Association("Amenities").Replace(amenities); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	created := getPropertyAndAssociationsByID(property.ID, ctx)
	if created == nil {
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(created)
}

func UpdateProperty(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	property := getPropertyAndAssociationsByID(id, ctx)
	if property == nil {
		return
	}

	claims := utils.GetPrincipal(ctx)
	if property.LandlordID != claims.ID && claims.Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	var input UpdateListingInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Status != "" && input.Status != property.Status {
		// Submission for review is the only status change a landlord can make.
		if !(property.Status == models.PropertyStatusDraft && input.Status == models.PropertyStatusPending) {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				fmt.Sprintf("Cannot change status from %s to %s.", property.Status, input.Status), ctx)
			return
		}
		property.Status = input.Status
	}

	property.Title = input.Title
	property.Description = input.Description
	property.Type = input.Type
	property.Surface = input.Surface
	property.NumberOfRooms = input.NumberOfRooms
	property.NumberOfBedrooms = input.NumberOfBedrooms
	property.NumberOfBathrooms = input.NumberOfBathrooms
	property.Floor = input.Floor
	property.Furnished = input.Furnished
	property.MonthlyRent = input.MonthlyRent
	property.Charges = input.Charges
	property.ChargesIncluded = input.ChargesIncluded
	property.Deposit = input.Deposit
	property.AgencyFees = input.AgencyFees

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(property).Error; err != nil {
			return err
		}

		var address models.Address
		addressQuery := tx.Where("property_id = ?", property.ID).Limit(1).Find(&address)
		if addressQuery.Error != nil {
			return addressQuery.Error
		}
		address.PropertyID = property.ID
		address.StreetAddress = input.Address.StreetAddress
		address.City = input.Address.City
		address.PostalCode = input.Address.PostalCode
		address.District = input.Address.District
		address.Latitude = input.Address.Latitude
		address.Longitude = input.Address.Longitude
		if err := tx.Save(&address).Error; err != nil {
			return err
		}

		if input.AmenityIDs != nil {
			var amenities []models.Amenity
			if len(input.AmenityIDs) > 0 {
				if err := tx.Find(&amenities, input.AmenityIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(property).Association("Amenities").Replace(amenities); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	updated := getPropertyAndAssociationsByID(property.ID, ctx)
	if updated == nil {
		return
	}

	ctx.JSON(updated)
}

func DeleteProperty(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var property models.Property
	propertyExists := storage.DB.Preload("Photos").Find(&property, id)
	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	claims := utils.GetPrincipal(ctx)
	if property.LandlordID != claims.ID && claims.Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("property_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM property_amenities WHERE property_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, id).Error
	})
	if txErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", txErr.Error(), ctx)
		return
	}

	// Remote blobs are best effort, rows are already gone.
	for _, photo := range property.Photos {
		storage.DeleteImage(photo.URL)
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func UploadPropertyPhotos(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var property models.Property
	propertyExists := storage.DB.Find(&property, id)
	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	claims := utils.GetPrincipal(ctx)
	if property.LandlordID != claims.ID && claims.Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	var input UploadPhotosInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingCount int64
	storage.DB.Model(&models.Photo{}).Where("property_id = ?", id).Count(&existingCount)

	var photos []models.Photo
	for i, image := range input.Photos {
		url := resolvePhotoURL(image, property.ID)
		if url == "" {
			continue
		}
		photos = append(photos, models.Photo{
			PropertyID: property.ID,
			URL:        url,
			IsPrimary:  existingCount == 0 && len(photos) == 0,
			SortOrder:  int(existingCount) + i,
		})
	}

	if len(photos) > 0 {
		if createErr := storage.DB.Create(&photos).Error; createErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(photos)
}

func DeletePropertyPhoto(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}
	photoID, photoParamErr := ctx.Params().GetUint("photoID")
	if photoParamErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var property models.Property
	propertyExists := storage.DB.Find(&property, id)
	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	claims := utils.GetPrincipal(ctx)
	if property.LandlordID != claims.ID && claims.Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	var photo models.Photo
	photoQuery := storage.DB.Where("id = ? AND property_id = ?", photoID, id).Limit(1).Find(&photo)
	if photoQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if photoQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if deleteErr := storage.DB.Delete(&photo).Error; deleteErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DeleteImage(photo.URL)

	ctx.StatusCode(iris.StatusNoContent)
}

// resolvePhotoURL accepts either an already hosted URL or a base64
// payload that still needs to be uploaded.
func resolvePhotoURL(image string, propertyID uint) string {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	publicID := fmt.Sprintf("property/%d/%s", propertyID, uuid.NewString())
	return storage.UploadBase64Image(image, publicID)
}

func getPropertyAndAssociationsByID(id uint, ctx iris.Context) *models.Property {
	var property models.Property
	propertyExists := storage.DB.
		Preload("Landlord").
		Preload("Address").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.sort_order, photos.id")
		}).
		Preload("Amenities").
		Find(&property, id)

	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return nil
	}

	return &property
}

type AddressInput struct {
	StreetAddress string   `json:"streetAddress" validate:"required,max=255"`
	City          string   `json:"city" validate:"required,max=100"`
	PostalCode    string   `json:"postalCode" validate:"required,max=20"`
	District      string   `json:"district" validate:"max=100"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

type CreateListingInput struct {
	Title             string       `json:"title" validate:"required,max=200"`
	Description       string       `json:"description" validate:"required"`
	Type              string       `json:"type" validate:"required,oneof=HOUSE APARTMENT STUDIO ROOM"`
	Surface           float64      `json:"surface" validate:"required,gt=0"`
	NumberOfRooms     int          `json:"numberOfRooms" validate:"gte=0"`
	NumberOfBedrooms  int          `json:"numberOfBedrooms" validate:"gte=0"`
	NumberOfBathrooms int          `json:"numberOfBathrooms" validate:"gte=0"`
	Floor             *int         `json:"floor"`
	Furnished         bool         `json:"furnished"`
	MonthlyRent       float64      `json:"monthlyRent" validate:"required,gt=0"`
	Charges           float64      `json:"charges" validate:"gte=0"`
	ChargesIncluded   bool         `json:"chargesIncluded"`
	Deposit           float64      `json:"deposit" validate:"gte=0"`
	AgencyFees        float64      `json:"agencyFees" validate:"gte=0"`
	Status            string       `json:"status" validate:"omitempty,oneof=DRAFT PENDING"`
	Address           AddressInput `json:"address"`
	AmenityIDs        []uint       `json:"amenityIDs"`
}

type UpdateListingInput struct {
	Title             string       `json:"title" validate:"required,max=200"`
	Description       string       `json:"description" validate:"required"`
	Type              string       `json:"type" validate:"required,oneof=HOUSE APARTMENT STUDIO ROOM"`
	Surface           float64      `json:"surface" validate:"required,gt=0"`
	NumberOfRooms     int          `json:"numberOfRooms" validate:"gte=0"`
	NumberOfBedrooms  int          `json:"numberOfBedrooms" validate:"gte=0"`
	NumberOfBathrooms int          `json:"numberOfBathrooms" validate:"gte=0"`
	Floor             *int         `json:"floor"`
	Furnished         bool         `json:"furnished"`
	MonthlyRent       float64      `json:"monthlyRent" validate:"required,gt=0"`
	Charges           float64      `json:"charges" validate:"gte=0"`
	ChargesIncluded   bool         `json:"chargesIncluded"`
	Deposit           float64      `json:"deposit" validate:"gte=0"`
	AgencyFees        float64      `json:"agencyFees" validate:"gte=0"`
	Status            string       `json:"status" validate:"omitempty,oneof=DRAFT PENDING"`
	Address           AddressInput `json:"address"`
	AmenityIDs        []uint       `json:"amenityIDs"`
}

type UploadPhotosInput struct {
	Photos []string `json:"photos" validate:"required,min=1,max=10"`
}
