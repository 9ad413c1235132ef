package routes

import (
	"time"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// CreateMessage sends an inquiry about a published listing. The
// recipient is always the listing's landlord.
func CreateMessage(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	var input CreateMessageInput
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

	message := models.Message{
		PropertyID:  property.ID,
		SenderID:    claims.ID,
		RecipientID: property.LandlordID,
		Subject:     input.Subject,
		Content:     input.Content,
	}

	if createErr := storage.DB.Create(&message).Error; createErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.
		Preload("Sender").
		Preload("Recipient").
		Preload("Property").
		First(&message, message.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(message)
}

func ListMessages(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)
	listMessagesWhere(ctx, storage.DB.Model(&models.Message{}).
		Where("sender_id = ? OR recipient_id = ?", claims.ID, claims.ID))
}

func GetInbox(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)
	listMessagesWhere(ctx, storage.DB.Model(&models.Message{}).
		Where("recipient_id = ?", claims.ID))
}

func GetSent(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)
	listMessagesWhere(ctx, storage.DB.Model(&models.Message{}).
		Where("sender_id = ?", claims.ID))
}

func GetUnreadCount(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	var count int64
	countErr := storage.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", claims.ID, false).
		Count(&count).Error
	if countErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"unreadCount": count})
}

// MarkMessageRead flags a received message as read. Senders can see
// their own messages but cannot mark them.
func MarkMessageRead(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var message models.Message
	messageQuery := storage.DB.
		Where("id = ? AND (sender_id = ? OR recipient_id = ?)", id, claims.ID, claims.ID).
		Limit(1).Find(&message)
	if messageQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if messageQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if message.RecipientID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	if !message.IsRead {
		now := time.Now()
		message.IsRead = true
		message.ReadAt = &now
		if saveErr := storage.DB.Save(&message).Error; saveErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(message)
}

func listMessagesWhere(ctx iris.Context, query *gorm.DB) {
	page, perPage := parsePagination(ctx)

	var total int64
	if countErr := query.Count(&total).Error; countErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var messages []models.Message
	listErr := query.
		Preload("Sender").
		Preload("Recipient").
		Preload("Property").
		Order("messages.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&messages).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, messages, page, perPage, total)
}

type CreateMessageInput struct {
	PropertyID uint   `json:"propertyID" validate:"required"`
	Subject    string `json:"subject" validate:"required,max=200"`
	Content    string `json:"content" validate:"required,min=20,max=1000"`
}
