package routes

import (
	"strings"
	"time"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if userInput.Password != userInput.PasswordConfirm {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Passwords do not match.", ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	role := userInput.Role
	if role == "" {
		role = models.RoleTenant
	}

	newUser = models.User{
		FirstName: userInput.FirstName,
		LastName:  userInput.LastName,
		Email:     strings.ToLower(userInput.Email),
		Phone:     userInput.Phone,
		Password:  hashedPassword,
		Role:      role,
		Status:    models.UserStatusActive,
	}

	if createErr := storage.DB.Create(&newUser).Error; createErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"ID":        newUser.ID,
		"firstName": newUser.FirstName,
		"lastName":  newUser.LastName,
		"email":     newUser.Email,
		"phone":     newUser.Phone,
		"role":      newUser.Role,
		"status":    newUser.Status,
	})
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if existingUser.Status != models.UserStatusActive {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Account disabled.", ctx)
		return
	}

	now := time.Now()
	existingUser.LastLoginAt = &now
	storage.DB.Model(&existingUser).UpdateColumn("last_login_at", now)

	returnUser(existingUser, ctx)
}

// GetProfile returns the authenticated user's account. Landlords also
// get a count of their live listings.
func GetProfile(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	var user models.User
	userExistsQuery := storage.DB.Where("id = ?", claims.ID).Limit(1).Find(&user)
	if userExistsQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userExistsQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var propertiesCount int64
	if user.Role == models.RoleLandlord {
		storage.DB.Model(&models.Property{}).
			Where("landlord_id = ? AND status IN ?", user.ID,
				[]string{models.PropertyStatusPublished, models.PropertyStatusRented}).
			Count(&propertiesCount)
	}

	ctx.JSON(iris.Map{
		"ID":              user.ID,
		"firstName":       user.FirstName,
		"lastName":        user.LastName,
		"email":           user.Email,
		"phone":           user.Phone,
		"role":            user.Role,
		"status":          user.Status,
		"emailVerified":   user.EmailVerified,
		"lastLoginAt":     user.LastLoginAt,
		"createdAt":       user.CreatedAt,
		"propertiesCount": propertiesCount,
	})
}

func UpdateProfile(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	var input UpdateProfileInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	userQuery := storage.DB.Where("id = ?", claims.ID).Limit(1).Find(&user)
	if userQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	if saveErr := storage.DB.Save(&user).Error; saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(user)
}

func ChangePassword(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)

	var input ChangePasswordInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.NewPassword != input.NewPasswordConfirm {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Passwords do not match.", ctx)
		return
	}

	var user models.User
	userQuery := storage.DB.Where("id = ?", claims.ID).Limit(1).Find(&user)
	if userQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userQuery.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword))
	if passwordErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Credentials Error", "Current password is incorrect.", ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.NewPassword)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user.Password = hashedPassword
	if saveErr := storage.DB.Save(&user).Error; saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Password updated."})
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	userExists := userExistsQuery.RowsAffected > 0

	if userExists {
		return true, nil
	}

	return false, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"phone":        user.Phone,
		"role":         user.Role,
		"status":       user.Status,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	FirstName       string `json:"firstName" validate:"required,max=256"`
	LastName        string `json:"lastName" validate:"required,max=256"`
	Email           string `json:"email" validate:"required,max=256,email"`
	Phone           string `json:"phone" validate:"max=32"`
	Password        string `json:"password" validate:"required,min=8,max=256"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,max=256"`
	Role            string `json:"role" validate:"omitempty,oneof=TENANT LANDLORD"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	FirstName string `json:"firstName" validate:"omitempty,max=256"`
	LastName  string `json:"lastName" validate:"omitempty,max=256"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
}

type ChangePasswordInput struct {
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=8,max=256"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required"`
}
