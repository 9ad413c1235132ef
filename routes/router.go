package routes

import (
	"os"

	"rental-marketplace-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// BuildApp assembles the iris application with every route group
// registered. main() and the HTTP tests share this entry point.
func BuildApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})
	optionalAccessTokenMiddleware := utils.OptionalAccessToken(accessTokenVerifier)

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	authLimiter := utils.AuthRateLimiter()

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", authLimiter, Register)
		user.Post("/login", authLimiter, Login)
		user.Get("/me", accessTokenVerifierMiddleware, GetProfile)
		user.Patch("/me", accessTokenVerifierMiddleware, UpdateProfile)
		user.Post("/me/password", accessTokenVerifierMiddleware, ChangePassword)
	}

	properties := app.Party("/api/properties")
	{
		properties.Get("/", optionalAccessTokenMiddleware, ListProperties)
		properties.Get("/mine", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, GetMyProperties)
		properties.Get("/{id:uint}", optionalAccessTokenMiddleware, GetProperty)
		properties.Get("/{id:uint}/similar", optionalAccessTokenMiddleware, GetSimilarProperties)
		properties.Post("/", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, CreateProperty)
		properties.Patch("/{id:uint}", accessTokenVerifierMiddleware, UpdateProperty)
		properties.Delete("/{id:uint}", accessTokenVerifierMiddleware, DeleteProperty)
		properties.Post("/{id:uint}/photos", accessTokenVerifierMiddleware, UploadPropertyPhotos)
		properties.Delete("/{id:uint}/photos/{photoID:uint}", accessTokenVerifierMiddleware, DeletePropertyPhoto)
	}

	amenities := app.Party("/api/amenities")
	{
		amenities.Get("/", GetAmenities)
		amenities.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, CreateAmenity)
		amenities.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, UpdateAmenity)
		amenities.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, DeleteAmenity)
	}

	favorites := app.Party("/api/favorites", accessTokenVerifierMiddleware)
	{
		favorites.Get("/", GetFavorites)
		favorites.Post("/", CreateFavorite)
		favorites.Delete("/{propertyID:uint}", RemoveFavorite)
	}

	messages := app.Party("/api/messages", accessTokenVerifierMiddleware)
	{
		messages.Post("/", CreateMessage)
		messages.Get("/", ListMessages)
		messages.Get("/inbox", GetInbox)
		messages.Get("/sent", GetSent)
		messages.Get("/unread-count", GetUnreadCount)
		messages.Post("/{id:uint}/read", MarkMessageRead)
	}

	reports := app.Party("/api/reports", accessTokenVerifierMiddleware)
	{
		reports.Post("/", CreateReport)
		reports.Get("/", ListReports)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", AdminListUsers)
		admin.Get("/users/{id:uint}", AdminGetUser)
		admin.Post("/users/{id:uint}/suspend", AdminSuspendUser)
		admin.Post("/users/{id:uint}/activate", AdminActivateUser)
		admin.Get("/properties", AdminListProperties)
		admin.Get("/properties/pending", AdminListPendingProperties)
		admin.Get("/properties/{id:uint}", AdminGetProperty)
		admin.Post("/properties/{id:uint}/approve", AdminApproveProperty)
		admin.Post("/properties/{id:uint}/reject", AdminRejectProperty)
		admin.Get("/reports", AdminListReports)
		admin.Post("/reports/{id:uint}/resolve", AdminResolveReport)
		admin.Post("/reports/{id:uint}/dismiss", AdminDismissReport)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	return app
}
