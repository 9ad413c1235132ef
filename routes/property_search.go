package routes

import (
	"strings"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"
	"rental-marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// propertyOrderings is the whitelist of sortable columns for the
// public catalog. Anything else falls back to newest first.
var propertyOrderings = map[string]string{
	"created_at":    "properties.created_at ASC",
	"-created_at":   "properties.created_at DESC",
	"monthly_rent":  "properties.monthly_rent ASC",
	"-monthly_rent": "properties.monthly_rent DESC",
	"surface":       "properties.surface ASC",
	"-surface":      "properties.surface DESC",
	"view_count":    "properties.view_count ASC",
	"-view_count":   "properties.view_count DESC",
}

func ListProperties(ctx iris.Context) {
	principal := utils.GetPrincipal(ctx)

	query := visiblePropertiesQuery(principal)

	needsAddressJoin := false
	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("lower(addresses.city) LIKE ?", "%"+strings.ToLower(city)+"%")
		needsAddressJoin = true
	}
	if district := ctx.URLParam("district"); district != "" {
		query = query.Where("lower(addresses.district) LIKE ?", "%"+strings.ToLower(district)+"%")
		needsAddressJoin = true
	}
	if q := ctx.URLParam("q"); q != "" {
		search := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"lower(properties.title) LIKE ? OR lower(properties.description) LIKE ?"+
				" OR lower(addresses.street_address) LIKE ? OR lower(addresses.city) LIKE ? OR lower(addresses.district) LIKE ?",
			search, search, search, search, search)
		needsAddressJoin = true
	}
	if needsAddressJoin {
		query = query.
			Joins("LEFT JOIN addresses ON addresses.property_id = properties.id AND addresses.deleted_at IS NULL").
			Select("properties.*")
	}

	if minPrice, err := ctx.URLParamFloat64("min_price"); err == nil {
		query = query.Where("properties.monthly_rent >= ?", minPrice)
	}
	if maxPrice, err := ctx.URLParamFloat64("max_price"); err == nil {
		query = query.Where("properties.monthly_rent <= ?", maxPrice)
	}
	if minSurface, err := ctx.URLParamFloat64("min_surface"); err == nil {
		query = query.Where("properties.surface >= ?", minSurface)
	}
	if propertyType := ctx.URLParam("type"); propertyType != "" {
		query = query.Where("properties.type = ?", propertyType)
	}
	if furnished := ctx.URLParam("furnished"); furnished == "true" || furnished == "false" {
		query = query.Where("properties.furnished = ?", furnished == "true")
	}
	if rooms, err := ctx.URLParamInt("rooms"); err == nil {
		query = query.Where("properties.number_of_rooms = ?", rooms)
	}
	if bedrooms, err := ctx.URLParamInt("bedrooms"); err == nil {
		query = query.Where("properties.number_of_bedrooms = ?", bedrooms)
	}

	ordering, ok := propertyOrderings[ctx.URLParamDefault("ordering", "-created_at")]
	if !ok {
		ordering = propertyOrderings["-created_at"]
	}

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
		Preload("Amenities").
		Order(ordering).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&properties).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	markFavorites(principal, properties)

	utils.JSONPage(ctx, properties, page, perPage, total)
}

func GetProperty(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	property := getPropertyAndAssociationsByID(id, ctx)
	if property == nil {
		return
	}

	principal := utils.GetPrincipal(ctx)
	if !propertyVisibleTo(property, principal) {
		utils.CreateNotFound(ctx)
		return
	}

	if principal != nil {
		var favored int64
		storage.DB.Model(&models.Favorite{}).
			Where("user_id = ? AND property_id = ?", principal.ID, property.ID).
			Count(&favored)
		property.IsFavorite = favored > 0
	}

	// Concurrent reads must not lose counts, hence the column expression.
	storage.DB.Model(&models.Property{}).
		Where("id = ?", property.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	property.ViewCount++

	ctx.JSON(property)
}

func GetMyProperties(ctx iris.Context) {
	claims := utils.GetPrincipal(ctx)
	page, perPage := parsePagination(ctx)

	query := storage.DB.Model(&models.Property{}).Where("landlord_id = ?", claims.ID)

	var total int64
	if countErr := query.Count(&total).Error; countErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var properties []models.Property
	listErr := query.
		Preload("Address").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.sort_order, photos.id")
		}).
		Preload("Amenities").
		Order("properties.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&properties).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	markFavorites(claims, properties)

	utils.JSONPage(ctx, properties, page, perPage, total)
}

// GetSimilarProperties suggests published listings of the same type in
// the same city, the viewed listing excluded.
func GetSimilarProperties(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	property := getPropertyAndAssociationsByID(id, ctx)
	if property == nil {
		return
	}

	principal := utils.GetPrincipal(ctx)
	if !propertyVisibleTo(property, principal) {
		utils.CreateNotFound(ctx)
		return
	}

	city := ""
	if property.Address != nil {
		city = property.Address.City
	}

	var similar []models.Property
	listErr := storage.DB.Model(&models.Property{}).
		Joins("LEFT JOIN addresses ON addresses.property_id = properties.id AND addresses.deleted_at IS NULL").
		Select("properties.*").
		Where("properties.status = ?", models.PropertyStatusPublished).
		Where("properties.type = ?", property.Type).
		Where("properties.id <> ?", property.ID).
		Where("lower(addresses.city) = ?", strings.ToLower(city)).
		Order("properties.view_count DESC").
		Limit(6).
		Preload("Address").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.sort_order, photos.id")
		}).
		Find(&similar).Error
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	markFavorites(principal, similar)

	ctx.JSON(similar)
}

// markFavorites flags the listings the requesting user has favorited,
// resolved in a single query over the page.
func markFavorites(principal *utils.AccessToken, properties []models.Property) {
	if principal == nil || len(properties) == 0 {
		return
	}

	ids := make([]uint, 0, len(properties))
	for i := range properties {
		ids = append(ids, properties[i].ID)
	}

	var favored []uint
	if err := storage.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND property_id IN ?", principal.ID, ids).
		Pluck("property_id", &favored).Error; err != nil {
		return
	}

	set := make(map[uint]struct{}, len(favored))
	for _, id := range favored {
		set[id] = struct{}{}
	}
	for i := range properties {
		if _, ok := set[properties[i].ID]; ok {
			properties[i].IsFavorite = true
		}
	}
}

// visiblePropertiesQuery narrows the catalog to what the caller may
// see: admins get everything, landlords their own plus published,
// everyone else published only.
func visiblePropertiesQuery(principal *utils.AccessToken) *gorm.DB {
	query := storage.DB.Model(&models.Property{})
	if principal == nil {
		return query.Where("properties.status = ?", models.PropertyStatusPublished)
	}
	switch principal.Role {
	case models.RoleAdmin:
		return query
	case models.RoleLandlord:
		return query.Where("properties.landlord_id = ? OR properties.status = ?",
			principal.ID, models.PropertyStatusPublished)
	default:
		return query.Where("properties.status = ?", models.PropertyStatusPublished)
	}
}

func propertyVisibleTo(property *models.Property, principal *utils.AccessToken) bool {
	if property.Status == models.PropertyStatusPublished {
		return true
	}
	if principal == nil {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}
	return property.LandlordID == principal.ID
}

func parsePagination(ctx iris.Context) (page int, perPage int) {
	page = ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage = ctx.URLParamIntDefault("per_page", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
