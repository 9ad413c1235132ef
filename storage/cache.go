package storage

import (
	"time"

	"rental-marketplace-server/models"

	"github.com/karlseguin/ccache/v3"
)

const amenityCacheKey = "amenities:all"

// AmenityCache holds the amenity reference list in process; it changes only
// through the admin endpoints, which invalidate it.
var AmenityCache = ccache.New(ccache.Configure[[]models.Amenity]().MaxSize(16))

func GetCachedAmenities() ([]models.Amenity, bool) {
	item := AmenityCache.Get(amenityCacheKey)
	if item == nil || item.Expired() {
		return nil, false
	}
	return item.Value(), true
}

func SetCachedAmenities(amenities []models.Amenity) {
	AmenityCache.Set(amenityCacheKey, amenities, 10*time.Minute)
}

func InvalidateAmenityCache() {
	AmenityCache.Delete(amenityCacheKey)
}
