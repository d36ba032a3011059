package controller

import (
	"github.com/tmabaso/sdg3health/internal/pkg/cache"
	"github.com/tmabaso/sdg3health/internal/pkg/store"
	"github.com/tmabaso/sdg3health/internal/service/indicators"
	"github.com/tmabaso/sdg3health/internal/service/maps"
	"github.com/tmabaso/sdg3health/internal/service/regions"
)

type Controller struct {
	regionsService    *regions.Service
	indicatorsService *indicators.Service
	mapsService       *maps.Service

	store store.Store
	cache *cache.Cache
}

func NewController(
	regionsService *regions.Service,
	indicatorsService *indicators.Service,
	mapsService *maps.Service,
	st store.Store,
	c *cache.Cache,
) *Controller {
	return &Controller{
		regionsService:    regionsService,
		indicatorsService: indicatorsService,
		mapsService:       mapsService,
		store:             st,
		cache:             c,
	}
}
