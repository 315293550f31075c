package app

import "github.com/gin-gonic/gin"

// Module is implemented by each admin screen (users, orders, products,
// coupons, dashboard). A module mounts its JSON endpoints on the api group
// and its HTML pages on the pages group.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup)
}
