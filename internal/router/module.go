package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its routes on the root group.
// Modules pick their own prefix (/auth, /api).
type Module interface {
	Register(rg *gin.RouterGroup)
}
