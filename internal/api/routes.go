package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", health)

		api.GET("/fonts", s.listFonts)
		api.GET("/fonts/:index/preview", s.fontPreview)
		api.GET("/fonts/:index/drag", s.fontDrag)

		api.GET("/palette", s.listPalette)
		api.GET("/palette/:index/swatch", s.swatch)
		api.GET("/palette/:index/drag", s.paletteDrag)

		api.GET("/postcard", s.postcardState)
		api.GET("/postcard.png", s.postcardImage)
		api.GET("/postcard/qr", s.postcardQR)
		api.POST("/postcard/background", s.uploadBackground)
		api.POST("/postcard/tap", s.tap)
		api.POST("/postcard/text", s.editText)
		api.POST("/postcard/drop", s.drop)
	}
}
