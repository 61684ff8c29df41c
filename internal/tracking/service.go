package tracking

import (
	"github.com/gin-gonic/gin"
)

type Service struct {
	recorder         *Recorder
	maxBodySizeBytes int
}

func NewService(recorder *Recorder, maxBodySizeKB int) *Service {
	if recorder == nil {
		panic("tracking: recorder must not be nil")
	}
	if maxBodySizeKB <= 0 {
		maxBodySizeKB = 16 // default to 16KB
	}
	return &Service{
		recorder:         recorder,
		maxBodySizeBytes: maxBodySizeKB * 1024,
	}
}

// RegisterRoutes registers the public tracking routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/track/page-view", s.PageViewHandler)
	r.GET("/v1/track/buy", s.BuyHandler)
}
