package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sonit/feedbacksite/internal/middleware"
)

// Handlers groups the handlers mounted under /api.
type Handlers struct {
	Auth     *AuthHandler
	Tab      *TabHandler
	SubTab   *SubTabHandler
	Feedback *FeedbackHandler
}

// RegisterRoutes mounts every API route on api. Session middleware must
// already be installed on the engine.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, tokens middleware.TokenVerifier) {
	requireAuth := middleware.RequireAuth(tokens)

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", requireAuth, h.Auth.GetCurrentAccount)
		auth.PATCH("/me", requireAuth, h.Auth.UpdateCurrentAccount)
		auth.DELETE("/me", requireAuth, h.Auth.DeleteCurrentAccount)
	}

	// Tab routes (protected)
	tabs := api.Group("/tabs")
	tabs.Use(requireAuth)
	{
		tabID := middleware.RequireResourceID("tab")

		tabs.POST("", h.Tab.CreateTab)
		tabs.GET("", h.Tab.ListTabs)
		tabs.GET("/:id", tabID, h.Tab.GetTab)
		tabs.PUT("/:id", tabID, h.Tab.RenameTab)
		tabs.DELETE("/:id", tabID, h.Tab.DeleteTab)
		tabs.GET("/:id/subtabs", tabID, h.Tab.ListSubTabs)
		tabs.GET("/:id/feedback", tabID, h.Tab.ListFeedback)
	}

	// Sub-tab routes (protected)
	subTabs := api.Group("/subtabs")
	subTabs.Use(requireAuth)
	{
		subTabID := middleware.RequireResourceID("sub-tab")

		subTabs.POST("", h.SubTab.CreateSubTab)
		subTabs.GET("/:id", subTabID, h.SubTab.GetSubTab)
		subTabs.PUT("/:id", subTabID, h.SubTab.RenameSubTab)
		subTabs.DELETE("/:id", subTabID, h.SubTab.DeleteSubTab)
		subTabs.GET("/:id/feedback", subTabID, h.SubTab.ListFeedback)
	}

	// Feedback routes; reads are public
	feedback := api.Group("/feedback")
	{
		feedbackID := middleware.RequireResourceID("feedback")

		feedback.POST("/submit", requireAuth, h.Feedback.SubmitFeedback)
		feedback.GET("/me", requireAuth, h.Feedback.ListMyFeedback)
		feedback.GET("/category/:category", h.Feedback.ListByCategory)
		feedback.GET("/priority/:priority", h.Feedback.ListByPriority)
		feedback.POST("/priority", h.Feedback.SuggestPriority)
		feedback.GET("/:id", h.Feedback.GetFeedback)
		feedback.PUT("/:id", requireAuth, feedbackID, h.Feedback.UpdateFeedback)
		feedback.DELETE("/:id", requireAuth, feedbackID, h.Feedback.DeleteFeedback)
	}
}
