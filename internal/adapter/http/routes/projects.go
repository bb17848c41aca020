package routes

import (
	"planejao/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProjects = "/projects"
	PathMembers  = "/members"
)

func addProjectRoutes(rg *gin.RouterGroup, projectHandler *handlers.ProjectHandler, reportHandler *handlers.ReportHandler) {
	projects := rg.Group(PathProjects)
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/report", reportHandler.GetReport)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.PATCH("/:id/status", projectHandler.ChangeStatus)
		projects.POST("/:id/members/:member_id", projectHandler.AddMember)
		projects.DELETE("/:id/members/:member_id", projectHandler.RemoveMember)
	}
}

func addMemberRoutes(rg *gin.RouterGroup, memberHandler *handlers.MemberHandler) {
	members := rg.Group(PathMembers)
	{
		members.GET("", memberHandler.ListMembers)
		members.POST("", memberHandler.CreateMember)
		members.GET("/role/:role", memberHandler.ListMembersByRole)
		members.GET("/:id", memberHandler.GetMember)
	}
}
