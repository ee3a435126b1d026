// internal/api/handlers/interfaces.go
package handlers

import "github.com/gin-gonic/gin"

// UserHandlerInterface defines the methods needed by the user routes.
type UserHandlerInterface interface {
	SyncUser(c *gin.Context)
	GetMe(c *gin.Context)
	UpdateProfile(c *gin.Context)
	DeleteUser(c *gin.Context)
	ResendVerification(c *gin.Context)
}

// CompanyHandlerInterface defines the methods needed by the company routes.
type CompanyHandlerInterface interface {
	CreateCompany(c *gin.Context)
	GetMyCompany(c *gin.Context)
	UpdateCompany(c *gin.Context)
	ListPendingCompanies(c *gin.Context)
	ApproveCompany(c *gin.Context)
	RejectCompany(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	CreateJob(c *gin.Context)
	GetJobByID(c *gin.Context)
	SearchJobs(c *gin.Context)
	UpdateJob(c *gin.Context)
	ListMyJobs(c *gin.Context)
	ListPendingJobs(c *gin.Context)
	ApproveJob(c *gin.Context)
	RejectJob(c *gin.Context)
}

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	Apply(c *gin.Context)
	GetApplicationByID(c *gin.Context)
	ListMyApplications(c *gin.Context)
	ListJobApplications(c *gin.Context)
	UpdateApplicationStatus(c *gin.Context)
}

// AdminHandlerInterface defines the methods needed by the admin routes.
type AdminHandlerInterface interface {
	GetStats(c *gin.Context)
	ListAuditLogs(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var _ UserHandlerInterface = (*UserHandler)(nil)
var _ CompanyHandlerInterface = (*CompanyHandler)(nil)
var _ JobHandlerInterface = (*JobHandler)(nil)
var _ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
var _ AdminHandlerInterface = (*AdminHandler)(nil)
