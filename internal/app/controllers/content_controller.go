package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
)

// ContentController handles the pedagogical content tree below formations.
// Every mutation recomputes the duration of the ancestor chain.
type ContentController struct {
	contentService *services.ContentService
}

// NewContentController creates a new ContentController
func NewContentController(contentService *services.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

// CreateModule handles adding a module to a formation
// @Summary Create a module
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateModuleRequest true "Module payload"
// @Success 201 {object} dto.APIResponse{data=models.Module} "Module created"
// @Failure 404 {object} dto.ErrorResponse "Formation not found"
// @Router /admin/modules [post]
func (c *ContentController) CreateModule(ctx *gin.Context) {
	var req dto.CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	module, err := c.contentService.CreateModule(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(module))
}

// GetModule handles retrieving a module
// @Summary Get a module
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 200 {object} dto.APIResponse{data=models.Module} "Module detail"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /admin/modules/{id} [get]
func (c *ContentController) GetModule(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	module, err := c.contentService.GetModule(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(module))
}

// UpdateModule handles updating a module
// @Summary Update a module
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Param request body dto.UpdateModuleRequest true "Module payload"
// @Success 200 {object} dto.APIResponse{data=models.Module} "Module updated"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /admin/modules/{id} [put]
func (c *ContentController) UpdateModule(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	module, err := c.contentService.UpdateModule(ctx, middleware.UserID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(module))
}

// DeleteModule handles deleting a module and its children
// @Summary Delete a module
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Module deleted"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /admin/modules/{id} [delete]
func (c *ContentController) DeleteModule(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.contentService.DeleteModule(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Module deleted"}))
}

// CreateChapter handles adding a chapter to a module
// @Summary Create a chapter
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChapterRequest true "Chapter payload"
// @Success 201 {object} dto.APIResponse{data=models.Chapter} "Chapter created"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /admin/chapters [post]
func (c *ContentController) CreateChapter(ctx *gin.Context) {
	var req dto.CreateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	chapter, err := c.contentService.CreateChapter(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(chapter))
}

// GetChapter handles retrieving a chapter
// @Summary Get a chapter
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.APIResponse{data=models.Chapter} "Chapter detail"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id} [get]
func (c *ContentController) GetChapter(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	chapter, err := c.contentService.GetChapter(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(chapter))
}

// UpdateChapter handles updating a chapter
// @Summary Update a chapter
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param request body dto.UpdateChapterRequest true "Chapter payload"
// @Success 200 {object} dto.APIResponse{data=models.Chapter} "Chapter updated"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id} [put]
func (c *ContentController) UpdateChapter(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	chapter, err := c.contentService.UpdateChapter(ctx, middleware.UserID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(chapter))
}

// DeleteChapter handles deleting a chapter and its children
// @Summary Delete a chapter
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Chapter deleted"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id} [delete]
func (c *ContentController) DeleteChapter(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.contentService.DeleteChapter(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Chapter deleted"}))
}

// CreateCourse handles adding a course to a chapter
// @Summary Create a course
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course payload"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/courses [post]
func (c *ContentController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course, err := c.contentService.CreateCourse(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// GetCourse handles retrieving a course with its exercises and QCMs
// @Summary Get a course
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course detail"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [get]
func (c *ContentController) GetCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.contentService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// UpdateCourse handles updating a course
// @Summary Update a course
// @Description Updates a course. Changing the lecture minutes recomputes the ancestor durations.
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course payload"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [put]
func (c *ContentController) UpdateCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course, err := c.contentService.UpdateCourse(ctx, middleware.UserID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// DeleteCourse handles deleting a course and its children
// @Summary Delete a course
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [delete]
func (c *ContentController) DeleteCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.contentService.DeleteCourse(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course deleted"}))
}

// CreateExercise handles adding an exercise to a course
// @Summary Create an exercise
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExerciseRequest true "Exercise payload"
// @Success 201 {object} dto.APIResponse{data=models.Exercise} "Exercise created"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/exercises [post]
func (c *ContentController) CreateExercise(ctx *gin.Context) {
	var req dto.CreateExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	exercise, err := c.contentService.CreateExercise(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(exercise))
}

// UpdateExercise handles updating an exercise
// @Summary Update an exercise
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise ID"
// @Param request body dto.UpdateExerciseRequest true "Exercise payload"
// @Success 200 {object} dto.APIResponse{data=models.Exercise} "Exercise updated"
// @Failure 404 {object} dto.ErrorResponse "Exercise not found"
// @Router /admin/exercises/{id} [put]
func (c *ContentController) UpdateExercise(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	exercise, err := c.contentService.UpdateExercise(ctx, middleware.UserID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(exercise))
}

// DeleteExercise handles deleting an exercise
// @Summary Delete an exercise
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Exercise deleted"
// @Failure 404 {object} dto.ErrorResponse "Exercise not found"
// @Router /admin/exercises/{id} [delete]
func (c *ContentController) DeleteExercise(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.contentService.DeleteExercise(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Exercise deleted"}))
}

// CreateQCM handles adding a QCM to a course
// @Summary Create a QCM
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQCMRequest true "QCM payload"
// @Success 201 {object} dto.APIResponse{data=models.QCM} "QCM created"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/qcms [post]
func (c *ContentController) CreateQCM(ctx *gin.Context) {
	var req dto.CreateQCMRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	qcm, err := c.contentService.CreateQCM(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(qcm))
}

// UpdateQCM handles updating a QCM
// @Summary Update a QCM
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "QCM ID"
// @Param request body dto.UpdateQCMRequest true "QCM payload"
// @Success 200 {object} dto.APIResponse{data=models.QCM} "QCM updated"
// @Failure 404 {object} dto.ErrorResponse "QCM not found"
// @Router /admin/qcms/{id} [put]
func (c *ContentController) UpdateQCM(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateQCMRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	qcm, err := c.contentService.UpdateQCM(ctx, middleware.UserID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(qcm))
}

// DeleteQCM handles deleting a QCM
// @Summary Delete a QCM
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path int true "QCM ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "QCM deleted"
// @Failure 404 {object} dto.ErrorResponse "QCM not found"
// @Router /admin/qcms/{id} [delete]
func (c *ContentController) DeleteQCM(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.contentService.DeleteQCM(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "QCM deleted"}))
}
