package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/store"
	"github.com/Karthik0081/smart-exam-ai-genius/models"
	"github.com/Karthik0081/smart-exam-ai-genius/utils"
)

type createExamRequest struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description"`
	DurationMinutes int               `json:"durationMinutes"`
	Questions       []models.Question `json:"questions" binding:"required"`
}

// SetupExamRoutes registers the exam hand-off endpoints. Exams live in the
// injected store; the generation core itself never persists anything.
func SetupExamRoutes(router *gin.Engine, exams store.ExamStore) {
	api := router.Group("/api")

	api.POST("/exams", func(c *gin.Context) {
		var req createExamRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request body", err.Error())
			return
		}

		if len(req.Questions) == 0 {
			utils.RespondWithBadRequest(c, "An exam needs at least one question", nil)
			return
		}
		for _, q := range req.Questions {
			if !q.Valid() {
				utils.RespondWithBadRequest(c, "Malformed question in exam", gin.H{"question_id": q.ID})
				return
			}
		}

		duration := req.DurationMinutes
		if duration < 1 {
			duration = 30
		}

		exam, err := exams.CreateExam(c.Request.Context(), req.Title, req.Description, duration, req.Questions)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to create exam", nil)
			return
		}
		c.JSON(http.StatusCreated, exam)
	})

	api.GET("/exams", func(c *gin.Context) {
		list, err := exams.ListExams(c.Request.Context())
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to list exams", nil)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	api.GET("/exams/:id", func(c *gin.Context) {
		exam, err := exams.GetExam(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrExamNotFound) {
				utils.RespondWithNotFound(c, "Exam not found")
				return
			}
			utils.RespondWithInternalError(c, "Failed to load exam", nil)
			return
		}
		c.JSON(http.StatusOK, exam)
	})
}
