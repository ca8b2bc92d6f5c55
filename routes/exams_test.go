package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/store"
	"github.com/Karthik0081/smart-exam-ai-genius/models"
)

func newExamRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	SetupExamRoutes(router, store.NewMemoryExamStore())
	return router
}

func validQuestion() models.Question {
	return models.Question{
		ID:            "gen-1-0",
		Text:          "Which concept is most closely related to photosynthesis?",
		Type:          models.QuestionTypeMCQ,
		Options:       []string{"chlorophyll", "mitosis", "osmosis", "diffusion"},
		CorrectAnswer: 0,
	}
}

func TestCreateAndFetchExam(t *testing.T) {
	router := newExamRouter(t)

	rec := postJSON(t, router, "/api/exams", gin.H{
		"title":     "Biology midterm",
		"questions": []models.Question{validQuestion()},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created models.Exam
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode exam: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created exam has no ID")
	}
	if created.DurationMin != 30 {
		t.Errorf("duration = %d, want 30 minute default", created.DurationMin)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/exams/"+created.ID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)

	if getRec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", getRec.Code)
	}

	var fetched models.Exam
	if err := json.Unmarshal(getRec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("failed to decode exam: %v", err)
	}
	if fetched.Title != "Biology midterm" || len(fetched.Questions) != 1 {
		t.Errorf("fetched exam = %+v", fetched)
	}
}

func TestCreateExamRejectsMalformedQuestion(t *testing.T) {
	router := newExamRouter(t)

	bad := validQuestion()
	bad.Options = bad.Options[:3]

	rec := postJSON(t, router, "/api/exams", gin.H{
		"title":     "Broken exam",
		"questions": []models.Question{bad},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateExamRejectsEmptyQuestionList(t *testing.T) {
	router := newExamRouter(t)

	rec := postJSON(t, router, "/api/exams", gin.H{
		"title":     "Empty exam",
		"questions": []models.Question{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetUnknownExam(t *testing.T) {
	router := newExamRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/exams/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListExams(t *testing.T) {
	router := newExamRouter(t)

	for _, title := range []string{"First exam", "Second exam"} {
		rec := postJSON(t, router, "/api/exams", gin.H{
			"title":     title,
			"questions": []models.Question{validQuestion()},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %q status = %d", title, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/exams", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var list []models.Exam
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("got %d exams, want 2", len(list))
	}
}
