package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"academy/internal/api/v1/dto"
	"academy/internal/middleware"
	"academy/internal/model"
	"academy/internal/service"

	"github.com/rs/zerolog"
)

// CourseHandler handles the course access and grade endpoints
type CourseHandler struct {
	accessSvc service.AccessService
	gradeSvc  service.GradeService
	logger    zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(accessSvc service.AccessService, gradeSvc service.GradeService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{accessSvc: accessSvc, gradeSvc: gradeSvc, logger: logger}
}

// RegisterRoutes mounts course routes. The access route tolerates anonymous
// callers; the grades route requires auth.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw, optionalAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/courses/access", optionalAuthMw(http.HandlerFunc(h.getCourseAccess)))
	mux.Handle("/courses/", authMw(http.HandlerFunc(h.handleCourse)))
}

// getCourseAccess godoc
// @Summary Resolve course access for the caller
// @Description Returns every published course with an active/locked status and an enrollment message.
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseAccessResponseDTO
// @Failure 404 {string} string "User not found"
// @Failure 500 {string} string "Failed to resolve course access"
// @Router /courses/access [get]
func (h *CourseHandler) getCourseAccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Empty for anonymous visitors.
	userID, _ := r.Context().Value(middleware.UserContextKey).(string)

	result, err := h.accessSvc.ResolveCourseAccess(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to resolve course access")
		http.Error(w, "Failed to resolve course access", http.StatusInternalServerError)
		return
	}

	resp := dto.CourseAccessResponseDTO{
		Courses: make([]dto.CourseWithAccessDTO, 0, len(result.Courses)),
	}
	if result.EnrollmentMessage != "" {
		msg := result.EnrollmentMessage
		resp.EnrollmentMessage = &msg
	}
	for _, ca := range result.Courses {
		resp.Courses = append(resp.Courses, dto.CourseWithAccessDTO{
			CourseID:    ca.Course.CourseID,
			Title:       ca.Course.Title,
			Description: ca.Course.Description,
			MonthOrder:  ca.Course.MonthOrder,
			Status:      string(ca.Status),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// getCourseGrades godoc
// @Summary Get the caller's grades for a course
// @Description Walks the course's weeks and aggregates section completions and quiz submissions.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseGradesResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to compute course grades"
// @Router /courses/{courseId}/grades [get]
func (h *CourseHandler) getCourseGrades(w http.ResponseWriter, r *http.Request, courseID string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	grades, err := h.gradeSvc.ComputeCourseGrades(r.Context(), userID, courseID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			http.Error(w, "Course not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Str("course_id", courseID).
			Msg("Failed to compute course grades")
		http.Error(w, "Failed to compute course grades", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCourseGradesDTO(grades))
}

func (h *CourseHandler) handleCourse(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/courses/")
	if r.Method == http.MethodGet && strings.HasSuffix(rest, "/grades") {
		courseID := strings.TrimSuffix(rest, "/grades")
		if courseID != "" && !strings.Contains(courseID, "/") {
			h.getCourseGrades(w, r, courseID)
			return
		}
	}
	http.NotFound(w, r)
}

func toCourseGradesDTO(grades *model.CourseGrades) dto.CourseGradesResponseDTO {
	resp := dto.CourseGradesResponseDTO{
		WeeklyGrades: make([]dto.WeekGradeDTO, 0, len(grades.WeeklyGrades)),
		MonthlyProgress: dto.MonthlyProgressDTO{
			TotalItems:      grades.MonthlyProgress.TotalItems,
			CompletedItems:  grades.MonthlyProgress.CompletedItems,
			OverallProgress: grades.MonthlyProgress.OverallProgress,
			QuizScores:      make([]dto.QuizScoreDTO, 0, len(grades.MonthlyProgress.QuizScores)),
		},
	}
	for _, qs := range grades.MonthlyProgress.QuizScores {
		resp.MonthlyProgress.QuizScores = append(resp.MonthlyProgress.QuizScores, dto.QuizScoreDTO{
			QuizID:       qs.QuizID,
			Title:        qs.Title,
			Score:        qs.Score,
			PassingScore: qs.PassingScore,
			Passed:       qs.Passed,
			SubmittedAt:  qs.SubmittedAt,
		})
	}
	for _, wg := range grades.WeeklyGrades {
		weekDTO := dto.WeekGradeDTO{
			WeekID:              wg.WeekID,
			WeekTitle:           wg.WeekTitle,
			WeekOrder:           wg.WeekOrder,
			Items:               make([]dto.GradedItemDTO, 0, len(wg.Items)),
			TotalItems:          wg.TotalItems,
			CompletedItems:      wg.CompletedItems,
			OverallWeekProgress: wg.OverallWeekProgress,
		}
		for _, item := range wg.Items {
			itemDTO := dto.GradedItemDTO{
				Kind:   item.Kind,
				Title:  item.Title,
				Status: item.Status,
			}
			switch item.Kind {
			case model.ItemKindSectionCompletion:
				itemDTO.SectionID = item.SectionID
				pct := item.ProgressPercent
				itemDTO.ProgressPercent = &pct
			case model.ItemKindQuizScore:
				itemDTO.QuizID = item.QuizID
				itemDTO.Score = item.Score
				maxScore := item.MaxScore
				itemDTO.MaxScore = &maxScore
				passing := item.PassingScore
				itemDTO.PassingScore = &passing
			}
			weekDTO.Items = append(weekDTO.Items, itemDTO)
		}
		resp.WeeklyGrades = append(resp.WeeklyGrades, weekDTO)
	}
	return resp
}
