package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"academy/internal/model"
	"academy/internal/repository"

	"github.com/rs/zerolog"
)

var ErrCourseNotFound = errors.New("course not found")

// defaultPassingScore applies when neither the quiz, its content block, nor
// the course configures one.
const defaultPassingScore = 70

// GradeService aggregates a user's section completions and quiz submissions
// into weekly and course-level progress.
type GradeService interface {
	ComputeCourseGrades(ctx context.Context, userID, courseID string) (*model.CourseGrades, error)
}

type gradeService struct {
	courseRepo   repository.CourseRepository
	weekRepo     repository.WeekRepository
	progressRepo repository.ProgressRepository
	quizRepo     repository.QuizRepository
	logger       zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(
	courseRepo repository.CourseRepository,
	weekRepo repository.WeekRepository,
	progressRepo repository.ProgressRepository,
	quizRepo repository.QuizRepository,
	logger zerolog.Logger,
) GradeService {
	return &gradeService{
		courseRepo:   courseRepo,
		weekRepo:     weekRepo,
		progressRepo: progressRepo,
		quizRepo:     quizRepo,
		logger:       logger.With().Str("service", "GradeService").Logger(),
	}
}

func (s *gradeService) ComputeCourseGrades(ctx context.Context, userID, courseID string) (*model.CourseGrades, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course %s: %w", courseID, err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	weeks, err := s.weekRepo.GetWeeksByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weeks for course %s: %w", courseID, err)
	}

	grades := &model.CourseGrades{
		WeeklyGrades: make([]model.WeekGrade, 0, len(weeks)),
		MonthlyProgress: model.MonthlyProgress{
			QuizScores: []model.QuizScore{},
		},
	}

	for _, week := range weeks {
		weekGrade, quizScores, err := s.computeWeekGrade(ctx, userID, course, week)
		if err != nil {
			return nil, err
		}
		grades.WeeklyGrades = append(grades.WeeklyGrades, *weekGrade)
		grades.MonthlyProgress.TotalItems += weekGrade.TotalItems
		grades.MonthlyProgress.CompletedItems += weekGrade.CompletedItems
		grades.MonthlyProgress.QuizScores = append(grades.MonthlyProgress.QuizScores, quizScores...)
	}

	grades.MonthlyProgress.OverallProgress = percentage(
		grades.MonthlyProgress.CompletedItems, grades.MonthlyProgress.TotalItems)
	return grades, nil
}

func (s *gradeService) computeWeekGrade(ctx context.Context, userID string, course *model.Course, week model.Week) (*model.WeekGrade, []model.QuizScore, error) {
	sections, err := s.weekRepo.GetSectionsByWeekID(ctx, week.WeekID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sections for week %s: %w", week.WeekID, err)
	}
	progress, err := s.progressRepo.GetUserProgressForWeek(ctx, userID, week.WeekID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load progress for week %s: %w", week.WeekID, err)
	}

	grade := &model.WeekGrade{
		WeekID:    week.WeekID,
		WeekTitle: week.Title,
		WeekOrder: week.WeekOrder,
		Items:     []model.GradedItem{},
	}
	var quizScores []model.QuizScore

	for _, section := range sections {
		// Every section is one relevant item: its completion slot.
		grade.TotalItems++
		completed, seen := progress[section.SectionID]
		item := model.GradedItem{
			Kind:            model.ItemKindSectionCompletion,
			SectionID:       section.SectionID,
			Title:           section.Title,
			Status:          model.ItemStatusNotStarted,
			ProgressPercent: 0,
		}
		switch {
		case completed:
			item.Status = model.ItemStatusCompleted
			item.ProgressPercent = 100
			grade.CompletedItems++
		case seen:
			// Present in the map but false: opened, not finished.
			item.Status = model.ItemStatusIncomplete
		}
		grade.Items = append(grade.Items, item)

		// Quiz blocks embedded in the section's content are the only other
		// relevant items; text, video and document blocks never count.
		for _, content := range section.Content {
			for _, block := range content.RichContent {
				if block.Type != model.BlockTypeQuiz || block.QuizContent == nil || block.QuizContent.DatabaseQuizID == "" {
					continue
				}
				quizItem, submittedAt, ok := s.gradeQuizBlock(ctx, userID, course, block.QuizContent)
				if !ok {
					// A broken quiz reference must not blank out the whole
					// grade view; it simply disappears from the totals.
					continue
				}
				grade.TotalItems++
				if quizItem.Score != nil {
					grade.CompletedItems++
					quizScores = append(quizScores, model.QuizScore{
						QuizID:       quizItem.QuizID,
						Title:        quizItem.Title,
						Score:        *quizItem.Score,
						PassingScore: quizItem.PassingScore,
						Passed:       quizItem.Status == model.ItemStatusPassed,
						SubmittedAt:  submittedAt,
					})
				}
				grade.Items = append(grade.Items, *quizItem)
			}
		}
	}

	grade.OverallWeekProgress = percentage(grade.CompletedItems, grade.TotalItems)
	return grade, quizScores, nil
}

// gradeQuizBlock resolves one quiz block into a graded item plus the
// submission time of a scored attempt. It reports ok=false when a lookup
// fails, in which case the block is excluded from the grade view entirely.
func (s *gradeService) gradeQuizBlock(ctx context.Context, userID string, course *model.Course, qc *model.QuizContent) (*model.GradedItem, time.Time, bool) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, qc.DatabaseQuizID)
	if err != nil {
		s.logger.Error().Err(err).Str("quiz_id", qc.DatabaseQuizID).Str("user_id", userID).
			Msg("Failed to load quiz definition, skipping block")
		return nil, time.Time{}, false
	}
	submission, err := s.quizRepo.GetUserSubmissionForQuiz(ctx, userID, qc.DatabaseQuizID)
	if err != nil {
		s.logger.Error().Err(err).Str("quiz_id", qc.DatabaseQuizID).Str("user_id", userID).
			Msg("Failed to load quiz submission, skipping block")
		return nil, time.Time{}, false
	}

	item := &model.GradedItem{
		Kind:         model.ItemKindQuizScore,
		QuizID:       qc.DatabaseQuizID,
		Title:        quizTitle(quiz, qc),
		MaxScore:     100,
		PassingScore: passingScore(quiz, qc, course),
	}

	submittedAt := time.Time{}
	switch {
	case submission == nil:
		item.Status = model.ItemStatusNotStarted
	case submission.Score != nil:
		// An attempted-and-scored quiz occupies its slot whether or not it
		// passed.
		item.Score = submission.Score
		submittedAt = submission.SubmittedAt
		if *submission.Score >= item.PassingScore {
			item.Status = model.ItemStatusPassed
		} else {
			item.Status = model.ItemStatusFailed
		}
	default:
		// Submitted but awaiting a grade: displayed, not counted as done.
		item.Status = submission.Status
		if item.Status == "" || item.Status == model.SubmissionStatusSubmitted {
			item.Status = model.ItemStatusPendingGrade
		}
	}
	return item, submittedAt, true
}

// passingScore resolves the threshold for a quiz block: the stored quiz's
// setting, then the block's own override, then the course default, then the
// global default.
func passingScore(quiz *model.Quiz, qc *model.QuizContent, course *model.Course) int {
	if quiz != nil && quiz.Settings != nil && quiz.Settings.PassingScore != nil {
		return *quiz.Settings.PassingScore
	}
	if qc.Settings != nil && qc.Settings.PassingScore != nil {
		return *qc.Settings.PassingScore
	}
	if course.Settings != nil && course.Settings.DefaultPassingScore != nil {
		return *course.Settings.DefaultPassingScore
	}
	return defaultPassingScore
}

func quizTitle(quiz *model.Quiz, qc *model.QuizContent) string {
	if quiz != nil && quiz.Title != "" {
		return quiz.Title
	}
	return qc.Title
}

// percentage rounds completed/total to an integer percent, 0 when total is
// zero.
func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
