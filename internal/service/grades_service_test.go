package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"academy/internal/model"

	"github.com/rs/zerolog"
)

type fakeWeekRepo struct {
	weeks    []model.Week
	sections map[string][]model.Section
}

func (f *fakeWeekRepo) GetWeeksByCourseID(ctx context.Context, courseID string) ([]model.Week, error) {
	return f.weeks, nil
}

func (f *fakeWeekRepo) GetSectionsByWeekID(ctx context.Context, weekID string) ([]model.Section, error) {
	return f.sections[weekID], nil
}

type fakeProgressRepo struct {
	// weekID -> sectionID -> completed
	progress map[string]map[string]bool
}

func (f *fakeProgressRepo) GetUserProgressForWeek(ctx context.Context, userID, weekID string) (map[string]bool, error) {
	if p, ok := f.progress[weekID]; ok {
		return p, nil
	}
	return map[string]bool{}, nil
}

func (f *fakeProgressRepo) UpsertSectionProgress(ctx context.Context, userID, weekID, sectionID string, completed bool) error {
	return nil
}

type fakeQuizRepo struct {
	quizzes     map[string]*model.Quiz
	submissions map[string]*model.Submission
	failing     map[string]bool
}

func (f *fakeQuizRepo) GetQuizByID(ctx context.Context, quizID string) (*model.Quiz, error) {
	if f.failing[quizID] {
		return nil, errors.New("quiz store failure")
	}
	return f.quizzes[quizID], nil
}

func (f *fakeQuizRepo) GetUserSubmissionForQuiz(ctx context.Context, userID, quizID string) (*model.Submission, error) {
	return f.submissions[quizID], nil
}

func intPtr(v int) *int { return &v }

func quizSection(sectionID string, order int, quizIDs ...string) model.Section {
	blocks := []model.RichContentBlock{{Type: "text"}}
	for _, id := range quizIDs {
		blocks = append(blocks, model.RichContentBlock{
			Type:        model.BlockTypeQuiz,
			QuizContent: &model.QuizContent{DatabaseQuizID: id, Title: "Quiz " + id},
		})
	}
	return model.Section{
		SectionID: sectionID,
		Title:     "Section " + sectionID,
		Order:     order,
		Content:   []model.ContentItem{{Title: "Item", RichContent: blocks}},
	}
}

func plainSection(sectionID string, order int) model.Section {
	return model.Section{
		SectionID: sectionID,
		Title:     "Section " + sectionID,
		Order:     order,
		Content: []model.ContentItem{{
			Title: "Item",
			RichContent: []model.RichContentBlock{
				{Type: "text"},
				{Type: "video"},
				{Type: "document"},
			},
		}},
	}
}

func newGradeService(courses *fakeCourseRepo, weeks *fakeWeekRepo, progress *fakeProgressRepo, quizzes *fakeQuizRepo) GradeService {
	return NewGradeService(courses, weeks, progress, quizzes, zerolog.Nop())
}

func singleCourse() *fakeCourseRepo {
	return &fakeCourseRepo{courses: []model.Course{{CourseID: "c1", Title: "Month 1", MonthOrder: 1}}}
}

func TestComputeCourseNotFound(t *testing.T) {
	svc := newGradeService(&fakeCourseRepo{}, &fakeWeekRepo{}, &fakeProgressRepo{}, &fakeQuizRepo{})
	if _, err := svc.ComputeCourseGrades(context.Background(), "u1", "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestComputeZeroWeeks(t *testing.T) {
	svc := newGradeService(singleCourse(), &fakeWeekRepo{}, &fakeProgressRepo{}, &fakeQuizRepo{})

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	if len(grades.WeeklyGrades) != 0 {
		t.Errorf("got %d weekly grades, want 0", len(grades.WeeklyGrades))
	}
	mp := grades.MonthlyProgress
	if mp.TotalItems != 0 || mp.CompletedItems != 0 || mp.OverallProgress != 0 {
		t.Errorf("monthly progress not zero-valued: %+v", mp)
	}
	if len(mp.QuizScores) != 0 {
		t.Errorf("got %d quiz scores, want 0", len(mp.QuizScores))
	}
}

func TestComputeHalfCompletedWeek(t *testing.T) {
	weeks := &fakeWeekRepo{
		weeks: []model.Week{{WeekID: "w1", Title: "Week 1", WeekOrder: 1, CourseID: "c1"}},
		sections: map[string][]model.Section{
			"w1": {plainSection("s1", 1), plainSection("s2", 2)},
		},
	}
	progress := &fakeProgressRepo{progress: map[string]map[string]bool{
		"w1": {"s1": true},
	}}
	svc := newGradeService(singleCourse(), weeks, progress, &fakeQuizRepo{})

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	wg := grades.WeeklyGrades[0]
	if wg.TotalItems != 2 || wg.CompletedItems != 1 {
		t.Errorf("week totals = %d/%d, want 1/2", wg.CompletedItems, wg.TotalItems)
	}
	if wg.OverallWeekProgress != 50 {
		t.Errorf("OverallWeekProgress = %d, want 50", wg.OverallWeekProgress)
	}
	// Text/video/document blocks never show up as items.
	if len(wg.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(wg.Items))
	}
	if wg.Items[0].Status != model.ItemStatusCompleted || wg.Items[0].ProgressPercent != 100 {
		t.Errorf("completed section item wrong: %+v", wg.Items[0])
	}
	if wg.Items[1].Status != model.ItemStatusNotStarted || wg.Items[1].ProgressPercent != 0 {
		t.Errorf("untouched section item wrong: %+v", wg.Items[1])
	}
}

func TestComputeIncompleteVsNotStarted(t *testing.T) {
	weeks := &fakeWeekRepo{
		weeks: []model.Week{{WeekID: "w1", WeekOrder: 1}},
		sections: map[string][]model.Section{
			"w1": {plainSection("s1", 1), plainSection("s2", 2)},
		},
	}
	// s1 explicitly marked false; s2 never touched.
	progress := &fakeProgressRepo{progress: map[string]map[string]bool{
		"w1": {"s1": false},
	}}
	svc := newGradeService(singleCourse(), weeks, progress, &fakeQuizRepo{})

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	items := grades.WeeklyGrades[0].Items
	if items[0].Status != model.ItemStatusIncomplete {
		t.Errorf("s1 status = %s, want incomplete", items[0].Status)
	}
	if items[1].Status != model.ItemStatusNotStarted {
		t.Errorf("s2 status = %s, want not_started", items[1].Status)
	}
}

func TestComputePassedQuiz(t *testing.T) {
	weeks := &fakeWeekRepo{
		weeks:    []model.Week{{WeekID: "w1", WeekOrder: 1}},
		sections: map[string][]model.Section{"w1": {quizSection("s1", 1, "q1")}},
	}
	progress := &fakeProgressRepo{progress: map[string]map[string]bool{"w1": {"s1": true}}}
	submitted := time.Date(2025, time.February, 3, 9, 0, 0, 0, time.UTC)
	quizzes := &fakeQuizRepo{
		quizzes: map[string]*model.Quiz{
			"q1": {QuizID: "q1", Title: "Checkpoint", Settings: &model.QuizSettings{PassingScore: intPtr(70)}},
		},
		submissions: map[string]*model.Submission{
			"q1": {QuizID: "q1", UserID: "u1", Score: intPtr(80), Status: model.SubmissionStatusGraded, SubmittedAt: submitted},
		},
	}
	svc := newGradeService(singleCourse(), weeks, progress, quizzes)

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	wg := grades.WeeklyGrades[0]
	if wg.TotalItems != 2 || wg.CompletedItems != 2 {
		t.Errorf("week totals = %d/%d, want 2/2", wg.CompletedItems, wg.TotalItems)
	}
	quizItem := wg.Items[1]
	if quizItem.Kind != model.ItemKindQuizScore || quizItem.Status != model.ItemStatusPassed {
		t.Errorf("quiz item wrong: %+v", quizItem)
	}
	if quizItem.Score == nil || *quizItem.Score != 80 || quizItem.PassingScore != 70 || quizItem.MaxScore != 100 {
		t.Errorf("quiz item scores wrong: %+v", quizItem)
	}

	qs := grades.MonthlyProgress.QuizScores
	if len(qs) != 1 {
		t.Fatalf("got %d quiz scores, want 1", len(qs))
	}
	if qs[0].QuizID != "q1" || !qs[0].Passed || qs[0].Score != 80 || !qs[0].SubmittedAt.Equal(submitted) {
		t.Errorf("quiz score entry wrong: %+v", qs[0])
	}
}

func TestComputeFailedQuizStillCountsCompleted(t *testing.T) {
	weeks := &fakeWeekRepo{
		weeks:    []model.Week{{WeekID: "w1", WeekOrder: 1}},
		sections: map[string][]model.Section{"w1": {quizSection("s1", 1, "q1")}},
	}
	quizzes := &fakeQuizRepo{
		quizzes: map[string]*model.Quiz{
			"q1": {QuizID: "q1", Settings: &model.QuizSettings{PassingScore: intPtr(70)}},
		},
		submissions: map[string]*model.Submission{
			"q1": {QuizID: "q1", Score: intPtr(55), Status: model.SubmissionStatusGraded},
		},
	}
	svc := newGradeService(singleCourse(), weeks, &fakeProgressRepo{}, quizzes)

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	wg := grades.WeeklyGrades[0]
	// The scored attempt occupies its slot even though it failed.
	if wg.CompletedItems != 1 {
		t.Errorf("CompletedItems = %d, want 1 (failed quiz still counts)", wg.CompletedItems)
	}
	if wg.Items[1].Status != model.ItemStatusFailed {
		t.Errorf("quiz status = %s, want failed", wg.Items[1].Status)
	}
	if grades.MonthlyProgress.QuizScores[0].Passed {
		t.Error("failed quiz reported as passed")
	}
}

func TestComputePendingGradeCountsTotalNotCompleted(t *testing.T) {
	weeks := &fakeWeekRepo{
		weeks:    []model.Week{{WeekID: "w1", WeekOrder: 1}},
		sections: map[string][]model.Section{"w1": {quizSection("s1", 1, "q1")}},
	}
	quizzes := &fakeQuizRepo{
		quizzes: map[string]*model.Quiz{"q1": {QuizID: "q1"}},
		submissions: map[string]*model.Submission{
			"q1": {QuizID: "q1", Score: nil, Status: model.SubmissionStatusSubmitted},
		},
	}
	svc := newGradeService(singleCourse(), weeks, &fakeProgressRepo{}, quizzes)

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	wg := grades.WeeklyGrades[0]
	if wg.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", wg.TotalItems)
	}
	if wg.CompletedItems != 0 {
		t.Errorf("CompletedItems = %d, want 0", wg.CompletedItems)
	}
	if wg.Items[1].Status != model.ItemStatusPendingGrade {
		t.Errorf("quiz status = %s, want pending_grade", wg.Items[1].Status)
	}
	if len(grades.MonthlyProgress.QuizScores) != 0 {
		t.Errorf("ungraded submission leaked into quiz scores: %+v", grades.MonthlyProgress.QuizScores)
	}
}

func TestComputeQuizNotStarted(t *testing.T) {
	weeks := &fakeWeekRepo{
		weeks:    []model.Week{{WeekID: "w1", WeekOrder: 1}},
		sections: map[string][]model.Section{"w1": {quizSection("s1", 1, "q1")}},
	}
	quizzes := &fakeQuizRepo{quizzes: map[string]*model.Quiz{"q1": {QuizID: "q1"}}}
	svc := newGradeService(singleCourse(), weeks, &fakeProgressRepo{}, quizzes)

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	wg := grades.WeeklyGrades[0]
	if wg.Items[1].Status != model.ItemStatusNotStarted {
		t.Errorf("quiz status = %s, want not_started", wg.Items[1].Status)
	}
	if wg.TotalItems != 2 || wg.CompletedItems != 0 {
		t.Errorf("week totals = %d/%d, want 0/2", wg.CompletedItems, wg.TotalItems)
	}
}

func TestComputeQuizLookupFailureSkipsBlock(t *testing.T) {
	weeks := &fakeWeekRepo{
		weeks: []model.Week{{WeekID: "w1", WeekOrder: 1}},
		sections: map[string][]model.Section{
			"w1": {quizSection("s1", 1, "broken"), quizSection("s2", 2, "q2")},
		},
	}
	progress := &fakeProgressRepo{progress: map[string]map[string]bool{
		"w1": {"s1": true, "s2": true},
	}}
	quizzes := &fakeQuizRepo{
		failing: map[string]bool{"broken": true},
		quizzes: map[string]*model.Quiz{"q2": {QuizID: "q2"}},
		submissions: map[string]*model.Submission{
			"q2": {QuizID: "q2", Score: intPtr(90), Status: model.SubmissionStatusGraded},
		},
	}
	svc := newGradeService(singleCourse(), weeks, progress, quizzes)

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("a single quiz lookup failure aborted the aggregation: %v", err)
	}
	wg := grades.WeeklyGrades[0]
	// 2 section slots + q2; the broken block is fully excluded.
	if wg.TotalItems != 3 || wg.CompletedItems != 3 {
		t.Errorf("week totals = %d/%d, want 3/3", wg.CompletedItems, wg.TotalItems)
	}
	for _, item := range wg.Items {
		if item.QuizID == "broken" {
			t.Error("broken quiz block still present in items")
		}
	}
	if wg.OverallWeekProgress != 100 {
		t.Errorf("OverallWeekProgress = %d, want 100", wg.OverallWeekProgress)
	}
}

func TestPassingScoreFallbackChain(t *testing.T) {
	course := &model.Course{CourseID: "c1", Settings: &model.CourseSettings{DefaultPassingScore: intPtr(65)}}
	bareCourse := &model.Course{CourseID: "c1"}

	cases := []struct {
		name   string
		quiz   *model.Quiz
		qc     *model.QuizContent
		course *model.Course
		want   int
	}{
		{
			name:   "quiz settings win",
			quiz:   &model.Quiz{Settings: &model.QuizSettings{PassingScore: intPtr(80)}},
			qc:     &model.QuizContent{Settings: &model.QuizSettings{PassingScore: intPtr(75)}},
			course: course,
			want:   80,
		},
		{
			name:   "block settings next",
			quiz:   &model.Quiz{},
			qc:     &model.QuizContent{Settings: &model.QuizSettings{PassingScore: intPtr(75)}},
			course: course,
			want:   75,
		},
		{
			name:   "course default next",
			quiz:   nil,
			qc:     &model.QuizContent{},
			course: course,
			want:   65,
		},
		{
			name:   "global default last",
			quiz:   nil,
			qc:     &model.QuizContent{},
			course: bareCourse,
			want:   70,
		},
	}
	for _, c := range cases {
		if got := passingScore(c.quiz, c.qc, c.course); got != c.want {
			t.Errorf("%s: passingScore = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestComputeOverallRounding(t *testing.T) {
	// 3 sections, 1 completed: 33%. Then 2 of 3: 67%.
	weeks := &fakeWeekRepo{
		weeks: []model.Week{{WeekID: "w1", WeekOrder: 1}},
		sections: map[string][]model.Section{
			"w1": {plainSection("s1", 1), plainSection("s2", 2), plainSection("s3", 3)},
		},
	}
	svc := newGradeService(singleCourse(), weeks, &fakeProgressRepo{progress: map[string]map[string]bool{
		"w1": {"s1": true},
	}}, &fakeQuizRepo{})

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	if got := grades.WeeklyGrades[0].OverallWeekProgress; got != 33 {
		t.Errorf("1/3 progress = %d, want 33", got)
	}

	svc = newGradeService(singleCourse(), weeks, &fakeProgressRepo{progress: map[string]map[string]bool{
		"w1": {"s1": true, "s2": true},
	}}, &fakeQuizRepo{})
	grades, err = svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	if got := grades.WeeklyGrades[0].OverallWeekProgress; got != 67 {
		t.Errorf("2/3 progress = %d, want 67", got)
	}
}

func TestComputeAggregatesAcrossWeeks(t *testing.T) {
	weeks := &fakeWeekRepo{
		weeks: []model.Week{
			{WeekID: "w1", WeekOrder: 1},
			{WeekID: "w2", WeekOrder: 2},
		},
		sections: map[string][]model.Section{
			"w1": {plainSection("s1", 1), plainSection("s2", 2)},
			"w2": {quizSection("s3", 1, "q1")},
		},
	}
	progress := &fakeProgressRepo{progress: map[string]map[string]bool{
		"w1": {"s1": true, "s2": true},
		"w2": {"s3": true},
	}}
	quizzes := &fakeQuizRepo{
		quizzes: map[string]*model.Quiz{"q1": {QuizID: "q1"}},
		submissions: map[string]*model.Submission{
			"q1": {QuizID: "q1", Score: intPtr(72), Status: model.SubmissionStatusGraded},
		},
	}
	svc := newGradeService(singleCourse(), weeks, progress, quizzes)

	grades, err := svc.ComputeCourseGrades(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("ComputeCourseGrades: %v", err)
	}
	mp := grades.MonthlyProgress
	if mp.TotalItems != 4 || mp.CompletedItems != 4 {
		t.Errorf("monthly totals = %d/%d, want 4/4", mp.CompletedItems, mp.TotalItems)
	}
	if mp.OverallProgress != 100 {
		t.Errorf("OverallProgress = %d, want 100", mp.OverallProgress)
	}
	if len(grades.WeeklyGrades) != 2 {
		t.Fatalf("got %d weeks, want 2", len(grades.WeeklyGrades))
	}
	if len(mp.QuizScores) != 1 || mp.QuizScores[0].QuizID != "q1" {
		t.Errorf("quiz scores wrong: %+v", mp.QuizScores)
	}
}
