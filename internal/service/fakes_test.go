package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindStudents() ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == model.RoleStudent {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountStudentsByIDs(ids []uuid.UUID) (int64, error) {
	var count int64
	for _, id := range ids {
		if u, ok := r.users[id]; ok && u.Role == model.RoleStudent {
			count++
		}
	}
	return count, nil
}

type fakeAssignmentRepo struct {
	assignments map[uuid.UUID]*model.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: map[uuid.UUID]*model.Assignment{}}
}

func (r *fakeAssignmentRepo) Create(a *model.Assignment) error {
	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) FindByID(id uuid.UUID) (*model.Assignment, error) {
	if a, ok := r.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssignmentRepo) FindByIDWithSubmissions(id uuid.UUID) (*model.Assignment, error) {
	return r.FindByID(id)
}

func (r *fakeAssignmentRepo) Save(a *model.Assignment) error {
	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) FindByTeacher(teacherID uuid.UUID) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range r.assignments {
		if a.TeacherID == teacherID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) FindByStudent(studentID uuid.UUID) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range r.assignments {
		if a.HasStudent(studentID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	submissions map[uuid.UUID]*model.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: map[uuid.UUID]*model.Submission{}}
}

func (r *fakeSubmissionRepo) add(s *model.Submission) {
	r.submissions[s.ID] = s
}

func (r *fakeSubmissionRepo) FindByID(id uuid.UUID) (*model.Submission, error) {
	if s, ok := r.submissions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubmissionRepo) FindByIDWithFiles(id uuid.UUID) (*model.Submission, error) {
	return r.FindByID(id)
}

func (r *fakeSubmissionRepo) FindByAssignment(assignmentID uuid.UUID) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range r.submissions {
		if s.AssignmentID == assignmentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) FindByAssignmentAndStudent(assignmentID, studentID uuid.UUID) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range r.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeAnalyticRepo struct {
	bySubmission map[uuid.UUID]*model.Analytic
	saved        int
}

func newFakeAnalyticRepo() *fakeAnalyticRepo {
	return &fakeAnalyticRepo{bySubmission: map[uuid.UUID]*model.Analytic{}}
}

func (r *fakeAnalyticRepo) Create(a *model.Analytic) error {
	cp := *a
	r.bySubmission[a.SubmissionID] = &cp
	return nil
}

func (r *fakeAnalyticRepo) FindBySubmission(submissionID uuid.UUID) (*model.Analytic, error) {
	if a, ok := r.bySubmission[submissionID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAnalyticRepo) Save(a *model.Analytic) error {
	cp := *a
	r.bySubmission[a.SubmissionID] = &cp
	r.saved++
	return nil
}

// fakeTxRunner mimics transaction semantics: creates are kept only when
// the unit of work returns nil, and failAt makes the nth Create call fail.
type fakeTxRunner struct {
	failAt    int // 1-based index of the Create call that fails; 0 never
	committed []interface{}
}

type fakeTxCreator struct {
	failAt  int
	calls   int
	created []interface{}
}

func (c *fakeTxCreator) Create(value interface{}) error {
	c.calls++
	if c.failAt != 0 && c.calls == c.failAt {
		return fmt.Errorf("insert failed")
	}
	c.created = append(c.created, value)
	return nil
}

func (r *fakeTxRunner) Transaction(fn func(tx repository.TxCreator) error) error {
	creator := &fakeTxCreator{failAt: r.failAt}
	if err := fn(creator); err != nil {
		return err
	}
	r.committed = append(r.committed, creator.created...)
	return nil
}

// fakeLLM scripts the collaborator: one reply or error per call, in order.
type fakeLLM struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeLLM) AnalyzeFile(_ context.Context, prompt, _ string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", fmt.Errorf("unexpected call %d", i)
}

func newTeacher() *model.User {
	return &model.User{ID: uuid.New(), Name: "Test Teacher", Username: "test_teacher", Role: model.RoleTeacher}
}

func newStudent() *model.User {
	return &model.User{ID: uuid.New(), Name: "Test Student", Username: "test_student", Role: model.RoleStudent}
}
