package service

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvqhuy/Classboard/config"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/model"
	"github.com/tvqhuy/Classboard/internal/storage"
)

// multipartFile builds a *multipart.FileHeader the way gin hands them to
// the service.
func multipartFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1 << 20))
	return req.MultipartForm.File["files"][0]
}

type submissionFixture struct {
	svc        SubmissionService
	student    *model.User
	assignment *model.Assignment
	tx         *fakeTxRunner
	uploadDir  string
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()
	uploadDir := t.TempDir()
	store, err := storage.NewLocalStore(&config.Config{Upload: config.Upload{Dir: uploadDir}})
	require.NoError(t, err)

	teacher := newTeacher()
	student := newStudent()
	assignmentRepo := newFakeAssignmentRepo()
	assignment := &model.Assignment{
		ID:         uuid.New(),
		Title:      "Essay 1",
		TeacherID:  teacher.ID,
		StudentIDs: []string{student.ID.String()},
	}
	require.NoError(t, assignmentRepo.Create(assignment))

	tx := &fakeTxRunner{}
	svc := NewSubmissionService(assignmentRepo, store, NewPolicy(), tx)
	return &submissionFixture{
		svc:        svc,
		student:    student,
		assignment: assignment,
		tx:         tx,
		uploadDir:  uploadDir,
	}
}

func TestSubmitUnknownAssignment(t *testing.T) {
	f := newSubmissionFixture(t)

	_, err := f.svc.Submit(f.student, uuid.New(), "", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSubmitDeniedForUnassignedStudent(t *testing.T) {
	f := newSubmissionFixture(t)

	outsider := newStudent()
	outsider.ID = uuid.New()
	_, err := f.svc.Submit(outsider, f.assignment.ID, "", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))
}

func TestSubmitDeniedForTeachers(t *testing.T) {
	f := newSubmissionFixture(t)

	_, err := f.svc.Submit(newTeacher(), f.assignment.ID, "", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))
}

func TestSubmitRejectsPathTraversalFilenames(t *testing.T) {
	f := newSubmissionFixture(t)

	fh := multipartFile(t, "notes.txt", "content")
	fh.Filename = "../escape.txt" // client-controlled header, not trusted

	_, err := f.svc.Submit(f.student, f.assignment.ID, "", []*multipart.FileHeader{fh})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSubmitCreatesRowPerFile(t *testing.T) {
	f := newSubmissionFixture(t)

	files := []*multipart.FileHeader{
		multipartFile(t, "essay.txt", "first draft"),
		multipartFile(t, "notes.txt", "sources"),
	}
	submission, err := f.svc.Submit(f.student, f.assignment.ID, "done", files)
	require.NoError(t, err)

	require.Len(t, submission.Files, 2)
	assert.Equal(t, "essay.txt", submission.Files[0].Filename)
	assert.Equal(t, "notes.txt", submission.Files[1].Filename)

	// one submission row plus one file row per upload
	require.Len(t, f.tx.committed, 3)
	_, ok := f.tx.committed[0].(*model.Submission)
	assert.True(t, ok)
	for _, row := range f.tx.committed[1:] {
		_, ok := row.(*model.File)
		assert.True(t, ok)
	}

	content, err := os.ReadFile(submission.Files[0].Filepath)
	require.NoError(t, err)
	assert.Equal(t, "first draft", string(content))
	assert.Equal(t, int64(len("first draft")), submission.Files[0].Size)
}

func TestSubmitRollbackLeavesNothingBehind(t *testing.T) {
	f := newSubmissionFixture(t)
	f.tx.failAt = 3 // second file row insert fails after both files are promoted

	files := []*multipart.FileHeader{
		multipartFile(t, "essay.txt", "first draft"),
		multipartFile(t, "notes.txt", "sources"),
	}
	_, err := f.svc.Submit(f.student, f.assignment.ID, "", files)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	assert.Empty(t, f.tx.committed)

	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "promoted files must be removed after rollback")
}
