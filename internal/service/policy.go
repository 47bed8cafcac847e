package service

import (
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/model"
)

// Action names an operation a caller attempts against a resource.
type Action string

const (
	ActionViewAssignment   Action = "assignment:view"
	ActionCreateAssignment Action = "assignment:create"
	ActionUpdateAssignment Action = "assignment:update"
	ActionSubmit           Action = "assignment:submit"
	ActionListSubmissions  Action = "assignment:list-submissions"
	ActionViewSubmission   Action = "submission:view"
	ActionManageAnalytic   Action = "analytic:manage"
	ActionViewFile         Action = "file:view"
	ActionListStudents     Action = "users:list-students"
)

// Resource carries the records an authorization decision depends on.
// Submission-scoped actions must also set Assignment (its parent).
type Resource struct {
	Assignment *model.Assignment
	Submission *model.Submission
}

// Policy is the single decision point for every role/ownership rule, so
// the rules cannot drift between endpoints. A nil return means allow.
type Policy interface {
	Authorize(caller *model.User, action Action, res Resource) error
}

type policy struct{}

func NewPolicy() Policy {
	return policy{}
}

func (policy) Authorize(caller *model.User, action Action, res Resource) error {
	switch action {
	case ActionCreateAssignment:
		if caller.Role != model.RoleTeacher {
			return apperr.Denied("only teachers can create assignments")
		}
		return nil

	case ActionViewAssignment:
		if caller.Role == model.RoleAdmin {
			return nil
		}
		if caller.Role == model.RoleTeacher && res.Assignment.TeacherID == caller.ID {
			return nil
		}
		if caller.Role == model.RoleStudent && res.Assignment.HasStudent(caller.ID) {
			return nil
		}
		return apperr.Denied("you are not authorized to view this assignment")

	case ActionUpdateAssignment:
		if caller.Role != model.RoleTeacher || res.Assignment.TeacherID != caller.ID {
			return apperr.Denied("you are not authorized to update this assignment")
		}
		return nil

	case ActionSubmit:
		if caller.Role != model.RoleStudent {
			return apperr.Denied("only students can submit assignments")
		}
		if !res.Assignment.HasStudent(caller.ID) {
			return apperr.Denied("you are not assigned to this assignment")
		}
		return nil

	case ActionListSubmissions:
		if caller.Role == model.RoleTeacher && res.Assignment.TeacherID == caller.ID {
			return nil
		}
		if caller.Role == model.RoleStudent && res.Assignment.HasStudent(caller.ID) {
			return nil
		}
		return apperr.Denied("you are not authorized to view this assignment")

	case ActionManageAnalytic:
		if caller.Role != model.RoleTeacher || res.Assignment.TeacherID != caller.ID {
			return apperr.Denied("only the submission's teacher can manage analytics")
		}
		return nil

	case ActionViewSubmission, ActionViewFile:
		if caller.Role == model.RoleTeacher && res.Assignment.TeacherID == caller.ID {
			return nil
		}
		if caller.Role == model.RoleStudent && res.Submission.StudentID == caller.ID {
			return nil
		}
		return apperr.Denied("you are not authorized to access this submission")

	case ActionListStudents:
		if caller.Role == model.RoleTeacher || caller.Role == model.RoleAdmin {
			return nil
		}
		return apperr.Denied("only teachers can list students")
	}
	return apperr.Denied("action not permitted")
}
