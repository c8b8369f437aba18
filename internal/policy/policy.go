// Package policy decides whether an actor may perform an action on a project
// resource. It is pure: callers load the facts and act on the Decision.
package policy

import "github.com/google/uuid"

type Action string

const (
	ActionViewProject     Action = "view_project"
	ActionDeleteProject   Action = "delete_project"
	ActionAddMember       Action = "add_member"
	ActionRemoveMember    Action = "remove_member"
	ActionCreateTask      Action = "create_task"
	ActionUpdateTask      Action = "update_task"
	ActionDeleteTask      Action = "delete_task"
	ActionCreateComment   Action = "create_comment"
	ActionViewComments    Action = "view_comments"
	ActionDeleteComment   Action = "delete_comment"
	ActionSuggestAssignee Action = "suggest_assignee"
)

type Effect int

const (
	Deny Effect = iota
	Allow
)

// Decision is the result of Decide. Reason is set for denials and is safe to
// show to the caller.
type Decision struct {
	Effect Effect
	Action Action
	Reason string
}

func (d Decision) Allowed() bool {
	return d.Effect == Allow
}

// Resource holds what is known about the project-scoped resource being acted on.
type Resource struct {
	AdminID  uuid.UUID
	IsMember bool
	// AssigneeID is the task's current assignee, if any.
	AssigneeID *uuid.UUID
	// AuthorID is the comment author.
	AuthorID uuid.UUID
}

type Request struct {
	Actor    uuid.UUID
	Action   Action
	Resource Resource
}

const (
	ReasonUnauthenticated = "Unauthorized"
	ReasonNotMember       = "User is not part of the project."
	ReasonUnknownAction   = "Action is not permitted."
)

var adminOnlyReasons = map[Action]string{
	ActionDeleteProject: "Not authorized to delete project",
	ActionAddMember:     "Only the admin can add users to the project.",
	ActionRemoveMember:  "Only the admin can remove users from the project.",
	ActionDeleteTask:    "User is not authorized to delete this task.",
}

func Decide(req Request) Decision {
	if req.Actor == uuid.Nil {
		return deny(req.Action, ReasonUnauthenticated)
	}

	res := req.Resource
	isAdmin := res.AdminID != uuid.Nil && res.AdminID == req.Actor

	switch req.Action {
	case ActionViewProject, ActionCreateTask, ActionCreateComment, ActionViewComments, ActionSuggestAssignee:
		if res.IsMember || isAdmin {
			return allow(req.Action)
		}
		return deny(req.Action, ReasonNotMember)

	case ActionDeleteProject, ActionAddMember, ActionRemoveMember, ActionDeleteTask:
		if isAdmin {
			return allow(req.Action)
		}
		return deny(req.Action, adminOnlyReasons[req.Action])

	case ActionUpdateTask:
		if isAdmin || (res.AssigneeID != nil && *res.AssigneeID == req.Actor) {
			return allow(req.Action)
		}
		return deny(req.Action, "User is not authorized to update this task.")

	case ActionDeleteComment:
		if isAdmin || res.AuthorID == req.Actor {
			return allow(req.Action)
		}
		return deny(req.Action, "Not authorized to delete comment")
	}

	return deny(req.Action, ReasonUnknownAction)
}

func allow(action Action) Decision {
	return Decision{Effect: Allow, Action: action}
}

func deny(action Action, reason string) Decision {
	return Decision{Effect: Deny, Action: action, Reason: reason}
}
