package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	admin := uuid.New()
	assignee := uuid.New()
	author := uuid.New()
	member := uuid.New()
	outsider := uuid.New()

	tests := []struct {
		name    string
		req     Request
		allowed bool
		reason  string
	}{
		{
			name:    "member views project",
			req:     Request{Actor: member, Action: ActionViewProject, Resource: Resource{AdminID: admin, IsMember: true}},
			allowed: true,
		},
		{
			name:    "outsider cannot view project",
			req:     Request{Actor: outsider, Action: ActionViewProject, Resource: Resource{AdminID: admin}},
			allowed: false,
			reason:  ReasonNotMember,
		},
		{
			name:    "anonymous actor is rejected",
			req:     Request{Actor: uuid.Nil, Action: ActionViewProject, Resource: Resource{AdminID: admin, IsMember: true}},
			allowed: false,
			reason:  ReasonUnauthenticated,
		},
		{
			name:    "admin deletes project",
			req:     Request{Actor: admin, Action: ActionDeleteProject, Resource: Resource{AdminID: admin, IsMember: true}},
			allowed: true,
		},
		{
			name:    "member cannot delete project",
			req:     Request{Actor: member, Action: ActionDeleteProject, Resource: Resource{AdminID: admin, IsMember: true}},
			allowed: false,
			reason:  "Not authorized to delete project",
		},
		{
			name:    "member cannot add members",
			req:     Request{Actor: member, Action: ActionAddMember, Resource: Resource{AdminID: admin, IsMember: true}},
			allowed: false,
			reason:  "Only the admin can add users to the project.",
		},
		{
			name:    "member cannot remove members",
			req:     Request{Actor: member, Action: ActionRemoveMember, Resource: Resource{AdminID: admin, IsMember: true}},
			allowed: false,
			reason:  "Only the admin can remove users from the project.",
		},
		{
			name:    "assignee cannot delete task",
			req:     Request{Actor: assignee, Action: ActionDeleteTask, Resource: Resource{AdminID: admin, IsMember: true, AssigneeID: &assignee}},
			allowed: false,
			reason:  "User is not authorized to delete this task.",
		},
		{
			name:    "admin updates task",
			req:     Request{Actor: admin, Action: ActionUpdateTask, Resource: Resource{AdminID: admin, IsMember: true}},
			allowed: true,
		},
		{
			name:    "assignee updates task",
			req:     Request{Actor: assignee, Action: ActionUpdateTask, Resource: Resource{AdminID: admin, AssigneeID: &assignee}},
			allowed: true,
		},
		{
			name:    "member who is not assignee cannot update task",
			req:     Request{Actor: member, Action: ActionUpdateTask, Resource: Resource{AdminID: admin, IsMember: true, AssigneeID: &assignee}},
			allowed: false,
			reason:  "User is not authorized to update this task.",
		},
		{
			name:    "unassigned task can only be updated by admin",
			req:     Request{Actor: member, Action: ActionUpdateTask, Resource: Resource{AdminID: admin, IsMember: true}},
			allowed: false,
			reason:  "User is not authorized to update this task.",
		},
		{
			name:    "author deletes comment",
			req:     Request{Actor: author, Action: ActionDeleteComment, Resource: Resource{AdminID: admin, IsMember: true, AuthorID: author}},
			allowed: true,
		},
		{
			name:    "admin deletes any comment",
			req:     Request{Actor: admin, Action: ActionDeleteComment, Resource: Resource{AdminID: admin, IsMember: true, AuthorID: author}},
			allowed: true,
		},
		{
			name:    "other member cannot delete comment",
			req:     Request{Actor: member, Action: ActionDeleteComment, Resource: Resource{AdminID: admin, IsMember: true, AuthorID: author}},
			allowed: false,
			reason:  "Not authorized to delete comment",
		},
		{
			name:    "unknown action is denied",
			req:     Request{Actor: admin, Action: Action("archive"), Resource: Resource{AdminID: admin, IsMember: true}},
			allowed: false,
			reason:  ReasonUnknownAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.req)
			assert.Equal(t, tt.allowed, d.Allowed())
			assert.Equal(t, tt.req.Action, d.Action)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestDecide_AdminOnlyIgnoresMembership(t *testing.T) {
	admin := uuid.New()
	member := uuid.New()

	for _, action := range []Action{ActionDeleteProject, ActionAddMember, ActionRemoveMember, ActionDeleteTask} {
		for _, isMember := range []bool{true, false} {
			d := Decide(Request{Actor: member, Action: action, Resource: Resource{AdminID: admin, IsMember: isMember}})
			assert.False(t, d.Allowed(), "action %s, member=%v", action, isMember)
		}
	}
}
