package backend

import (
	"context"

	"github.com/Afrawles/taskdash/internal/tasks"
)

const (
	userTasksPath = "/api/v2/tasks/get_tasks"
	teamTasksPath = "/api/v2/tasks/user/team/{userId}"
	assigneesPath = "/api/assignees"
)

type teamTasksResponse struct {
	Data map[string][]tasks.RawTask `json:"data"`
}

// FetchUserTasks returns the flat list of tasks assigned to the user.
func (c *Client) FetchUserTasks(ctx context.Context, s tasks.Session) ([]tasks.RawTask, error) {
	var list []tasks.RawTask
	err := c.get(ctx, s, request{
		op:    "get tasks for user",
		path:  userTasksPath,
		query: map[string]string{"userId": s.UserID},
		auth:  true,
	}, &list)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []tasks.RawTask{}
	}
	return list, nil
}

// FetchTeamTasks returns the team's tasks keyed by status.
func (c *Client) FetchTeamTasks(ctx context.Context, s tasks.Session) (map[string][]tasks.RawTask, error) {
	var res teamTasksResponse
	err := c.get(ctx, s, request{
		op:     "get tasks for team",
		path:   teamTasksPath,
		params: map[string]string{"userId": s.UserID},
		auth:   true,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		res.Data = map[string][]tasks.RawTask{}
	}
	return res.Data, nil
}

// FetchAssignees lists the people tasks can be assigned to.
func (c *Client) FetchAssignees(ctx context.Context, s tasks.Session) ([]tasks.Assignee, error) {
	var list []tasks.Assignee
	if err := c.get(ctx, s, request{op: "get assignees", path: assigneesPath}, &list); err != nil {
		return nil, err
	}
	return list, nil
}
