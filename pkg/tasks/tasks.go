package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/workflow"
)

const (
	TypeNotifyManagers = "notify:managers"
	TypeNotifyEditors  = "notify:editors"
	TypePurgeTokens    = "tokens:purge"
)

// NotifyPayload carries everything the worker needs to build the messages
// for a workflow state change.
type NotifyPayload struct {
	Element       workflow.Element     `json:"element"`
	Authorization models.Authorization `json:"authorization"`
}

func NewNotifyManagersTask(el workflow.Element, a models.Authorization) (*asynq.Task, error) {
	payload, err := json.Marshal(NotifyPayload{Element: el, Authorization: a})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyManagers, payload), nil
}

func NewNotifyEditorsTask(el workflow.Element, a models.Authorization) (*asynq.Task, error) {
	payload, err := json.Marshal(NotifyPayload{Element: el, Authorization: a})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyEditors, payload), nil
}

func NewPurgeTokensTask() (*asynq.Task, error) {
	return asynq.NewTask(TypePurgeTokens, nil), nil
}
