// Package notify is the production workflow.Notifier: it hands state-change
// notifications to the background worker through the task queue, so a slow
// or failing messaging API never delays an HTTP response.
package notify

import (
	"fmt"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/workflow"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/pkg/tasks"
)

// AsynqNotifier enqueues notification tasks.
type AsynqNotifier struct {
	client tasks.TaskEnqueuer
}

func NewAsynqNotifier(client tasks.TaskEnqueuer) *AsynqNotifier {
	return &AsynqNotifier{client: client}
}

func (n *AsynqNotifier) NotifyManagers(el workflow.Element, a models.Authorization) error {
	task, err := tasks.NewNotifyManagersTask(el, a)
	if err != nil {
		return fmt.Errorf("create notify-managers task: %w", err)
	}
	if _, err := n.client.Enqueue(task); err != nil {
		return fmt.Errorf("enqueue notify-managers task: %w", err)
	}
	return nil
}

func (n *AsynqNotifier) NotifyEditors(el workflow.Element, a models.Authorization) error {
	task, err := tasks.NewNotifyEditorsTask(el, a)
	if err != nil {
		return fmt.Errorf("create notify-editors task: %w", err)
	}
	if _, err := n.client.Enqueue(task); err != nil {
		return fmt.Errorf("enqueue notify-editors task: %w", err)
	}
	return nil
}
