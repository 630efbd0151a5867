package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/pkg/tasks"
)

// TaskHandler processes background tasks: messaging the managers and the
// editorial team about workflow changes, and housekeeping.
type TaskHandler struct {
	instagram     *InstagramClient
	clientBaseURL string
	apiBaseURL    string
	managerIGSIDs []string
	editorIGSIDs  []string
}

func NewTaskHandler(instagram *InstagramClient, clientBaseURL, apiBaseURL string, managerIGSIDs, editorIGSIDs []string) *TaskHandler {
	return &TaskHandler{
		instagram:     instagram,
		clientBaseURL: clientBaseURL,
		apiBaseURL:    apiBaseURL,
		managerIGSIDs: managerIGSIDs,
		editorIGSIDs:  editorIGSIDs,
	}
}

// HandleNotifyManagersTask messages every manager that an authorization
// awaits their decision. Per-recipient failures are logged and the rest of
// the roster is still attempted.
func (h *TaskHandler) HandleNotifyManagersTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.NotifyPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	log.Printf("Notifying %d managers about authorization %d", len(h.managerIGSIDs), p.Authorization.ID)

	messages := h.managerMessages(p)
	for _, igsid := range h.managerIGSIDs {
		for _, message := range messages {
			if err := h.instagram.SendMessage(igsid, message); err != nil {
				log.Printf("failed to message manager %s: %v", igsid, err)
			}
		}
	}
	return nil
}

// HandleNotifyEditorsTask messages the editorial team with a manager's
// decision.
func (h *TaskHandler) HandleNotifyEditorsTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.NotifyPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	log.Printf("Notifying editors about authorization %d (%s)", p.Authorization.ID, p.Authorization.Status)

	message := h.editorMessage(p)
	for _, igsid := range h.editorIGSIDs {
		if err := h.instagram.SendMessage(igsid, message); err != nil {
			log.Printf("failed to message editor %s: %v", igsid, err)
		}
	}
	return nil
}

// HandlePurgeTokensTask drops revocation rows for tokens that expired on
// their own.
func (h *TaskHandler) HandlePurgeTokensTask(ctx context.Context, t *asynq.Task) error {
	purged, err := db.PurgeRevokedTokens(time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to purge revoked tokens: %w", err)
	}
	log.Printf("Purged %d expired revoked tokens", purged)
	return nil
}

// elementSubtitle builds the per-type label: shows and videos carry the
// duration from the authorization content, articles only their kind.
func elementSubtitle(p tasks.NotifyPayload) string {
	var content struct {
		EstimatedDuration string `json:"estimatedDuration"`
		Duration          string `json:"duration"`
	}
	// Content is editor-supplied JSON; on parse failure the labels below
	// degrade to an empty duration.
	if err := json.Unmarshal([]byte(p.Authorization.Content), &content); err != nil {
		log.Printf("unparsable authorization content for %d: %v", p.Authorization.ID, err)
	}

	switch p.Element.Type {
	case models.ElementShow:
		return fmt.Sprintf("Émission\nDurée : %s", content.EstimatedDuration)
	case models.ElementVideo:
		return fmt.Sprintf("Vidéo\nDurée : %s", content.Duration)
	default:
		return "Article"
	}
}

func (h *TaskHandler) managerMessages(p tasks.NotifyPayload) []map[string]any {
	return []map[string]any{
		genericTemplate(map[string]any{
			"title":    "Demande d'autorisation de publication",
			"subtitle": "Message automatique",
		}),
		genericTemplate(map[string]any{
			"title":     p.Element.Title,
			"subtitle":  elementSubtitle(p),
			"image_url": fmt.Sprintf("%s/public/images/thumbnails/%s", h.apiBaseURL, p.Element.Thumbnail),
			"buttons": []map[string]any{{
				"type":  "web_url",
				"url":   fmt.Sprintf("%s/verif?id=%d", h.clientBaseURL, p.Authorization.ID),
				"title": "Consulter",
			}},
		}),
	}
}

func (h *TaskHandler) editorMessage(p tasks.NotifyPayload) map[string]any {
	decision := "refusée"
	if p.Authorization.Status == status.AuthorizationApproved {
		decision = "accordée"
	}
	manager := ""
	if p.Authorization.Manager != nil {
		manager = *p.Authorization.Manager
	}
	return genericTemplate(map[string]any{
		"title":    fmt.Sprintf("Autorisation de publication %s", decision),
		"subtitle": fmt.Sprintf("%s, réponse de %s", p.Element.Title, manager),
		"buttons": []map[string]any{{
			"type":  "web_url",
			"url":   fmt.Sprintf("%s/verif?id=%d", h.clientBaseURL, p.Authorization.ID),
			"title": "Consulter",
		}},
	})
}

func genericTemplate(element map[string]any) map[string]any {
	return map[string]any{
		"attachment": map[string]any{
			"type": "template",
			"payload": map[string]any{
				"template_type": "generic",
				"elements":      []map[string]any{element},
			},
		},
	}
}
