package worker

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/test"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/workflow"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/pkg/tasks"
)

type sentMessage struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message map[string]any `json:"message"`
}

// newGraphAPIStub records every message POSTed to the Instagram endpoint.
func newGraphAPIStub(t *testing.T, sent *[]sentMessage) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/messages", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var msg sentMessage
		require.NoError(t, json.Unmarshal(body, &msg))
		*sent = append(*sent, msg)

		w.WriteHeader(http.StatusOK)
	}))
}

func TestHandleNotifyManagersTask(t *testing.T) {
	var sent []sentMessage
	server := newGraphAPIStub(t, &sent)
	defer server.Close()

	client := NewInstagramClient(server.URL, "test-token")
	handler := NewTaskHandler(client, "https://lejdl.example.org", "https://api.example.org", []string{"ig-1", "ig-2"}, nil)

	el := workflow.Element{Type: models.ElementShow, ID: 3, Title: "Émission de mars", Thumbnail: "mars.webp"}
	a := models.Authorization{ID: 7, ElementType: models.ElementShow, ElementID: 3, Content: `{"estimatedDuration":"30 min"}`, Status: status.AuthorizationSubmitted}
	task, err := tasks.NewNotifyManagersTask(el, a)
	require.NoError(t, err)

	require.NoError(t, handler.HandleNotifyManagersTask(context.Background(), task))

	// Two messages per manager: the header card and the element card.
	require.Len(t, sent, 4)
	assert.Equal(t, "ig-1", sent[0].Recipient.ID)
	assert.Equal(t, "ig-2", sent[2].Recipient.ID)

	payload := sent[1].Message["attachment"].(map[string]any)["payload"].(map[string]any)
	element := payload["elements"].([]any)[0].(map[string]any)
	assert.Equal(t, "Émission de mars", element["title"])
	assert.Equal(t, "Émission\nDurée : 30 min", element["subtitle"])
	assert.Equal(t, "https://api.example.org/public/images/thumbnails/mars.webp", element["image_url"])

	button := element["buttons"].([]any)[0].(map[string]any)
	assert.Equal(t, "https://lejdl.example.org/verif?id=7", button["url"])
}

func TestHandleNotifyManagersTaskContinuesOnFailure(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewInstagramClient(server.URL, "test-token")
	handler := NewTaskHandler(client, "https://lejdl.example.org", "https://api.example.org", []string{"ig-1", "ig-2"}, nil)

	el := workflow.Element{Type: models.ElementArticle, ID: 42, Title: "Un titre"}
	a := models.Authorization{ID: 7, Content: `{}`, Status: status.AuthorizationSubmitted}
	task, err := tasks.NewNotifyManagersTask(el, a)
	require.NoError(t, err)

	// Delivery failures are logged, not returned: the task must not retry.
	assert.NoError(t, handler.HandleNotifyManagersTask(context.Background(), task))
	assert.Equal(t, 4, calls)
}

func TestHandleNotifyEditorsTask(t *testing.T) {
	var sent []sentMessage
	server := newGraphAPIStub(t, &sent)
	defer server.Close()

	client := NewInstagramClient(server.URL, "test-token")
	handler := NewTaskHandler(client, "https://lejdl.example.org", "https://api.example.org", nil, []string{"ig-jdl"})

	manager := "J. Dupont"
	el := workflow.Element{Type: models.ElementArticle, ID: 42, Title: "Un titre"}
	a := models.Authorization{ID: 7, Content: `{}`, Status: status.AuthorizationApproved, Manager: &manager}
	task, err := tasks.NewNotifyEditorsTask(el, a)
	require.NoError(t, err)

	require.NoError(t, handler.HandleNotifyEditorsTask(context.Background(), task))

	require.Len(t, sent, 1)
	payload := sent[0].Message["attachment"].(map[string]any)["payload"].(map[string]any)
	element := payload["elements"].([]any)[0].(map[string]any)
	assert.Equal(t, "Autorisation de publication accordée", element["title"])
	assert.Equal(t, "Un titre, réponse de J. Dupont", element["subtitle"])
}

func TestHandlePurgeTokensTask(t *testing.T) {
	_, mock := test.NewMockDB(t)

	mock.ExpectExec(`DELETE FROM revoked_tokens WHERE expires_at < \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	handler := NewTaskHandler(nil, "", "", nil, nil)
	task, err := tasks.NewPurgeTokensTask()
	require.NoError(t, err)

	assert.NoError(t, handler.HandlePurgeTokensTask(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}
