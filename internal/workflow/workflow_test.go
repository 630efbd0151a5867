package workflow

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/apierr"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/auth"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/models"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/status"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/test"
)

// mockNotifier records workflow notifications instead of enqueuing tasks.
type mockNotifier struct {
	managerCalls []models.Authorization
	editorCalls  []models.Authorization
}

func (m *mockNotifier) NotifyManagers(el Element, a models.Authorization) error {
	m.managerCalls = append(m.managerCalls, a)
	return nil
}

func (m *mockNotifier) NotifyEditors(el Element, a models.Authorization) error {
	m.editorCalls = append(m.editorCalls, a)
	return nil
}

// mockSigner returns a fixed signature and records the signed sentence.
type mockSigner struct {
	signed []string
}

func (m *mockSigner) Sign(message string) (string, error) {
	m.signed = append(m.signed, message)
	return "bW9jay1zaWduYXR1cmU=", nil
}

func newTestService(t *testing.T) (*Service, *mockNotifier, *mockSigner) {
	roster, err := auth.NewRoster(`["12345"]`, `["J. Dupont"]`)
	require.NoError(t, err)

	notifier := &mockNotifier{}
	signer := &mockSigner{}
	svc := New(notifier, signer, roster)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC) }
	return svc, notifier, signer
}

func authorizationColumns() []string {
	return []string{"id", "element_type", "element_id", "content", "status", "submit_date", "manager", "comments", "response_date", "signature"}
}

func expectArticleLookup(mock sqlmock.Sqlmock, id int) {
	rows := sqlmock.NewRows([]string{"id", "title", "article", "thumbnail", "thumbnail_src", "category", "author", "date", "status", "views"}).
		AddRow(id, "Un titre", "<p>Texte</p>", "thumb.webp", "JDL", "news", "A. Martin", int64(1700000000), int(status.ContentDraft), 0)
	mock.ExpectQuery(`SELECT \* FROM articles WHERE id = \$1`).WithArgs(id).WillReturnRows(rows)
}

func expectList(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM authorizations ORDER BY submit_date DESC, id DESC`).WillReturnRows(rows)
}

func TestSubmitCreatesAuthorizationAndNotifies(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, notifier, _ := newTestService(t)

	expectArticleLookup(mock, 42)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1, \$2\)`).WithArgs(727002, 42).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM authorizations WHERE element_type = \$1 AND element_id = \$2 AND status < 0`).
		WithArgs(models.ElementArticle, 42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO authorizations`).
		WithArgs(models.ElementArticle, 42, `{"estimatedDuration":0}`, int64(1741948200), int(status.AuthorizationSubmitted)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	// Submission moves the article into the pending status.
	mock.ExpectExec(`UPDATE articles SET status = \$1 WHERE id = \$2`).
		WithArgs(int(status.ContentPending), 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	expectList(mock, sqlmock.NewRows(authorizationColumns()).
		AddRow(7, models.ElementArticle, 42, `{"estimatedDuration":0}`, int(status.AuthorizationSubmitted), int64(1741948200), nil, nil, nil, nil))

	list, err := svc.Submit(SubmitRequest{
		ElementType: models.ElementArticle,
		ElementID:   42,
		Content:     `{"estimatedDuration":0}`,
		Status:      -1,
	})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 7, list[0].ID)
	assert.Equal(t, status.AuthorizationSubmitted, list[0].Status)

	require.Len(t, notifier.managerCalls, 1)
	assert.Equal(t, 7, notifier.managerCalls[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitDraftDoesNotNotify(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, notifier, _ := newTestService(t)

	expectArticleLookup(mock, 42)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1, \$2\)`).WithArgs(727002, 42).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM authorizations`).
		WithArgs(models.ElementArticle, 42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO authorizations`).
		WithArgs(models.ElementArticle, 42, `{}`, int64(1741948200), int(status.AuthorizationDraft)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectCommit()

	expectList(mock, sqlmock.NewRows(authorizationColumns()).
		AddRow(8, models.ElementArticle, 42, `{}`, int(status.AuthorizationDraft), int64(1741948200), nil, nil, nil, nil))

	// Status 3 is not a submit, so the record stays a draft.
	_, err := svc.Submit(SubmitRequest{ElementType: models.ElementArticle, ElementID: 42, Content: `{}`, Status: 3})

	require.NoError(t, err)
	assert.Empty(t, notifier.managerCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitElementIDZeroUsesMostRecent(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, _, _ := newTestService(t)

	rows := sqlmock.NewRows([]string{"id", "title", "article", "thumbnail", "thumbnail_src", "category", "author", "date", "status", "views"}).
		AddRow(42, "Dernier article", "<p>Texte</p>", "thumb.webp", "JDL", "news", "A. Martin", int64(1700000000), int(status.ContentDraft), 0)
	mock.ExpectQuery(`SELECT \* FROM articles ORDER BY id DESC LIMIT 1`).WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1, \$2\)`).WithArgs(727002, 42).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM authorizations`).
		WithArgs(models.ElementArticle, 42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO authorizations`).
		WithArgs(models.ElementArticle, 42, `{}`, int64(1741948200), int(status.AuthorizationDraft)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	expectList(mock, sqlmock.NewRows(authorizationColumns()))

	_, err := svc.Submit(SubmitRequest{ElementType: models.ElementArticle, ElementID: 0, Content: `{}`})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRejectsOpenDuplicate(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, notifier, _ := newTestService(t)

	expectArticleLookup(mock, 42)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1, \$2\)`).WithArgs(727002, 42).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM authorizations`).
		WithArgs(models.ElementArticle, 42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Submit(SubmitRequest{ElementType: models.ElementArticle, ElementID: 42, Content: `{}`, Status: -1})

	assert.ErrorIs(t, err, apierr.ErrConflict)
	assert.Empty(t, notifier.managerCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitValidation(t *testing.T) {
	test.NewMockDB(t)
	svc, _, _ := newTestService(t)

	_, err := svc.Submit(SubmitRequest{ElementType: "podcast", Content: `{}`})
	assert.ErrorIs(t, err, apierr.ErrValidation)

	_, err = svc.Submit(SubmitRequest{ElementType: models.ElementArticle, Content: ""})
	assert.ErrorIs(t, err, apierr.ErrValidation)
}

func TestResubmitMergesDraft(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, notifier, _ := newTestService(t)

	existing := sqlmock.NewRows(authorizationColumns()).
		AddRow(7, models.ElementArticle, 42, `{}`, int(status.AuthorizationDraft), int64(1700000000), nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT \* FROM authorizations WHERE id = \$1`).WithArgs(7).WillReturnRows(existing)

	expectArticleLookup(mock, 42)

	mock.ExpectExec(`UPDATE authorizations`).
		WithArgs(models.ElementArticle, 42, `{"estimatedDuration":1800}`, int64(1741948200), int(status.AuthorizationSubmitted), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`UPDATE articles SET status = \$1 WHERE id = \$2`).
		WithArgs(int(status.ContentPending), 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	expectList(mock, sqlmock.NewRows(authorizationColumns()))

	_, err := svc.Resubmit(7, SubmitRequest{Content: `{"estimatedDuration":1800}`, Status: -1})

	require.NoError(t, err)
	require.Len(t, notifier.managerCalls, 1)
	assert.Equal(t, `{"estimatedDuration":1800}`, notifier.managerCalls[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResubmitAfterRejectionStartsOver(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, _, _ := newTestService(t)

	manager := "J. Dupont"
	existing := sqlmock.NewRows(authorizationColumns()).
		AddRow(7, models.ElementArticle, 42, `{}`, int(status.AuthorizationRejected), int64(1700000000), manager, "Trop court", int64(1700001000), "sig")
	mock.ExpectQuery(`SELECT \* FROM authorizations WHERE id = \$1`).WithArgs(7).WillReturnRows(existing)

	// A rejected record is immutable: the edit becomes a brand new submission.
	expectArticleLookup(mock, 42)
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1, \$2\)`).WithArgs(727002, 42).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM authorizations`).
		WithArgs(models.ElementArticle, 42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO authorizations`).
		WithArgs(models.ElementArticle, 42, `{}`, int64(1741948200), int(status.AuthorizationDraft)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	expectList(mock, sqlmock.NewRows(authorizationColumns()))

	_, err := svc.Resubmit(7, SubmitRequest{ElementType: models.ElementArticle, ElementID: 42, Content: `{}`})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResubmitSubmittedIsImmutable(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, _, _ := newTestService(t)

	existing := sqlmock.NewRows(authorizationColumns()).
		AddRow(7, models.ElementArticle, 42, `{}`, int(status.AuthorizationSubmitted), int64(1700000000), nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT \* FROM authorizations WHERE id = \$1`).WithArgs(7).WillReturnRows(existing)

	_, err := svc.Resubmit(7, SubmitRequest{Content: `{}`})

	assert.ErrorIs(t, err, apierr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondApprovePublishesAndStamps(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, notifier, signer := newTestService(t)

	existing := sqlmock.NewRows(authorizationColumns()).
		AddRow(5, models.ElementArticle, 42, `{}`, int(status.AuthorizationSubmitted), int64(1700000000), nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT \* FROM authorizations WHERE id = \$1`).WithArgs(5).WillReturnRows(existing)

	expectArticleLookup(mock, 42)

	now := int64(1741948200)
	mock.ExpectExec(`UPDATE authorizations`).
		WithArgs(int(status.AuthorizationApproved), "J. Dupont", "Non spécifié", now, "bW9jay1zaWduYXR1cmU=", 5, int(status.AuthorizationSubmitted)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Approval publishes the article and restamps its date.
	mock.ExpectExec(`UPDATE articles SET status = \$1, date = \$2 WHERE id = \$3`).
		WithArgs(int(status.ContentPublished), now, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	expectList(mock, sqlmock.NewRows(authorizationColumns()))

	_, err := svc.Respond(5, "12345", RespondRequest{Status: 2})

	require.NoError(t, err)
	require.Len(t, signer.signed, 1)
	assert.Equal(t, "Autorisation de publication accordée par J. Dupont le 14/03/2025.", signer.signed[0])

	require.Len(t, notifier.editorCalls, 1)
	stamped := notifier.editorCalls[0]
	assert.Equal(t, status.AuthorizationApproved, stamped.Status)
	require.NotNil(t, stamped.Manager)
	assert.Equal(t, "J. Dupont", *stamped.Manager)
	require.NotNil(t, stamped.Comments)
	assert.Equal(t, "Non spécifié", *stamped.Comments)
	require.NotNil(t, stamped.Signature)
	assert.NotEmpty(t, *stamped.Signature)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondRejectReturnsElementToDraft(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, _, signer := newTestService(t)

	existing := sqlmock.NewRows(authorizationColumns()).
		AddRow(5, models.ElementArticle, 42, `{}`, int(status.AuthorizationSubmitted), int64(1700000000), nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT \* FROM authorizations WHERE id = \$1`).WithArgs(5).WillReturnRows(existing)

	expectArticleLookup(mock, 42)

	mock.ExpectExec(`UPDATE authorizations`).
		WithArgs(int(status.AuthorizationRejected), "J. Dupont", "Trop long", int64(1741948200), "bW9jay1zaWduYXR1cmU=", 5, int(status.AuthorizationSubmitted)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`UPDATE articles SET status = \$1 WHERE id = \$2`).
		WithArgs(int(status.ContentDraft), 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	expectList(mock, sqlmock.NewRows(authorizationColumns()))

	_, err := svc.Respond(5, "12345", RespondRequest{Status: 1, Comments: "Trop long"})

	require.NoError(t, err)
	require.Len(t, signer.signed, 1)
	assert.Equal(t, "Autorisation de publication refusée par J. Dupont le 14/03/2025.", signer.signed[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondTwiceConflicts(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, _, _ := newTestService(t)

	existing := sqlmock.NewRows(authorizationColumns()).
		AddRow(5, models.ElementArticle, 42, `{}`, int(status.AuthorizationApproved), int64(1700000000), "J. Dupont", "Non spécifié", int64(1700001000), "sig")
	mock.ExpectQuery(`SELECT \* FROM authorizations WHERE id = \$1`).WithArgs(5).WillReturnRows(existing)

	_, err := svc.Respond(5, "12345", RespondRequest{Status: 2})

	assert.ErrorIs(t, err, apierr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondLostRaceConflicts(t *testing.T) {
	_, mock := test.NewMockDB(t)
	svc, notifier, _ := newTestService(t)

	existing := sqlmock.NewRows(authorizationColumns()).
		AddRow(5, models.ElementArticle, 42, `{}`, int(status.AuthorizationSubmitted), int64(1700000000), nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT \* FROM authorizations WHERE id = \$1`).WithArgs(5).WillReturnRows(existing)

	expectArticleLookup(mock, 42)

	// Another manager responded between the read and the guarded update.
	mock.ExpectExec(`UPDATE authorizations`).
		WithArgs(int(status.AuthorizationApproved), "J. Dupont", "Non spécifié", int64(1741948200), "bW9jay1zaWduYXR1cmU=", 5, int(status.AuthorizationSubmitted)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.Respond(5, "12345", RespondRequest{Status: 2})

	assert.ErrorIs(t, err, apierr.ErrConflict)
	assert.Empty(t, notifier.editorCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondUnknownManager(t *testing.T) {
	test.NewMockDB(t)
	svc, _, _ := newTestService(t)

	_, err := svc.Respond(5, "99999", RespondRequest{Status: 2})
	assert.ErrorIs(t, err, apierr.ErrAuth)
}

func TestRespondInvalidDecision(t *testing.T) {
	test.NewMockDB(t)
	svc, _, _ := newTestService(t)

	_, err := svc.Respond(5, "12345", RespondRequest{Status: -1})
	assert.ErrorIs(t, err, apierr.ErrValidation)

	_, err = svc.Respond(5, "12345", RespondRequest{Status: 0})
	assert.ErrorIs(t, err, apierr.ErrValidation)
}
