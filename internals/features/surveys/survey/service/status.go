package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/schema"
	"surveyhub_backend/internals/features/surveys/survey/model"
)

// Publish checks, run in this order.
var (
	ErrTitleRequired = errors.New("survey title is required")
	ErrNoQuestions   = errors.New("survey must contain at least one question")
	ErrNoRecipients  = errors.New("survey must have at least one recipient school")
	ErrInvalidSchema = errors.New("schema_json is not a valid survey document")
)

// TransitionError is an illegal status change.
type TransitionError struct {
	From, To string
}

func (e *TransitionError) Error() string {
	if e.To == constants.SurveyReady {
		return "a survey becomes ready automatically once it has enough responses"
	}
	if e.From == e.To {
		return fmt.Sprintf("survey is already %s", e.From)
	}
	return fmt.Sprintf("cannot move survey from %s to %s", e.From, e.To)
}

var transitions = map[string][]string{
	constants.SurveyDraft: {constants.SurveyOpen},
	constants.SurveyOpen:  {constants.SurveyClosed},
	constants.SurveyReady: {constants.SurveyClosed},
}

// CheckTransition allows draft → open and open|ready → closed. ready is only
// ever reached through PromoteIfReady.
func CheckTransition(from, to string) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}

func ValidStatus(s string) bool {
	switch s {
	case constants.SurveyDraft, constants.SurveyOpen, constants.SurveyReady, constants.SurveyClosed:
		return true
	}
	return false
}

// Snapshot is the state a publish check looks at.
type Snapshot struct {
	Title      string
	Schema     []byte
	Audience   string
	Recipients []int64
}

// PublishError lists every failing publish check, in check order. errors.Is
// matches each of them.
type PublishError struct {
	Errs []error
}

func (e *PublishError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *PublishError) Unwrap() []error { return e.Errs }

// Fields keys each failing check by the request field it concerns.
func (e *PublishError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.Errs))
	for _, err := range e.Errs {
		key := "schema_json"
		switch {
		case errors.Is(err, ErrTitleRequired):
			key = "title"
		case errors.Is(err, ErrNoRecipients):
			key = "recipients"
		}
		out[key] = append(out[key], err.Error())
	}
	return out
}

// ValidateForPublish runs every publish check and returns a *PublishError
// naming all that fail, or nil.
func ValidateForPublish(s Snapshot) error {
	var failed []error
	if strings.TrimSpace(s.Title) == "" {
		failed = append(failed, ErrTitleRequired)
	}
	if doc, err := schema.Parse(s.Schema); err != nil {
		failed = append(failed, ErrInvalidSchema)
	} else if !doc.HasQuestions() {
		failed = append(failed, ErrNoQuestions)
	}
	if s.Audience != constants.AudienceOpen && len(s.Recipients) == 0 {
		failed = append(failed, ErrNoRecipients)
	}
	if len(failed) == 0 {
		return nil
	}
	return &PublishError{Errs: failed}
}

// IsPublishError reports whether err is one of the publish checks.
func IsPublishError(err error) bool {
	var pe *PublishError
	return errors.As(err, &pe) || errors.Is(err, ErrTitleRequired) || errors.Is(err, ErrNoQuestions) ||
		errors.Is(err, ErrNoRecipients) || errors.Is(err, ErrInvalidSchema)
}

/* =========================================================
   PROMOTION
   ========================================================= */

func promoteStatement(tx *gorm.DB, surveyID int64) *gorm.DB {
	return tx.Model(&model.SurveyModel{}).
		Where("id = ? AND status = ?", surveyID, constants.SurveyOpen).
		Where("min_responses <= (SELECT COUNT(*) FROM survey_responses WHERE form_id = ?)", surveyID).
		Update("status", constants.SurveyReady)
}

// PromoteIfReady moves an open survey to ready once its response count
// reaches min_responses. It is one conditional UPDATE, so repeated or
// concurrent calls are harmless.
func PromoteIfReady(ctx context.Context, db *gorm.DB, surveyID int64) (bool, error) {
	res := promoteStatement(db.WithContext(ctx), surveyID)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "promoting survey")
	}
	return res.RowsAffected > 0, nil
}
