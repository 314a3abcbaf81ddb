package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/responses/model"
	"surveyhub_backend/internals/features/surveys/schema"
	surveyModel "surveyhub_backend/internals/features/surveys/survey/model"
	surveyService "surveyhub_backend/internals/features/surveys/survey/service"
	"surveyhub_backend/internals/logger"
)

var ErrNotAccepting = errors.New("survey is not accepting responses")

// MissingAnswersError lists required questions left empty.
type MissingAnswersError struct {
	Questions []string
}

func (e *MissingAnswersError) Error() string {
	return fmt.Sprintf("required questions not answered: %s", strings.Join(e.Questions, ", "))
}

// Accepting reports whether a survey in status takes new responses.
func Accepting(status string) bool {
	return status == constants.SurveyOpen || status == constants.SurveyReady
}

// Submission is one respondent's answers. Scope narrows which surveys the
// respondent may answer (nil for admins).
type Submission struct {
	FormID  int64
	UserID  *int64
	Answers map[string]any
	Scope   func(*gorm.DB) *gorm.DB
}

// Submit checks the survey, stores the response and then runs the ready
// promotion. The promotion is separate from the insert: a failure there is
// logged and the response still counts.
func Submit(ctx context.Context, db *gorm.DB, s Submission) (model.SurveyResponseModel, bool, error) {
	var survey surveyModel.SurveyModel
	q := db.WithContext(ctx).Model(&surveyModel.SurveyModel{})
	if s.Scope != nil {
		q = s.Scope(q)
	}
	if err := q.Select("surveys.id", "surveys.status", "surveys.schema_json").
		Where("surveys.id = ?", s.FormID).Take(&survey).Error; err != nil {
		return model.SurveyResponseModel{}, false, err
	}
	if !Accepting(survey.Status) {
		return model.SurveyResponseModel{}, false, errors.Wrapf(ErrNotAccepting, "survey is %s", survey.Status)
	}

	doc, err := schema.Parse(survey.SchemaJSON)
	if err != nil {
		return model.SurveyResponseModel{}, false, errors.Wrap(surveyService.ErrInvalidSchema, err.Error())
	}
	if missing := surveyService.MissingRequired(doc, s.Answers); len(missing) > 0 {
		return model.SurveyResponseModel{}, false, &MissingAnswersError{Questions: missing}
	}

	answers := s.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	row := model.SurveyResponseModel{FormID: s.FormID, UserID: s.UserID, Responses: datatypes.JSONMap(answers)}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.SurveyResponseModel{}, false, errors.Wrap(err, "inserting response")
	}

	promoted, err := surveyService.PromoteIfReady(ctx, db, s.FormID)
	if err != nil {
		logger.Warnf("[RESPONSE] promotion check for survey %d: %v", s.FormID, err)
		return row, false, nil
	}
	if promoted {
		logger.Infof("[RESPONSE] survey %d is ready", s.FormID)
	}
	return row, promoted, nil
}
