package service

import (
	"context"
	"sort"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/survey/model"
	"surveyhub_backend/internals/helpers/patch"
)

var ErrNotDraft = errors.New("only draft surveys can be changed this way")

// UniqueIDs drops duplicates and non-positive ids and sorts the rest.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

/* =========================================================
   RECIPIENTS
   ========================================================= */

func LoadRecipients(ctx context.Context, db *gorm.DB, surveyID int64) ([]int64, error) {
	ids := []int64{}
	err := db.WithContext(ctx).Model(&model.SurveyRecipientModel{}).
		Where("survey_id = ?", surveyID).
		Order("school_id").
		Pluck("school_id", &ids).Error
	return ids, errors.Wrap(err, "loading recipients")
}

// AttachRecipients fills Recipients on each survey with one query.
func AttachRecipients(ctx context.Context, db *gorm.DB, surveys []model.SurveyModel) error {
	if len(surveys) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(surveys))
	for _, s := range surveys {
		ids = append(ids, s.ID)
	}
	var rows []model.SurveyRecipientModel
	if err := db.WithContext(ctx).
		Where("survey_id = ANY(?)", pq.Array(ids)).
		Order("survey_id, school_id").
		Find(&rows).Error; err != nil {
		return errors.Wrap(err, "loading recipients")
	}
	by := make(map[int64][]int64, len(surveys))
	for _, r := range rows {
		by[r.SurveyID] = append(by[r.SurveyID], r.SchoolID)
	}
	for i := range surveys {
		surveys[i].Recipients = by[surveys[i].ID]
		if surveys[i].Recipients == nil {
			surveys[i].Recipients = []int64{}
		}
	}
	return nil
}

// ReplaceRecipients makes the recipient set exactly schoolIDs. Run it inside
// the survey's transaction.
func ReplaceRecipients(tx *gorm.DB, surveyID int64, schoolIDs []int64) error {
	del := tx.Where("survey_id = ?", surveyID)
	if len(schoolIDs) > 0 {
		del = del.Where("NOT (school_id = ANY(?))", pq.Array(schoolIDs))
	}
	if err := del.Delete(&model.SurveyRecipientModel{}).Error; err != nil {
		return errors.Wrap(err, "removing recipients")
	}
	return insertRecipients(tx, surveyID, schoolIDs)
}

func insertRecipients(tx *gorm.DB, surveyID int64, schoolIDs []int64) error {
	if len(schoolIDs) == 0 {
		return nil
	}
	rows := make([]model.SurveyRecipientModel, 0, len(schoolIDs))
	for _, id := range schoolIDs {
		rows = append(rows, model.SurveyRecipientModel{SurveyID: surveyID, SchoolID: id})
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	return errors.Wrap(err, "inserting recipients")
}

// VisibleTo narrows a survey query for a parent: never drafts, and only open
// audience surveys or those directed at the parent's school.
func VisibleTo(tx *gorm.DB, schoolID *int64) *gorm.DB {
	tx = tx.Where("surveys.status <> ?", constants.SurveyDraft)
	if schoolID == nil {
		return tx.Where("surveys.audience = ?", constants.AudienceOpen)
	}
	return tx.Where(
		"(surveys.audience = ? OR EXISTS (SELECT 1 FROM survey_recipients r WHERE r.survey_id = surveys.id AND r.school_id = ?))",
		constants.AudienceOpen, *schoolID,
	)
}

/* =========================================================
   CREATE
   ========================================================= */

// CreateSurvey inserts the survey and its recipients atomically. A survey
// created straight into open status passes the publish checks first.
func CreateSurvey(ctx context.Context, db *gorm.DB, s *model.SurveyModel, recipients []int64) error {
	recipients = UniqueIDs(recipients)
	if s.Status == "" {
		s.Status = constants.SurveyDraft
	}
	switch s.Status {
	case constants.SurveyDraft:
	case constants.SurveyOpen:
		if err := ValidateForPublish(Snapshot{Title: s.Title, Schema: s.SchemaJSON, Audience: s.Audience, Recipients: recipients}); err != nil {
			return err
		}
		now := time.Now().UTC()
		s.PublishedAt = &now
	default:
		return &TransitionError{From: constants.SurveyDraft, To: s.Status}
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return errors.Wrap(err, "inserting survey")
		}
		if err := insertRecipients(tx, s.ID, recipients); err != nil {
			return err
		}
		s.Recipients = recipients
		return nil
	})
}

/* =========================================================
   UPDATE
   ========================================================= */

// Change is an update request against a stored survey. Status is the
// requested status ("" keeps the current one); Recipients nil keeps the set.
type Change struct {
	Patch      patch.Patch
	Status     string
	Recipients *[]int64
}

type Result struct {
	Survey    model.SurveyModel
	Published bool
}

// UpdateSurvey applies c under a row lock. Drafts get relaxed checks; a
// survey that is open, ready or being published must still pass the publish
// checks after the change. Closed surveys are frozen.
func UpdateSurvey(ctx context.Context, db *gorm.DB, id int64, c Change) (Result, error) {
	var out Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.SurveyModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cur, id).Error; err != nil {
			return err
		}

		target := cur.Status
		if c.Status != "" && c.Status != cur.Status {
			if err := CheckTransition(cur.Status, c.Status); err != nil {
				return err
			}
			target = c.Status
		} else if cur.Status == constants.SurveyClosed {
			return &TransitionError{From: constants.SurveyClosed, To: constants.SurveyClosed}
		}

		recipients := UniqueIDs(derefIDs(c.Recipients))
		if c.Recipients == nil {
			loaded, err := LoadRecipients(ctx, tx, id)
			if err != nil {
				return err
			}
			recipients = loaded
		}

		if target == constants.SurveyOpen || target == constants.SurveyReady {
			if err := ValidateForPublish(after(cur, c.Patch, recipients)); err != nil {
				return err
			}
		}

		p := c.Patch
		now := time.Now().UTC()
		if target != cur.Status {
			p.Put("status", target)
			switch target {
			case constants.SurveyOpen:
				p.Put("published_at", now)
				out.Published = true
			case constants.SurveyClosed:
				p.Put("closed_at", now)
			}
		}

		if p.Empty() {
			out.Survey = cur
		} else if err := model.SurveyTable.Update(ctx, tx, id, p, &out.Survey); err != nil {
			return err
		}
		if c.Recipients != nil {
			if err := ReplaceRecipients(tx, id, recipients); err != nil {
				return err
			}
		}
		out.Survey.Recipients = recipients
		return nil
	})
	return out, err
}

// SetStatus is UpdateSurvey with nothing but a status change.
func SetStatus(ctx context.Context, db *gorm.DB, id int64, status string) (Result, error) {
	if status == "" {
		return Result{}, patch.ErrNothingToUpdate
	}
	return UpdateSurvey(ctx, db, id, Change{Status: status})
}

// after is the survey as it would look once p is applied.
func after(cur model.SurveyModel, p patch.Patch, recipients []int64) Snapshot {
	s := Snapshot{Title: cur.Title, Schema: cur.SchemaJSON, Audience: cur.Audience, Recipients: recipients}
	m := p.Map()
	if v, ok := m["title"].(string); ok {
		s.Title = v
	}
	if v, ok := m["audience"].(string); ok {
		s.Audience = v
	}
	if p.Has("schema_json") {
		s.Schema = asBytes(m["schema_json"])
	}
	return s
}

func asBytes(v any) []byte {
	switch t := v.(type) {
	case []byte:
		return t
	case string:
		return []byte(t)
	case interface{ MarshalJSON() ([]byte, error) }:
		b, _ := t.MarshalJSON()
		return b
	}
	return nil
}

func derefIDs(ids *[]int64) []int64 {
	if ids == nil {
		return nil
	}
	return *ids
}

/* =========================================================
   DELETE
   ========================================================= */

// DeleteDraft removes a draft survey; anything else is a TransitionError.
func DeleteDraft(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.SurveyModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id", "status").First(&cur, id).Error; err != nil {
			return err
		}
		if cur.Status != constants.SurveyDraft {
			return errors.Wrapf(ErrNotDraft, "survey is %s", cur.Status)
		}
		if err := tx.Delete(&model.SurveyModel{}, id).Error; err != nil {
			return errors.Wrap(err, "deleting survey")
		}
		return nil
	})
}
