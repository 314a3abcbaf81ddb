package service

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/schema"
	"surveyhub_backend/internals/features/surveys/survey/model"
	"surveyhub_backend/internals/helpers/patch"
)

var (
	ErrPageNotFound    = errors.New("page not found")
	ErrElementNotFound = errors.New("element not found")
)

// Edit transforms a document. It must not mutate its input.
type Edit func(schema.Document) (schema.Document, error)

// EditSchema runs edit against a draft survey's schema_json under a row lock
// and stores the result.
func EditSchema(ctx context.Context, db *gorm.DB, id int64, edit Edit) (model.SurveyModel, error) {
	var out model.SurveyModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.SurveyModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "status", "schema_json").First(&cur, id).Error; err != nil {
			return err
		}
		if cur.Status != constants.SurveyDraft {
			return errors.Wrapf(ErrNotDraft, "survey is %s", cur.Status)
		}
		doc, err := schema.Parse(cur.SchemaJSON)
		if err != nil {
			return errors.Wrap(ErrInvalidSchema, err.Error())
		}
		next, err := edit(doc)
		if err != nil {
			return err
		}
		b, err := json.Marshal(next)
		if err != nil {
			return errors.Wrap(err, "encoding schema")
		}

		var p patch.Patch
		p.Put("schema_json", datatypes.JSON(b))
		return model.SurveyTable.Update(ctx, tx, id, p, &out, patch.Owned("status", constants.SurveyDraft))
	})
	return out, err
}

// RequirePage wraps edit so a missing page is reported instead of ignored.
func RequirePage(pageID string, edit Edit) Edit {
	return func(d schema.Document) (schema.Document, error) {
		if _, ok := d.Page(pageID); !ok {
			return d, ErrPageNotFound
		}
		return edit(d)
	}
}

// RequireElement is RequirePage for a single element.
func RequireElement(pageID, name string, edit Edit) Edit {
	return RequirePage(pageID, func(d schema.Document) (schema.Document, error) {
		if _, ok := d.Element(pageID, name); !ok {
			return d, ErrElementNotFound
		}
		return edit(d)
	})
}
