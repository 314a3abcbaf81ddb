package template

import (
	"errors"
	"io/fs"

	"github.com/bytedance/sonic"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"surveyhub_backend/internals/features/surveys/schema"
	surveyDto "surveyhub_backend/internals/features/surveys/survey/dto"
	"surveyhub_backend/internals/features/surveys/templates/model"
	"surveyhub_backend/internals/helpers/patch"
	"surveyhub_backend/internals/logger"
)

type QuestionSeed struct {
	Kind     schema.Kind `json:"kind"`
	Title    string      `json:"title"`
	Required bool        `json:"required"`
}

type PageSeed struct {
	Title     string         `json:"title"`
	Questions []QuestionSeed `json:"questions"`
}

type TemplateSeed struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Pages       []PageSeed `json:"pages"`
}

// Build assembles the schema document with the same palette the builder uses.
func (t TemplateSeed) Build() (schema.Document, error) {
	var doc schema.Document
	for _, p := range t.Pages {
		doc = schema.AddPage(doc, p.Title)
		pageID := doc.Pages[len(doc.Pages)-1].ID

		for _, q := range p.Questions {
			next, err := schema.AddElementByKind(doc, pageID, q.Kind)
			if err != nil {
				return schema.Document{}, err
			}
			doc = next

			elems := doc.Pages[len(doc.Pages)-1].Elements
			name := elems[len(elems)-1].Name
			doc = schema.UpdateElement(doc, pageID, name, schema.ElementPatch{
				Title:      patch.Value(q.Title),
				IsRequired: patch.Value(q.Required),
			})
		}
	}
	return doc, nil
}

func SeedTemplatesFromJSON(db *gorm.DB, fsys fs.FS, filePath string) error {
	logger.Infof("reading %s", filePath)

	file, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return pkgerrors.Wrap(err, "reading template seeds")
	}
	var seeds []TemplateSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return pkgerrors.Wrap(err, "decoding template seeds")
	}

	for _, s := range seeds {
		var existing model.SurveyTemplateModel
		err := db.Select("id").Where("title = ?", s.Title).Take(&existing).Error
		if err == nil {
			logger.Infof("template %q exists, skipping", s.Title)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		doc, err := s.Build()
		if err != nil {
			return pkgerrors.Wrapf(err, "building template %q", s.Title)
		}
		column, err := surveyDto.EncodeSchema(doc)
		if err != nil {
			return err
		}

		row := model.SurveyTemplateModel{Title: s.Title, Description: s.Description, SchemaJSON: column}
		if err := db.Create(&row).Error; err != nil {
			return pkgerrors.Wrapf(err, "inserting template %q", s.Title)
		}
		logger.Infof("inserted template %s (#%d)", row.Title, row.ID)
	}
	return nil
}
