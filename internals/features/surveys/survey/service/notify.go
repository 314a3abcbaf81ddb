package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/survey/model"
	"surveyhub_backend/internals/helpers/mailer"
	"surveyhub_backend/internals/logger"
)

// Notifier mails parents when a survey they can answer is published.
type Notifier struct {
	DB          *gorm.DB
	Mail        mailer.Sender
	FrontendURL string
	Timeout     time.Duration
}

// audienceQuery selects the active parents a published survey reaches.
func audienceQuery(tx *gorm.DB, s model.SurveyModel) *gorm.DB {
	q := tx.Table("users").
		Select("name", "email").
		Where("is_active = ? AND role = ?", true, constants.RoleParent)
	if s.Audience != constants.AudienceOpen {
		q = q.Where("school_id = ANY(?)", pq.Array(s.Recipients))
	}
	return q.Order("id")
}

func (n Notifier) Audience(ctx context.Context, s model.SurveyModel) ([]mail.Address, error) {
	if s.Audience != constants.AudienceOpen && len(s.Recipients) == 0 {
		return nil, nil
	}
	var rows []struct {
		Name  string
		Email string
	}
	if err := audienceQuery(n.DB.WithContext(ctx), s).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "loading survey audience")
	}
	out := make([]mail.Address, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Email) == "" {
			continue
		}
		out = append(out, mail.Address{Name: r.Name, Address: r.Email})
	}
	return out, nil
}

func (n Notifier) Message(s model.SurveyModel, to []mail.Address) mailer.Message {
	link := strings.TrimRight(n.FrontendURL, "/") + fmt.Sprintf("/surveys/%d", s.ID)
	text := fmt.Sprintf("A new survey is open: %s\n\n%s\n\nAnswer it here: %s", s.Title, s.Description, link)
	return mailer.Message{To: to, Subject: "New survey: " + s.Title, Text: text}
}

// Published sends in the background. Failures are logged, never returned.
func (n Notifier) Published(s model.SurveyModel) {
	if n.DB == nil || n.Mail == nil {
		return
	}
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		to, err := n.Audience(ctx, s)
		if err != nil {
			logger.Warnf("[SURVEY] notify %d: %v", s.ID, err)
			return
		}
		if len(to) == 0 {
			return
		}
		if err := n.Mail.Send(ctx, n.Message(s, to)); err != nil {
			logger.Warnf("[SURVEY] notify %d: %v", s.ID, err)
			return
		}
		logger.Infof("[SURVEY] notified %d parents about survey %d", len(to), s.ID)
	}()
}
