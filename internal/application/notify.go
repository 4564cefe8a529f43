package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	"github.com/oksasatya/orgauth-service/internal/domain/repository"
	"github.com/oksasatya/orgauth-service/pkg/mailer"
	tpl "github.com/oksasatya/orgauth-service/pkg/mailer/templates"
)

// sideEffects runs the post-commit work shared by both services. Every
// method logs its failure and never returns it.
type sideEffects struct {
	store   repository.Manager
	jobs    JobPublisher
	index   OrgIndex
	logger  logrus.FieldLogger
	appName string
}

func (s sideEffects) log() logrus.FieldLogger {
	if s.logger == nil {
		return logrus.StandardLogger()
	}
	return s.logger
}

func (s sideEffects) welcome(ctx context.Context, u *entity.User, org *entity.Organisation) {
	if s.jobs == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.Welcome,
		Data: tpl.NewWelcomeData(s.appName, u.FirstName, u.Email,
			tpl.WithOrganisation(org.ID.String(), org.Name), tpl.WithTime(u.CreatedAt)),
	}
	if err := s.jobs.PublishJSON(ctx, job); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("publish welcome email failed")
	}
}

func (s sideEffects) memberAdded(ctx context.Context, by, target *entity.User, org *entity.Organisation) {
	if s.jobs == nil {
		return
	}
	job := mailer.EmailJob{
		To:       target.Email,
		Template: tpl.MemberAdded,
		Data: tpl.NewMemberAddedData(s.appName, target.FirstName, target.Email,
			tpl.WithOrganisation(org.ID.String(), org.Name),
			tpl.WithAddedBy(by.FirstName+" "+by.LastName),
			tpl.WithTime(time.Now())),
	}
	if err := s.jobs.PublishJSON(ctx, job); err != nil {
		s.log().WithError(err).WithFields(logrus.Fields{"user_id": target.ID, "org_id": org.ID}).Warn("publish member_added email failed")
	}
}

// reindex refreshes the directory document for org with its current members.
func (s sideEffects) reindex(ctx context.Context, org *entity.Organisation) {
	if s.index == nil {
		return
	}
	members, err := s.store.Organisations().Members(ctx, org.ID)
	if err != nil {
		s.log().WithError(err).WithField("org_id", org.ID).Warn("load members for indexing failed")
		return
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	if err := s.index.IndexOrganisation(ctx, org, ids); err != nil {
		s.log().WithError(err).WithField("org_id", org.ID).Warn("index organisation failed")
	}
}
