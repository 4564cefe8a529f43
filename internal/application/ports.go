package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
)

// JobPublisher puts a JSON job on the e-mail queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// OrgIndex is the searchable organisation directory.
type OrgIndex interface {
	IndexOrganisation(ctx context.Context, org *entity.Organisation, memberIDs []uuid.UUID) error
	Search(ctx context.Context, viewerID uuid.UUID, q string, size int) ([]entity.Organisation, error)
}
